package main

import (
	"fmt"
	"os"

	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"famicore/hw/hwdefs"
	"famicore/ines"
)

type romInfo struct {
	Path      string
	Mapper    uint16
	PRGBanks  int
	CHRBanks  int
	CHRRAM    bool
	Mirroring hwdefs.Mirroring
	Battery   bool
	Trainer   bool
}

// romInfosMain prints header information for each given rom. Files are
// parsed concurrently, output order follows the command line.
func romInfosMain(args RomInfos) {
	infos := make([]romInfo, len(args.RomPaths))

	var g errgroup.Group
	for i, path := range args.RomPaths {
		g.Go(func() error {
			rom, err := ines.Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			infos[i] = romInfo{
				Path:      path,
				Mapper:    rom.Mapper(),
				PRGBanks:  rom.PRGBanks(),
				CHRBanks:  rom.CHRBanks(),
				CHRRAM:    rom.HasCHRRAM(),
				Mirroring: rom.Mirroring(),
				Battery:   rom.HasBattery(),
				Trainer:   rom.HasTrainer(),
			}
			return nil
		})
	}
	checkf(g.Wait(), "failed to read rom")

	if args.JSON {
		printInfosJSON(infos)
		return
	}
	for _, info := range infos {
		info.print(os.Stdout)
	}
}

func (info *romInfo) print(w *os.File) {
	chr := fmt.Sprintf("%d KB (%d banks)", info.CHRBanks*8, info.CHRBanks)
	if info.CHRRAM {
		chr = "8 KB RAM"
	}

	fmt.Fprintf(w, "%s:\n", info.Path)
	fmt.Fprintf(w, "  mapper:    %d\n", info.Mapper)
	fmt.Fprintf(w, "  prg rom:   %d KB (%d banks)\n", info.PRGBanks*16, info.PRGBanks)
	fmt.Fprintf(w, "  chr:       %s\n", chr)
	fmt.Fprintf(w, "  mirroring: %s\n", info.Mirroring)
	fmt.Fprintf(w, "  battery:   %s\n", yesno(info.Battery))
	fmt.Fprintf(w, "  trainer:   %s\n", yesno(info.Trainer))
}

func printInfosJSON(infos []romInfo) {
	var e jx.Encoder
	e.SetIdent(2)

	e.ArrStart()
	for i := range infos {
		info := &infos[i]
		e.ObjStart()
		e.FieldStart("path")
		e.Str(info.Path)
		e.FieldStart("mapper")
		e.UInt16(info.Mapper)
		e.FieldStart("prg_banks")
		e.Int(info.PRGBanks)
		e.FieldStart("chr_banks")
		e.Int(info.CHRBanks)
		e.FieldStart("chr_ram")
		e.Bool(info.CHRRAM)
		e.FieldStart("mirroring")
		e.Str(info.Mirroring.String())
		e.FieldStart("battery")
		e.Bool(info.Battery)
		e.FieldStart("trainer")
		e.Bool(info.Trainer)
		e.ObjEnd()
	}
	e.ArrEnd()

	fmt.Println(string(e.Bytes()))
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
