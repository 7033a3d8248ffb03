package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"famicore/emu"
	"famicore/hw"
)

// runMain emulates a fixed number of frames, with no window attached.
// Output is whatever the flags ask for: a video digest, a WAV capture, a
// final state snapshot.
func runMain(args Run) {
	var cfg emu.Config
	if args.Config != "" {
		var err error
		cfg, err = emu.LoadConfig(args.Config)
		checkf(err, "failed to load config %s", args.Config)
	}
	if args.Wav != "" {
		cfg.Audio = true
	}

	console := emu.New(cfg)
	checkf(console.LoadFile(args.RomPath), "failed to load rom")

	var script inputScript
	if args.Input != "" {
		var err error
		script, err = loadInputScript(args.Input)
		checkf(err, "failed to load input script %s", args.Input)
	}

	if args.StateIn != "" {
		blob, err := os.ReadFile(args.StateIn)
		checkf(err, "failed to read snapshot %s", args.StateIn)
		checkf(console.Restore(blob), "failed to restore snapshot")
	}

	var wav *emu.WavRecorder
	if args.Wav != "" {
		var err error
		wav, err = emu.NewWavRecorder(args.Wav, console.SampleRate())
		checkf(err, "failed to create %s", args.Wav)
	}

	var digest emu.VideoDigest
	for i := 0; i < args.Frames; i++ {
		for _, ev := range script.at(console.NextFrame()) {
			console.SetInput(ev.pad, ev.buttons)
		}

		frame := console.RunFrame()
		digest.Write(frame.Video)
		if wav != nil {
			checkf(wav.Write(frame.Audio), "failed to write %s", args.Wav)
		}
	}

	if wav != nil {
		checkf(wav.Close(), "failed to finalize %s", args.Wav)
	}

	if args.Hash != nil {
		defer args.Hash.Close()
		fmt.Fprintln(args.Hash, digest.Hash())
	}

	if args.StateOut != "" {
		blob, err := console.Snapshot()
		checkf(err, "failed to snapshot console")
		checkf(os.WriteFile(args.StateOut, blob, 0644), "failed to write %s", args.StateOut)
	}
}

// inputEvent replaces the button state of one pad at the start of a frame.
// The state is held until a later event changes it.
type inputEvent struct {
	frame   uint64
	pad     int
	buttons hw.Button
}

type inputScript []inputEvent

// at returns the events scheduled for the given frame.
func (s inputScript) at(frame uint64) []inputEvent {
	lo := sort.Search(len(s), func(i int) bool { return s[i].frame >= frame })
	hi := lo
	for hi < len(s) && s[hi].frame == frame {
		hi++
	}
	return s[lo:hi]
}

var buttonNames = map[string]hw.Button{
	"A":      hw.BtnA,
	"B":      hw.BtnB,
	"SELECT": hw.BtnSelect,
	"START":  hw.BtnStart,
	"UP":     hw.BtnUp,
	"DOWN":   hw.BtnDown,
	"LEFT":   hw.BtnLeft,
	"RIGHT":  hw.BtnRight,
}

// loadInputScript parses a controller replay script. One event per line:
//
//	FRAME PAD BUTTONS
//
// where FRAME is the frame number, PAD is 0 or 1, and BUTTONS is either
// 'none' or a '+'-separated list of button names (A, B, SELECT, START, UP,
// DOWN, LEFT, RIGHT). Blank lines and lines starting with '#' are skipped.
func loadInputScript(path string) (inputScript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var script inputScript
	lineno := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: want 'FRAME PAD BUTTONS', got %q", path, lineno, line)
		}

		frame, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad frame number %q", path, lineno, fields[0])
		}
		pad, err := strconv.Atoi(fields[1])
		if err != nil || pad < 0 || pad > 1 {
			return nil, fmt.Errorf("%s:%d: bad pad %q, want 0 or 1", path, lineno, fields[1])
		}

		buttons, err := parseButtons(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		script = append(script, inputEvent{frame: frame, pad: pad, buttons: buttons})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(script, func(i, j int) bool { return script[i].frame < script[j].frame })
	return script, nil
}

func parseButtons(s string) (hw.Button, error) {
	if strings.EqualFold(s, "none") {
		return 0, nil
	}

	var buttons hw.Button
	for _, name := range strings.Split(s, "+") {
		btn, ok := buttonNames[strings.ToUpper(name)]
		if !ok {
			return 0, fmt.Errorf("unknown button %q", name)
		}
		buttons |= btn
	}
	return buttons, nil
}
