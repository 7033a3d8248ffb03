package log

// A Module tags log entries with the hardware block they come from. Debug
// and info entries are gated per module through a global bit mask.
type (
	Module     uint
	ModuleMask uint64
)

const ModuleMaskAll = ^ModuleMask(0)

// Modules of the emulation core. NewModule registers extra ones.
const (
	ModEmu Module = iota + 1
	ModCPU
	ModPPU
	ModSound
	ModMapper
	ModBus
)

var modNames = []string{
	ModEmu:    "emu",
	ModCPU:    "cpu",
	ModPPU:    "ppu",
	ModSound:  "sound",
	ModMapper: "mapper",
	ModBus:    "bus",
}

var debugMask ModuleMask

// NewModule registers an additional module under the given name.
func NewModule(name string) Module {
	modNames = append(modNames, name)
	return Module(len(modNames) - 1)
}

// ModuleByName resolves a module from its name.
func ModuleByName(name string) (Module, bool) {
	for mod := 1; mod < len(modNames); mod++ {
		if modNames[mod] == name {
			return Module(mod), true
		}
	}
	return 0, false
}

// ModuleNames lists the registered module names.
func ModuleNames() []string {
	return modNames[1:]
}

func EnableDebugModules(mask ModuleMask)  { debugMask |= mask }
func DisableDebugModules(mask ModuleMask) { debugMask &^= mask }

func (mod Module) Mask() ModuleMask { return 1 << mod }

// Enabled reports whether entries at the given level are emitted for this
// module. Warnings and above always pass.
func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || debugMask&mod.Mask() != 0
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	e := newEntryZ()
	e.lvl, e.mod, e.msg = lvl, mod, msg
	return e
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
