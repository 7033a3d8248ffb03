package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"famicore/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM headless
	romInfosMode             // Show ROM infos
	versionMode              // Show famicore version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run a ROM headless for a number of frames."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Version  Version  `cmd:"" help:"Show famicore version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" required:"true" type:"existingfile"`

		Frames   int      `name:"frames" help:"Number of frames to emulate." default:"60"`
		Config   string   `name:"config" help:"Load settings from a TOML file." type:"existingfile"`
		Input    string   `name:"input" help:"${input_help}" type:"existingfile"`
		Hash     *outfile `name:"hash" help:"Write the video digest of the run." placeholder:"FILE|stdout|stderr"`
		Wav      string   `name:"wav" help:"Record audio to a WAV file." type:"path"`
		StateIn  string   `name:"state-in" help:"Restore a snapshot before running." type:"existingfile"`
		StateOut string   `name:"state-out" help:"Save a snapshot after the last frame." type:"path"`
	}

	RomInfos struct {
		RomPaths []string `arg:"" name:"/path/to/rom" type:"existingfile"`

		JSON bool `name:"json" help:"Print infos as JSON."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":   "Enable logging for specified modules.",
	"input_help": "Replay controller input from a script file.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("famicore"),
		kong.Description("Headless NES emulator core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "rom-infos </path/to/rom>":
		cfg.mode = romInfosMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		fmt.Fprintf(os.Stderr, `
Log modules:
  --log takes a comma-separated list of module names, each enabling the
  debug output of one hardware block:
%s

  Two special values exist: 'all' enables every module, 'no' turns
  logging off entirely. Neither combines with module names.
`, "    "+strings.Join(log.ModuleNames(), "\n    "))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode parses the --log flag value into a module mask and applies it.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	val := tok.Value.(string)

	switch val {
	case "no":
		log.Disable()
		return nil
	case "all":
		log.EnableDebugModules(log.ModuleMaskAll)
		return nil
	}

	for _, name := range strings.Split(val, ",") {
		if name == "no" || name == "all" {
			return fmt.Errorf("%q cannot be combined with module names", name)
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %s", name)
		}
		lm |= logModMask(mod.Mask())
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

// outfile is a flag-selectable output: a file path, or one of the standard
// streams by name.
type outfile struct {
	io.Writer
	name string
	fd   *os.File
}

// Decode decodes FILE|stdout|stderr into the destination writer.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)

	switch f.name {
	case "stdout":
		f.Writer = os.Stdout
	case "stderr":
		f.Writer = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.Writer = fd
		f.fd = fd
	}
	return nil
}

func (f *outfile) String() string { return f.name }

func (f *outfile) Close() error {
	if f.fd == nil {
		return nil
	}
	return f.fd.Close()
}

func checkf(err error, format string, args ...any) {
	if err != nil {
		fatalf(format+".\n"+err.Error(), args...)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
