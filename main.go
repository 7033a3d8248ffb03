package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "(devel)"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case romInfosMode:
		romInfosMain(cli.RomInfos)
	case versionMode:
		fmt.Println("famicore", version)
	default:
		runMain(cli.Run)
	}
}
