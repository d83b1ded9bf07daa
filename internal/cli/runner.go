package cli

import (
	"fmt"
	"os"

	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/ui"
)

// Options carry the resolved configuration from the root flags.
type Options struct {
	Config *config.Config
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Config == nil {
		opt.Config = config.DefaultConfig()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		if len(a) != 0 {
			ui.Fail("usage: listbench ui")
			return 2
		}
		return doUI(opt.Config)

	case "bench":
		return doBench(opt.Config, a)

	case "serve":
		return doServe(opt.Config, a)

	case "stats":
		return doStats(opt.Config, a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`listbench - time fetching, decoding and transforming list payloads

Usage:
  listbench [-config file] [-url base] [-size MB] [-theme name] <subcommand> [args]

Subcommands:
  ui                         Interactive list screen
  bench [-sizes 1,5] [-n 3]  Fetch each size n times and summarize timings
        [-parallel 1] [-out stats.json]
  serve [-addr :3001]        Serve fake /movies payloads
        [-seed n]
  stats [-db file] [-clear]  Summarize the stats history database

Examples:
  listbench serve
  listbench -size 5 ui
  listbench bench -sizes 0.5,1,5 -n 5 -out stats.json
`)
}
