package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/listbench/internal/cli"
	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.Path(), "config file")
	baseURL := flag.String("url", "", "movies server base URL")
	size := flag.Float64("size", 0, "initial payload size in MB")
	theme := flag.String("theme", "", "classic, neon or mono")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.BaseURL = *baseURL
		case "size":
			cfg.Size = *size
		case "theme":
			cfg.Theme = *theme
		}
	})
	if err := cfg.Validate(); err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)

	code := cli.Run(args, cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
