package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/fetch"
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/screen"
	"github.com/Makepad-fr/listbench/internal/store/jsonstore"
	"github.com/Makepad-fr/listbench/internal/ui"
)

// doUI runs the interactive screen and prints a summary once it quits.
func doUI(cfg *config.Config) int {
	logPath, err := logging.InitFile(cfg.LogDir)
	if err != nil {
		ui.Fail("log: " + err.Error())
		return 1
	}
	defer logging.Close()
	logging.Info("listbench started", "url", cfg.BaseURL, "size", cfg.Size, "theme", ui.Current().Name)

	sinks, closeSinks, err := openSinks(cfg)
	if err != nil {
		ui.Fail("history: " + err.Error())
		return 1
	}
	defer closeSinks()

	statsFile := cfg.StatsFile
	if statsFile == "" {
		if statsFile, err = jsonstore.DefaultPath(); err != nil {
			ui.Fail(err.Error())
			return 1
		}
	}

	h := history.New(sinks...)
	m := screen.New(context.Background(), newClient(cfg), h, screen.Options{
		Size:         model.Size(cfg.Size),
		RefetchDelay: cfg.RefetchDelay(),
		StatsFile:    statsFile,
		Features: screen.Features{
			Selection:      cfg.Features.Selection,
			History:        cfg.Features.History,
			SizeInput:      cfg.Features.SizeInput,
			DiscardOnError: cfg.Features.DiscardOnError,
		},
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}

	if cfg.Features.History {
		ui.Panel(summaryLines("Session", h.Dump()))
	}
	fmt.Println(ui.Current().Muted.Render("log: " + logPath))
	return 0
}

func newClient(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(cfg.BaseURL,
		fetch.WithTimeout(cfg.Timeout()),
		fetch.WithRateLimit(cfg.RequestsPerSecond),
	)
}
