package cli

import (
	"flag"
	"io"

	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/store/sqlitestore"
	"github.com/Makepad-fr/listbench/internal/ui"
)

func doStats(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	db := fs.String("db", cfg.HistoryDB, "history database")
	wipe := fs.Bool("clear", false, "delete all recorded fetches")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		ui.Fail("usage: listbench stats [-db file] [-clear]")
		return 2
	}
	if *db == "" {
		ui.Fail("no history database (use -db or LISTBENCH_HISTORY_DB)")
		return 2
	}

	s, err := sqlitestore.Open(*db)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer s.Close()

	if *wipe {
		if err := s.Clear(); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		ui.OK("history cleared")
		return 0
	}

	all, err := s.All()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ui.Panel(summaryLines("History", all))
	return 0
}
