package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/server"
	"github.com/Makepad-fr/listbench/internal/ui"
)

func doServe(_ *config.Config, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addr := fs.String("addr", ":3001", "listen address")
	seed := fs.Int64("seed", 0, "generator seed (0 picks one from the clock)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		ui.Fail("usage: listbench serve [-addr :3001] [-seed n]")
		return 2
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logging.Init(os.Stderr, log.InfoLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("movie generator seeded", "seed", *seed)
	err := server.New(server.NewGenerator(*seed)).ListenAndServe(ctx, *addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}
