package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/logging"
	"github.com/Makepad-fr/listbench/internal/model"
	"github.com/Makepad-fr/listbench/internal/rows"
	"github.com/Makepad-fr/listbench/internal/screen"
	"github.com/Makepad-fr/listbench/internal/store/jsonstore"
	"github.com/Makepad-fr/listbench/internal/ui"
)

type benchPlan struct {
	Sizes    []model.Size
	Repeat   int
	Parallel int
}

func doBench(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sizes := fs.String("sizes", "", "comma-separated payload sizes in MB")
	n := fs.Int("n", 3, "fetches per size")
	parallel := fs.Int("parallel", 1, "concurrent fetches")
	out := fs.String("out", "", "write the stats dump to this JSON file")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		ui.Fail("usage: listbench bench [-sizes 1,5] [-n 3] [-parallel 1] [-out file]")
		return 2
	}

	plan, err := parsePlan(*sizes, model.Size(cfg.Size), *n, *parallel)
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}

	logging.Init(os.Stderr, log.InfoLevel)
	sinks, closeSinks, err := openSinks(cfg)
	if err != nil {
		ui.Fail("history: " + err.Error())
		return 1
	}
	defer closeSinks()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := history.New(sinks...)
	start := time.Now()
	failures := runBench(ctx, newClient(cfg), h, plan, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r%s", ui.ProgressBar(done, total, 28))
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	})

	dump := h.Dump()
	lines := summaryLines("Bench", dump)
	lines = append(lines, fmt.Sprintf("failures: %d   wall: %s", failures, time.Since(start).Round(time.Millisecond)))
	ui.Panel(lines)

	if *out != "" {
		if err := jsonstore.Save(*out, dump); err != nil {
			ui.Fail("export: " + err.Error())
			return 1
		}
		ui.OK(fmt.Sprintf("wrote %d records to %s", len(dump), *out))
	}
	if len(dump) == 0 {
		return 1
	}
	return 0
}

func parsePlan(sizes string, def model.Size, n, parallel int) (benchPlan, error) {
	if n < 1 {
		return benchPlan{}, fmt.Errorf("-n must be at least 1, got %d", n)
	}
	if parallel < 1 {
		return benchPlan{}, fmt.Errorf("-parallel must be at least 1, got %d", parallel)
	}
	p := benchPlan{Repeat: n, Parallel: parallel}
	if strings.TrimSpace(sizes) == "" {
		if err := def.Validate(); err != nil {
			return benchPlan{}, err
		}
		p.Sizes = []model.Size{def}
		return p, nil
	}
	for _, part := range strings.Split(sizes, ",") {
		s, err := model.ParseSize(part)
		if err != nil {
			return benchPlan{}, err
		}
		p.Sizes = append(p.Sizes, s)
	}
	return p, nil
}

// runBench fetches every size Repeat times, recording successful runs in h.
// It returns the number of failed fetches.
func runBench(ctx context.Context, f screen.Fetcher, h *history.History, p benchPlan, progress func(done, total int)) int {
	total := len(p.Sizes) * p.Repeat
	var (
		mu       sync.Mutex
		done     int
		failures int
	)

	var g errgroup.Group
	g.SetLimit(p.Parallel)
	for _, size := range p.Sizes {
		size := size
		for i := 0; i < p.Repeat; i++ {
			g.Go(func() error {
				ok := benchOnce(ctx, f, h, size)
				mu.Lock()
				defer mu.Unlock()
				done++
				if !ok {
					failures++
				}
				if progress != nil {
					progress(done, total)
				}
				return nil
			})
		}
	}
	g.Wait()
	return failures
}

func benchOnce(ctx context.Context, f screen.Fetcher, h *history.History, size model.Size) bool {
	res := f.FetchMovies(ctx, size)
	if res.Err != nil {
		logging.Error("fetch failed", "size", size.String(), "error", res.Err)
		return false
	}
	tr := rows.Measure(res.Value)
	h.Record(model.FetchStats{
		SizeMB:        float64(size),
		NumberOfRows:  len(tr.Value),
		InflightTime:  res.InflightMillis(),
		JSONParseTime: res.JSONParseMillis(),
		TransformTime: tr.Millis(),
		CompletedAt:   time.Now(),
	})
	return true
}
