package cli

import (
	"github.com/Makepad-fr/listbench/internal/config"
	"github.com/Makepad-fr/listbench/internal/history"
	"github.com/Makepad-fr/listbench/internal/store/sqlitestore"
)

// openSinks opens the SQLite history when one is configured.
func openSinks(cfg *config.Config) ([]history.Sink, func(), error) {
	if cfg.HistoryDB == "" {
		return nil, func() {}, nil
	}
	db, err := sqlitestore.Open(cfg.HistoryDB)
	if err != nil {
		return nil, nil, err
	}
	return []history.Sink{db}, func() { db.Close() }, nil
}
