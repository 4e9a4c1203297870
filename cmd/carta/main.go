// Command carta is the terminal catalog browser.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
	"github.com/tirtza-weinfeld/carta/internal/config"
	"github.com/tirtza-weinfeld/carta/internal/list"
	"github.com/tirtza-weinfeld/carta/internal/logging"
	"github.com/tirtza-weinfeld/carta/internal/snapshot"
	"github.com/tirtza-weinfeld/carta/internal/store"
	"github.com/tirtza-weinfeld/carta/internal/ui"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "carta: logging init failed: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("config load failed", "error", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logging.Fatal("data directory unavailable", "path", dbPath, "error", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logging.Fatal("store open failed", "path", dbPath, "error", err)
	}
	defer st.Close()

	catalogPath := cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = filepath.Join(filepath.Dir(dbPath), "catalog.json")
	}
	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		// A malformed catalog is fatal. A missing one is survivable: the
		// store may already hold seeded entries from a previous run.
		if errors.Is(err, os.ErrNotExist) {
			logging.Warn("catalog file missing, using empty catalog", "path", catalogPath)
			cat = catalog.Empty()
		} else {
			logging.Fatal("catalog load failed", "path", catalogPath, "error", err)
		}
	}

	if cat.Len() > 0 {
		if count, err := st.EntryCount(); err == nil && count == 0 {
			n, err := st.SeedFromCatalog(cat.Items())
			if err != nil {
				logging.Error("catalog seed failed", "error", err)
			} else {
				logging.Info("seeded entries from catalog", "count", n)
			}
		}
	}

	ctrl := list.NewController(st, cfg.PageSize)
	snaps := snapshot.NewFileStore(snapshot.DefaultPath())
	if err := snaps.Clear(); err != nil {
		logging.Warn("stale snapshot cleanup failed", "error", err)
	}
	delay := time.Duration(cfg.SearchCommitDelayMs) * time.Millisecond

	app := ui.New(cat, ctrl, snaps, delay, cfg.LookaheadMargin)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Fatal("program exited with error", "error", err)
	}
}
