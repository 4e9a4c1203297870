package main

import (
	"log"

	"github.com/tirtza-weinfeld/carta/internal/config"
	"github.com/tirtza-weinfeld/carta/internal/store"
)

// resolveDBPath picks the flag value, then the config, then the default.
func resolveDBPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := config.Load(); err == nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultDBPath()
}

// openDB opens the store or fatals.
func openDB(path string) *store.Store {
	st, err := store.Open(path)
	if err != nil {
		log.Fatalf("failed to open store at %s: %v", path, err)
	}
	return st
}
