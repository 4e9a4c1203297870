package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
)

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "Path to the catalog JSON file (required)")
	db := fs.String("db", "", "Path to the sqlite database (default: config or ~/.carta/carta.db)")
	fs.Parse(os.Args[1:])

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "seed: -catalog is required")
		fs.Usage()
		os.Exit(1)
	}

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	st := openDB(resolveDBPath(*db))
	defer st.Close()

	n, err := st.SeedFromCatalog(cat.Items())
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	fmt.Printf("Catalog items:  %d\n", cat.Len())
	fmt.Printf("New entries:    %d\n", n)
	fmt.Printf("Skipped:        %d (already present)\n", cat.Len()-n)
}
