package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	db := fs.String("db", "", "Path to the sqlite database (default: config or ~/.carta/carta.db)")
	fs.Parse(os.Args[1:])

	path := resolveDBPath(*db)
	st := openDB(path)
	defer st.Close()

	total, err := st.EntryCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database:       %s\n", path)
	fmt.Printf("Total entries:  %d\n", total)

	counts, err := st.CategoryCounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		os.Exit(1)
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Printf("\nCategories (%d):\n", len(categories))
	for _, c := range categories {
		fmt.Printf("  %-12s %d\n", c, counts[c])
	}
}
