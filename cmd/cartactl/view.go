package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
	"github.com/tirtza-weinfeld/carta/internal/filter"
)

// runView applies a filter state to a catalog file and prints the resulting
// order, the same computation the browse view runs.
func runView() {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "Path to the catalog JSON file (required)")
	search := fs.String("q", "", "Search text")
	category := fs.String("category", filter.All, "Category filter (all, easy, medium, hard)")
	tag := fs.String("tag", filter.All, "Tag filter")
	sortKey := fs.String("sort", string(filter.SortNumber), "Sort key (number, category, alpha, created, updated)")
	dir := fs.String("dir", string(filter.Asc), "Sort direction (asc, desc)")
	fs.Parse(os.Args[1:])

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "view: -catalog is required")
		fs.Usage()
		os.Exit(1)
	}

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	state := filter.Normalize(filter.State{
		Search:   *search,
		Category: *category,
		Tag:      *tag,
		Sort:     filter.SortKey(*sortKey),
		Dir:      filter.Direction(*dir),
	})

	view := filter.ComputeView(cat.Items(), state)

	fmt.Printf("State:       %s\n", state.Encode())
	fmt.Printf("Fingerprint: %s\n", state.Fingerprint())
	fmt.Printf("Visible:     %d / %d\n\n", view.Stats.Visible, view.Stats.Total)

	for i, id := range view.OrderedIDs {
		item, ok := cat.ByID(id)
		if !ok {
			continue
		}
		fmt.Printf("%3d  %-8s %-24s %s\n", i+1, item.Category, id, item.Title)
	}
}
