package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tirtza-weinfeld/carta/internal/filter"
)

// runPage walks paginated entries from the store, printing the cursor at each
// page boundary. Useful for checking pagination against a real database.
func runPage() {
	fs := flag.NewFlagSet("page", flag.ExitOnError)
	db := fs.String("db", "", "Path to the sqlite database (default: config or ~/.carta/carta.db)")
	pageSize := fs.Int("size", 20, "Entries per page")
	pages := fs.Int("pages", 0, "Stop after this many pages (0 = all)")
	search := fs.String("q", "", "Search text")
	category := fs.String("category", filter.All, "Category filter")
	tag := fs.String("tag", filter.All, "Tag filter")
	cursor := fs.String("cursor", "", "Resume from this cursor")
	fs.Parse(os.Args[1:])

	st := openDB(resolveDBPath(*db))
	defer st.Close()

	state := filter.Normalize(filter.State{
		Search:   *search,
		Category: *category,
		Tag:      *tag,
	})

	ctx := context.Background()
	cur := *cursor
	total := 0

	for n := 1; ; n++ {
		page, err := st.FetchPage(ctx, state, cur, *pageSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "page: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("-- page %d (%d entries) --\n", n, len(page.Entries))
		for _, e := range page.Entries {
			fmt.Printf("  %-24s %s\n", e.ID, e.Lemma)
		}
		total += len(page.Entries)

		if !page.HasNext {
			break
		}
		fmt.Printf("  cursor: %s\n", page.NextCursor)
		if *pages > 0 && n >= *pages {
			break
		}
		cur = page.NextCursor
	}

	fmt.Printf("\nTotal: %d entries\n", total)
}
