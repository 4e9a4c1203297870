// Command cartactl is the unified CLI for carta maintenance and inspection.
//
// Usage:
//
//	cartactl                Show help
//	cartactl seed           Seed the entry store from a catalog file
//	cartactl stats          Store statistics
//	cartactl view <query>   Preview filter/sort results against a catalog
//	cartactl page           Walk paginated entries from the store
package main

import (
	"fmt"
	"os"
)

const usage = `cartactl - carta maintenance CLI

Usage:
  cartactl <command> [flags]

Commands:
  seed        Seed the entry store from a catalog JSON file
  stats       Entry counts and category distribution
  view        Preview filter/sort results against a catalog file
  page        Walk paginated entries from the store

Run 'cartactl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "seed":
		runSeed()
	case "stats":
		runStats()
	case "view":
		runView()
	case "page":
		runPage()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "cartactl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
