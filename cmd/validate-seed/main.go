package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/bookshelf-api/book"
)

/* validate-seed - Standalone CLI tool to validate a seed file
 * Usage: go run cmd/validate-seed/main.go [seed.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	seedFile := "seed.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	fmt.Printf("Validating seed file: %s\n\n", seedFile)

	books, err := book.LoadSeeds(seedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d book(s):\n", len(books))
	for i, b := range books {
		fmt.Printf("\n%d. Book %d\n", i+1, b.ID)
		fmt.Printf("   Title:  %s\n", b.Title)
		fmt.Printf("   Author: %s\n", b.Author)
	}
	fmt.Printf("\nNext id (monotonic): %d\n", book.Monotonic.NextID(len(books), book.HighestID(books)))
}
