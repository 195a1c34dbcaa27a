package book

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Seeds are the books a collection starts with.
 * They come either from DefaultSeeds or from a YAML file:
 *
 *	books:
 *	  - id: 1
 *	    title: "Book 1"
 *	    author: "Author 1"
 */

// SeedFile represents the structure of a seed YAML file
type SeedFile struct {
	Books []SeedRecord `yaml:"books"`
}

// SeedRecord represents a single book in the YAML file
type SeedRecord struct {
	ID     int64  `yaml:"id"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// DefaultSeeds returns the two sample books every collection starts with
func DefaultSeeds() []Book {
	return []Book{
		{ID: 1, Title: "Book 1", Author: "Author 1"},
		{ID: 2, Title: "Book 2", Author: "Author 2"},
	}
}

// LoadSeeds reads and validates a seed file
func LoadSeeds(filePath string) ([]Book, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeeds(data)
}

// ParseSeeds decodes seed YAML and validates the records
func ParseSeeds(data []byte) ([]Book, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	books := make([]Book, 0, len(file.Books))
	for _, r := range file.Books {
		books = append(books, Book{
			ID:     r.ID,
			Title:  r.Title,
			Author: r.Author,
		})
	}
	if err := ValidateSeeds(books); err != nil {
		return nil, fmt.Errorf("validating seeds: %w", err)
	}
	return books, nil
}

// ValidateSeeds checks ids are positive and unique and that no record has an empty title or author
func ValidateSeeds(books []Book) error {
	seen := make(map[int64]bool, len(books))
	for i, b := range books {
		if b.ID <= 0 {
			return fmt.Errorf("book #%d: id must be positive (got %d)", i+1, b.ID)
		}
		if seen[b.ID] {
			return fmt.Errorf("book #%d: duplicate id %d", i+1, b.ID)
		}
		seen[b.ID] = true
		if b.Title == "" {
			return fmt.Errorf("book %d: title cannot be empty", b.ID)
		}
		if b.Author == "" {
			return fmt.Errorf("book %d: author cannot be empty", b.ID)
		}
	}
	return nil
}

// HighestID returns the largest id among books, or zero when there are none
func HighestID(books []Book) int64 {
	var highest int64
	for _, b := range books {
		if b.ID > highest {
			highest = b.ID
		}
	}
	return highest
}
