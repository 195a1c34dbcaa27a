package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

/* Book represents a book for the business rules, so it carries no wire tags.
 * Data types use value semantics.
 */
type Book struct {
	ID     int64
	Title  string
	Author string
}

var (
	ErrNotFound      = errors.New("book not found")
	ErrMissingFields = errors.New("missing fields")
)

var validate = validator.New()

/* Draft is the input of Create.
 * A nil field means the caller did not send that key at all; an empty string is a value.
 */
type Draft struct {
	Title  *string `validate:"required"`
	Author *string `validate:"required"`
}

// Validate checks that every required key is present.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating draft: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(fields, ", "))
}

// Patch is the input of Update. Only the fields that are set are applied.
type Patch struct {
	Title  *string
	Author *string
}

// Apply merges p onto b. There is no validation: empty strings overwrite as-is.
func (p Patch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	return b
}
