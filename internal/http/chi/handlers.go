package chi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/rs/zerolog"
)

const serviceName = "bookshelf-api"

type options struct {
	logger  *zerolog.Logger
	metrics http.Handler
}

// Option configures Handlers
type Option func(*options)

// WithLogger sets the logger used for request logging
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithMetrics mounts h at GET /metrics
func WithMetrics(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

func Handlers(ctx context.Context, bookService book.UseCase, opts ...Option) (*chi.Mux, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	// Logger
	logger := httplog.NewLogger(serviceName, httplog.Options{
		JSON: true,
	})
	if o.logger != nil {
		logger = *o.logger
	}
	spec, err := NewOpenAPISpec()
	if err != nil {
		return nil, fmt.Errorf("building openapi document: %w", err)
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(requestID)
	r.Method(http.MethodGet, "/books", getBooks(bookService))
	r.Method(http.MethodGet, "/books/{id}", getBook(bookService))
	r.Method(http.MethodPost, "/books", postBooks(bookService))
	r.Method(http.MethodPut, "/books/{id}", putBook(bookService))
	r.Method(http.MethodDelete, "/books/{id}", deleteBook(bookService))

	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, spec)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}

	return r, nil
}
