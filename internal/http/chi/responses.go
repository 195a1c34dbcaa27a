package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
)

const (
	msgAdded         = "Book added successfully"
	msgUpdated       = "Book updated successfully"
	msgMissingFields = "Missing fields"
	msgNotFound      = "Book not found"
	msgInvalidID     = "Invalid book id"
	msgInvalidBody   = "Invalid request body"
	msgInternal      = "Internal server error"
)

type messageResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps a book.UseCase error to its status code and message
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, book.ErrMissingFields):
		writeMessage(w, r, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, book.ErrNotFound):
		writeMessage(w, r, http.StatusNotFound, msgNotFound)
	default:
		logger := httplog.LogEntry(r.Context())
		logger.Error().Err(err).Msg("handling book request")
		// the id lets a client quote the failing request
		writeJSON(w, r, http.StatusInternalServerError, messageResponse{
			Message:   msgInternal,
			RequestID: RequestIDFromContext(r.Context()),
		})
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, messageResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := httplog.LogEntry(r.Context())
		logger.Error().Err(err).Msg("encoding response")
	}
}
