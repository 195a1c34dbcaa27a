package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/bookshelf-api/book"
)

/*
* Represents the book in the web layer, so it has json tags.
* Pointer fields tell an absent key apart from an empty string.
 */
type createBookRequest struct {
	Title  *string `json:"title" required:"true" description:"Book title"`
	Author *string `json:"author" required:"true" description:"Book author"`
}

type updateBookRequest struct {
	Title  *string `json:"title,omitempty" description:"New title, left unchanged when absent"`
	Author *string `json:"author,omitempty" description:"New author, left unchanged when absent"`
}

/*
* Represents the book in the web layer
 */
type bookResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type bookMessageResponse struct {
	Message string       `json:"message"`
	Book    bookResponse `json:"book"`
}

func newBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
	}
}

func getBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]bookResponse, 0, len(all))
		for _, b := range all {
			result = append(result, newBookResponse(b))
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := bookID(r)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, msgInvalidID)
			return
		}
		b, err := bookService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, newBookResponse(b))
	})
}

func postBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br createBookRequest
		err := json.NewDecoder(r.Body).Decode(&br)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, msgInvalidBody)
			return
		}
		b, err := bookService.Create(r.Context(), book.Draft{
			Title:  br.Title,
			Author: br.Author,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, bookMessageResponse{
			Message: msgAdded,
			Book:    newBookResponse(b),
		})
	})
}

func deleteBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := bookID(r)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, msgInvalidID)
			return
		}
		err = bookService.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func putBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := bookID(r)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, msgInvalidID)
			return
		}
		var br updateBookRequest
		err = json.NewDecoder(r.Body).Decode(&br)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, msgInvalidBody)
			return
		}
		b, err := bookService.Update(r.Context(), id, book.Patch{
			Title:  br.Title,
			Author: br.Author,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, bookMessageResponse{
			Message: msgUpdated,
			Book:    newBookResponse(b),
		})
	})
}

func bookID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
