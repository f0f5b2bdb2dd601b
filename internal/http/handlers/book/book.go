// Package book contains all HTTP handlers for the Book resource.
//
// HANDLER PATTERN — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────
// The router expects handler functions with the signature
//
//	func(http.ResponseWriter, *http.Request)
//
// which has no room for extra parameters like a database. To inject
// dependencies we use a factory function that accepts them and returns
// a function with the exact signature the router needs. The inner
// function "closes over" the outer parameters:
//
//	r.Post("/books", book.New(storage))
//	//               ^^^^^^^^^^^^^^^^
//	//               New(storage) runs ONCE at startup; the handler it
//	//               returns runs on EVERY request.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"
	"github.com/akshat-sharma/bookstore-api/internal/utils/response"
)

// FeaturedProvider is the slice of the pricing client the featured
// handler needs. Declared here (consumer side) so the handler can be
// tested with a stub.
type FeaturedProvider interface {
	// FeaturedBook returns the current featured book and whether the
	// value is the local fallback rather than an upstream answer.
	FeaturedBook(ctx context.Context) (types.Book, bool)
}

// parseID converts the {id} path segment to int64.
func parseID(r *http.Request) (int64, error) {
	id := chi.URLParam(r, "id")
	intID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, errors.New("invalid id: must be an integer")
	}
	return intID, nil
}

// writeStorageError maps a storage failure onto the right HTTP status:
// 404 for the not-found sentinel, 500 for everything else.
func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// New handles POST /books.
// Creates a book from the JSON request body.
//
// Request body:
//
//	{ "title": "Harry Potter", "author": "JK Rowling", "price": 20.5 }
//
// Success response (201 Created) — the stored record with its id:
//
//	{ "id": 1, "title": "Harry Potter", "author": "JK Rowling", "price": 20.5 }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	500 Internal    — database error
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a book")

		// ── Step 1: Decode the JSON body ──────────────────────────────
		var book types.Book

		err := json.NewDecoder(r.Body).Decode(&book)
		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// ── Step 2: Validate against the validate:"..." tags ──────────
		if err := validator.New().Struct(book); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// ── Step 3: Persist through the Storage interface ─────────────
		lastID, err := store.CreateBook(book.Title, book.Author, book.Price)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("book created", slog.Int64("id", lastID))

		// ── Step 4: Echo the stored record back with its new id ───────
		book.ID = lastID
		response.WriteJSON(w, http.StatusCreated, book)
	}
}

// GetByID handles GET /books/{id}.
//
// Success response (200 OK):
//
//	{ "id": 1, "title": "Harry Potter", "author": "JK Rowling", "price": 20.5 }
//
// Error responses:
//
//	400 Bad Request — id is not a valid integer
//	404 Not Found   — no book was ever assigned that id
//	500 Internal    — database error
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intID, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("getting a book", slog.Int64("id", intID))

		book, err := store.GetBookByID(intID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				slog.Error("error getting book",
					slog.Int64("id", intID),
					slog.String("error", err.Error()))
			}
			writeStorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, book)
	}
}

// GetList handles GET /books.
// Returns a JSON array of every stored book — [] (not null) when the
// catalog is empty.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all books")

		books, err := store.GetBooks()
		if err != nil {
			slog.Error("error getting books", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, books)
	}
}

// Update handles PUT /books/{id}.
// Replaces ALL fields of an existing book; the body carries the same
// shape and validation rules as creation.
//
// Error responses:
//
//	400 Bad Request — invalid id, empty body, or validation failure
//	404 Not Found   — unknown id
//	500 Internal    — database error
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intID, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("updating a book", slog.Int64("id", intID))

		var book types.Book
		err = json.NewDecoder(r.Body).Decode(&book)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(book); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := store.UpdateBookByID(intID, book)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				slog.Error("error updating book",
					slog.Int64("id", intID),
					slog.String("error", err.Error()))
			}
			writeStorageError(w, err)
			return
		}

		slog.Info("book updated", slog.Int64("id", intID))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /books/{id}.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intID, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("deleting a book", slog.Int64("id", intID))

		if err := store.DeleteBookByID(intID); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				slog.Error("error deleting book",
					slog.Int64("id", intID),
					slog.String("error", err.Error()))
			}
			writeStorageError(w, err)
			return
		}

		slog.Info("book deleted", slog.Int64("id", intID))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// featuredResponse is the body for GET /books/featured. Fallback tells
// the client whether it got the upstream's answer or the local
// placeholder.
type featuredResponse struct {
	types.Book
	Fallback bool `json:"fallback"`
}

// Featured handles GET /books/featured.
// Asks the upstream catalog (through the circuit breaker) for the
// current featured book. Whatever happens upstream, the client always
// gets 200 and a usable record — the breaker's fallback guarantees it.
func Featured(provider FeaturedProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, fallback := provider.FeaturedBook(r.Context())
		if fallback {
			slog.Warn("serving fallback featured book")
		}

		response.WriteJSON(w, http.StatusOK, featuredResponse{
			Book:     book,
			Fallback: fallback,
		})
	}
}
