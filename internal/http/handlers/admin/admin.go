// Package admin holds the handlers mounted behind the basic-auth gate.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/utils/response"
)

// statsResponse reports how many records each table holds.
type statsResponse struct {
	Books    int `json:"books"`
	Students int `json:"students"`
}

// Stats handles GET /admin/stats. Counts are taken by listing both
// tables — fine at this scale, and it keeps the Storage contract small.
func Stats(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting admin stats")

		books, err := store.GetBooks()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		students, err := store.GetStudents()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, statsResponse{
			Books:    len(books),
			Students: len(students),
		})
	}
}
