package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"
)

// fixedStorage returns canned record lists; everything else is unused
// by the stats handler.
type fixedStorage struct {
	books    []types.Book
	students []types.Student
}

func (f fixedStorage) GetBooks() ([]types.Book, error)       { return f.books, nil }
func (f fixedStorage) GetStudents() ([]types.Student, error) { return f.students, nil }

func (f fixedStorage) CreateBook(string, string, float64) (int64, error) { return 0, nil }
func (f fixedStorage) GetBookByID(int64) (types.Book, error) {
	return types.Book{}, storage.ErrNotFound
}
func (f fixedStorage) UpdateBookByID(int64, types.Book) (types.Book, error) {
	return types.Book{}, storage.ErrNotFound
}
func (f fixedStorage) DeleteBookByID(int64) error { return storage.ErrNotFound }
func (f fixedStorage) CreateStudent(string, string, int) (int64, error) {
	return 0, nil
}
func (f fixedStorage) GetStudentByID(int64) (types.Student, error) {
	return types.Student{}, storage.ErrNotFound
}
func (f fixedStorage) UpdateStudentByID(int64, types.Student) (types.Student, error) {
	return types.Student{}, storage.ErrNotFound
}
func (f fixedStorage) DeleteStudentByID(int64) error { return storage.ErrNotFound }
func (f fixedStorage) Close() error                  { return nil }

func TestStats(t *testing.T) {
	store := fixedStorage{
		books:    []types.Book{{ID: 1}, {ID: 2}},
		students: []types.Student{{ID: 1}},
	}

	rec := httptest.NewRecorder()
	Stats(store)(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"books": 2, "students": 1}`, rec.Body.String())
}
