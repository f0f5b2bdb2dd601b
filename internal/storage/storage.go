// Package storage defines the Storage interface — the DAO contract that
// any database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The HTTP handlers and the console loop should not know or care which
// database they are talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main. Zero handler changes. This repository
//     ships two implementations (sqlite and postgres) behind it.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real database needed for handler unit tests.
package storage

import (
	"errors"

	"github.com/akshat-sharma/bookstore-api/internal/types"
)

// ErrNotFound is returned by every lookup, update, or delete that
// references an id no record carries. Callers check it with errors.Is
// and map it to their surface: HTTP 404 or a console error line.
var ErrNotFound = errors.New("record not found")

// Storage is the database contract covering both entities.
// Any concrete type implementing all of these methods satisfies the
// interface implicitly — no "implements" keyword in Go.
type Storage interface {
	// CreateBook inserts a new book and returns the auto-generated
	// primary-key id.
	CreateBook(title, author string, price float64) (int64, error)

	// GetBookByID fetches a single book by primary key.
	// Returns ErrNotFound if no such row exists.
	GetBookByID(id int64) (types.Book, error)

	// GetBooks returns every book, ordered by id.
	// Returns an empty slice (not nil) when the table is empty.
	GetBooks() ([]types.Book, error)

	// UpdateBookByID replaces all mutable fields of an existing book and
	// returns the stored record. Returns ErrNotFound for an unknown id.
	UpdateBookByID(id int64, book types.Book) (types.Book, error)

	// DeleteBookByID removes a book permanently.
	// Returns ErrNotFound for an unknown id.
	DeleteBookByID(id int64) error

	// CreateStudent inserts a new student record and returns the
	// auto-generated primary-key id.
	CreateStudent(name, email string, age int) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns ErrNotFound if no such row exists.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student, ordered by id.
	// Returns an empty slice (not nil) when the table is empty.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces the fields of an existing student and
	// returns the stored record. Returns ErrNotFound for an unknown id.
	UpdateStudentByID(id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student record permanently.
	// Returns ErrNotFound for an unknown id.
	DeleteStudentByID(id int64) error

	// Close releases the underlying connection pool.
	Close() error
}
