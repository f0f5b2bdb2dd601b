// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk: no network, no
// separate server process, no installation beyond the driver. It is the
// embedded profile of this application (config/local.yaml) and the
// default for development.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this when the package is loaded —
// we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/akshat-sharma/bookstore-api/internal/config"
	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB — a connection pool managed by database/sql that is
// safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Database.StoragePath, creates the
// books and students tables if they do not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it only validates
	// the driver name and DSN. The first actual connection happens on
	// the first query.
	db, err := sql.Open("sqlite3", cfg.Database.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			title  TEXT    NOT NULL,
			author TEXT    NOT NULL,
			price  REAL    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create books table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT    NOT NULL,
			email TEXT    NOT NULL,
			age   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create students table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Books
// ─────────────────────────────────────────────────────────────────────────────

// CreateBook inserts a new row into the books table.
//
// Prepared statements use placeholders (?); the driver sends query and
// values separately, so the database treats the values as pure data,
// never as SQL syntax. User input never reaches the query text.
func (s *SQLite) CreateBook(title, author string, price float64) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO books (title, author, price) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateBook: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even on an early error return.
	defer stmt.Close()

	result, err := stmt.Exec(title, author, price)
	if err != nil {
		return 0, fmt.Errorf("CreateBook: exec: %w", err)
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateBook: last insert id: %w", err)
	}

	return lastID, nil
}

// GetBookByID fetches exactly one book row matched by primary key.
//
// QueryRow returns a single-row result; the "no rows" condition only
// surfaces when Scan is called, as sql.ErrNoRows. We translate it to
// the storage.ErrNotFound sentinel so callers never depend on
// database/sql internals.
func (s *SQLite) GetBookByID(id int64) (types.Book, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, title, author, price FROM books WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Book{}, fmt.Errorf("GetBookByID: prepare: %w", err)
	}
	defer stmt.Close()

	var book types.Book

	err = stmt.QueryRow(id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Price,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Book{}, storage.ErrNotFound
		}
		return types.Book{}, fmt.Errorf("GetBookByID: scan: %w", err)
	}

	return book, nil
}

// GetBooks returns all book rows as a slice, ordered by id.
func (s *SQLite) GetBooks() ([]types.Book, error) {
	// Explicitly list columns — SELECT * would silently break Scan's
	// ordering if a column is added later.
	stmt, err := s.Db.Prepare(
		"SELECT id, title, author, price FROM books ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetBooks: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetBooks: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Pre-allocate an empty (non-nil) slice so the API encodes [] rather
	// than null when the table is empty.
	books := make([]types.Book, 0)

	for rows.Next() {
		var book types.Book

		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Price,
		); err != nil {
			return nil, fmt.Errorf("GetBooks: scan row: %w", err)
		}

		books = append(books, book)
	}

	// rows.Err() captures any error that occurred during iteration,
	// separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetBooks: rows iteration: %w", err)
	}

	return books, nil
}

// UpdateBookByID replaces a book's data with the provided values and
// returns the stored record. RowsAffected distinguishes "updated" from
// "no such id" — an UPDATE matching zero rows is not an SQL error.
func (s *SQLite) UpdateBookByID(id int64, book types.Book) (types.Book, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE books SET title = ?, author = ?, price = ? WHERE id = ?",
	)
	if err != nil {
		return types.Book{}, fmt.Errorf("UpdateBookByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(book.Title, book.Author, book.Price, id)
	if err != nil {
		return types.Book{}, fmt.Errorf("UpdateBookByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Book{}, fmt.Errorf("UpdateBookByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Book{}, storage.ErrNotFound
	}

	// Re-fetch so the caller gets exactly what the database stores.
	return s.GetBookByID(id)
}

// DeleteBookByID removes a book row by primary key.
func (s *SQLite) DeleteBookByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM books WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteBookByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteBookByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteBookByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudent inserts a new row into the students table.
func (s *SQLite) CreateStudent(name, email string, age int) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, email, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, email, age)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, age FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student

	err = stmt.QueryRow(id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows as a slice, ordered by id.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, age FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces a student's data with the provided values
// and returns the stored record.
func (s *SQLite) UpdateStudentByID(id int64, student types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, email = ?, age = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, student.Email, student.Age, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrNotFound
	}

	return s.GetStudentByID(id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}
