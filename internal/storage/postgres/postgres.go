// Package postgres provides the PostgreSQL-backed implementation of the
// storage.Storage interface. It is the external-database profile
// (config/prod.yaml) and mirrors the sqlite implementation, with the
// usual driver differences:
//
//   - placeholders are $1, $2, ... instead of ?
//   - lib/pq does not support LastInsertId, so inserts use RETURNING id
//   - column types are SERIAL / NUMERIC instead of SQLite's affinities
package postgres

import (
	"database/sql"
	"fmt"

	"github.com/akshat-sharma/bookstore-api/internal/config"
	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"
)

// Postgres is the concrete implementation of storage.Storage backed by
// an external PostgreSQL server.
type Postgres struct {
	Db *sql.DB
}

// New connects to the server named by cfg.Database.DSN, verifies the
// connection with a ping, and creates the schema if needed.
func New(cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	// sql.Open only validates the DSN; Ping forces a real connection so
	// a wrong address or password fails at startup, not on first request.
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id     SERIAL PRIMARY KEY,
			title  TEXT    NOT NULL,
			author TEXT    NOT NULL,
			price  NUMERIC NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create books table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id    SERIAL PRIMARY KEY,
			name  TEXT    NOT NULL,
			email TEXT    NOT NULL,
			age   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create students table: %w", err)
	}

	return &Postgres{Db: db}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.Db.Close()
}

// CreateBook inserts a book and returns its generated id via RETURNING.
func (p *Postgres) CreateBook(title, author string, price float64) (int64, error) {
	var id int64
	err := p.Db.QueryRow(
		"INSERT INTO books (title, author, price) VALUES ($1, $2, $3) RETURNING id",
		title, author, price,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateBook: insert: %w", err)
	}
	return id, nil
}

// GetBookByID fetches one book by primary key.
func (p *Postgres) GetBookByID(id int64) (types.Book, error) {
	var book types.Book
	err := p.Db.QueryRow(
		"SELECT id, title, author, price FROM books WHERE id = $1",
		id,
	).Scan(&book.ID, &book.Title, &book.Author, &book.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Book{}, storage.ErrNotFound
		}
		return types.Book{}, fmt.Errorf("GetBookByID: scan: %w", err)
	}
	return book, nil
}

// GetBooks returns every book, ordered by id.
func (p *Postgres) GetBooks() ([]types.Book, error) {
	rows, err := p.Db.Query("SELECT id, title, author, price FROM books ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetBooks: query: %w", err)
	}
	defer rows.Close()

	books := make([]types.Book, 0)
	for rows.Next() {
		var book types.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Price); err != nil {
			return nil, fmt.Errorf("GetBooks: scan row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetBooks: rows iteration: %w", err)
	}
	return books, nil
}

// UpdateBookByID replaces all fields of a book and returns the stored record.
func (p *Postgres) UpdateBookByID(id int64, book types.Book) (types.Book, error) {
	result, err := p.Db.Exec(
		"UPDATE books SET title = $1, author = $2, price = $3 WHERE id = $4",
		book.Title, book.Author, book.Price, id,
	)
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

	return p.GetBookByID(id)
}

// DeleteBookByID removes a book by primary key.
func (p *Postgres) DeleteBookByID(id int64) error {
	result, err := p.Db.Exec("DELETE FROM books WHERE id = $1", id)
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

// CreateStudent inserts a student and returns its generated id.
func (p *Postgres) CreateStudent(name, email string, age int) (int64, error) {
	var id int64
	err := p.Db.QueryRow(
		"INSERT INTO students (name, email, age) VALUES ($1, $2, $3) RETURNING id",
		name, email, age,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: insert: %w", err)
	}
	return id, nil
}

// GetStudentByID fetches one student by primary key.
func (p *Postgres) GetStudentByID(id int64) (types.Student, error) {
	var student types.Student
	err := p.Db.QueryRow(
		"SELECT id, name, email, age FROM students WHERE id = $1",
		id,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Age)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return student, nil
}

// GetStudents returns every student, ordered by id.
func (p *Postgres) GetStudents() ([]types.Student, error) {
	rows, err := p.Db.Query("SELECT id, name, email, age FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.Age); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}
	return students, nil
}

// UpdateStudentByID replaces all fields of a student and returns the
// stored record.
func (p *Postgres) UpdateStudentByID(id int64, student types.Student) (types.Student, error) {
	result, err := p.Db.Exec(
		"UPDATE students SET name = $1, email = $2, age = $3 WHERE id = $4",
		student.Name, student.Email, student.Age, id,
	)
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

	return p.GetStudentByID(id)
}

// DeleteStudentByID removes a student by primary key.
func (p *Postgres) DeleteStudentByID(id int64) error {
	result, err := p.Db.Exec("DELETE FROM students WHERE id = $1", id)
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
