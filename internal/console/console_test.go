package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"
)

// fakeStorage is an in-memory storage.Storage; only the student half is
// exercised by the console.
type fakeStorage struct {
	students map[int64]types.Student
	nextID   int64
	failAll  bool // simulate a broken database
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{students: make(map[int64]types.Student), nextID: 1}
}

type dbError struct{}

func (dbError) Error() string { return "database is on fire" }

func (f *fakeStorage) CreateStudent(name, email string, age int) (int64, error) {
	if f.failAll {
		return 0, dbError{}
	}
	id := f.nextID
	f.nextID++
	f.students[id] = types.Student{ID: id, Name: name, Email: email, Age: age}
	return id, nil
}

func (f *fakeStorage) GetStudentByID(id int64) (types.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}
	return s, nil
}

func (f *fakeStorage) GetStudents() ([]types.Student, error) {
	if f.failAll {
		return nil, dbError{}
	}
	students := make([]types.Student, 0, len(f.students))
	for id := int64(1); id < f.nextID; id++ {
		if s, ok := f.students[id]; ok {
			students = append(students, s)
		}
	}
	return students, nil
}

func (f *fakeStorage) UpdateStudentByID(id int64, s types.Student) (types.Student, error) {
	if _, ok := f.students[id]; !ok {
		return types.Student{}, storage.ErrNotFound
	}
	s.ID = id
	f.students[id] = s
	return s, nil
}

func (f *fakeStorage) DeleteStudentByID(id int64) error {
	if _, ok := f.students[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStorage) CreateBook(string, string, float64) (int64, error) { return 0, nil }
func (f *fakeStorage) GetBookByID(int64) (types.Book, error) {
	return types.Book{}, storage.ErrNotFound
}
func (f *fakeStorage) GetBooks() ([]types.Book, error) { return []types.Book{}, nil }
func (f *fakeStorage) UpdateBookByID(int64, types.Book) (types.Book, error) {
	return types.Book{}, storage.ErrNotFound
}
func (f *fakeStorage) DeleteBookByID(int64) error { return storage.ErrNotFound }
func (f *fakeStorage) Close() error               { return nil }

// run feeds a scripted session to the menu and returns everything it
// printed. Each element of input is one line the "user" types.
func run(t *testing.T, store storage.Storage, input ...string) string {
	t.Helper()

	var out bytes.Buffer
	New(store, strings.NewReader(strings.Join(input, "\n")+"\n"), &out).Run()
	return out.String()
}

func TestAddThenView(t *testing.T) {
	out := run(t, newFakeStorage(),
		"1", "John Doe", "john@test.com", "21", // add
		"2", // view
		"5", // exit
	)

	require.Contains(t, out, "Student added with id 1.")
	require.Contains(t, out, "John Doe")
	require.Contains(t, out, "john@test.com")
	require.Contains(t, out, "Bye!")
}

func TestDeleteThenView(t *testing.T) {
	store := newFakeStorage()
	out := run(t, store,
		"1", "John Doe", "john@test.com", "21",
		"4", "1", // delete id 1
		"2", // view
		"5",
	)

	require.Contains(t, out, "Student 1 deleted.")
	require.Contains(t, out, "No students found.")
}

func TestUpdate(t *testing.T) {
	store := newFakeStorage()
	out := run(t, store,
		"1", "John Doe", "john@test.com", "21",
		"3", "1", "Jane Doe", "jane@test.com", "22",
		"2",
		"5",
	)

	require.Contains(t, out, "Student 1 updated.")
	require.Contains(t, out, "Jane Doe")
	require.NotContains(t, out, "John Doe\n")
}

func TestUpdateUnknownID(t *testing.T) {
	out := run(t, newFakeStorage(),
		"3", "42", "Jane Doe", "jane@test.com", "22",
		"5",
	)

	require.Contains(t, out, "Error: no student with id 42.")
}

func TestDeleteUnknownID(t *testing.T) {
	out := run(t, newFakeStorage(),
		"4", "42",
		"5",
	)

	require.Contains(t, out, "Error: no student with id 42.")
}

func TestValidationRejectsBadEmail(t *testing.T) {
	store := newFakeStorage()
	out := run(t, store,
		"1", "John Doe", "not-an-email", "21",
		"5",
	)

	require.Contains(t, out, "Error: field Email is invalid")
	require.Empty(t, store.students)
}

func TestInvalidMenuOption(t *testing.T) {
	out := run(t, newFakeStorage(),
		"9",
		"5",
	)

	require.Contains(t, out, "Invalid option, please choose 1-5.")
}

func TestDatabaseErrorDoesNotEndSession(t *testing.T) {
	store := newFakeStorage()
	store.failAll = true

	out := run(t, store,
		"2", // view fails
		"5", // menu still alive, exit cleanly
	)

	require.Contains(t, out, "Error: could not list students: database is on fire")
	require.Contains(t, out, "Bye!")
}

func TestEOFBehavesLikeExit(t *testing.T) {
	var out bytes.Buffer
	New(newFakeStorage(), strings.NewReader(""), &out).Run()

	require.Contains(t, out.String(), "Bye!")
}

func TestNonNumericAgeIsReprompted(t *testing.T) {
	out := run(t, newFakeStorage(),
		"1", "John Doe", "john@test.com", "abc", "21",
		"5",
	)

	require.Contains(t, out, "Please enter a valid number.")
	require.Contains(t, out, "Student added with id 1.")
}
