// Package console implements the interactive menu of the student
// management tool. It reads from an injected io.Reader and writes to an
// injected io.Writer rather than touching os.Stdin/os.Stdout directly,
// so the whole menu flow is testable with strings.Reader and a buffer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/types"
)

const menu = `
===== Student Management =====
1. Add student
2. View students
3. Update student
4. Delete student
5. Exit
Choose an option: `

// Console drives the menu loop against any storage.Storage backend.
type Console struct {
	store    storage.Storage
	in       *bufio.Scanner
	out      io.Writer
	validate *validator.Validate
}

// New wires a Console to its storage and I/O streams.
func New(store storage.Storage, in io.Reader, out io.Writer) *Console {
	return &Console{
		store:    store,
		in:       bufio.NewScanner(in),
		out:      out,
		validate: validator.New(),
	}
}

// Run loops over the menu until the user picks Exit or input ends.
// Database errors are printed as error lines and the loop continues —
// one failed operation never kills the session.
func (c *Console) Run() {
	for {
		fmt.Fprint(c.out, menu)

		choice, ok := c.readLine()
		if !ok {
			// Input stream closed (Ctrl+D): behave like Exit.
			fmt.Fprintln(c.out, "Bye!")
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.addStudent()
		case "2":
			c.viewStudents()
		case "3":
			c.updateStudent()
		case "4":
			c.deleteStudent()
		case "5":
			fmt.Fprintln(c.out, "Bye!")
			return
		default:
			fmt.Fprintln(c.out, "Invalid option, please choose 1-5.")
		}
	}
}

// readLine reads one line of input; ok is false when the stream ends.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// prompt prints a label and reads the answer.
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	line, ok := c.readLine()
	return strings.TrimSpace(line), ok
}

// promptInt keeps asking until the user types a valid integer.
func (c *Console) promptInt(label string) (int64, bool) {
	for {
		line, ok := c.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(c.out, "Please enter a valid number.")
			continue
		}
		return n, true
	}
}

// readStudent prompts for all student fields and validates them.
// ok is false when input ended or the record was rejected; either way
// the caller just returns to the menu.
func (c *Console) readStudent() (types.Student, bool) {
	name, ok := c.prompt("Name: ")
	if !ok {
		return types.Student{}, false
	}
	email, ok := c.prompt("Email: ")
	if !ok {
		return types.Student{}, false
	}
	age, ok := c.promptInt("Age: ")
	if !ok {
		return types.Student{}, false
	}

	student := types.Student{Name: name, Email: email, Age: int(age)}

	if err := c.validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, e := range validateErrs {
				fmt.Fprintf(c.out, "Error: field %s is invalid\n", e.Field())
			}
		} else {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
		return types.Student{}, false
	}

	return student, true
}

func (c *Console) addStudent() {
	student, ok := c.readStudent()
	if !ok {
		return
	}

	id, err := c.store.CreateStudent(student.Name, student.Email, student.Age)
	if err != nil {
		fmt.Fprintf(c.out, "Error: could not add student: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Student added with id %d.\n", id)
}

func (c *Console) viewStudents() {
	students, err := c.store.GetStudents()
	if err != nil {
		fmt.Fprintf(c.out, "Error: could not list students: %v\n", err)
		return
	}

	if len(students) == 0 {
		fmt.Fprintln(c.out, "No students found.")
		return
	}

	fmt.Fprintf(c.out, "%-5s %-20s %-30s %s\n", "ID", "NAME", "EMAIL", "AGE")
	for _, s := range students {
		fmt.Fprintf(c.out, "%-5d %-20s %-30s %d\n", s.ID, s.Name, s.Email, s.Age)
	}
}

func (c *Console) updateStudent() {
	id, ok := c.promptInt("Student id to update: ")
	if !ok {
		return
	}

	student, ok := c.readStudent()
	if !ok {
		return
	}

	if _, err := c.store.UpdateStudentByID(id, student); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(c.out, "Error: no student with id %d.\n", id)
			return
		}
		fmt.Fprintf(c.out, "Error: could not update student: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Student %d updated.\n", id)
}

func (c *Console) deleteStudent() {
	id, ok := c.promptInt("Student id to delete: ")
	if !ok {
		return
	}

	if err := c.store.DeleteStudentByID(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(c.out, "Error: no student with id %d.\n", id)
			return
		}
		fmt.Fprintf(c.out, "Error: could not delete student: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Student %d deleted.\n", id)
}
