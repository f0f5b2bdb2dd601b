// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the console layer can all import types without
// depending on each other.
package types

// Book represents one record in the bookstore catalog.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (lowercase names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty;
//     "gt=0" means the value must be strictly positive.
type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"  validate:"required"`
	Author string  `json:"author" validate:"required"`
	Price  float64 `json:"price"  validate:"required,gt=0"`
}

// Student represents a student record managed by the console tool.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"required,gt=0"`
}
