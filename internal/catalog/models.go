package catalog

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("product not found")

// ValidationError dipakai untuk input pagination/filter/product yang tidak valid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Status      bool      `json:"status"`
	Thumbnails  []string  `json:"thumbnails"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Status      bool     `json:"status"`
	Thumbnails  []string `json:"thumbnails"`
}

func (in ProductInput) Validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must be >= 0"}
	}
	if in.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must be >= 0"}
	}
	return nil
}

// ProductUpdate: partial update, field nil berarti tidak diubah.
type ProductUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Category    *string   `json:"category"`
	Status      *bool     `json:"status"`
	Thumbnails  *[]string `json:"thumbnails"`
}

func (u ProductUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if u.Price != nil && *u.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must be >= 0"}
	}
	if u.Stock != nil && *u.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must be >= 0"}
	}
	return nil
}
