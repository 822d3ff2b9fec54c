package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is identified by ID only; two authors may share a full name.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuthorFilter selects authors by exact (first_name, last_name).
type AuthorFilter struct {
	FirstName string
	LastName  string
}

func (f AuthorFilter) Matches(a *Author) bool {
	return a.FirstName == f.FirstName && a.LastName == f.LastName
}
