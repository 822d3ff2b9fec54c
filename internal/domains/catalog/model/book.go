package model

import (
	"time"

	"github.com/google/uuid"
)

// Book always references exactly one Author. Deleting the author deletes its books.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookWithAuthor is a book joined with the author it references.
type BookWithAuthor struct {
	Book   Book   `json:"book"`
	Author Author `json:"author"`
}

// Column limits mirror VARCHAR(200) in the schema.
const (
	MaxTitleLength = 200
	MaxNameLength  = 200
)

// NewBookInput là input chung của hai thao tác tạo sách.
type NewBookInput struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
