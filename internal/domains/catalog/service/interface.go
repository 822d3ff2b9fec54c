package service

import (
	"context"

	"bookshelf-graphql/internal/domains/catalog/model"
)

// ServiceInterface - Định nghĩa business logic methods của catalog
type ServiceInterface interface {
	// LinkBookToExistingAuthor creates a book for the single author named
	// (firstName, lastName). Errors: ErrInvalidInput, ErrAuthorNotFound,
	// ErrAuthorAmbiguous when more than one author has that name.
	LinkBookToExistingAuthor(ctx context.Context, title, firstName, lastName string) (*model.Book, *model.Author, error)

	// CreateBookWithNewAuthor always creates a new author, then the book.
	// Duplicate author names are allowed.
	CreateBookWithNewAuthor(ctx context.Context, title, firstName, lastName string) (*model.Book, *model.Author, error)

	ListBooks(ctx context.Context) ([]model.BookWithAuthor, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
}
