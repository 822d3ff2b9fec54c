package repository

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-graphql/internal/domains/catalog/model"
)

// Queries - các thao tác đọc/ghi trên hai loại record (authors, books).
// Dùng được cả bên trong lẫn bên ngoài transaction.
type Queries interface {
	// CreateAuthor inserts an author and returns it with ID and created_at set.
	CreateAuthor(ctx context.Context, author *model.Author) (*model.Author, error)

	// CreateBook inserts a book. Errors: ErrAuthorNotFound if AuthorID does not exist.
	CreateBook(ctx context.Context, book *model.Book) (*model.Book, error)

	// GetAuthorByID errors with ErrAuthorNotFound if not exists.
	GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// FindAuthors returns every author matching the filter exactly, in store order.
	FindAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error)

	// ListAuthors returns every author in store order.
	ListAuthors(ctx context.Context) ([]model.Author, error)

	// ListBooksWithAuthors returns every book joined with its author, in store order.
	ListBooksWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error)
}

// RepositoryInterface - Record Store của catalog.
type RepositoryInterface interface {
	Queries

	// WithTx runs fn inside one transaction. Writes made through q become
	// visible to other readers only if fn returns nil.
	WithTx(ctx context.Context, fn func(q Queries) error) error
}
