package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-graphql/internal/domains/catalog/model"
	"bookshelf-graphql/pkg/database"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository implements RepositoryInterface on top of pgxpool
type postgresRepository struct {
	*pgQueries
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new catalog repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pgQueries: &pgQueries{db: pool},
		pool:      pool,
	}
}

func (r *postgresRepository) WithTx(ctx context.Context, fn func(q Queries) error) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgQueries{db: tx})
	})
}

type pgQueries struct {
	db dbtx
}

const (
	authorColumns = `id, first_name, last_name, created_at`

	// foreign_key_violation
	pgCodeForeignKeyViolation = "23503"
)

func (q *pgQueries) CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name)
        VALUES ($1, $2)
        RETURNING ` + authorColumns

	var created model.Author
	err := q.db.QueryRow(ctx, query, a.FirstName, a.LastName).Scan(
		&created.ID,
		&created.FirstName,
		&created.LastName,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (q *pgQueries) CreateBook(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, author_id)
        VALUES ($1, $2)
        RETURNING id, title, author_id, created_at
    `

	var created model.Book
	err := q.db.QueryRow(ctx, query, b.Title, b.AuthorID).Scan(
		&created.ID,
		&created.Title,
		&created.AuthorID,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation {
			return nil, fmt.Errorf("failed to create book: %w", model.ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (q *pgQueries) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a model.Author
	err := q.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (q *pgQueries) FindAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        WHERE first_name = $1 AND last_name = $2
        ORDER BY created_at, id
    `

	rows, err := q.db.Query(ctx, query, filter.FirstName, filter.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to find authors: %w", err)
	}
	return collectAuthors(rows)
}

func (q *pgQueries) ListAuthors(ctx context.Context) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at, id`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return collectAuthors(rows)
}

func (q *pgQueries) ListBooksWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	query := `
        SELECT b.id, b.title, b.author_id, b.created_at,
               a.id, a.first_name, a.last_name, a.created_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        ORDER BY b.created_at, b.id
    `

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BookWithAuthor, error) {
		var item model.BookWithAuthor
		err := row.Scan(
			&item.Book.ID,
			&item.Book.Title,
			&item.Book.AuthorID,
			&item.Book.CreatedAt,
			&item.Author.ID,
			&item.Author.FirstName,
			&item.Author.LastName,
			&item.Author.CreatedAt,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}

	return books, nil
}

func collectAuthors(rows pgx.Rows) ([]model.Author, error) {
	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Author, error) {
		var a model.Author
		err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan authors: %w", err)
	}
	return authors, nil
}
