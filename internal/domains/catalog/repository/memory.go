package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookshelf-graphql/internal/domains/catalog/model"
)

// MemoryStore is an in-memory RepositoryInterface for tests and local runs.
// Iteration order is insertion order. WithTx stages writes on a copy of the
// state and publishes them only when fn succeeds; writers are serialized.
type MemoryStore struct {
	mu    sync.RWMutex
	state memState
	now   func() time.Time
}

var _ RepositoryInterface = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(q Queries) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &memTx{state: s.state.clone(), now: s.now}
	if err := fn(staged); err != nil {
		return err
	}

	s.state = staged.state
	return nil
}

func (s *MemoryStore) CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error) {
	var created *model.Author
	err := s.WithTx(ctx, func(q Queries) error {
		var err error
		created, err = q.CreateAuthor(ctx, a)
		return err
	})
	return created, err
}

func (s *MemoryStore) CreateBook(ctx context.Context, b *model.Book) (*model.Book, error) {
	var created *model.Book
	err := s.WithTx(ctx, func(q Queries) error {
		var err error
		created, err = q.CreateBook(ctx, b)
		return err
	})
	return created, err
}

func (s *MemoryStore) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.getAuthor(id)
}

func (s *MemoryStore) FindAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.findAuthors(filter), nil
}

func (s *MemoryStore) ListAuthors(ctx context.Context) ([]model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.authors), nil
}

func (s *MemoryStore) ListBooksWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.booksWithAuthors()
}

// DeleteAuthor removes the author and, like ON DELETE CASCADE, every book referencing it.
func (s *MemoryStore) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	return s.WithTx(ctx, func(q Queries) error {
		tx := q.(*memTx)
		idx := slices.IndexFunc(tx.state.authors, func(a model.Author) bool { return a.ID == id })
		if idx < 0 {
			return model.ErrAuthorNotFound
		}
		tx.state.authors = slices.Delete(tx.state.authors, idx, idx+1)
		tx.state.books = slices.DeleteFunc(tx.state.books, func(b model.Book) bool { return b.AuthorID == id })
		return nil
	})
}

type memState struct {
	authors []model.Author
	books   []model.Book
}

func (st memState) clone() memState {
	return memState{
		authors: slices.Clone(st.authors),
		books:   slices.Clone(st.books),
	}
}

func (st memState) getAuthor(id uuid.UUID) (*model.Author, error) {
	for i := range st.authors {
		if st.authors[i].ID == id {
			a := st.authors[i]
			return &a, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (st memState) findAuthors(filter model.AuthorFilter) []model.Author {
	matches := []model.Author{}
	for i := range st.authors {
		if filter.Matches(&st.authors[i]) {
			matches = append(matches, st.authors[i])
		}
	}
	return matches
}

func (st memState) booksWithAuthors() ([]model.BookWithAuthor, error) {
	out := make([]model.BookWithAuthor, 0, len(st.books))
	for _, b := range st.books {
		a, err := st.getAuthor(b.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("book %s references missing author %s: %w", b.ID, b.AuthorID, err)
		}
		out = append(out, model.BookWithAuthor{Book: b, Author: *a})
	}
	return out, nil
}

// memTx is the Queries view handed to WithTx callbacks.
type memTx struct {
	state memState
	now   func() time.Time
}

func (tx *memTx) CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error) {
	created := model.Author{
		ID:        uuid.New(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: tx.now(),
	}
	tx.state.authors = append(tx.state.authors, created)
	return &created, nil
}

func (tx *memTx) CreateBook(ctx context.Context, b *model.Book) (*model.Book, error) {
	if _, err := tx.state.getAuthor(b.AuthorID); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	created := model.Book{
		ID:        uuid.New(),
		Title:     b.Title,
		AuthorID:  b.AuthorID,
		CreatedAt: tx.now(),
	}
	tx.state.books = append(tx.state.books, created)
	return &created, nil
}

func (tx *memTx) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return tx.state.getAuthor(id)
}

func (tx *memTx) FindAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	return tx.state.findAuthors(filter), nil
}

func (tx *memTx) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return slices.Clone(tx.state.authors), nil
}

func (tx *memTx) ListBooksWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	return tx.state.booksWithAuthors()
}
