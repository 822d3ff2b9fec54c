package graph

import (
	"context"
)

// =============================================================================
// QUERY RESOLVERS
// =============================================================================

type queryResolver struct{ *Resolver }

const helloGreeting = "Hi!"

func (r *queryResolver) Hello() string {
	return helloGreeting
}

// AllBooks returns every book with its author resolved.
func (r *queryResolver) AllBooks(ctx context.Context) ([]*BookProjection, error) {
	books, err := r.catalog.ListBooks(ctx)
	if err != nil {
		return nil, newResolverError(err)
	}
	return toBookProjections(books), nil
}

// AllAuthors returns every author; books are not exposed on Author.
func (r *queryResolver) AllAuthors(ctx context.Context) ([]*AuthorProjection, error) {
	authors, err := r.catalog.ListAuthors(ctx)
	if err != nil {
		return nil, newResolverError(err)
	}
	return toAuthorProjections(authors), nil
}

// =============================================================================
// MUTATION RESOLVERS
// =============================================================================

type mutationResolver struct{ *Resolver }

type createBookArgs struct {
	Title     string
	FirstName string
	LastName  string
}

func (r *mutationResolver) CreateBookWithExistingAuthor(ctx context.Context, args createBookArgs) (*BookPayload, error) {
	book, author, err := r.catalog.LinkBookToExistingAuthor(ctx, args.Title, args.FirstName, args.LastName)
	if err != nil {
		return nil, newResolverError(err)
	}
	return toBookPayload(book, author), nil
}

func (r *mutationResolver) CreateBookWithNewAuthor(ctx context.Context, args createBookArgs) (*BookPayload, error) {
	book, author, err := r.catalog.CreateBookWithNewAuthor(ctx, args.Title, args.FirstName, args.LastName)
	if err != nil {
		return nil, newResolverError(err)
	}
	return toBookPayload(book, author), nil
}
