package graph

import (
	"bookshelf-graphql/internal/domains/catalog/model"
)

// Projections are the wire shapes of the schema types. They are resolved by
// struct field (graphql.UseFieldResolvers), so a field only reaches clients
// if it is declared both here and in schema.graphql.

type AuthorProjection struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type BookProjection struct {
	Title  string            `json:"title"`
	Author *AuthorProjection `json:"author"`
}

// BookPayload backs both mutation payload types.
type BookPayload struct {
	Book   *BookProjection   `json:"book"`
	Author *AuthorProjection `json:"author"`
}

func toAuthorProjection(a model.Author) *AuthorProjection {
	return &AuthorProjection{
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func toBookProjection(b model.Book, a model.Author) *BookProjection {
	return &BookProjection{
		Title:  b.Title,
		Author: toAuthorProjection(a),
	}
}

func toAuthorProjections(authors []model.Author) []*AuthorProjection {
	out := make([]*AuthorProjection, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorProjection(a))
	}
	return out
}

func toBookProjections(books []model.BookWithAuthor) []*BookProjection {
	out := make([]*BookProjection, 0, len(books))
	for _, b := range books {
		out = append(out, toBookProjection(b.Book, b.Author))
	}
	return out
}

func toBookPayload(b *model.Book, a *model.Author) *BookPayload {
	return &BookPayload{
		Book:   toBookProjection(*b, *a),
		Author: toAuthorProjection(*a),
	}
}
