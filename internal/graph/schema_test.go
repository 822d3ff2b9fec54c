package graph

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-graphql/internal/domains/catalog/model"
	"bookshelf-graphql/internal/domains/catalog/repository"
	"bookshelf-graphql/internal/domains/catalog/service"
)

const allBooksQuery = `
	query {
		allBooks {
			title
			author {
				firstName
				lastName
			}
		}
	}
`

const createWithExistingMutation = `
	mutation createBookWithExistingAuthor($title: String!, $firstName: String!, $lastName: String!) {
		createBookWithExistingAuthor(title: $title, firstName: $firstName, lastName: $lastName) {
			book {
				title
			}
			author {
				firstName
				lastName
			}
		}
	}
`

const createWithNewMutation = `
	mutation createBookWithNewAuthor($title: String!, $firstName: String!, $lastName: String!) {
		createBookWithNewAuthor(title: $title, firstName: $firstName, lastName: $lastName) {
			book {
				title
				author {
					firstName
					lastName
				}
			}
			author {
				firstName
				lastName
			}
		}
	}
`

type allBooksData struct {
	AllBooks []BookProjection `json:"allBooks"`
}

func newTestSchema(t *testing.T) (*graphql.Schema, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	schema, err := NewSchema(service.NewCatalogService(store))
	require.NoError(t, err)
	return schema, store
}

func seedAuthor(t *testing.T, store *repository.MemoryStore, first, last string) *model.Author {
	t.Helper()
	a, err := store.CreateAuthor(context.Background(), &model.Author{FirstName: first, LastName: last})
	require.NoError(t, err)
	return a
}

func seedBook(t *testing.T, store *repository.MemoryStore, title string, author *model.Author) {
	t.Helper()
	_, err := store.CreateBook(context.Background(), &model.Book{Title: title, AuthorID: author.ID})
	require.NoError(t, err)
}

func exec(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) *graphql.Response {
	t.Helper()
	return schema.Exec(context.Background(), query, "", vars)
}

func decode(t *testing.T, resp *graphql.Response, dest interface{}) {
	t.Helper()
	require.Empty(t, resp.Errors, "unexpected errors in response")
	require.NotEmpty(t, resp.Data, "no data in response")
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func TestHello(t *testing.T) {
	schema, _ := newTestSchema(t)

	var data struct {
		Hello string `json:"hello"`
	}
	decode(t, exec(t, schema, `{ hello }`, nil), &data)
	assert.Equal(t, "Hi!", data.Hello)
}

func TestAllBooks_ReturnsEveryBookWithItsAuthor(t *testing.T) {
	schema, store := newTestSchema(t)

	jamesCorey := seedAuthor(t, store, "James", "Corey")
	geraldDurrell := seedAuthor(t, store, "Gerald", "Durrell")
	seedBook(t, store, "Leviathan Wakes", jamesCorey)
	seedBook(t, store, "Caliban's War", jamesCorey)
	seedBook(t, store, "The Bafut Beagles", geraldDurrell)
	seedBook(t, store, "My Family and Other Animals", geraldDurrell)

	var data allBooksData
	decode(t, exec(t, schema, allBooksQuery, nil), &data)
	require.Len(t, data.AllBooks, 4, "incorrect number of books returned")

	want := map[string]AuthorProjection{
		"Leviathan Wakes":             {FirstName: "James", LastName: "Corey"},
		"Caliban's War":               {FirstName: "James", LastName: "Corey"},
		"The Bafut Beagles":           {FirstName: "Gerald", LastName: "Durrell"},
		"My Family and Other Animals": {FirstName: "Gerald", LastName: "Durrell"},
	}
	for _, b := range data.AllBooks {
		expected, ok := want[b.Title]
		require.True(t, ok, "unexpected book %q", b.Title)
		require.NotNil(t, b.Author)
		assert.Equal(t, expected, *b.Author, "wrong author for %q", b.Title)
	}
}

func TestAllBooks_IdempotentReads(t *testing.T) {
	schema, store := newTestSchema(t)
	durrell := seedAuthor(t, store, "Gerald", "Durrell")
	seedBook(t, store, "My Family and Other Animals", durrell)
	seedBook(t, store, "The Bafut Beagles", durrell)

	first := exec(t, schema, allBooksQuery, nil)
	second := exec(t, schema, allBooksQuery, nil)

	require.Empty(t, first.Errors)
	require.Empty(t, second.Errors)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Equal(t, string(first.Data), string(second.Data), "order must be stable")
}

func TestAllAuthors(t *testing.T) {
	schema, store := newTestSchema(t)
	seedAuthor(t, store, "Jack", "London")
	seedAuthor(t, store, "Jack", "London")

	var data struct {
		AllAuthors []AuthorProjection `json:"allAuthors"`
	}
	decode(t, exec(t, schema, `{ allAuthors { firstName lastName } }`, nil), &data)
	assert.Equal(t, []AuthorProjection{
		{FirstName: "Jack", LastName: "London"},
		{FirstName: "Jack", LastName: "London"},
	}, data.AllAuthors)

	// books are not part of the Author projection
	resp := exec(t, schema, `{ allAuthors { firstName books { title } } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "books")
}

func TestAllBooks_EmptyStore(t *testing.T) {
	schema, _ := newTestSchema(t)

	var data allBooksData
	decode(t, exec(t, schema, allBooksQuery, nil), &data)
	assert.NotNil(t, data.AllBooks)
	assert.Empty(t, data.AllBooks)
}

func TestCreateBookWithExistingAuthor_RoundTrip(t *testing.T) {
	schema, store := newTestSchema(t)
	robertMartin := seedAuthor(t, store, "Robert", "Martin")

	vars := map[string]interface{}{
		"title":     "Clean Code",
		"firstName": "Robert",
		"lastName":  "Martin",
	}
	resp := exec(t, schema, createWithExistingMutation, vars)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{
		"createBookWithExistingAuthor": {
			"book": {"title": "Clean Code"},
			"author": {"firstName": "Robert", "lastName": "Martin"}
		}
	}`, string(resp.Data))

	// what was created in the store is what we sent / received
	books, err := store.ListBooksWithAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Clean Code", books[0].Book.Title)
	assert.Equal(t, robertMartin.ID, books[0].Author.ID)

	var data allBooksData
	decode(t, exec(t, schema, allBooksQuery, nil), &data)
	require.Len(t, data.AllBooks, 1)
	assert.Equal(t, "Clean Code", data.AllBooks[0].Title)
	assert.Equal(t, &AuthorProjection{FirstName: "Robert", LastName: "Martin"}, data.AllBooks[0].Author)
}

func TestCreateBookWithExistingAuthor_NotFound(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := exec(t, schema, createWithExistingMutation, map[string]interface{}{
		"title": "X", "firstName": "NoSuch", "lastName": "Person",
	})
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "author not found")
	assert.Equal(t, model.CodeAuthorNotFound, resp.Errors[0].Extensions["code"])
	assert.JSONEq(t, `{"createBookWithExistingAuthor": null}`, string(resp.Data))

	books, err := store.ListBooksWithAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCreateBookWithExistingAuthor_Ambiguous(t *testing.T) {
	schema, store := newTestSchema(t)
	seedAuthor(t, store, "Jack", "London")
	seedAuthor(t, store, "Jack", "London")

	resp := exec(t, schema, createWithExistingMutation, map[string]interface{}{
		"title": "White Fang", "firstName": "Jack", "lastName": "London",
	})
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, model.CodeAuthorAmbiguous, resp.Errors[0].Extensions["code"])
}

func TestCreateBookWithNewAuthor(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := exec(t, schema, createWithNewMutation, map[string]interface{}{
		"title": "A Memoir", "firstName": "Bob", "lastName": "Howard",
	})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{
		"createBookWithNewAuthor": {
			"book": {"title": "A Memoir", "author": {"firstName": "Bob", "lastName": "Howard"}},
			"author": {"firstName": "Bob", "lastName": "Howard"}
		}
	}`, string(resp.Data))

	authors, err := store.ListAuthors(context.Background())
	require.NoError(t, err)
	books, err := store.ListBooksWithAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 1)
	require.Len(t, books, 1)
	assert.Equal(t, authors[0].ID, books[0].Book.AuthorID)
}

func TestMutation_MissingArgumentRejectedBeforeResolvers(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := exec(t, schema, `
		mutation {
			createBookWithNewAuthor(title: "A Memoir", firstName: "Bob") {
				book { title }
			}
		}
	`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "lastName")

	authors, err := store.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors, "no resolver should have run")
}

func TestMutation_TitleOverColumnLimit(t *testing.T) {
	schema, _ := newTestSchema(t)

	resp := exec(t, schema, createWithNewMutation, map[string]interface{}{
		"title": strings.Repeat("x", model.MaxTitleLength+1), "firstName": "Bob", "lastName": "Howard",
	})
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, model.CodeInvalidInput, resp.Errors[0].Extensions["code"])
}

func TestCreateBookWithNewAuthor_EmptyStrings(t *testing.T) {
	schema, _ := newTestSchema(t)

	resp := exec(t, schema, createWithNewMutation, map[string]interface{}{
		"title": "", "firstName": "Anon", "lastName": "Ymous",
	})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{
		"createBookWithNewAuthor": {
			"book": {"title": "", "author": {"firstName": "Anon", "lastName": "Ymous"}},
			"author": {"firstName": "Anon", "lastName": "Ymous"}
		}
	}`, string(resp.Data))

	var data allBooksData
	decode(t, exec(t, schema, allBooksQuery, nil), &data)
	require.Len(t, data.AllBooks, 1)
	assert.Equal(t, "", data.AllBooks[0].Title)
}

// brokenCatalog simulates an unavailable store.
type brokenCatalog struct {
	service.ServiceInterface
	err error
}

func (b brokenCatalog) ListBooks(ctx context.Context) ([]model.BookWithAuthor, error) {
	return nil, b.err
}

func TestAllBooks_StoreFailureSurfaces(t *testing.T) {
	schema, err := NewSchema(brokenCatalog{err: errors.New("connection refused")})
	require.NoError(t, err)

	resp := exec(t, schema, allBooksQuery, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "connection refused")
	assert.Equal(t, model.CodeInternal, resp.Errors[0].Extensions["code"])
}
