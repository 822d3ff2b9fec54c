package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookshelf-graphql/internal/domains/catalog/model"
	"bookshelf-graphql/internal/domains/catalog/repository"
)

// catalogService implements ServiceInterface
type catalogService struct {
	repo repository.RepositoryInterface
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(repo repository.RepositoryInterface) ServiceInterface {
	return &catalogService{repo: repo}
}

func (s *catalogService) LinkBookToExistingAuthor(ctx context.Context, title, firstName, lastName string) (*model.Book, *model.Author, error) {
	in := model.NewBookInput{Title: title, FirstName: firstName, LastName: lastName}
	if err := validateNewBookInput(in); err != nil {
		return nil, nil, err
	}

	var (
		book   *model.Book
		author *model.Author
	)
	err := s.repo.WithTx(ctx, func(q repository.Queries) error {
		matches, err := q.FindAuthors(ctx, model.AuthorFilter{FirstName: firstName, LastName: lastName})
		if err != nil {
			return err
		}

		switch len(matches) {
		case 0:
			return fmt.Errorf("%w: %s %s", model.ErrAuthorNotFound, firstName, lastName)
		case 1:
		default:
			return fmt.Errorf("%w: %d authors named %s %s", model.ErrAuthorAmbiguous, len(matches), firstName, lastName)
		}

		author = &matches[0]
		book, err = q.CreateBook(ctx, &model.Book{Title: title, AuthorID: author.ID})
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("title", title).Msg("[CATALOG] Link book to existing author failed")
		return nil, nil, err
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Str("author_id", author.ID.String()).
		Msg("[CATALOG] Book linked to existing author")
	return book, author, nil
}

func (s *catalogService) CreateBookWithNewAuthor(ctx context.Context, title, firstName, lastName string) (*model.Book, *model.Author, error) {
	in := model.NewBookInput{Title: title, FirstName: firstName, LastName: lastName}
	if err := validateNewBookInput(in); err != nil {
		return nil, nil, err
	}

	var (
		book   *model.Book
		author *model.Author
	)
	// Author trước, Book sau: book cần author_id hợp lệ
	err := s.repo.WithTx(ctx, func(q repository.Queries) error {
		var err error
		author, err = q.CreateAuthor(ctx, &model.Author{FirstName: firstName, LastName: lastName})
		if err != nil {
			return err
		}

		book, err = q.CreateBook(ctx, &model.Book{Title: title, AuthorID: author.ID})
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("title", title).Msg("[CATALOG] Create book with new author failed")
		return nil, nil, err
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Str("author_id", author.ID.String()).
		Msg("[CATALOG] Book created with new author")
	return book, author, nil
}

func (s *catalogService) ListBooks(ctx context.Context) ([]model.BookWithAuthor, error) {
	return s.repo.ListBooksWithAuthors(ctx)
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx)
}

// validateNewBookInput only enforces the VARCHAR(200) column limits. Empty
// strings are valid values; presence is checked by the GraphQL schema.
func validateNewBookInput(in model.NewBookInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, model.MaxTitleLength)),
		validation.Field(&in.FirstName, validation.RuneLength(0, model.MaxNameLength)),
		validation.Field(&in.LastName, validation.RuneLength(0, model.MaxNameLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidInput, err.Error())
	}
	return nil
}
