package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookshelf-graphql/internal/domains/catalog/model"
	"bookshelf-graphql/pkg/cache"
)

// Cache key constants
const (
	cacheKeyPrefix  = "catalog:"
	authorsCacheKey = cacheKeyPrefix + "authors:all"
	booksCacheKey   = cacheKeyPrefix + "books:all"
)

// cachedRepository caches the two list reads and drops them after every
// committed write. Cache failures are logged and fall through to the store.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedRepository) WithTx(ctx context.Context, fn func(q Queries) error) error {
	if err := r.next.WithTx(ctx, fn); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error) {
	created, err := r.next.CreateAuthor(ctx, a)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *cachedRepository) CreateBook(ctx context.Context, b *model.Book) (*model.Book, error) {
	created, err := r.next.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *cachedRepository) GetAuthorByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return r.next.GetAuthorByID(ctx, id)
}

func (r *cachedRepository) FindAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	return r.next.FindAuthors(ctx, filter)
}

func (r *cachedRepository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return readThrough(ctx, r, authorsCacheKey, r.next.ListAuthors)
}

func (r *cachedRepository) ListBooksWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	return readThrough(ctx, r, booksCacheKey, r.next.ListBooksWithAuthors)
}

func readThrough[T any](ctx context.Context, r *cachedRepository, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	hit, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, items, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] Write failed")
	}
	return items, nil
}

// invalidate drops both list keys in one DEL. The write has already
// committed, so a failure is not returned to the caller; the lists may then
// be served stale until the TTL expires.
func (r *cachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, authorsCacheKey, booksCacheKey); err != nil {
		log.Error().
			Err(err).
			Dur("stale_for_at_most", r.ttl).
			Msg("[CACHE] Invalidation after committed write failed")
	}
}
