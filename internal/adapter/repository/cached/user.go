package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"users-api/internal/adapter/cache"
	domain "users-api/internal/domain/user"
	"users-api/internal/usecase/user"
)

// UserRepository decorates a store with a read-through user cache.
// Only GetByID is served from cache; writes go to the store and then
// invalidate the cached entry.
type UserRepository struct {
	store user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		store: store,
		cache: c,
		log:   log,
	}
}

// Create delegates to the store.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.store.Create(ctx, u)
}

// GetByID retrieves a user by ID using cache-aside.
// Concurrent misses for the same ID share one store lookup.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to store", zap.Int64("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	result, err, _ := r.group.Do(cache.Key(id), func() (any, error) {
		u, err := r.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing the flight must not alias one another's record
	u := *result.(*domain.User)
	return &u, nil
}

// GetByEmail delegates to the store.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.store.GetByEmail(ctx, email)
}

// Update updates the user in the store and invalidates the cache.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.store.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, u.ID)
	return updated, nil
}

// Delete deletes the user from the store and invalidates the cache.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

// List delegates to the store.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.store.List(ctx)
}

// Ping reports the store's health; the cache is optional for serving.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *UserRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.Int64("id", id), zap.Error(err))
	}
}
