// Package memory provides a process-local user store.
package memory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"users-api/internal/domain/user"
	pkgerrors "users-api/pkg/errors"
)

// UserRepoMemory keeps users in a slice ordered by ID.
// IDs come from a monotonic counter and are never reused.
type UserRepoMemory struct {
	mu     sync.RWMutex
	users  []user.User
	nextID int64
	log    *zap.Logger
}

// NewUserRepoMemory creates an empty in-memory store.
func NewUserRepoMemory(log *zap.Logger) *UserRepoMemory {
	return &UserRepoMemory{nextID: 1, log: log}
}

// Create appends a new user and assigns the next ID.
func (r *UserRepoMemory) Create(_ context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfEmail(u.Email) >= 0 {
		return nil, pkgerrors.NewConflictError("user", "email", u.Email)
	}

	stored := user.User{ID: r.nextID, Name: u.Name, Email: u.Email}
	r.nextID++
	r.users = append(r.users, stored)

	r.log.Debug("user created in memory", zap.Int64("id", stored.ID))
	return &stored, nil
}

// GetByID returns a copy of the stored user.
func (r *UserRepoMemory) GetByID(_ context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOfID(id)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", id)
	}
	u := r.users[i]
	return &u, nil
}

// GetByEmail returns nil, nil when no user has the email.
func (r *UserRepoMemory) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOfEmail(email)
	if i < 0 {
		return nil, nil
	}
	u := r.users[i]
	return &u, nil
}

// Update replaces name and email of an existing user in place.
func (r *UserRepoMemory) Update(_ context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(u.ID)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", u.ID)
	}
	if j := r.indexOfEmail(u.Email); j >= 0 && j != i {
		return nil, pkgerrors.NewConflictError("user", "email", u.Email)
	}

	r.users[i].Name = u.Name
	r.users[i].Email = u.Email
	updated := r.users[i]

	r.log.Debug("user updated in memory", zap.Int64("id", updated.ID))
	return &updated, nil
}

// Delete removes a user, keeping the order of the rest.
func (r *UserRepoMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(id)
	if i < 0 {
		return pkgerrors.NewNotFoundError("user", id)
	}
	r.users = append(r.users[:i], r.users[i+1:]...)

	r.log.Debug("user deleted from memory", zap.Int64("id", id))
	return nil
}

// List returns a snapshot of all users in insertion order.
func (r *UserRepoMemory) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// Ping always succeeds.
func (r *UserRepoMemory) Ping(_ context.Context) error {
	return nil
}

func (r *UserRepoMemory) indexOfID(id int64) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *UserRepoMemory) indexOfEmail(email string) int {
	for i := range r.users {
		if r.users[i].Email == email {
			return i
		}
	}
	return -1
}
