package user

import (
	"context"

	"go.uber.org/zap"

	domain "users-api/internal/domain/user"
	pkgerrors "users-api/pkg/errors"
	"users-api/pkg/logger"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing the in-memory and SQL stores
// to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Create stores a new user and assigns its ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)        // GetByID returns a NotFoundError when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // GetByEmail returns nil, nil when absent
	Update(ctx context.Context, u *domain.User) (*domain.User, error)   // Update replaces name and email
	Delete(ctx context.Context, id int64) error                         // Delete removes a user by ID
	List(ctx context.Context) ([]domain.User, error)                    // List returns all users in ID order
	Ping(ctx context.Context) error                                     // Ping reports whether the store is reachable
}

// Interactor implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Interactor struct {
	repo     Repository
	log      *zap.Logger
	validate *Validator
}

var _ Usecase = (*Interactor)(nil)

// New creates a new Interactor with the provided repository, validator and logger.
func New(r Repository, v *Validator, log *zap.Logger) *Interactor {
	if v == nil {
		v = NewValidator()
	}
	return &Interactor{repo: r, log: log, validate: v}
}

// CreateUser creates a new user after checking email uniqueness.
func (uc *Interactor) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in.UserInput); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existing.ID))
		return nil, pkgerrors.NewConflictError("user", "email", in.Email)
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Int64("id", created.ID))
	return toDTO(created), nil
}

// UpdateUser replaces name and email of an existing user.
// Existence is confirmed before the email uniqueness check and the write.
func (uc *Interactor) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in.UserInput); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	if in.ID <= 0 {
		return nil, pkgerrors.NewNotFoundError("user", in.ID)
	}

	if _, err := uc.repo.GetByID(ctx, in.ID); err != nil {
		log.Warn("user to update not available", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.ID != in.ID {
		log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existing.ID))
		return nil, pkgerrors.NewConflictError("user", "email", in.Email)
	}

	updated, err := uc.repo.Update(ctx, &domain.User{
		ID:    in.ID,
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return toDTO(updated), nil
}

// DeleteUser deletes a user by ID.
func (uc *Interactor) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		return pkgerrors.NewNotFoundError("user", in.ID)
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		log.Warn("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
func (uc *Interactor) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		return nil, pkgerrors.NewNotFoundError("user", in.ID)
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, uc.log).Debug("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}

// ListUsers returns every user in the store.
func (uc *Interactor) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = *toDTO(&du)
	}
	return users, nil
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
