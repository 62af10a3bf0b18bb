package sqlstore

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"users-api/internal/domain/user"
	pkgerrors "users-api/pkg/errors"
)

// UserRepoSQL implements the Repository interface on top of GORM.
// It works with any dialector the container opens (postgres, sqlite).
type UserRepoSQL struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoSQL creates a new instance of UserRepoSQL.
func NewUserRepoSQL(db *gorm.DB, log *zap.Logger) *UserRepoSQL {
	return &UserRepoSQL{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

// Create inserts a new user into the database.
func (r *UserRepoSQL) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, pkgerrors.NewConflictError("user", "email", u.Email)
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, pkgerrors.NewPersistenceError("create user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Update replaces name and email of an existing user.
// The existence check and the write share one transaction.
func (r *UserRepoSQL) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, u.ID).Error; err != nil {
			return err
		}
		model.Name = u.Name
		model.Email = u.Email
		return tx.Save(&model).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.NewNotFoundError("user", u.ID)
		case isDuplicateKey(err):
			return nil, pkgerrors.NewConflictError("user", "email", u.Email)
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return nil, pkgerrors.NewPersistenceError("update user", err)
	}

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Delete removes a user from the database by ID.
func (r *UserRepoSQL) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if result.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(result.Error), zap.Int64("id", id))
		return pkgerrors.NewPersistenceError("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("user", id)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoSQL) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFoundError("user", id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, pkgerrors.NewPersistenceError("get user", err)
	}

	return toDomain(&model), nil
}

// GetByEmail retrieves a user from the database by their email address.
func (r *UserRepoSQL) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, pkgerrors.NewPersistenceError("get user by email", err)
	}

	return toDomain(&model), nil
}

// List retrieves all users ordered by ID.
func (r *UserRepoSQL) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, pkgerrors.NewPersistenceError("list users", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}
	return users, nil
}

// Ping checks the underlying connection pool.
func (r *UserRepoSQL) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

// isDuplicateKey recognises unique violations whether or not the dialector
// translates them into gorm.ErrDuplicatedKey.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
