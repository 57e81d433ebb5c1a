package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	return translateError(r.errorClassifier, r.logger, operation, err, errs.ErrUserNotFound, fields)
}

// Create inserts a new user. A unique violation on email or username returns ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	row := userToModel(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating user", err, map[string]any{"email": user.Email})
	}

	r.logger.Debug("User created", map[string]any{
		"user_id": user.ID,
		"role":    user.Role.String(),
	})
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var row model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, map[string]any{"user_id": id})
	}
	return userFromModel(&row), nil
}

// GetByEmail looks up a user case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row model.User
	err := r.db.WithContext(ctx).Where("email = ?", entity.NormalizeEmail(email)).First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting user by email", err, nil)
	}
	return userFromModel(&row), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", entity.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking email", err, nil)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking username", err, nil)
	}
	return count > 0, nil
}

// SetActive toggles the active flag
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating user status", result.Error, map[string]any{"user_id": id})
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("User status changed", map[string]any{
		"user_id":   id,
		"is_active": active,
	})
	return nil
}
