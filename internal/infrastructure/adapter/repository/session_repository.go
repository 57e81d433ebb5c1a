package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

// SessionRepository stores opaque access tokens
type SessionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewSessionRepository(db *gorm.DB, logger coreport.Logger) *SessionRepository {
	return &SessionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *SessionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	return translateError(r.errorClassifier, r.logger, operation, err, errs.ErrSessionNotFound, fields)
}

// Create persists a session. A token collision returns ErrDuplicateKey.
func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	row := model.Session{
		ID:        session.ID,
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating session", err, map[string]any{"user_id": session.UserID})
	}
	return nil
}

// FindByToken loads a session together with its user
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var row model.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("finding session", err, nil)
	}

	return &entity.Session{
		ID:        row.ID,
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
		User:      userFromModel(&row.User),
	}, nil
}

// Delete removes a session. Missing tokens are not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return r.handleDatabaseError("deleting session", err, nil)
	}
	return nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{})
	if result.Error != nil {
		return 0, r.handleDatabaseError("deleting user sessions", result.Error, map[string]any{"user_id": userID})
	}
	return result.RowsAffected, nil
}

// DeleteExpired removes every session whose expiry is before now
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.Session{})
	if result.Error != nil {
		return 0, r.handleDatabaseError("deleting expired sessions", result.Error, nil)
	}
	return result.RowsAffected, nil
}
