package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yt-summarizer/internal/app"
	"yt-summarizer/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// HistoryTx runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, so callers
// never leak an open transaction.
func (r *UserRepository) HistoryTx(fn func(tx app.HistoryTx) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userTx{db: tx})
	})
}

// GetHistory reads only the summarize_history column. The second return
// value reports whether the user row exists.
func (r *UserRepository) GetHistory(userID uint) ([]string, bool, error) {
	var user model.User
	err := r.db.Select("summarize_history").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query summary history failed: %w", err)
	}
	return user.SummarizeHistory, true, nil
}

// ResetHistory atomically sets the history to an empty list with a
// single UPDATE. Returns false when the user row does not exist.
func (r *UserRepository) ResetHistory(userID uint) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("summarize_history", []string{})
	if result.Error != nil {
		return false, fmt.Errorf("reset summary history failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return false, fmt.Errorf("check user exists failed: %w", err)
		}
		// Zero rows affected with an existing row means the history was
		// already empty; the delete is idempotent.
		return count > 0, nil
	}
	return true, nil
}

func (r *UserRepository) SetEmailOTP(userID uint, otp string) error {
	updates := map[string]interface{}{
		"email_otp":         otp,
		"email_otp_sent_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fmt.Errorf("set email otp failed: %w", err)
	}
	return nil
}

func (r *UserRepository) MarkEmailVerified(userID uint) error {
	updates := map[string]interface{}{
		"email_verified":    true,
		"email_otp":         "",
		"email_otp_sent_at": nil,
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fmt.Errorf("mark email verified failed: %w", err)
	}
	return nil
}

// userTx scopes user reads and writes to one open transaction.
type userTx struct {
	db *gorm.DB
}

// LockUser loads the user row with SELECT ... FOR UPDATE so concurrent
// submissions for the same user serialize on the row instead of losing
// updates. Returns nil when the row does not exist.
func (t *userTx) LockUser(userID uint) (*model.User, error) {
	var user model.User
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock user row failed: %w", err)
	}
	return &user, nil
}

func (t *userTx) SaveUser(user *model.User) error {
	if err := t.db.Save(user).Error; err != nil {
		return fmt.Errorf("save user failed: %w", err)
	}
	return nil
}
