package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"travel-diary/internal/model"
)

// UserRepository handles CRUD for user accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByTelegram(ctx context.Context, handle string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram = ?", handle).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, user *model.User, hash string) error {
	if err := r.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}

// SetTelegram attaches a handle to the account. A racing link attempt
// for the same handle surfaces as gorm.ErrDuplicatedKey.
func (r *UserRepository) SetTelegram(ctx context.Context, user *model.User, handle string) error {
	if err := r.db.WithContext(ctx).Model(user).Update("telegram", handle).Error; err != nil {
		return err
	}
	user.Telegram = &handle
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User, username, aboutMe string) error {
	updates := map[string]interface{}{
		"username": username,
		"about_me": aboutMe,
	}
	if err := r.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return err
	}
	user.Username = username
	user.AboutMe = aboutMe
	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, userID uint, seenAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("last_seen", seenAt).Error; err != nil {
		return fmt.Errorf("touch last seen: %w", err)
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
