package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"travel-diary/internal/model"
)

// PostRepository handles storage and feed queries for posts.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// ListFeed returns posts authored by the viewer or by users the viewer
// follows, newest first. Ties on the timestamp break on id so that
// pagination stays deterministic.
func (r *PostRepository) ListFeed(ctx context.Context, viewerID uint, offset, limit int) ([]model.Post, error) {
	followed := r.db.Model(&model.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", viewerID)

	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IN (?)", viewerID, followed).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll returns every post, newest first.
func (r *PostRepository) ListAll(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser returns one author's posts, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
