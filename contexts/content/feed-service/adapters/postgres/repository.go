// Package postgres persists posts and the per-owner post index in
// PostgreSQL through GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"postline/contexts/content/feed-service/domain/entities"
	domainerrors "postline/contexts/content/feed-service/domain/errors"
)

type postModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	ImagePath string    `gorm:"column:image_path"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string { return "posts" }

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		ID:        m.PostID,
		Title:     m.Title,
		Content:   m.Content,
		ImagePath: m.ImagePath,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPostModel(post entities.Post) postModel {
	return postModel{
		PostID:    post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImagePath: post.ImagePath,
		OwnerID:   post.OwnerID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

type userPostModel struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	PostID    string    `gorm:"column:post_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userPostModel) TableName() string { return "user_posts" }

// Repository implements the post repository and owner index ports.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the feed tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&postModel{}, &userPostModel{}); err != nil {
		return fmt.Errorf("migrating feed tables: %w", err)
	}
	return nil
}

func (r *Repository) SavePost(ctx context.Context, post entities.Post) (entities.Post, error) {
	model := toPostModel(post)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
	if err != nil {
		return entities.Post{}, fmt.Errorf("saving post: %w", err)
	}
	return model.toEntity(), nil
}

func (r *Repository) GetPost(ctx context.Context, id string) (entities.Post, error) {
	var model postModel
	err := r.db.WithContext(ctx).First(&model, "post_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, fmt.Errorf("loading post: %w", err)
	}
	return model.toEntity(), nil
}

func (r *Repository) ListPosts(ctx context.Context, offset int, limit int) ([]entities.Post, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&postModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	var models []postModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, post_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}

	posts := make([]entities.Post, len(models))
	for i, model := range models {
		posts[i] = model.toEntity()
	}
	return posts, int(total), nil
}

func (r *Repository) DeletePost(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&postModel{}, "post_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("image_path <> ''").
		Pluck("image_path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("listing image paths: %w", err)
	}
	return paths, nil
}

func (r *Repository) AppendPost(ctx context.Context, ownerID string, postID string, now time.Time) error {
	model := userPostModel{OwnerID: ownerID, PostID: postID, CreatedAt: now}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("appending to owner index: %w", err)
	}
	return nil
}

func (r *Repository) RemovePost(ctx context.Context, ownerID string, postID string) error {
	err := r.db.WithContext(ctx).
		Delete(&userPostModel{}, "owner_id = ? AND post_id = ?", ownerID, postID).Error
	if err != nil {
		return fmt.Errorf("removing from owner index: %w", err)
	}
	return nil
}

func (r *Repository) ListPostIDs(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&userPostModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing owner post ids: %w", err)
	}
	return ids, nil
}
