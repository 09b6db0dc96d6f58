// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postsTable = "posts"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id models.PostID) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id models.PostID, includeDeleted bool) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create upserts the post by primary key and returns the stored row.
func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	defer observability.TrackQuery("create", postsTable)()

	rec := models.NewPostRecord(post)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		logFailure(ctx, "create", err)
		return nil, fmt.Errorf("create post %s: %w", post.ID, err)
	}
	return rec.ToDomain()
}

// Delete soft-deletes a live post and returns it with DeletedAt set. The
// lookup, update and re-read share one transaction.
func (r *postRepository) Delete(ctx context.Context, id models.PostID) (*models.Post, error) {
	defer observability.TrackQuery("delete", postsTable)()

	var deleted models.PostRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx
		if tx.Dialector.Name() == "postgres" {
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var live models.PostRecord
		if err := lookup.Where("id = ?", id.String()).First(&live).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return err
		}

		if err := tx.Delete(&live).Error; err != nil {
			return err
		}

		return tx.Unscoped().Where("id = ?", id.String()).First(&deleted).Error
	})
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, err
		}
		logFailure(ctx, "delete", err)
		return nil, fmt.Errorf("delete post %s: %w", id, err)
	}
	return deleted.ToDomain()
}

// List returns every live post, newest first.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	defer observability.TrackQuery("list", postsTable)()

	var recs []models.PostRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		logFailure(ctx, "list", err)
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]*models.Post, 0, len(recs))
	for i := range recs {
		p, err := recs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id models.PostID, includeDeleted bool) (*models.Post, error) {
	defer observability.TrackQuery("get", postsTable)()

	q := r.db.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}

	var rec models.PostRecord
	if err := q.Where("id = ?", id.String()).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		logFailure(ctx, "get", err)
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return rec.ToDomain()
}

func logFailure(ctx context.Context, operation string, err error) {
	middleware.Logger.ErrorContext(ctx, "repository error",
		slog.String("table", postsTable),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
