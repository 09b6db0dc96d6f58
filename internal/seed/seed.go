package seed

import (
	"context"
	"fmt"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/repository"

	"gorm.io/gorm"
)

// Seeder fills the posts table with generated data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(repository.NewPostRepository(db), opts),
	}
}

// ClearAll hard-deletes every post, including soft-deleted rows.
func (s *Seeder) ClearAll(ctx context.Context) error {
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&models.PostRecord{})
	if res.Error != nil {
		return fmt.Errorf("clear posts: %w", res.Error)
	}
	middleware.Logger.InfoContext(ctx, "posts cleared", slog.Int64("rows", res.RowsAffected))
	return nil
}

// SeedPosts creates n posts and returns them in creation order.
func (s *Seeder) SeedPosts(ctx context.Context, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		p, err := s.factory.CreatePost(ctx)
		if err != nil {
			return posts, fmt.Errorf("seed post %d/%d: %w", i+1, n, err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// SeedDeleted creates n posts and soft-deletes them so they only show up in
// unscoped reads.
func (s *Seeder) SeedDeleted(ctx context.Context, n int) ([]*models.Post, error) {
	posts, err := s.SeedPosts(ctx, n)
	if err != nil {
		return posts, err
	}
	repo := s.factory.repo
	for i, p := range posts {
		deleted, err := repo.Delete(ctx, p.ID)
		if err != nil {
			return posts, fmt.Errorf("soft delete seeded post %s: %w", p.ID, err)
		}
		posts[i] = deleted
	}
	return posts, nil
}
