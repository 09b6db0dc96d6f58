// Package seed provides helpers to create demo data for the posts table.
// These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configures generated data.
type Options struct {
	// DryRun builds posts without writing them.
	DryRun bool
	// MaxDays spreads created_at over this many days back. Defaults to 90.
	MaxDays int
}

// Factory builds posts and persists them through the repository.
type Factory struct {
	repo  repository.PostRepository
	opts  Options
	faker *gofakeit.Faker
}

// NewFactory creates a Factory. repo may be nil in dry-run mode.
func NewFactory(repo repository.PostRepository, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{repo: repo, opts: opts, faker: gofakeit.New(0)}
}

// BuildPost constructs a valid post with a realistic timestamp but does not
// persist it.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) *models.Post {
	name := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(2, 6)), ".")
	if len([]rune(name)) > validation.MaxPostNameLength {
		name = string([]rune(name)[:validation.MaxPostNameLength])
	}
	post := models.NewPost(name, f.faker.Paragraph(1, 3, 12, "\n"))

	back := time.Duration(f.faker.Number(0, f.opts.MaxDays-1))*24*time.Hour +
		time.Duration(f.faker.Number(0, 23))*time.Hour +
		time.Duration(f.faker.Number(0, 59))*time.Minute
	post.CreatedAt = post.CreatedAt.Add(-back)
	post.UpdatedAt = post.CreatedAt

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds a post and stores it.
func (f *Factory) CreatePost(ctx context.Context, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(overrides...)
	if err := validation.ValidateCreatePost(validation.CreatePostRequest{
		Name:        post.Name,
		Description: post.Description,
	}); err != nil {
		return nil, fmt.Errorf("generated post is invalid: %w", err)
	}

	if f.opts.DryRun {
		middleware.Logger.DebugContext(ctx, "[dry-run] CreatePost", slog.String("id", post.ID.String()))
		return post, nil
	}
	return f.repo.Create(ctx, post)
}
