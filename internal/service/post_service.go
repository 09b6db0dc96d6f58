// Package service holds the post use cases that sit between the HTTP
// handlers and the repository.
package service

import (
	"context"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Name        string
	Description string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost persists a new post. Input is expected to be validated already.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (models.PostPrimitive, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.CreatePost")
	defer span.End()

	post := models.NewPost(in.Name, in.Description)
	span.AddAttributes(attribute.String("post.id", post.ID.String()))

	created, err := s.postRepo.Create(ctx, post)
	observability.RecordPostOperation("create", err)
	if err != nil {
		span.SetError(err)
		return models.PostPrimitive{}, err
	}

	middleware.Logger.InfoContext(ctx, "post created", slog.String("post_id", created.ID.String()))
	return created.ToPrimitive(), nil
}

// DeletePost soft-deletes the post identified by rawID.
func (s *PostService) DeletePost(ctx context.Context, rawID string) (models.PostPrimitive, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.DeletePost")
	defer span.End()

	id, err := models.ParsePostID(rawID)
	if err != nil {
		observability.RecordPostOperation("delete", err)
		return models.PostPrimitive{}, err
	}
	span.AddAttributes(attribute.String("post.id", id.String()))

	deleted, err := s.postRepo.Delete(ctx, id)
	observability.RecordPostOperation("delete", err)
	if err != nil {
		span.SetError(err)
		return models.PostPrimitive{}, err
	}

	middleware.Logger.InfoContext(ctx, "post deleted", slog.String("post_id", deleted.ID.String()))
	return deleted.ToPrimitive(), nil
}

// ListPosts returns every live post in repository order.
func (s *PostService) ListPosts(ctx context.Context) ([]models.PostPrimitive, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ListPosts")
	defer span.End()

	posts, err := s.postRepo.List(ctx)
	observability.RecordPostOperation("list", err)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	out := make([]models.PostPrimitive, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ToPrimitive())
	}
	span.AddAttributes(attribute.Int("post.count", len(out)))
	return out, nil
}

// GetPost returns a single live post.
func (s *PostService) GetPost(ctx context.Context, rawID string) (models.PostPrimitive, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPost")
	defer span.End()

	id, err := models.ParsePostID(rawID)
	if err != nil {
		observability.RecordPostOperation("get", err)
		return models.PostPrimitive{}, err
	}

	post, err := s.postRepo.GetByID(ctx, id, false)
	observability.RecordPostOperation("get", err)
	if err != nil {
		span.SetError(err)
		return models.PostPrimitive{}, err
	}
	return post.ToPrimitive(), nil
}
