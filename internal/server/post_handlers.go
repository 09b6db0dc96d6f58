package server

import (
	"postboard/internal/models"
	"postboard/internal/notifications"
	"postboard/internal/service"
	"postboard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PostListResponse wraps the list of posts.
type PostListResponse struct {
	Items []models.PostPrimitive `json:"items"`
}

// ListPosts handles GET /api/v1/posts
// @Summary List posts
// @Description List every post that has not been deleted, newest first.
// @Tags posts
// @Produce json
// @Success 200 {object} PostListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(PostListResponse{Items: posts})
}

// CreatePost handles POST /api/v1/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param body body validation.CreatePostRequest true "Post to create"
// @Success 201 {object} models.PostPrimitive
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req validation.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	if err := validation.ValidateCreatePost(req); err != nil {
		return err
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	s.publishPostEvent(c.UserContext(), notifications.EventPostCreated, post)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/v1/posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} models.PostPrimitive
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/v1/posts/:id
// @Summary Delete post
// @Description Soft-deletes the post and returns it with deletedAt set.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} models.PostPrimitive
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post, err := s.postService.DeletePost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	s.publishPostEvent(c.UserContext(), notifications.EventPostDeleted, post)
	return c.JSON(post)
}
