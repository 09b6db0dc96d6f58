package validation

import (
	"unicode/utf8"

	"postboard/internal/models"
)

// MaxPostNameLength bounds Post.Name in characters, matching varchar(255).
const MaxPostNameLength = 255

// CreatePostRequest is the body accepted by the create endpoint.
type CreatePostRequest struct {
	Name        string `json:"name" example:"First post"`
	Description string `json:"description" example:"Hello there"`
}

// ValidateCreatePost checks the create payload. Values are checked as given,
// without trimming.
func ValidateCreatePost(req CreatePostRequest) error {
	nameLen := utf8.RuneCountInString(req.Name)
	switch {
	case nameLen == 0:
		return models.NewValidationError("name is required")
	case nameLen > MaxPostNameLength:
		return models.NewValidationError("name must be at most 255 characters")
	}
	if utf8.RuneCountInString(req.Description) == 0 {
		return models.NewValidationError("description is required")
	}
	return nil
}
