// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PostID identifies a post. The zero value is not a valid identifier.
type PostID struct {
	value string
}

// NewPostID returns a fresh random identifier.
func NewPostID() PostID {
	return PostID{value: uuid.NewString()}
}

// ParsePostID validates raw as a canonical 36 character RFC 4122 UUID of
// version 1 through 8. The nil and max UUIDs are accepted as well.
func ParsePostID(raw string) (PostID, error) {
	if len(raw) != 36 {
		return PostID{}, NewInvalidIDError(raw)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil || !isStandardUUID(parsed) {
		return PostID{}, NewInvalidIDError(raw)
	}
	return PostID{value: parsed.String()}, nil
}

func isStandardUUID(u uuid.UUID) bool {
	if u == uuid.Nil || u == uuid.Max {
		return true
	}
	return u.Variant() == uuid.RFC4122 && u.Version() >= 1 && u.Version() <= 8
}

// String returns the canonical (lowercase) UUID form.
func (id PostID) String() string {
	return id.value
}

// IsZero reports whether id was never assigned.
func (id PostID) IsZero() bool {
	return id.value == ""
}

// Post is the aggregate persisted in the posts table.
type Post struct {
	ID          PostID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// PostPrimitive is the transport projection of a Post.
type PostPrimitive struct {
	ID          string     `json:"id" yaml:"id" example:"5f0b8d3e-2a0c-4d51-9b7e-1b2d7f3c9a10"`
	Name        string     `json:"name" yaml:"name" example:"First post"`
	Description string     `json:"description" yaml:"description" example:"Hello there"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
}

// NewPost builds a post with a generated id. CreatedAt and UpdatedAt share
// the same instant, truncated to the precision Postgres stores.
func NewPost(name, description string) *Post {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &Post{
		ID:          NewPostID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ToPrimitive projects the post for transport.
func (p *Post) ToPrimitive() PostPrimitive {
	out := PostPrimitive{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.DeletedAt != nil {
		deletedAt := *p.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return out
}

// IsDeleted reports whether the post has been soft deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}
