package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PostRecord is the row representation of a Post.
type PostRecord struct {
	ID          string         `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text;not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the database table name for PostRecord.
func (PostRecord) TableName() string {
	return "posts"
}

// NewPostRecord maps a domain post onto a row.
func NewPostRecord(p *Post) *PostRecord {
	rec := &PostRecord{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.DeletedAt != nil {
		rec.DeletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}
	return rec
}

// ToDomain maps the row back to a fresh domain post.
func (r *PostRecord) ToDomain() (*Post, error) {
	id, err := ParsePostID(r.ID)
	if err != nil {
		return nil, fmt.Errorf("stored post has malformed id %q: %w", r.ID, err)
	}
	p := &Post{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.DeletedAt.Valid {
		deletedAt := r.DeletedAt.Time.UTC()
		p.DeletedAt = &deletedAt
	}
	return p, nil
}
