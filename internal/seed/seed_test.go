package seed

import (
	"context"
	"testing"
	"time"

	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/testutil"
	"postboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPost_ValidAndWithinWindow(t *testing.T) {
	opts := Options{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)

	for i := 0; i < 20; i++ {
		p := f.BuildPost()
		require.NoError(t, validation.ValidateCreatePost(validation.CreatePostRequest{
			Name:        p.Name,
			Description: p.Description,
		}))
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		assert.Nil(t, p.DeletedAt)
		if time.Since(p.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
			t.Fatalf("created_at too old: %v", p.CreatedAt)
		}
	}
}

func TestBuildPost_Overrides(t *testing.T) {
	f := NewFactory(nil, Options{})

	p := f.BuildPost(func(p *models.Post) { p.Name = "pinned" })
	assert.Equal(t, "pinned", p.Name)
}

func TestCreatePost_DryRunSkipsRepository(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true})

	p, err := f.CreatePost(context.Background())
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
}

func TestSeeder_SeedAndClear(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	s := NewSeeder(db, Options{MaxDays: 7})

	created, err := s.SeedPosts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, created, 5)

	deleted, err := s.SeedDeleted(ctx, 2)
	require.NoError(t, err)
	for _, p := range deleted {
		assert.True(t, p.IsDeleted())
	}

	live, err := repository.NewPostRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, live, 5)
	for i := 1; i < len(live); i++ {
		assert.False(t, live[i].CreatedAt.After(live[i-1].CreatedAt))
	}

	require.NoError(t, s.ClearAll(ctx))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.PostRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}
