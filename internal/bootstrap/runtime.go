// Package bootstrap wires the process-wide runtime shared by the server and
// the maintenance commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs migrations according to cfg.DBSchemaMode.
	ApplySchema bool
	// SeedPosts inserts this many demo posts when the table is empty.
	// Ignored outside development.
	SeedPosts int
}

// ConfigureLogging installs the global logger for cfg's environment.
func ConfigureLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if !cfg.IsProduction() && os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	middleware.SetLogger(middleware.NewLogger(os.Stdout, cfg.Env, level))
}

// InitRuntime connects to DB and Redis, applies the schema and optionally
// seeds demo data. The Redis client is nil when Redis is not configured or
// unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return nil, nil, fmt.Errorf("schema apply failed: %w", err)
		}
	}

	if err := seedDevPosts(ctx, cfg, db, opts.SeedPosts); err != nil {
		return nil, nil, fmt.Errorf("failed to seed demo posts: %w", err)
	}

	return db, notifications.Connect(cfg.RedisURL), nil
}

func seedDevPosts(ctx context.Context, cfg *config.Config, db *gorm.DB, n int) error {
	if n <= 0 || cfg.Env != "development" {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Table("posts").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	created, err := seed.NewSeeder(db, seed.Options{}).SeedPosts(ctx, n)
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "development posts seeded", slog.Int("count", len(created)))
	return nil
}
