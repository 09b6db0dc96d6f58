// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"postboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens an in-memory SQLite database with the posts table
// migrated. A single connection keeps every query on the same memory db.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.PostRecord{}); err != nil {
		t.Fatalf("migrate posts: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
