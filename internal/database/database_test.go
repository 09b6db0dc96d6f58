package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"postboard/internal/config"
	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestConfigurePool_Defaults(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, configurePool(db, &config.Config{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "posts"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=posts sslmode=disable", dsn)
}

func TestCustomGormLogger_IgnoresRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query error")

	silent := l.LogMode(logger.Silent)
	buf.Reset()
	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Empty(t, buf.String())
}

func TestRegisteredMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)

	first := GetMigrationByVersion(1)
	require.NotNil(t, first)
	assert.Equal(t, "create_posts", first.Name)
	assert.Equal(t, "000001_create_posts", first.String())
	assert.Contains(t, first.UpScript, "CREATE TABLE IF NOT EXISTS posts")
	assert.Contains(t, first.DownScript, "DROP TABLE IF EXISTS posts")
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("up2")},
		"m/000002_second.down.sql": {Data: []byte("down2")},
		"m/000001_first.up.sql":    {Data: []byte("up1")},
		"m/000001_first.down.sql":  {Data: []byte("down1")},
		"m/README.md":              {Data: []byte("ignored")},
		"m/broken.up.sql":          {Data: []byte("ignored")},
	}

	got, err := loadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "up1", got[0].UpScript)
	assert.Equal(t, "second", got[1].Name)
}

func TestLoadMigrations_MissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_first.up.sql": {Data: []byte("up1")},
	}
	_, err := loadMigrations(fsys, "m")
	assert.Error(t, err)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		runSQL      bool
		runAuto     bool
		expectError bool
	}{
		{name: "hybrid dev", cfg: config.Config{Env: "development"}, runSQL: true, runAuto: true},
		{name: "hybrid prod", cfg: config.Config{Env: "production", DBSchemaMode: "hybrid"}, runSQL: true},
		{name: "sql", cfg: config.Config{Env: "development", DBSchemaMode: "SQL"}, runSQL: true},
		{name: "auto dev", cfg: config.Config{Env: "development", DBSchemaMode: "auto"}, runAuto: true},
		{name: "auto prod refused", cfg: config.Config{Env: "prod", DBSchemaMode: "auto"}, expectError: true},
		{name: "auto prod allowed", cfg: config.Config{Env: "prod", DBSchemaMode: "auto", DBAutoMigrateAllowDestructive: true}, runAuto: true},
		{name: "unknown", cfg: config.Config{DBSchemaMode: "magic"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			runSQL, runAuto, err := schemaPolicy(&cfg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}

	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7, 3}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000003, 000007")
}

func TestIsMissingTableError(t *testing.T) {
	assert.True(t, isMissingTableError(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, isMissingTableError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isMissingTableError(errors.New("no such table: migration_logs")))
	assert.False(t, isMissingTableError(errors.New("connection refused")))
}

type fakeMigrationStore struct {
	applied []int
	ran     []int
	failOn  int
}

func (f *fakeMigrationStore) GetAppliedMigrations(context.Context) ([]int, error) {
	return f.applied, nil
}

func (f *fakeMigrationStore) ApplyMigration(_ context.Context, version int, _, _ string) error {
	if version == f.failOn {
		return errors.New("syntax error")
	}
	f.ran = append(f.ran, version)
	return nil
}

func (f *fakeMigrationStore) RemoveMigration(context.Context, int) error { return nil }

func TestApplyPending(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	store := &fakeMigrationStore{applied: []int{1}}
	require.NoError(t, applyPending(context.Background(), store, registered))
	assert.Equal(t, []int{2, 3}, store.ran)

	failing := &fakeMigrationStore{failOn: 2}
	err := applyPending(context.Background(), failing, registered)
	require.Error(t, err)
	assert.Equal(t, []int{1}, failing.ran)
}

func TestMigrationStore_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	store := NewMigrationStore(db)
	ctx := context.Background()

	applied, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	require.NoError(t, db.AutoMigrate(&MigrationLog{}))
	require.NoError(t, store.ApplyMigration(ctx, 42, "scratch", "CREATE TABLE scratch (id INTEGER)"))

	applied, err = store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{42}, applied)
	assert.True(t, db.Migrator().HasTable("scratch"))

	require.NoError(t, store.RemoveMigration(ctx, 42))
	applied, err = store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRollback_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	store := NewMigrationStore(db)
	ctx := context.Background()
	scratch := Migration{Version: 42, Name: "scratch", DownScript: "DROP TABLE scratch"}

	require.NoError(t, db.AutoMigrate(&MigrationLog{}))
	require.NoError(t, store.ApplyMigration(ctx, 42, "scratch", "CREATE TABLE scratch (id INTEGER)"))

	require.NoError(t, rollback(ctx, db, scratch))
	assert.False(t, db.Migrator().HasTable("scratch"))
	applied, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRollback_SQLite_KeepsSchemaWhenLogUpdateFails(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	scratch := Migration{Version: 42, Name: "scratch", DownScript: "DROP TABLE scratch"}

	require.NoError(t, db.Exec("CREATE TABLE scratch (id INTEGER)").Error)

	// migration_logs does not exist, so removing the record fails
	err := rollback(ctx, db, scratch)
	require.Error(t, err)
	assert.True(t, db.Migrator().HasTable("scratch"))
}

func TestPersistentModels_IncludesPostRecord(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*models.PostRecord); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include PostRecord")
}

func TestPendingMigrations(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	pending := pendingMigrations([]int{1}, registered)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)
}
