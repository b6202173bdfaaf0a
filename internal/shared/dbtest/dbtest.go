// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeorgeMish/Yatube/internal/migrate"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
)

// Open returns a fresh database with foreign keys enforced, so cascades
// behave as they do on Postgres.
func Open(t testing.TB) *db.Store {
	t.Helper()
	cfg := db.GormConfig()
	cfg.Logger = logger.Discard
	g, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), cfg)
	require.NoError(t, err)

	sqlDB, err := g.DB()
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := db.Wrap(g)
	require.NoError(t, migrate.AutoMigrateAll(store))
	return store
}
