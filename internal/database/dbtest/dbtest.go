// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vales/internal/database"
	"vales/internal/pkg/logger"
)

// New returns a fresh database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
