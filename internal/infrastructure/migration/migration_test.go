package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/constants"
)

func openSQLite(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return gdb
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		env    string
		want   string
	}{
		{"sqlite always uses goose", "sqlite", constants.EnvDevelopment, "goose"},
		{"mysql development auto migrates", "mysql", constants.EnvDevelopment, "gorm_auto_migrate"},
		{"mysql production runs scripts", "mysql", constants.EnvProduction, "golang_migrate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SelectStrategy(&config.DatabaseConfig{Driver: tt.driver}, tt.env)
			assert.Equal(t, tt.want, s.GetName())
		})
	}
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	gdb := openSQLite(t)
	strategy := ScriptStrategy(&config.DatabaseConfig{Driver: "sqlite"})

	require.NoError(t, strategy.Migrate(gdb))
	for _, table := range []string{"reports", "report_events", "report_evidence", "report_surveys", "accounts", "system_settings"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	version, dirty, err := strategy.GetVersion(gdb)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)

	require.NoError(t, strategy.MigrateDown(gdb, 1))
	assert.False(t, gdb.Migrator().HasTable("reports"))
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	gdb := openSQLite(t)
	require.NoError(t, NewGormAutoMigrateStrategy().Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable("report_surveys"))
}

func TestEmbeddedMySQLScriptsArePaired(t *testing.T) {
	entries, err := Scripts.ReadDir(mysqlScriptsDir)
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, func() time.Time { return time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC) })

	up, down, err := g.CreateMigration("add_report_tags")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240510140000_add_report_tags.up.sql"), up)
	assert.Equal(t, filepath.Join(dir, "20240510140000_add_report_tags.down.sql"), down)

	content, err := os.ReadFile(up)
	require.NoError(t, err)
	assert.Contains(t, string(content), "add_report_tags")

	_, _, err = g.CreateMigration("")
	assert.Error(t, err)
}
