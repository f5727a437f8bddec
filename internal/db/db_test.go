package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/model"
	"coursehub/internal/repository"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := Open("oracle", "whatever")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	gormDB, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gormDB))

	for _, m := range Models() {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}

	require.NoError(t, DropAll(gormDB))
	assert.False(t, gormDB.Migrator().HasTable(&model.Course{}))
}

func TestMigrateUp_AppliesEmbeddedMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "migrate.db")
	gormDB, err := Open(DriverSQLite, dsn)
	require.NoError(t, err)

	m, err := NewMigrator(gormDB, DriverSQLite)
	require.NoError(t, err)

	require.NoError(t, MigrateUp(m))
	// A second run is a no-op.
	require.NoError(t, MigrateUp(m))

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(3), version)

	assert.True(t, gormDB.Migrator().HasTable("users"))
	assert.True(t, gormDB.Migrator().HasTable("courses"))
	assert.True(t, gormDB.Migrator().HasTable("enrollments"))

	course := model.Course{Title: "Migrations 101"}
	require.NoError(t, gormDB.Create(&course).Error)
}

func TestMigrateUp_SchemaScansTimestamps(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "scan.db")
	gormDB, err := Open(DriverSQLite, dsn)
	require.NoError(t, err)

	m, err := NewMigrator(gormDB, DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, MigrateUp(m))

	courses := repository.NewCourseRepository(gormDB)
	course := &model.Course{Title: "Migrations 101"}
	require.NoError(t, courses.Create(ctx, course))

	found, err := courses.FindByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Migrations 101", found.Title)
	assert.False(t, found.CreatedAt.IsZero())

	users := repository.NewUserRepository(gormDB)
	user := &model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))

	byEmail, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.False(t, byEmail.CreatedAt.IsZero())
	assert.False(t, byEmail.UpdatedAt.IsZero())
}

func TestMySQLConfig_ForcesParseTime(t *testing.T) {
	cfg, err := mysqlConfig("app:secret@tcp(localhost:3306)/coursehub?charset=utf8mb4")
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "coursehub", cfg.DBName)
	assert.Contains(t, cfg.FormatDSN(), "parseTime=true")

	_, err = mysqlConfig("not a dsn")
	assert.Error(t, err)
}

func TestNewMigrator_UnsupportedDriver(t *testing.T) {
	gormDB, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)

	_, err = NewMigrator(gormDB, "oracle")
	assert.Error(t, err)
}
