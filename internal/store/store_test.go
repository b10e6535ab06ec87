package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frostkeep/frostkeep/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive for the test
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))
	return db
}

func newTestStores(t *testing.T) *Stores {
	t.Helper()
	return New(newTestDB(t))
}

func mustCreateUser(t *testing.T, s *Stores, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Firstname: "jean",
		Lastname:  "dupont",
		Email:     email,
		Password:  "x",
		IsActive:  true,
	}
	require.NoError(t, s.Users.Create(context.Background(), user))
	return user
}

func mustCreateFreezerType(t *testing.T, s *Stores, name string) *domain.FreezerType {
	t.Helper()
	ft := &domain.FreezerType{Name: name}
	require.NoError(t, s.FreezerTypes.Create(context.Background(), ft))
	return ft
}

func mustCreateFreezer(t *testing.T, s *Stores, name string, typeID, userID int64) *domain.Freezer {
	t.Helper()
	f := &domain.Freezer{Name: name, FreezerTypeID: typeID, UserID: userID}
	require.NoError(t, s.Freezers.Create(context.Background(), f))
	return f
}
