// Package dbtest opens throwaway SQLite databases with the production schema.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/field-scheduler/internal/db"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// Open returns an isolated in-memory database. A single connection keeps
// every query on the same memory database and serialises writers.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func CreateUser(t testing.TB, gdb *gorm.DB, username string, owner bool) *models.User {
	t.Helper()

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FieldOwner:   owner,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateField stores a field open Tuesday..Thursday, 16:00..20:00.
func CreateField(t testing.TB, gdb *gorm.DB, ownerID uint) *models.Field {
	t.Helper()

	f := &models.Field{
		FieldOwnerID:     ownerID,
		Name:             "Arena",
		Location:         "Downtown",
		Sport:            "Football",
		PricePerHour:     decimal.NewFromInt(40),
		StartWorkingDay:  2,
		StartWorkingHour: 16,
		EndWorkingDay:    4,
		EndWorkingHour:   20,
	}
	if err := gdb.Create(f).Error; err != nil {
		t.Fatalf("create field: %v", err)
	}
	return f
}
