package testutil

import (
	"os"
	"strings"
	"testing"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/pkg/database"

	"gorm.io/gorm"
)

// NewPostgresDB connects to TEST_DATABASE_URL with a real connection pool,
// so row locks are exercised across concurrent transactions. It skips unless
// INTEGRATION_TESTS is set.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}
	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("set TEST_DATABASE_URL to a disposable postgres database")
	}

	db, err := database.ConnectDB(dsn, database.Pool{MaxIdle: 4, MaxOpen: 16, MaxLifetime: time.Minute})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
