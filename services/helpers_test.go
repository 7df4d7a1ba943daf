package services

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"keeper/models"
)

// newTestDB opens an in-memory database limited to a single connection
// so concurrent service calls serialize on the pool instead of racing
// separate in-memory databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.CalendarSeries{},
		&models.Calendar{},
		&models.CalendarContact{},
		&models.AuditLog{},
	))

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubClock returns a fixed time. Safe for concurrent use.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock(t time.Time) *stubClock {
	return &stubClock{now: t}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func seedUser(t *testing.T, db *gorm.DB, uid string) *models.User {
	t.Helper()
	user := models.User{
		UID:      uid,
		Provider: models.ProviderGoogle,
		Name:     "Test User " + uid,
		Email:    uid + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedContact(t *testing.T, db *gorm.DB, userID uint, name string) *models.Contact {
	t.Helper()
	contact := models.Contact{
		UserID:   userID,
		Name:     name,
		Category: models.CategoryWork,
	}
	require.NoError(t, db.Create(&contact).Error)
	return &contact
}
