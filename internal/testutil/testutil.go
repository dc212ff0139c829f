// Package testutil holds fixtures shared by the data layer tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/stretchr/testify/require"
)

// NewStore opens a migrated store in a temp directory, closed on cleanup
func NewStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "sonar-test.db"))
	require.NoError(t, err, "failed to open test db")
	t.Cleanup(func() { _ = db.Close() })

	return database.NewStore(db, logging.Discard())
}

// Clock is a manually advanced time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts at a fixed instant
func NewClock() *Clock {
	return &Clock{now: time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
