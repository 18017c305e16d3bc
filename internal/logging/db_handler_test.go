package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdbase-dev/crowdbase/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestDBHandlerLevels(t *testing.T) {
	h := NewDBHandler(newTestDB(t))
	defer h.Stop()

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestDBHandlerPersistsErrorRecords(t *testing.T) {
	db := newTestDB(t)
	h := NewDBHandler(db)
	defer h.Stop()

	log := slog.New(h)
	log.Error("project delete failed",
		"actor_id", "user-123",
		"entity", "project",
		"action", "delete",
		"error", "boom",
		"request_id", "req-9",
	)
	h.flush()

	var rows []models.AuditLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "project delete failed", row.Message)
	assert.Equal(t, "ERROR", row.Level)
	require.NotNil(t, row.ActorID)
	assert.Equal(t, "user-123", *row.ActorID)
	assert.Equal(t, "project", row.Entity)
	assert.Equal(t, "delete", row.Action)
	assert.Equal(t, "boom", row.Error)
	assert.Contains(t, string(row.Extra), "req-9")
}

func TestMultiHandlerFanOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(m)

	log.Info("only for the first sink")
	log.Error("for both sinks")

	assert.Contains(t, a.String(), "only for the first sink")
	assert.NotContains(t, b.String(), "only for the first sink")
	assert.Contains(t, a.String(), "for both sinks")
	assert.Contains(t, b.String(), "for both sinks")
}
