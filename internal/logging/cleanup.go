package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/crowdbase-dev/crowdbase/internal/models"
)

const auditRetention = 30 * 24 * time.Hour

// StartCleanup prunes audit_logs older than the retention window. One sweep
// runs at startup, then daily until done is closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		sweepAuditLogs(db)
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweepAuditLogs(db)
			case <-done:
				return
			}
		}
	}()
}

func sweepAuditLogs(db *gorm.DB) {
	cutoff := time.Now().Add(-auditRetention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.AuditLog{})
	if result.Error != nil {
		slog.Error("audit log cleanup failed", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("audit log cleanup completed", "deleted", result.RowsAffected)
	}
}
