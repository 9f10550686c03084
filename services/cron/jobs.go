package cron

import (
	"fmt"
	"time"

	"github.com/bookmypg/api/model"
)

// PurgeExpiredTokens deletes blacklist rows whose tokens have expired.
// Expired tokens fail JWT validation on their own, so the rows only serve
// the revocation check while the token is still live.
func (m *CronManager) PurgeExpiredTokens() {
	jobName := "purge_expired_tokens"

	result := m.db.
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to purge expired tokens: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Purged %d expired tokens", result.RowsAffected))
}

// CleanupJobLogs removes cron job logs older than 30 days
func (m *CronManager) CleanupJobLogs() {
	jobName := "cleanup_job_logs"

	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.
		Where("created_at < ? AND status <> ?", cutoff, "running").
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup job logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d old job logs", result.RowsAffected))
}
