package watch

import (
	"strings"
	"time"

	"dq-report-service/internal/models"
)

// ParseReported maps the portal's free-form dq status onto a watch state.
// The second result is false for values the watcher does not recognise.
func ParseReported(reported string) (models.CheckStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(reported))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)

	switch s {
	case "", "in_progress", "pending", "running", "queued":
		return models.StatusPending, true
	case "completed", "complete", "success", "succeeded", "done":
		return models.StatusCompleted, true
	case "failed", "failure", "error":
		return models.StatusFailed, true
	case "skipped":
		return models.StatusSkipped, true
	}
	return models.StatusPending, false
}

// Next computes the following state. Terminal states never change; a
// pending upload that has waited at least maxWait times out.
func Next(current models.CheckStatus, reported models.CheckStatus, waited, maxWait time.Duration) models.CheckStatus {
	if current.Terminal() {
		return current
	}
	if reported != models.StatusPending {
		return reported
	}
	if maxWait > 0 && waited >= maxWait {
		return models.StatusTimedOut
	}
	return models.StatusPending
}
