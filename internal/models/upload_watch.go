package models

import "time"

type CheckStatus string

const (
	StatusPending   CheckStatus = "pending"
	StatusCompleted CheckStatus = "completed"
	StatusFailed    CheckStatus = "failed"
	StatusTimedOut  CheckStatus = "timed_out"
	StatusSkipped   CheckStatus = "skipped"
)

// Terminal reports whether no further transition is allowed from s.
func (s CheckStatus) Terminal() bool {
	return s != StatusPending && s != ""
}

type UploadWatch struct {
	UploadID    string      `gorm:"primaryKey" json:"upload_id"`
	Status      CheckStatus `gorm:"index" json:"status"`
	Attempts    int         `json:"attempts"`
	LastError   string      `json:"last_error,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
