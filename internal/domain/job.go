package domain

import "time"

// JobStatus enumerates remote generation job lifecycle states.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further status transitions are expected.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job records one submitted video-generation request. ProviderJobID is the
// correlation key for reconciliation against the remote provider.
type Job struct {
	ID            string
	TelegramID    string
	ProviderJobID string
	Status        JobStatus
	Model         string
	Prompt        string
	CreatedAt     time.Time
}
