package domain

import (
	"context"
	"time"
)

// QuotaRepository persists per-user daily usage counters.
type QuotaRepository interface {
	// GetOrCreate returns the quota record for telegramID, creating it with
	// a zero count if absent. When the stored reset date is earlier than
	// today the counter is reset to zero as a side effect.
	GetOrCreate(ctx context.Context, telegramID string, today time.Time) (*QuotaRecord, error)
	// Increment adds one to the user's daily counter. It is a no-op for
	// records that do not exist.
	Increment(ctx context.Context, telegramID string) error
}

// JobRepository persists job records.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id string, status JobStatus) error
}
