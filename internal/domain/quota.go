package domain

import "time"

// QuotaRecord tracks how many generations a user has started today.
// DailyCount resets to zero the first time the record is read on a date
// later than LastReset.
type QuotaRecord struct {
	TelegramID string
	DailyCount int
	LastReset  time.Time
}

// Exhausted reports whether the user has used up the daily limit.
func (q QuotaRecord) Exhausted(limit int) bool {
	return q.DailyCount >= limit
}
