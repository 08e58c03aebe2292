package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"videobot/internal/domain"
)

// QuotaRepositoryPG implements domain.QuotaRepository backed by PostgreSQL.
type QuotaRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewQuotaRepository creates a new QuotaRepositoryPG.
func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepositoryPG {
	return &QuotaRepositoryPG{pool: pool}
}

// GetOrCreate returns the quota record for telegramID, inserting a fresh row
// if absent. A record last reset on an earlier date has its counter zeroed
// in the same statement, so the lazy rollover is a single atomic mutation.
func (r *QuotaRepositoryPG) GetOrCreate(ctx context.Context, telegramID string, today time.Time) (*domain.QuotaRecord, error) {
	query := `
INSERT INTO users (telegram_id, daily_count, last_reset)
VALUES ($1, 0, $2::date)
ON CONFLICT (telegram_id) DO UPDATE
SET daily_count = CASE WHEN users.last_reset < EXCLUDED.last_reset THEN 0 ELSE users.daily_count END,
    last_reset  = GREATEST(users.last_reset, EXCLUDED.last_reset)
RETURNING telegram_id, daily_count, last_reset;
`

	row := r.pool.QueryRow(ctx, query, telegramID, today)

	var q domain.QuotaRecord
	if err := row.Scan(&q.TelegramID, &q.DailyCount, &q.LastReset); err != nil {
		return nil, err
	}
	return &q, nil
}

// Increment adds one to the user's daily counter. Missing records are left
// untouched; GetOrCreate is expected to have run earlier in the same flow.
func (r *QuotaRepositoryPG) Increment(ctx context.Context, telegramID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET daily_count = daily_count + 1 WHERE telegram_id = $1`, telegramID)
	return err
}

var _ domain.QuotaRepository = (*QuotaRepositoryPG)(nil)
