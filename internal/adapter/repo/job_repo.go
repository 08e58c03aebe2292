package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"videobot/internal/domain"
)

// JobRepositoryPG implements domain.JobRepository backed by PostgreSQL.
type JobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(pool *pgxpool.Pool) *JobRepositoryPG {
	return &JobRepositoryPG{pool: pool}
}

// Create inserts a new job record.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	query := `
INSERT INTO jobs (id, telegram_id, job_id, status, model, prompt)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.TelegramID,
		job.ProviderJobID,
		job.Status,
		job.Model,
		job.Prompt,
	)
	return err
}

// UpdateStatus records the terminal outcome of a job.
func (r *JobRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, id, status)
	return err
}

var _ domain.JobRepository = (*JobRepositoryPG)(nil)
