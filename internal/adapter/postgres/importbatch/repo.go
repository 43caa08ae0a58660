// Package importbatch implements the ImportBatch repository using PostgreSQL.
// Batch records are the audit trail of the import pipeline: created when a
// run starts, finalized exactly once, and never deleted automatically.
package importbatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/domain"
)

const batchColumns = `id, course_id, actor_id, kind, file_name, file_bytes,
	total_records, successful_records, failed_records, duplicate_records,
	status, error_message, started_at, completed_at`

// Repo provides import batch persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new import batch repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new batch in the processing state with zeroed counts.
func (r *Repo) Create(ctx context.Context, b *domain.ImportBatch) (*domain.ImportBatch, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO import_batches (id, course_id, actor_id, kind, file_name, file_bytes,
		   total_records, successful_records, failed_records, duplicate_records,
		   status, error_message, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.CourseID, b.ActorID, string(b.Kind), b.FileName, b.FileBytes,
		b.Total, b.Successful, b.Failed, b.Duplicate,
		string(b.Status), b.ErrorMessage, b.StartedAt, b.CompletedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "import_batch", b.ID)
	}

	return b, nil
}

// Finalize moves a processing batch to completed with its final counts.
// Only batches still in processing are updated; finalizing twice or
// finalizing a failed batch returns domain.ErrConflict.
func (r *Repo) Finalize(ctx context.Context, id uuid.UUID, total, successful, failed, duplicate int, completedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE import_batches
		 SET total_records = $2, successful_records = $3, failed_records = $4,
		     duplicate_records = $5, status = $6, completed_at = $7
		 WHERE id = $1 AND status = $8`,
		id, total, successful, failed, duplicate,
		string(domain.BatchStatusCompleted), completedAt, string(domain.BatchStatusProcessing),
	)
	if err != nil {
		return postgres.MapError(err, "import_batch", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("import_batch %s not in processing state: %w", id, domain.ErrConflict)
	}

	return nil
}

// MarkFailed moves a processing batch to failed with a batch-level error
// message. Row-level failures never reach this path.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, message string, completedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE import_batches
		 SET status = $2, error_message = $3, completed_at = $4
		 WHERE id = $1 AND status = $5`,
		id, string(domain.BatchStatusFailed), message, completedAt, string(domain.BatchStatusProcessing),
	)
	if err != nil {
		return postgres.MapError(err, "import_batch", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("import_batch %s not in processing state: %w", id, domain.ErrConflict)
	}

	return nil
}

// GetByID returns a batch or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+batchColumns+` FROM import_batches WHERE id = $1`, id)
	b, err := scanBatch(row)
	if err != nil {
		return nil, postgres.MapError(err, "import_batch", id)
	}

	return b, nil
}

// ListByCourse returns a course's batches, newest first.
func (r *Repo) ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]domain.ImportBatch, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+batchColumns+` FROM import_batches
		 WHERE course_id = $1 ORDER BY started_at DESC LIMIT $2 OFFSET $3`,
		courseID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list import_batches course=%s: %w", courseID, err)
	}
	defer rows.Close()

	var batches []domain.ImportBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import_batch: %w", err)
		}
		batches = append(batches, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import_batches: %w", err)
	}

	return batches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*domain.ImportBatch, error) {
	var b domain.ImportBatch
	var kind, status string
	if err := row.Scan(
		&b.ID, &b.CourseID, &b.ActorID, &kind, &b.FileName, &b.FileBytes,
		&b.Total, &b.Successful, &b.Failed, &b.Duplicate,
		&status, &b.ErrorMessage, &b.StartedAt, &b.CompletedAt,
	); err != nil {
		return nil, err
	}
	b.Kind = domain.ImportKind(kind)
	b.Status = domain.BatchStatus(status)
	return &b, nil
}
