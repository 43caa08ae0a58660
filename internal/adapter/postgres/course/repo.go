// Package course implements the Course repository using PostgreSQL.
// The import pipeline reads courses for their capacity and advances the
// cached enrollment counter through ReserveSeat only.
package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/domain"
)

// Repo provides course persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new course repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a course or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Course
	err := q.QueryRow(ctx,
		`SELECT id, title, max_students, current_enrollment, created_at, updated_at
		 FROM courses WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Title, &c.MaxStudents, &c.CurrentEnrollment, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "course", id)
	}

	return &c, nil
}

// ReserveSeat atomically increments the cached enrollment counter if the
// course is below capacity. Returns domain.ErrCapacity when the course is
// full and domain.ErrNotFound when it does not exist. This conditional
// update is the authoritative capacity guard; callers run it in the same
// transaction as the enrollment insert.
func (r *Repo) ReserveSeat(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE courses
		 SET current_enrollment = current_enrollment + 1, updated_at = now()
		 WHERE id = $1 AND current_enrollment < max_students`,
		id,
	)
	if err != nil {
		return postgres.MapError(err, "course", id)
	}

	if tag.RowsAffected() == 0 {
		// Course missing or full; one more read to tell the two apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("course %s: %w", id, domain.ErrCapacity)
	}

	return nil
}
