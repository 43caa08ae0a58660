// Package enrollment implements the Enrollment repository using PostgreSQL.
package enrollment

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/domain"
)

const enrollmentColumns = `id, course_id, student_id, student_name, student_email, university,
	external_id, enrolled_at, progress, grade, completed_at, status, import_source, import_batch_id`

// Repo provides enrollment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new enrollment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new enrollment. A violated (course_id, student_id) unique
// index surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO enrollments (id, course_id, student_id, student_name, student_email, university,
		   external_id, enrolled_at, progress, grade, completed_at, status, import_source, import_batch_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.CourseID, e.StudentID, e.StudentName, e.StudentEmail, e.University,
		e.ExternalID, e.EnrolledAt, e.Progress, e.Grade, e.CompletedAt, string(e.Status),
		e.ImportSource, e.ImportBatchID,
	)
	if err != nil {
		return nil, postgres.MapError(err, "enrollment", e.ID)
	}

	return e, nil
}

// Exists reports whether a persisted enrollment exists for (course, student).
func (r *Repo) Exists(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1 AND student_id = $2)`,
		courseID, studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("enrollment exists course=%s student=%s: %w", courseID, studentID, err)
	}

	return exists, nil
}

// List returns the course's enrollments matching the filter.
func (r *Repo) List(ctx context.Context, courseID uuid.UUID, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	filter = normalize(filter)

	builder := sq.Select(enrollmentColumns).
		From("enrollments").
		Where(sq.Eq{"course_id": courseID}).
		OrderBy(filter.SortBy + " " + filter.SortOrder).
		PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enrollment list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments course=%s: %w", courseID, err)
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		var status string
		if err := rows.Scan(
			&e.ID, &e.CourseID, &e.StudentID, &e.StudentName, &e.StudentEmail, &e.University,
			&e.ExternalID, &e.EnrolledAt, &e.Progress, &e.Grade, &e.CompletedAt, &status,
			&e.ImportSource, &e.ImportBatchID,
		); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		e.Status = domain.EnrollmentStatus(status)
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	return enrollments, nil
}
