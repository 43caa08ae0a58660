package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classworks/lms-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCourse creates a course with the given capacity and current counter.
// Returns the filled domain.Course.
func SeedCourse(t *testing.T, pool *pgxpool.Pool, maxStudents, currentEnrollment int) domain.Course {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	course := domain.Course{
		ID:                uuid.New(),
		Title:             "Test Course " + uniqueSuffix(),
		MaxStudents:       maxStudents,
		CurrentEnrollment: currentEnrollment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO courses (id, title, max_students, current_enrollment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		course.ID, course.Title, course.MaxStudents, course.CurrentEnrollment, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCourse insert: %v", err)
	}

	return course
}

// SeedBatch creates an import batch in the processing state.
func SeedBatch(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID) domain.ImportBatch {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	batch := domain.ImportBatch{
		ID:        uuid.New(),
		CourseID:  courseID,
		ActorID:   uuid.New(),
		Kind:      domain.ImportKindFile,
		FileName:  "roster-" + uniqueSuffix() + ".csv",
		FileBytes: 128,
		Status:    domain.BatchStatusProcessing,
		StartedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO import_batches (id, course_id, actor_id, kind, file_name, file_bytes,
		   total_records, successful_records, failed_records, duplicate_records, status, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, 0, $7, $8)`,
		batch.ID, batch.CourseID, batch.ActorID, string(batch.Kind), batch.FileName, batch.FileBytes,
		string(batch.Status), batch.StartedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBatch insert: %v", err)
	}

	return batch
}

// SeedEnrollment creates an enrollment for (courseID, studentID).
func SeedEnrollment(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID, studentID string) domain.Enrollment {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Enrollment{
		ID:           uuid.New(),
		CourseID:     courseID,
		StudentID:    studentID,
		StudentName:  "Student " + studentID,
		EnrolledAt:   now,
		Status:       domain.EnrollmentStatusEnrolled,
		ImportSource: domain.ImportSourceCSV,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO enrollments (id, course_id, student_id, student_name, enrolled_at, progress, status, import_source)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7)`,
		e.ID, e.CourseID, e.StudentID, e.StudentName, e.EnrolledAt, string(e.Status), e.ImportSource,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEnrollment insert: %v", err)
	}

	return e
}
