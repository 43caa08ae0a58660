package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/adapter/postgres/testhelper"
	"github.com/classworks/lms-backend/internal/domain"
)

// enrollmentExists checks whether an enrollment row with the given ID exists.
func enrollmentExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("enrollmentExists query: %v", err)
	}
	return exists
}

func insertEnrollment(ctx context.Context, pool *pgxpool.Pool, id, courseID uuid.UUID, studentID string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx,
		`INSERT INTO enrollments (id, course_id, student_id, student_name, enrolled_at, progress, status, import_source)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7)`,
		id, courseID, studentID, "Tx Test", time.Now().UTC(),
		string(domain.EnrollmentStatusEnrolled), domain.ImportSourceCSV,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	course := testhelper.SeedCourse(t, pool, 10, 0)
	enrollmentID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertEnrollment(ctx, pool, enrollmentID, course.ID, "TX1")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !enrollmentExists(t, pool, enrollmentID) {
		t.Fatal("expected enrollment to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	course := testhelper.SeedCourse(t, pool, 10, 0)
	enrollmentID := uuid.New()
	sentinel := errors.New("seat reservation failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertEnrollment(ctx, pool, enrollmentID, course.ID, "TX2"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if enrollmentExists(t, pool, enrollmentID) {
		t.Fatal("expected enrollment NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	course := testhelper.SeedCourse(t, pool, 10, 0)
	enrollmentID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if enrollmentExists(t, pool, enrollmentID) {
			t.Fatal("expected enrollment NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertEnrollment(ctx, pool, enrollmentID, course.ID, "TX3"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_SeatAndEnrollmentAtomic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	// Full course: the seat reservation fails, which must also undo the
	// enrollment insert made earlier in the same transaction.
	course := testhelper.SeedCourse(t, pool, 1, 1)
	enrollmentID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertEnrollment(ctx, pool, enrollmentID, course.ID, "TX4"); execErr != nil {
			return execErr
		}

		q := postgres.QuerierFromCtx(ctx, pool)
		tag, execErr := q.Exec(ctx,
			`UPDATE courses
			 SET current_enrollment = current_enrollment + 1
			 WHERE id = $1 AND current_enrollment < max_students`,
			course.ID,
		)
		if execErr != nil {
			return execErr
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrCapacity
		}
		return nil
	})

	if !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got: %v", err)
	}
	if enrollmentExists(t, pool, enrollmentID) {
		t.Fatal("expected enrollment NOT to exist after capacity rollback")
	}
}
