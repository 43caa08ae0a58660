package rowerror_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classworks/lms-backend/internal/adapter/postgres/rowerror"
	"github.com/classworks/lms-backend/internal/adapter/postgres/testhelper"
	"github.com/classworks/lms-backend/internal/domain"
)

func newRepo(t *testing.T) (*rowerror.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return rowerror.New(pool), pool
}

func newRowError(batchID uuid.UUID, rowNumber int, kind domain.RowErrorKind) domain.RowError {
	return domain.RowError{
		ID:        uuid.New(),
		BatchID:   batchID,
		RowNumber: rowNumber,
		Fields:    map[string]string{"student_id": "S1", "student_name": "Alice"},
		Kind:      kind,
		Message:   "student already enrolled in this course",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepo_FieldsRoundTrip(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	c := testhelper.SeedCourse(t, pool, 30, 0)
	batch := testhelper.SeedBatch(t, pool, c.ID)

	want := newRowError(batch.ID, 4, domain.RowErrorDuplicate)
	if n, err := repo.BulkInsert(ctx, []domain.RowError{want}); err != nil || n != 1 {
		t.Fatalf("BulkInsert: n=%d err=%v, want 1 nil", n, err)
	}

	got, err := repo.ListByBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListByBatch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByBatch: got %d records, want 1", len(got))
	}
	if got[0].RowNumber != 4 {
		t.Errorf("RowNumber: got %d, want 4", got[0].RowNumber)
	}
	if got[0].Kind != domain.RowErrorDuplicate {
		t.Errorf("Kind: got %q, want duplicate", got[0].Kind)
	}
	if got[0].Fields["student_id"] != "S1" {
		t.Errorf("Fields round trip: got %v", got[0].Fields)
	}
}

func TestRepo_BulkInsert_OrderedListing(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	c := testhelper.SeedCourse(t, pool, 30, 0)
	batch := testhelper.SeedBatch(t, pool, c.ID)

	// Inserted out of row order; listing must come back sorted.
	errs := []domain.RowError{
		newRowError(batch.ID, 7, domain.RowErrorValidation),
		newRowError(batch.ID, 2, domain.RowErrorMissingField),
		newRowError(batch.ID, 5, domain.RowErrorDuplicate),
	}

	n, err := repo.BulkInsert(ctx, errs)
	if err != nil {
		t.Fatalf("BulkInsert: unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("BulkInsert: got %d inserted, want 3", n)
	}

	got, err := repo.ListByBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListByBatch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByBatch: got %d records, want 3", len(got))
	}
	for i, want := range []int{2, 5, 7} {
		if got[i].RowNumber != want {
			t.Errorf("ListByBatch[%d].RowNumber: got %d, want %d", i, got[i].RowNumber, want)
		}
	}
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("BulkInsert nil: unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("BulkInsert nil: got %d, want 0", n)
	}
}

func TestRepo_ListByBatch_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.ListByBatch(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListByBatch: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByBatch unknown batch: got %d records, want 0", len(got))
	}
}
