package roster

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/config"
	"github.com/classworks/lms-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (func fields)
// ===========================================================================

type mockCourseRepo struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ReserveSeatFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCourseRepo) ReserveSeat(ctx context.Context, id uuid.UUID) error {
	if m.ReserveSeatFunc != nil {
		return m.ReserveSeatFunc(ctx, id)
	}
	return nil
}

type mockEnrollmentRepo struct {
	CreateFunc func(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	ExistsFunc func(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error)
	ListFunc   func(ctx context.Context, courseID uuid.UUID, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return e, nil
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, courseID, studentID)
	}
	return false, nil
}

func (m *mockEnrollmentRepo) List(ctx context.Context, courseID uuid.UUID, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, courseID, filter)
	}
	return nil, nil
}

type mockBatchRepo struct {
	CreateFunc       func(ctx context.Context, b *domain.ImportBatch) (*domain.ImportBatch, error)
	FinalizeFunc     func(ctx context.Context, id uuid.UUID, total, successful, failed, duplicate int, completedAt time.Time) error
	MarkFailedFunc   func(ctx context.Context, id uuid.UUID, message string, completedAt time.Time) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	ListByCourseFunc func(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]domain.ImportBatch, error)
}

func (m *mockBatchRepo) Create(ctx context.Context, b *domain.ImportBatch) (*domain.ImportBatch, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return b, nil
}

func (m *mockBatchRepo) Finalize(ctx context.Context, id uuid.UUID, total, successful, failed, duplicate int, completedAt time.Time) error {
	if m.FinalizeFunc != nil {
		return m.FinalizeFunc(ctx, id, total, successful, failed, duplicate, completedAt)
	}
	return nil
}

func (m *mockBatchRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string, completedAt time.Time) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, message, completedAt)
	}
	return nil
}

func (m *mockBatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBatchRepo) ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]domain.ImportBatch, error) {
	if m.ListByCourseFunc != nil {
		return m.ListByCourseFunc(ctx, courseID, limit, offset)
	}
	return nil, nil
}

type mockRowErrorRepo struct {
	BulkInsertFunc  func(ctx context.Context, errs []domain.RowError) (int, error)
	ListByBatchFunc func(ctx context.Context, batchID uuid.UUID) ([]domain.RowError, error)

	inserted []domain.RowError
}

func (m *mockRowErrorRepo) BulkInsert(ctx context.Context, errs []domain.RowError) (int, error) {
	if m.BulkInsertFunc != nil {
		return m.BulkInsertFunc(ctx, errs)
	}
	m.inserted = append(m.inserted, errs...)
	return len(errs), nil
}

func (m *mockRowErrorRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.RowError, error) {
	if m.ListByBatchFunc != nil {
		return m.ListByBatchFunc(ctx, batchID)
	}
	return nil, nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ===========================================================================
// Harness
// ===========================================================================

type testDeps struct {
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
	batches     *mockBatchRepo
	rowErrors   *mockRowErrorRepo
	tx          *mockTxManager
}

func defaultImportConfig() config.ImportConfig {
	return config.ImportConfig{
		RowTimeout:   5 * time.Second,
		MaxFileBytes: 1 << 20,
		MaxRows:      10000,
	}
}

func newTestService(cfg config.ImportConfig) (*Service, *testDeps) {
	deps := &testDeps{
		courses:     &mockCourseRepo{},
		enrollments: &mockEnrollmentRepo{},
		batches:     &mockBatchRepo{},
		rowErrors:   &mockRowErrorRepo{},
		tx:          &mockTxManager{},
	}
	svc := New(
		slog.Default(),
		deps.courses,
		deps.enrollments,
		deps.batches,
		deps.rowErrors,
		deps.tx,
		cfg,
	)
	return svc, deps
}
