// Package roster implements the bulk enrollment import pipeline: parsing a
// roster file into rows, validating each row, detecting duplicates against
// the store and within the batch, writing capacity-guarded enrollments, and
// keeping a replayable audit log of every row's outcome.
package roster

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/config"
	"github.com/classworks/lms-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type courseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ReserveSeat(ctx context.Context, id uuid.UUID) error
}

type enrollmentRepo interface {
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	Exists(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error)
	List(ctx context.Context, courseID uuid.UUID, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)
}

type batchRepo interface {
	Create(ctx context.Context, b *domain.ImportBatch) (*domain.ImportBatch, error)
	Finalize(ctx context.Context, id uuid.UUID, total, successful, failed, duplicate int, completedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string, completedAt time.Time) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]domain.ImportBatch, error)
}

type rowErrorRepo interface {
	BulkInsert(ctx context.Context, errs []domain.RowError) (int, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.RowError, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the roster import business logic.
type Service struct {
	log         *slog.Logger
	courses     courseRepo
	enrollments enrollmentRepo
	batches     batchRepo
	rowErrors   rowErrorRepo
	tx          txManager
	cfg         config.ImportConfig
}

// New creates a roster service.
func New(
	log *slog.Logger,
	courses courseRepo,
	enrollments enrollmentRepo,
	batches batchRepo,
	rowErrors rowErrorRepo,
	tx txManager,
	cfg config.ImportConfig,
) *Service {
	return &Service{
		log:         log,
		courses:     courses,
		enrollments: enrollments,
		batches:     batches,
		rowErrors:   rowErrors,
		tx:          tx,
		cfg:         cfg,
	}
}
