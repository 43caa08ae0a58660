package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/domain"
	"github.com/classworks/lms-backend/internal/rosterfile"
	"github.com/classworks/lms-backend/pkg/ctxutil"
)

// batchContext tracks per-run mutable state for duplicate detection and the
// advisory capacity pre-check. One per call; never shared between batches.
type batchContext struct {
	accepted  map[string]bool
	seatsLeft int
	result    ImportResult
	rowErrors []domain.RowError
}

// ImportRoster runs one import batch over the given roster file.
//
// Rows are processed strictly in file order: each accepted identifier joins
// the batch's duplicate set before the next row is examined, so a file
// containing the same student twice rejects the second occurrence. A rejected
// row is recorded and counted, never fatal; only failures around the batch
// itself (parsing the header, creating or finalizing the batch record) abort
// the run.
func (s *Service) ImportRoster(ctx context.Context, input ImportInput) (*ImportResult, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.cfg.MaxFileBytes > 0 && int64(len(input.Data)) > s.cfg.MaxFileBytes {
		return nil, domain.NewValidationError("data",
			fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileBytes))
	}

	// Batch-fatal: an unreadable header means there is nothing to attribute
	// row errors to, so no batch record is created either.
	table, err := rosterfile.Parse(bytes.NewReader(input.Data))
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxRows > 0 && len(table.Rows) > s.cfg.MaxRows {
		return nil, domain.NewValidationError("data",
			fmt.Sprintf("file exceeds %d rows", s.cfg.MaxRows))
	}

	course, err := s.courses.GetByID(ctx, input.CourseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}

	batch := &domain.ImportBatch{
		ID:        uuid.New(),
		CourseID:  course.ID,
		ActorID:   actorID,
		Kind:      input.Kind,
		FileName:  input.FileName,
		FileBytes: int64(len(input.Data)),
		Status:    domain.BatchStatusProcessing,
		StartedAt: time.Now().UTC(),
	}
	if _, err := s.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("create import batch: %w", err)
	}

	s.log.Info("import batch started",
		slog.String("batch_id", batch.ID.String()),
		slog.String("course_id", course.ID.String()),
		slog.Int("rows", len(table.Rows)),
	)

	bc := &batchContext{
		accepted:  make(map[string]bool),
		seatsLeft: course.SeatsLeft(),
	}
	bc.result.BatchID = batch.ID

	for _, row := range table.Rows {
		s.processRow(ctx, bc, batch.ID, course.ID, row)
	}

	// Row errors and finalization are outside row processing: a failure here
	// is unrecoverable for the run and marks the whole batch failed.
	if err := s.closeBatch(ctx, batch.ID, bc); err != nil {
		return nil, err
	}

	s.log.Info("import batch completed",
		slog.String("batch_id", batch.ID.String()),
		slog.Int("total", bc.result.Total),
		slog.Int("successful", bc.result.Successful),
		slog.Int("failed", bc.result.Failed),
		slog.Int("duplicates", bc.result.Duplicates),
	)

	return &bc.result, nil
}

// processRow takes one row through validation, duplicate detection, the
// advisory capacity pre-check, and the transactional enrollment write.
func (s *Service) processRow(ctx context.Context, bc *batchContext, batchID, courseID uuid.UUID, row rosterfile.Row) {
	bc.result.Total++

	if row.Fields == nil {
		s.rejectRow(bc, batchID, row, domain.RowErrorValidation, "row could not be parsed")
		return
	}
	if row.IsEmpty() {
		s.rejectRow(bc, batchID, row, domain.RowErrorValidation, "row is empty")
		return
	}

	studentID := domain.NormalizeStudentID(row.Fields[rosterfile.ColStudentID])
	if studentID == "" {
		s.rejectRow(bc, batchID, row, domain.RowErrorMissingField, "student_id is required")
		return
	}
	if !domain.ValidStudentID(studentID) {
		s.rejectRow(bc, batchID, row, domain.RowErrorValidation, "student_id has an invalid format")
		return
	}

	// In-batch set first: a repeat within the file needs no database trip.
	if bc.accepted[studentID] {
		s.rejectRow(bc, batchID, row, domain.RowErrorDuplicate, "student_id appears earlier in this file")
		return
	}

	rowCtx, cancel := context.WithTimeout(ctx, s.cfg.RowTimeout)
	defer cancel()

	exists, err := s.enrollments.Exists(rowCtx, courseID, studentID)
	if err != nil {
		s.rejectRow(bc, batchID, row, domain.RowErrorProcessing, rowErrorMessage(err))
		return
	}
	if exists {
		s.rejectRow(bc, batchID, row, domain.RowErrorDuplicate, "student already enrolled in this course")
		return
	}

	// Advisory only; ReserveSeat inside the transaction is authoritative.
	if bc.seatsLeft <= 0 {
		s.rejectRow(bc, batchID, row, domain.RowErrorValidation, "course at capacity")
		return
	}

	enrollment := newEnrollment(courseID, batchID, studentID, row.Fields)
	err = s.tx.RunInTx(rowCtx, func(txCtx context.Context) error {
		if _, err := s.enrollments.Create(txCtx, enrollment); err != nil {
			return err
		}
		return s.courses.ReserveSeat(txCtx, courseID)
	})

	switch {
	case err == nil:
		bc.accepted[studentID] = true
		bc.seatsLeft--
		bc.result.Successful++

	case errors.Is(err, domain.ErrCapacity):
		bc.seatsLeft = 0
		s.rejectRow(bc, batchID, row, domain.RowErrorValidation, "course at capacity")

	case errors.Is(err, domain.ErrAlreadyExists):
		// Unique index caught a concurrent insert; the row is a duplicate.
		s.rejectRow(bc, batchID, row, domain.RowErrorDuplicate, "student already enrolled in this course")

	default:
		s.rejectRow(bc, batchID, row, domain.RowErrorProcessing, rowErrorMessage(err))
	}
}

// rejectRow records one rejected row in the batch context.
func (s *Service) rejectRow(bc *batchContext, batchID uuid.UUID, row rosterfile.Row, kind domain.RowErrorKind, message string) {
	if kind == domain.RowErrorDuplicate {
		bc.result.Duplicates++
	} else {
		bc.result.Failed++
	}

	bc.result.Issues = append(bc.result.Issues, RowIssue{
		Row:    row.Number,
		Kind:   kind,
		Error:  message,
		Fields: row.Fields,
	})
	bc.rowErrors = append(bc.rowErrors, domain.RowError{
		ID:        uuid.New(),
		BatchID:   batchID,
		RowNumber: row.Number,
		Fields:    row.Fields,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// closeBatch persists the accumulated row errors and finalizes the batch.
// On failure it marks the batch failed and reports the run as broken.
func (s *Service) closeBatch(ctx context.Context, batchID uuid.UUID, bc *batchContext) error {
	if _, err := s.rowErrors.BulkInsert(ctx, bc.rowErrors); err != nil {
		s.failBatch(ctx, batchID, "persist row errors: "+err.Error())
		return fmt.Errorf("persist row errors: %w", err)
	}

	err := s.batches.Finalize(ctx, batchID,
		bc.result.Total, bc.result.Successful, bc.result.Failed, bc.result.Duplicates,
		time.Now().UTC())
	if err != nil {
		s.failBatch(ctx, batchID, "finalize batch: "+err.Error())
		return fmt.Errorf("finalize batch: %w", err)
	}

	return nil
}

// failBatch best-effort marks the batch failed with a batch-level message.
func (s *Service) failBatch(ctx context.Context, batchID uuid.UUID, message string) {
	if err := s.batches.MarkFailed(ctx, batchID, message, time.Now().UTC()); err != nil {
		s.log.Error("mark batch failed",
			slog.String("batch_id", batchID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// newEnrollment builds the enrollment record for an accepted row.
func newEnrollment(courseID, batchID uuid.UUID, studentID string, fields map[string]string) *domain.Enrollment {
	e := &domain.Enrollment{
		ID:            uuid.New(),
		CourseID:      courseID,
		StudentID:     studentID,
		StudentName:   fields[rosterfile.ColStudentName],
		EnrolledAt:    time.Now().UTC(),
		Status:        domain.EnrollmentStatusEnrolled,
		ImportSource:  domain.ImportSourceCSV,
		ImportBatchID: &batchID,
	}

	if v := fields[rosterfile.ColEmail]; v != "" {
		e.StudentEmail = &v
	}
	if v := fields[rosterfile.ColUniversity]; v != "" {
		e.University = &v
	}
	if v := fields[rosterfile.ColExternalID]; v != "" {
		e.ExternalID = &v
	}

	return e
}

// rowErrorMessage converts a storage error to a row-scoped message, keeping
// timeout wording stable for callers that retry.
func rowErrorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "storage operation timed out"
	}
	return err.Error()
}
