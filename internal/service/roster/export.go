package roster

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/domain"
	"github.com/classworks/lms-backend/internal/rosterfile"
)

// ExportEnrollments writes the course's current enrollment set as CSV with a
// fixed column order, one row per enrollment, sorted by student_id.
// Returns domain.ErrNotFound when the course has no enrollments.
func (s *Service) ExportEnrollments(ctx context.Context, courseID uuid.UUID, w io.Writer) error {
	enrollments, err := s.enrollments.List(ctx, courseID, domain.EnrollmentFilter{
		SortBy:    "student_id",
		SortOrder: "ASC",
	})
	if err != nil {
		return fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return fmt.Errorf("course %s has no enrollments: %w", courseID, domain.ErrNotFound)
	}

	if err := rosterfile.WriteEnrollments(w, enrollments); err != nil {
		return fmt.Errorf("write enrollment export: %w", err)
	}
	return nil
}

// ExportErrors writes the batch's row errors as CSV, ordered by row number.
// The columns are the union of the original rows' fields plus error metadata,
// so the flagged rows can be corrected and resubmitted as-is.
// Returns domain.ErrNotFound when the batch does not exist.
func (s *Service) ExportErrors(ctx context.Context, batchID uuid.UUID, w io.Writer) error {
	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return fmt.Errorf("load batch: %w", err)
	}

	rowErrors, err := s.rowErrors.ListByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("list row errors: %w", err)
	}

	if err := rosterfile.WriteRowErrors(w, rowErrors); err != nil {
		return fmt.Errorf("write error export: %w", err)
	}
	return nil
}
