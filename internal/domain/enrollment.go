package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportSourceCSV marks enrollments created by the roster import pipeline.
const ImportSourceCSV = "csv"

// Enrollment is a confirmed course membership.
// At most one Enrollment exists per (CourseID, StudentID) pair; the import
// pipeline enforces this before writing, and the enrollments table carries a
// unique index as a second line of defense.
type Enrollment struct {
	ID           uuid.UUID
	CourseID     uuid.UUID
	StudentID    string
	StudentName  string
	StudentEmail *string
	University   *string
	ExternalID   *string

	EnrolledAt  time.Time
	Progress    float64
	Grade       *string
	CompletedAt *time.Time
	Status      EnrollmentStatus

	// Provenance.
	ImportSource  string
	ImportBatchID *uuid.UUID
}
