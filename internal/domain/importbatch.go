package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportBatch is the audit log for one import run. It is created before the
// first row is processed and finalized after the last; it is never deleted
// automatically. For a completed batch Total == Successful+Failed+Duplicate.
type ImportBatch struct {
	ID       uuid.UUID
	CourseID uuid.UUID
	ActorID  uuid.UUID
	Kind     ImportKind

	FileName  string
	FileBytes int64

	Total      int
	Successful int
	Failed     int
	Duplicate  int

	Status       BatchStatus
	ErrorMessage *string

	StartedAt   time.Time
	CompletedAt *time.Time
}

// CountsConsistent reports whether the aggregate counts add up.
// Only meaningful once the batch left the processing state.
func (b ImportBatch) CountsConsistent() bool {
	return b.Total == b.Successful+b.Failed+b.Duplicate
}

// RowError records one rejected input row: which batch it belongs to, where it
// was in the source file, the original field map (so a corrected file can be
// re-derived), and why it was rejected. Immutable after creation.
type RowError struct {
	ID        uuid.UUID
	BatchID   uuid.UUID
	RowNumber int
	Fields    map[string]string
	Kind      RowErrorKind
	Message   string
	CreatedAt time.Time
}
