package roster

import (
	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/domain"
)

// RowIssue describes one rejected row in the synchronous import summary.
// Fields carries the original row so the caller can display or resubmit it.
type RowIssue struct {
	Row    int
	Kind   domain.RowErrorKind
	Error  string
	Fields map[string]string
}

// ImportResult is the synchronous summary of one import run. The batch record
// with the same ID is the durable version of these numbers.
type ImportResult struct {
	BatchID    uuid.UUID
	Total      int
	Successful int
	Failed     int
	Duplicates int
	Issues     []RowIssue
}
