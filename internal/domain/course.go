package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course is the read-only collaborator the import pipeline enrolls into.
// MaxStudents is the configured capacity; CurrentEnrollment is a cached
// counter maintained by the enrollment writer. The counter is only ever
// advanced by the conditional seat reservation at the storage layer, so a
// stale read here is an ordering hint, not an authorization.
type Course struct {
	ID                uuid.UUID
	Title             string
	MaxStudents       int
	CurrentEnrollment int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SeatsLeft returns the number of free seats according to the cached counter.
func (c Course) SeatsLeft() int {
	if left := c.MaxStudents - c.CurrentEnrollment; left > 0 {
		return left
	}
	return 0
}
