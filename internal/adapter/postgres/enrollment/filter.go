package enrollment

import "github.com/classworks/lms-backend/internal/domain"

const (
	sortByStudentID  = "student_id"
	sortByEnrolledAt = "enrolled_at"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps filter values before query building.
func normalize(f domain.EnrollmentFilter) domain.EnrollmentFilter {
	switch f.SortBy {
	case sortByStudentID, sortByEnrolledAt:
	default:
		f.SortBy = sortByStudentID
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}
