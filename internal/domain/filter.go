package domain

// EnrollmentFilter defines parameters for listing course enrollments.
type EnrollmentFilter struct {
	// Status keeps only enrollments in the given state. nil means all.
	Status *EnrollmentStatus

	// SortBy determines the sort column: "student_id" or "enrolled_at".
	// Default: "student_id".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "ASC".
	SortOrder string

	// Limit is the maximum number of enrollments to return. 0 means no limit.
	Limit int

	// Offset is the number of enrollments to skip.
	Offset int
}
