package domain

// EnrollmentStatus represents the lifecycle state of a course membership.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
	EnrollmentStatusPending   EnrollmentStatus = "pending"
)

func (s EnrollmentStatus) String() string { return string(s) }

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentStatusEnrolled, EnrollmentStatusCompleted, EnrollmentStatusDropped, EnrollmentStatusPending:
		return true
	}
	return false
}

// BatchStatus represents the state of one import run.
// Transitions: processing → completed, or processing → failed.
// Row-level failures never move a batch to failed; only an unrecoverable
// error outside row processing does.
type BatchStatus string

const (
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

func (s BatchStatus) String() string { return string(s) }

func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusProcessing, BatchStatusCompleted, BatchStatusFailed:
		return true
	}
	return false
}

// ImportKind distinguishes file-based imports from external-system syncs.
type ImportKind string

const (
	ImportKindFile     ImportKind = "file"
	ImportKindExternal ImportKind = "external"
)

func (k ImportKind) String() string { return string(k) }

func (k ImportKind) IsValid() bool {
	switch k {
	case ImportKindFile, ImportKindExternal:
		return true
	}
	return false
}

// RowErrorKind classifies why a single input row was rejected.
type RowErrorKind string

const (
	RowErrorMissingField RowErrorKind = "missing_field"
	RowErrorDuplicate    RowErrorKind = "duplicate"
	RowErrorValidation   RowErrorKind = "validation_error"
	RowErrorProcessing   RowErrorKind = "processing_error"
)

func (k RowErrorKind) String() string { return string(k) }

func (k RowErrorKind) IsValid() bool {
	switch k {
	case RowErrorMissingField, RowErrorDuplicate, RowErrorValidation, RowErrorProcessing:
		return true
	}
	return false
}
