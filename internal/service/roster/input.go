package roster

import (
	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/domain"
)

// ImportInput holds the parameters for one import run. The raw file bytes
// arrive already decoded from whatever transport carried them; the actor's
// identity travels in the context.
type ImportInput struct {
	CourseID uuid.UUID
	FileName string
	Data     []byte
	Kind     domain.ImportKind
}

// Validate checks all fields and collects all errors.
func (i *ImportInput) Validate() error {
	var errs []domain.FieldError

	if i.CourseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "course_id", Message: "required"})
	}
	if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "data", Message: "required"})
	}
	if i.Kind == "" {
		i.Kind = domain.ImportKindFile
	} else if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
