package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/domain"
)

// GetBatch returns one import batch by ID.
func (s *Service) GetBatch(ctx context.Context, batchID uuid.UUID) (*domain.ImportBatch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return batch, nil
}

// ListBatches returns a course's import history, newest first.
func (s *Service) ListBatches(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]domain.ImportBatch, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	batches, err := s.batches.ListByCourse(ctx, courseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}
