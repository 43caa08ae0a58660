// Package rowerror implements the RowError repository using PostgreSQL.
// Records are append-only: one per rejected input row, never mutated.
package rowerror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/domain"
)

// Repo provides row error persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new row error repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// BulkInsert inserts row errors using pgx.Batch, one statement per record.
// Returns the number of inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, errs []domain.RowError) (int, error) {
	if len(errs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, re := range errs {
		fieldsJSON, err := json.Marshal(re.Fields)
		if err != nil {
			return 0, fmt.Errorf("row_error marshal fields row=%d: %w", re.RowNumber, err)
		}
		batch.Queue(
			`INSERT INTO import_row_errors (id, batch_id, row_number, fields, error_type, error_message, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			re.ID, re.BatchID, re.RowNumber, fieldsJSON, string(re.Kind), re.Message, re.CreatedAt,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("bulk insert row_errors at %d: %w", i, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListByBatch returns a batch's row errors ordered by row number, so an
// error export reads in source-file order.
func (r *Repo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.RowError, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, batch_id, row_number, fields, error_type, error_message, created_at
		 FROM import_row_errors WHERE batch_id = $1 ORDER BY row_number ASC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list row_errors batch=%s: %w", batchID, err)
	}
	defer rows.Close()

	var out []domain.RowError
	for rows.Next() {
		var re domain.RowError
		var kind string
		var fieldsJSON []byte
		if err := rows.Scan(&re.ID, &re.BatchID, &re.RowNumber, &fieldsJSON, &kind, &re.Message, &re.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row_error: %w", err)
		}
		if len(fieldsJSON) > 0 {
			if err := json.Unmarshal(fieldsJSON, &re.Fields); err != nil {
				return nil, fmt.Errorf("row_error %s unmarshal fields: %w", re.ID, err)
			}
		}
		re.Kind = domain.RowErrorKind(kind)
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate row_errors: %w", err)
	}

	return out, nil
}
