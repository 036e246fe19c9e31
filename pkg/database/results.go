package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/polyquery/research-aggregator/pkg/merge"
)

// SaveMergeResult persists one merge outcome. The structured pieces go
// to JSONB columns so the export layer can re-render without re-merging.
func (db *PostgresDB) SaveMergeResult(ctx context.Context, result *merge.MergeResult) (uuid.UUID, error) {
	responsesJSON, err := json.Marshal(result.OriginalResponses)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal responses: %w", err)
	}
	structureJSON, err := json.Marshal(result.Structure)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal structure: %w", err)
	}
	attributionJSON, err := json.Marshal(result.Attribution)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal attribution: %w", err)
	}

	query := `
		INSERT INTO merge_results (query_id, session_id, merged_text, fallback, responses, structure, attribution, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err = db.Pool.QueryRow(ctx, query,
		result.QueryID, result.SessionID, result.MergedText, result.Fallback,
		responsesJSON, structureJSON, attributionJSON, result.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save merge result: %w", err)
	}

	return id, nil
}

// GetMergeResult loads the stored merge outcome for a query.
func (db *PostgresDB) GetMergeResult(ctx context.Context, queryID uuid.UUID) (*merge.MergeResult, error) {
	query := `
		SELECT query_id, session_id, merged_text, fallback, responses, structure, attribution, created_at
		FROM merge_results
		WHERE query_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	result := &merge.MergeResult{}
	var responsesJSON, structureJSON, attributionJSON []byte

	err := db.Pool.QueryRow(ctx, query, queryID).Scan(
		&result.QueryID, &result.SessionID, &result.MergedText, &result.Fallback,
		&responsesJSON, &structureJSON, &attributionJSON, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get merge result: %w", err)
	}

	if err := json.Unmarshal(responsesJSON, &result.OriginalResponses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
	}
	if err := json.Unmarshal(structureJSON, &result.Structure); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structure: %w", err)
	}
	if err := json.Unmarshal(attributionJSON, &result.Attribution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attribution: %w", err)
	}

	return result, nil
}
