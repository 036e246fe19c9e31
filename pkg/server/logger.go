package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polyquery/research-aggregator/pkg/database"
)

// DBLogHandler is a slog.Handler that writes records to the
// research_logs table so a query's pipeline run stays inspectable
// after the fact.
type DBLogHandler struct {
	DB      *database.PostgresDB
	QueryID uuid.UUID
}

func NewDBLogHandler(db *database.PostgresDB, queryID uuid.UUID) *DBLogHandler {
	return &DBLogHandler{
		DB:      db,
		QueryID: queryID,
	}
}

func (h *DBLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true // Log everything
}

func (h *DBLogHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	metaJSON, err := json.Marshal(attrs)
	if err != nil {
		metaJSON = []byte("{}")
	}

	query := `
		INSERT INTO research_logs (query_id, timestamp, level, message, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`

	// Background context so logs persist even if the request context cancels.
	_, err = h.DB.Pool.Exec(context.Background(), query, h.QueryID, r.Time, r.Level.String(), r.Message, metaJSON)
	return err
}

func (h *DBLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Attribute chaining is not needed for the per-query log sink.
	return h
}

func (h *DBLogHandler) WithGroup(name string) slog.Handler {
	return h
}
