package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polyquery/research-aggregator/pkg/config"
	"github.com/polyquery/research-aggregator/pkg/database"
	"github.com/polyquery/research-aggregator/pkg/memory"
	"github.com/polyquery/research-aggregator/pkg/merge"
	"github.com/polyquery/research-aggregator/pkg/platforms"
)

// Service runs the research pipeline for API queries: dispatch the
// question to every platform, merge the answers, persist the result,
// and index it into the research memory.
type Service struct {
	DB         *database.PostgresDB
	Cfg        *config.Config
	Dispatcher *platforms.Dispatcher
	Indexer    *memory.Indexer
}

func NewService(db *database.PostgresDB, cfg *config.Config, dispatcher *platforms.Dispatcher, indexer *memory.Indexer) *Service {
	return &Service{
		DB:         db,
		Cfg:        cfg,
		Dispatcher: dispatcher,
		Indexer:    indexer,
	}
}

type Query struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Question  string    `json:"question"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateQueryRequest struct {
	Question  string    `json:"question"`
	SessionID uuid.UUID `json:"session_id,omitempty"`
}

// CreateQuery records the question and starts the pipeline in a
// background worker. A zero session ID opens a fresh session.
func (s *Service) CreateQuery(ctx context.Context, req CreateQueryRequest) (*Query, error) {
	sessionID := req.SessionID
	if sessionID == uuid.Nil {
		var err error
		sessionID, err = s.createSession(ctx, req.Question)
		if err != nil {
			return nil, err
		}
	}

	queryID := uuid.New()
	query := `
		INSERT INTO research_queries (id, session_id, question, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, session_id, question, status, created_at, updated_at
	`

	q := &Query{}
	err := s.DB.Pool.QueryRow(ctx, query, queryID, sessionID, req.Question).Scan(
		&q.ID, &q.SessionID, &q.Question, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	// Start background worker
	go s.runWorker(q.ID, q.SessionID, req.Question)

	return q, nil
}

func (s *Service) createSession(ctx context.Context, title string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.DB.Pool.QueryRow(ctx,
		"INSERT INTO research_sessions (title) VALUES ($1) RETURNING id", title,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (s *Service) GetQuery(ctx context.Context, id uuid.UUID) (*Query, error) {
	query := `
		SELECT id, session_id, question, status, created_at, updated_at
		FROM research_queries
		WHERE id = $1
	`
	q := &Query{}
	err := s.DB.Pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.SessionID, &q.Question, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get query: %w", err)
	}
	return q, nil
}

func (s *Service) ListQueries(ctx context.Context) ([]Query, error) {
	query := `
		SELECT id, session_id, question, status, created_at, updated_at
		FROM research_queries
		ORDER BY created_at DESC
		LIMIT 50
	`
	rows, err := s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	var queries []Query
	for rows.Next() {
		var q Query
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Question, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			continue
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// GetResult loads the stored merge result for a completed query.
func (s *Service) GetResult(ctx context.Context, queryID uuid.UUID) (*merge.MergeResult, error) {
	return s.DB.GetMergeResult(ctx, queryID)
}

type LogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Metadata  []byte    `json:"metadata"`
}

func (s *Service) GetQueryLogs(ctx context.Context, queryID uuid.UUID) ([]LogEntry, error) {
	query := `
		SELECT id, timestamp, level, message, metadata
		FROM research_logs
		WHERE query_id = $1
		ORDER BY id ASC
	`
	rows, err := s.DB.Pool.Query(ctx, query, queryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var l LogEntry
		if err := rows.Scan(&l.ID, &l.Timestamp, &l.Level, &l.Message, &l.Metadata); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (s *Service) runWorker(queryID, sessionID uuid.UUID, question string) {
	ctx := context.Background()

	_, _ = s.DB.Pool.Exec(ctx, "UPDATE research_queries SET status = 'running', updated_at = NOW() WHERE id = $1", queryID)

	dbLogger := slog.New(NewDBLogHandler(s.DB, queryID))
	dbLogger.Info("Dispatching question to platforms", "question", question, "platforms", len(s.Dispatcher.Platforms))

	dispatcher := *s.Dispatcher
	dispatcher.Logger = dbLogger
	documents := dispatcher.Dispatch(ctx, question)

	merger := merge.NewWithLogger(s.Cfg.MergeConfig(), dbLogger)
	result, err := merger.Merge(documents, sessionID, queryID)
	if err != nil {
		if errors.Is(err, merge.ErrEmptyInput) {
			s.failQuery(ctx, queryID, "No platform responses to merge")
			return
		}
		s.failQuery(ctx, queryID, fmt.Sprintf("Merge failed: %v", err))
		return
	}

	if _, err := s.DB.SaveMergeResult(ctx, result); err != nil {
		s.failQuery(ctx, queryID, fmt.Sprintf("Failed to persist result: %v", err))
		return
	}

	// Memory indexing is enrichment; a failure here never fails the query.
	if s.Indexer != nil {
		if err := s.Indexer.IndexResult(ctx, result); err != nil {
			dbLogger.Error("Failed to index result into research memory", "error", err)
		}
	}

	_, err = s.DB.Pool.Exec(ctx,
		"UPDATE research_queries SET status = 'completed', updated_at = NOW() WHERE id = $1", queryID)
	if err != nil {
		dbLogger.Error("Failed to mark query completed", "error", err)
	}
}

func (s *Service) failQuery(ctx context.Context, queryID uuid.UUID, reason string) {
	dbLogger := slog.New(NewDBLogHandler(s.DB, queryID))
	dbLogger.Error(reason)

	_, _ = s.DB.Pool.Exec(ctx, "UPDATE research_queries SET status = 'failed', updated_at = NOW() WHERE id = $1", queryID)
}
