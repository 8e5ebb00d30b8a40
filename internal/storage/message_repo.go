package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_message_store.go -package=mocks casedesk/internal/storage MessageStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// MessageStore defines the interface for case transcript storage.
// Messages are append-only.
type MessageStore interface {
	// Create appends a message. Timestamp must be set by the caller.
	Create(ctx context.Context, msg *CaseMessageRecord) error
	// ListByCase returns the transcript ordered by timestamp, then insertion order.
	ListByCase(ctx context.Context, caseID string) ([]CaseMessageRecord, error)
}

// MessageRepo provides methods for case message operations.
// It implements the MessageStore interface.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create inserts a new message.
func (r *MessageRepo) Create(ctx context.Context, m *CaseMessageRecord) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("message timestamp is required")
	}
	m.Timestamp = m.Timestamp.UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO case_messages (id, case_id, author_id, content, is_ai, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.CaseID, m.AuthorID, m.Content, boolToInt(m.IsAI), toNanos(m.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert case message: %w", err)
	}
	return nil
}

// ListByCase lists the transcript of caseID.
func (r *MessageRepo) ListByCase(ctx context.Context, caseID string) ([]CaseMessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, case_id, author_id, content, is_ai, created_at
		 FROM case_messages WHERE case_id = ? ORDER BY created_at ASC, seq ASC`,
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query case messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var msgs []CaseMessageRecord
	for rows.Next() {
		var m CaseMessageRecord
		var isAI int
		var ts int64
		if err := rows.Scan(&m.ID, &m.CaseID, &m.AuthorID, &m.Content, &isAI, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan case message: %w", err)
		}
		m.IsAI = isAI == 1
		m.Timestamp = fromNanos(ts)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating case messages: %w", err)
	}
	return msgs, nil
}
