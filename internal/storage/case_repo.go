package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_case_store.go -package=mocks casedesk/internal/storage CaseStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrLimitExceeded is returned when attaching or growing a document would
	// push a case past its document count or total size limit.
	ErrLimitExceeded = errors.New("case limit exceeded")
)

// CaseStore defines the interface for case storage operations.
type CaseStore interface {
	// Create inserts a new case, assigning ID and timestamps.
	Create(ctx context.Context, c *CaseRecord) error
	// GetByID returns a case regardless of its active flag.
	// Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*CaseRecord, error)
	// ListActiveByOwner returns the owner's active cases, most recently updated first.
	ListActiveByOwner(ctx context.Context, ownerID string) ([]CaseRecord, error)
	// Update saves name and description.
	Update(ctx context.Context, c *CaseRecord) error
	// SoftDelete marks the case inactive and detaches all of its documents.
	SoftDelete(ctx context.Context, id string) error
}

// CaseRepo provides methods for case operations.
// It implements the CaseStore interface.
type CaseRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewCaseRepo creates a new CaseRepo.
func NewCaseRepo(db *sql.DB) *CaseRepo {
	return &CaseRepo{db: db, now: time.Now}
}

const caseColumns = "id, owner_id, name, description, is_active, document_count, total_size, created_at, updated_at"

// Create inserts a new case.
func (r *CaseRepo) Create(ctx context.Context, c *CaseRecord) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := r.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.IsActive = true
	c.DocumentCount = 0
	c.TotalSize = 0

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cases (`+caseColumns+`) VALUES (?, ?, ?, ?, 1, 0, 0, ?, ?)`,
		c.ID, c.OwnerID, c.Name, c.Description, toNanos(now), toNanos(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert case: %w", err)
	}
	return nil
}

// GetByID gets a case by ID.
func (r *CaseRepo) GetByID(ctx context.Context, id string) (*CaseRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = ?`, id)
	c, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query case: %w", err)
	}
	return c, nil
}

// ListActiveByOwner lists active cases belonging to ownerID.
func (r *CaseRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]CaseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE owner_id = ? AND is_active = 1 ORDER BY updated_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var cases []CaseRecord
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cases: %w", err)
	}
	return cases, nil
}

// Update saves the case name and description and bumps updated_at.
func (r *CaseRepo) Update(ctx context.Context, c *CaseRecord) error {
	c.UpdatedAt = r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE cases SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, toNanos(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	return expectOneRow(res)
}

// SoftDelete deactivates the case and detaches its documents in one transaction.
// Documents are kept; only their case link is cleared.
func (r *CaseRepo) SoftDelete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := toNanos(r.now())
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET case_id = NULL WHERE case_id = ?`, id,
	); err != nil {
		return fmt.Errorf("failed to detach documents: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE files SET case_id = NULL WHERE case_id = ?`, id,
	); err != nil {
		return fmt.Errorf("failed to detach files: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE cases SET is_active = 0, document_count = 0, total_size = 0, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate case: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*CaseRecord, error) {
	var c CaseRecord
	var active int
	var createdAt, updatedAt int64
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &active,
		&c.DocumentCount, &c.TotalSize, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.IsActive = active == 1
	c.CreatedAt = fromNanos(createdAt)
	c.UpdatedAt = fromNanos(updatedAt)
	return &c, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
