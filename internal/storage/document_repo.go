package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks casedesk/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for document storage operations.
// Every method that changes a document's case link or size keeps the case
// aggregates (document_count, total_size) in step within one transaction.
type DocumentStore interface {
	// Create inserts a document. When CaseID is set the document is attached
	// in the same transaction, subject to limits.
	Create(ctx context.Context, d *DocumentRecord, limits CaseLimits) error
	// GetByID returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// ListByOwner returns the owner's documents, most recently modified first.
	ListByOwner(ctx context.Context, ownerID string) ([]DocumentRecord, error)
	// ListByCase returns the documents attached to a case, most recently modified first.
	ListByCase(ctx context.Context, caseID string) ([]DocumentRecord, error)
	// UpdateContent saves title and content and applies the size delta to the
	// attached case, subject to limits.
	UpdateContent(ctx context.Context, d *DocumentRecord, limits CaseLimits) error
	// Delete removes the document after detaching it.
	Delete(ctx context.Context, id string) error
	// Attach links the document to caseID, moving it out of any other case.
	// Returns false when the document was already attached to caseID.
	Attach(ctx context.Context, documentID, caseID string, limits CaseLimits) (bool, error)
	// Detach clears the document's case link.
	// Returns false when the document was not attached.
	Detach(ctx context.Context, documentID string) (bool, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db, now: time.Now}
}

const documentColumns = "id, owner_id, case_id, title, content, size_bytes, created_at, last_modified_at"

// Create inserts a new document, generating its ID when empty.
func (r *DocumentRepo) Create(ctx context.Context, d *DocumentRecord, limits CaseLimits) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := r.now().UTC()
	d.CreatedAt = now
	d.LastModifiedAt = now
	d.SizeBytes = int64(len(d.Content))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if d.CaseID != nil {
		if err := reserveCaseSlot(ctx, tx, *d.CaseID, d.SizeBytes, limits, now); err != nil {
			return err
		}
	}

	var caseID any
	if d.CaseID != nil {
		caseID = *d.CaseID
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OwnerID, caseID, d.Title, d.Content, d.SizeBytes, toNanos(now), toNanos(now),
	); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID gets a document by ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	return getDocument(ctx, r.db, id)
}

// ListByOwner lists documents belonging to ownerID.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID string) ([]DocumentRecord, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE owner_id = ? ORDER BY last_modified_at DESC, id`, ownerID)
}

// ListByCase lists documents attached to caseID.
func (r *DocumentRepo) ListByCase(ctx context.Context, caseID string) ([]DocumentRecord, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE case_id = ? ORDER BY last_modified_at DESC, id`, caseID)
}

func (r *DocumentRepo) list(ctx context.Context, query string, arg string) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

// UpdateContent saves title and content. A growing document attached to a
// case is rejected with ErrLimitExceeded when the case would exceed its size limit.
func (r *DocumentRepo) UpdateContent(ctx context.Context, d *DocumentRecord, limits CaseLimits) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := getDocument(ctx, tx, d.ID)
	if err != nil {
		return err
	}

	now := r.now().UTC()
	newSize := int64(len(d.Content))
	delta := newSize - current.SizeBytes

	if current.CaseID != nil && delta != 0 {
		if delta > 0 {
			res, err := tx.ExecContext(ctx,
				`UPDATE cases SET total_size = total_size + ?, updated_at = ?
				 WHERE id = ? AND total_size + ? <= ?`,
				delta, toNanos(now), *current.CaseID, delta, limits.MaxTotalBytes,
			)
			if err != nil {
				return fmt.Errorf("failed to grow case size: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrLimitExceeded
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE cases SET total_size = MAX(total_size - ?, 0), updated_at = ? WHERE id = ?`,
				-delta, toNanos(now), *current.CaseID,
			); err != nil {
				return fmt.Errorf("failed to shrink case size: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET title = ?, content = ?, size_bytes = ?, last_modified_at = ? WHERE id = ?`,
		d.Title, d.Content, newSize, toNanos(now), d.ID,
	); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.OwnerID = current.OwnerID
	d.CaseID = current.CaseID
	d.CreatedAt = current.CreatedAt
	d.SizeBytes = newSize
	d.LastModifiedAt = now
	return nil
}

// Delete detaches and removes a document.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := getDocument(ctx, tx, id)
	if err != nil {
		return err
	}
	if current.CaseID != nil {
		if err := releaseCaseSlot(ctx, tx, *current.CaseID, current.SizeBytes, r.now()); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Attach links a document to a case. The limit check and both aggregate
// updates happen in the same transaction as the link change.
func (r *DocumentRepo) Attach(ctx context.Context, documentID, caseID string, limits CaseLimits) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := getDocument(ctx, tx, documentID)
	if err != nil {
		return false, err
	}
	if current.CaseID != nil && *current.CaseID == caseID {
		return false, nil
	}

	now := r.now()
	if err := reserveCaseSlot(ctx, tx, caseID, current.SizeBytes, limits, now); err != nil {
		return false, err
	}
	if current.CaseID != nil {
		if err := releaseCaseSlot(ctx, tx, *current.CaseID, current.SizeBytes, now); err != nil {
			return false, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET case_id = ? WHERE id = ?`, caseID, documentID,
	); err != nil {
		return false, fmt.Errorf("failed to attach document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// Detach clears a document's case link.
func (r *DocumentRepo) Detach(ctx context.Context, documentID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := getDocument(ctx, tx, documentID)
	if err != nil {
		return false, err
	}
	if current.CaseID == nil {
		return false, nil
	}

	if err := releaseCaseSlot(ctx, tx, *current.CaseID, current.SizeBytes, r.now()); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET case_id = NULL WHERE id = ?`, documentID,
	); err != nil {
		return false, fmt.Errorf("failed to detach document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// reserveCaseSlot increments a case's aggregates only if the result stays
// within limits. The guard lives in the UPDATE's WHERE clause so concurrent
// attaches cannot both pass the check.
func reserveCaseSlot(ctx context.Context, tx *sql.Tx, caseID string, size int64, limits CaseLimits, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE cases SET document_count = document_count + 1, total_size = total_size + ?, updated_at = ?
		 WHERE id = ? AND is_active = 1 AND document_count + 1 <= ? AND total_size + ? <= ?`,
		size, toNanos(now), caseID, limits.MaxDocuments, size, limits.MaxTotalBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve case slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 1 {
		return nil
	}

	var active int
	err = tx.QueryRowContext(ctx, `SELECT is_active FROM cases WHERE id = ?`, caseID).Scan(&active)
	if err == sql.ErrNoRows || (err == nil && active == 0) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query case: %w", err)
	}
	return ErrLimitExceeded
}

// releaseCaseSlot decrements a case's aggregates, flooring both at zero.
func releaseCaseSlot(ctx context.Context, tx *sql.Tx, caseID string, size int64, now time.Time) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE cases SET document_count = MAX(document_count - 1, 0), total_size = MAX(total_size - ?, 0), updated_at = ?
		 WHERE id = ?`,
		size, toNanos(now), caseID,
	); err != nil {
		return fmt.Errorf("failed to release case slot: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDocument(ctx context.Context, q queryRower, id string) (*DocumentRecord, error) {
	row := q.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return d, nil
}

func scanDocument(row rowScanner) (*DocumentRecord, error) {
	var d DocumentRecord
	var caseID sql.NullString
	var createdAt, modifiedAt int64
	if err := row.Scan(&d.ID, &d.OwnerID, &caseID, &d.Title, &d.Content, &d.SizeBytes, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}
	d.CaseID = nullString(caseID)
	d.CreatedAt = fromNanos(createdAt)
	d.LastModifiedAt = fromNanos(modifiedAt)
	return &d, nil
}
