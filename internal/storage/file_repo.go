package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_store.go -package=mocks casedesk/internal/storage FileStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileStore defines the interface for uploaded file metadata.
type FileStore interface {
	Create(ctx context.Context, f *FileRecord) error
	// GetByID returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*FileRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]FileRecord, error)
	// SetExtractedText caches extracted text; nil clears the cache.
	SetExtractedText(ctx context.Context, id string, text *string) error
}

// FileRepo provides methods for file operations.
// It implements the FileStore interface.
type FileRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(db *sql.DB) *FileRepo {
	return &FileRepo{db: db, now: time.Now}
}

const fileColumns = "id, owner_id, case_id, storage_key, mime_type, name, size_bytes, extracted_text, created_at"

// Create inserts a new file record.
func (r *FileRepo) Create(ctx context.Context, f *FileRecord) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.CreatedAt = r.now().UTC()

	var caseID, text any
	if f.CaseID != nil {
		caseID = *f.CaseID
	}
	if f.ExtractedText != nil {
		text = *f.ExtractedText
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO files (`+fileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.OwnerID, caseID, f.StorageKey, f.MimeType, f.Name, f.SizeBytes, text, toNanos(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

// GetByID gets a file by ID.
func (r *FileRepo) GetByID(ctx context.Context, id string) (*FileRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}
	return f, nil
}

// ListByOwner lists files uploaded by ownerID, newest first.
func (r *FileRepo) ListByOwner(ctx context.Context, ownerID string) ([]FileRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM files WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var files []FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}
	return files, nil
}

// SetExtractedText updates the cached extracted text.
func (r *FileRepo) SetExtractedText(ctx context.Context, id string, text *string) error {
	var v any
	if text != nil {
		v = *text
	}
	res, err := r.db.ExecContext(ctx, `UPDATE files SET extracted_text = ? WHERE id = ?`, v, id)
	if err != nil {
		return fmt.Errorf("failed to update extracted text: %w", err)
	}
	return expectOneRow(res)
}

func scanFile(row rowScanner) (*FileRecord, error) {
	var f FileRecord
	var caseID, text sql.NullString
	var createdAt int64
	if err := row.Scan(&f.ID, &f.OwnerID, &caseID, &f.StorageKey, &f.MimeType, &f.Name,
		&f.SizeBytes, &text, &createdAt); err != nil {
		return nil, err
	}
	f.CaseID = nullString(caseID)
	f.ExtractedText = nullString(text)
	f.CreatedAt = fromNanos(createdAt)
	return &f, nil
}
