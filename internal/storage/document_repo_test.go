package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

var testLimits = CaseLimits{MaxDocuments: 30, MaxTotalBytes: 50 * 1024 * 1024}

type docFixture struct {
	cases *CaseRepo
	docs  *DocumentRepo
}

func newDocFixture(t *testing.T) docFixture {
	db := newTestDB(t)
	return docFixture{cases: NewCaseRepo(db), docs: NewDocumentRepo(db)}
}

func (f docFixture) newCase(t *testing.T, owner string) *CaseRecord {
	t.Helper()
	c := &CaseRecord{OwnerID: owner, Name: "case"}
	if err := f.cases.Create(context.Background(), c); err != nil {
		t.Fatalf("Create() case error = %v", err)
	}
	return c
}

func (f docFixture) newDoc(t *testing.T, owner, content string) *DocumentRecord {
	t.Helper()
	d := &DocumentRecord{OwnerID: owner, Title: "doc", Content: content}
	if err := f.docs.Create(context.Background(), d, testLimits); err != nil {
		t.Fatalf("Create() document error = %v", err)
	}
	return d
}

func (f docFixture) aggregates(t *testing.T, caseID string) (int, int64) {
	t.Helper()
	c, err := f.cases.GetByID(context.Background(), caseID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	return c.DocumentCount, c.TotalSize
}

func TestDocumentRepo_Create(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")

	tests := []struct {
		name      string
		doc       *DocumentRecord
		wantErr   error
		wantCount int
	}{
		{
			name:      "unattached",
			doc:       &DocumentRecord{OwnerID: "u1", Title: "a", Content: "abc"},
			wantCount: 0,
		},
		{
			name:      "attached on create",
			doc:       &DocumentRecord{OwnerID: "u1", Title: "b", Content: "héllo", CaseID: &c.ID},
			wantCount: 1,
		},
		{
			name:      "unknown case",
			doc:       &DocumentRecord{OwnerID: "u1", Title: "c", Content: "x", CaseID: strPtr("missing")},
			wantErr:   ErrNotFound,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.docs.Create(ctx, tt.doc, testLimits)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if count, _ := f.aggregates(t, c.ID); count != tt.wantCount {
				t.Errorf("Create() case count = %d, want %d", count, tt.wantCount)
			}
			if tt.wantErr != nil {
				return
			}
			if tt.doc.SizeBytes != int64(len(tt.doc.Content)) {
				t.Errorf("Create() SizeBytes = %d, want byte length %d", tt.doc.SizeBytes, len(tt.doc.Content))
			}
		})
	}
}

func TestDocumentRepo_AttachLimits(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")

	for i := 0; i < 30; i++ {
		d := f.newDoc(t, "u1", fmt.Sprintf("doc %d", i))
		if _, err := f.docs.Attach(ctx, d.ID, c.ID, testLimits); err != nil {
			t.Fatalf("Attach() #%d error = %v", i+1, err)
		}
	}

	extra := f.newDoc(t, "u1", "one too many")
	if _, err := f.docs.Attach(ctx, extra.ID, c.ID, testLimits); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Attach() 31st error = %v, want ErrLimitExceeded", err)
	}
	if count, _ := f.aggregates(t, c.ID); count != 30 {
		t.Errorf("Attach() count after rejection = %d, want 30", count)
	}
	got, _ := f.docs.GetByID(ctx, extra.ID)
	if got.CaseID != nil {
		t.Error("Attach() rejected document should stay unattached")
	}
}

func TestDocumentRepo_AttachSizeLimit(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	small := CaseLimits{MaxDocuments: 30, MaxTotalBytes: 10}

	fits := f.newDoc(t, "u1", "123456")
	tooBig := f.newDoc(t, "u1", "12345")

	if _, err := f.docs.Attach(ctx, fits.ID, c.ID, small); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if _, err := f.docs.Attach(ctx, tooBig.ID, c.ID, small); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("Attach() error = %v, want ErrLimitExceeded", err)
	}
	if count, size := f.aggregates(t, c.ID); count != 1 || size != 6 {
		t.Errorf("aggregates = (%d, %d), want (1, 6)", count, size)
	}
}

func TestDocumentRepo_AttachIdempotent(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	d := f.newDoc(t, "u1", "twelve bytes")

	changed, err := f.docs.Attach(ctx, d.ID, c.ID, testLimits)
	if err != nil || !changed {
		t.Fatalf("Attach() = (%v, %v), want (true, nil)", changed, err)
	}
	changed, err = f.docs.Attach(ctx, d.ID, c.ID, testLimits)
	if err != nil || changed {
		t.Fatalf("Attach() again = (%v, %v), want (false, nil)", changed, err)
	}

	if count, size := f.aggregates(t, c.ID); count != 1 || size != 12 {
		t.Errorf("aggregates = (%d, %d), want (1, 12)", count, size)
	}
}

func TestDocumentRepo_AttachMovesBetweenCases(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	from := f.newCase(t, "u1")
	to := f.newCase(t, "u1")
	d := f.newDoc(t, "u1", "abcd")

	if _, err := f.docs.Attach(ctx, d.ID, from.ID, testLimits); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if _, err := f.docs.Attach(ctx, d.ID, to.ID, testLimits); err != nil {
		t.Fatalf("Attach() move error = %v", err)
	}

	if count, size := f.aggregates(t, from.ID); count != 0 || size != 0 {
		t.Errorf("source aggregates = (%d, %d), want (0, 0)", count, size)
	}
	if count, size := f.aggregates(t, to.ID); count != 1 || size != 4 {
		t.Errorf("target aggregates = (%d, %d), want (1, 4)", count, size)
	}
}

func TestDocumentRepo_AttachInactiveCase(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	d := f.newDoc(t, "u1", "x")

	if err := f.cases.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if _, err := f.docs.Attach(ctx, d.ID, c.ID, testLimits); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attach() inactive case error = %v, want ErrNotFound", err)
	}
	if _, err := f.docs.Attach(ctx, "missing", c.ID, testLimits); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attach() missing document error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_Detach(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	d := f.newDoc(t, "u1", "content")

	if changed, err := f.docs.Detach(ctx, d.ID); err != nil || changed {
		t.Fatalf("Detach() unattached = (%v, %v), want (false, nil)", changed, err)
	}
	if _, err := f.docs.Attach(ctx, d.ID, c.ID, testLimits); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if changed, err := f.docs.Detach(ctx, d.ID); err != nil || !changed {
		t.Fatalf("Detach() = (%v, %v), want (true, nil)", changed, err)
	}
	if count, size := f.aggregates(t, c.ID); count != 0 || size != 0 {
		t.Errorf("aggregates = (%d, %d), want (0, 0)", count, size)
	}
}

func TestDocumentRepo_DetachFloorsAtZero(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	d := f.newDoc(t, "u1", "content")

	if _, err := f.docs.Attach(ctx, d.ID, c.ID, testLimits); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	// Simulate drifted aggregates.
	if _, err := f.docs.db.Exec(`UPDATE cases SET document_count = 0, total_size = 2 WHERE id = ?`, c.ID); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if _, err := f.docs.Detach(ctx, d.ID); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if count, size := f.aggregates(t, c.ID); count != 0 || size != 0 {
		t.Errorf("aggregates = (%d, %d), want (0, 0)", count, size)
	}
}

func TestDocumentRepo_UpdateContent(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	limits := CaseLimits{MaxDocuments: 30, MaxTotalBytes: 20}

	d := &DocumentRecord{OwnerID: "u1", Title: "t", Content: "0123456789", CaseID: &c.ID}
	if err := f.docs.Create(ctx, d, limits); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		content  string
		wantErr  error
		wantSize int64
	}{
		{name: "grow within limit", content: strings.Repeat("a", 15), wantSize: 15},
		{name: "grow past limit", content: strings.Repeat("a", 21), wantErr: ErrLimitExceeded, wantSize: 15},
		{name: "shrink", content: "abc", wantSize: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upd := &DocumentRecord{ID: d.ID, Title: "t2", Content: tt.content}
			err := f.docs.UpdateContent(ctx, upd, limits)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateContent() error = %v, want %v", err, tt.wantErr)
			}
			if _, size := f.aggregates(t, c.ID); size != tt.wantSize {
				t.Errorf("case total size = %d, want %d", size, tt.wantSize)
			}
			got, _ := f.docs.GetByID(ctx, d.ID)
			if got.SizeBytes != tt.wantSize {
				t.Errorf("document size = %d, want %d", got.SizeBytes, tt.wantSize)
			}
		})
	}

	if err := f.docs.UpdateContent(ctx, &DocumentRecord{ID: "missing"}, limits); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateContent() missing error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_Delete(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	d := &DocumentRecord{OwnerID: "u1", Title: "t", Content: "bye", CaseID: &c.ID}
	if err := f.docs.Create(ctx, d, testLimits); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.docs.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := f.docs.GetByID(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if count, size := f.aggregates(t, c.ID); count != 0 || size != 0 {
		t.Errorf("aggregates = (%d, %d), want (0, 0)", count, size)
	}
	if err := f.docs.Delete(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_ListByCaseAndOwner(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")

	a := f.newDoc(t, "u1", "a")
	f.newDoc(t, "u1", "b")
	f.newDoc(t, "u2", "c")
	if _, err := f.docs.Attach(ctx, a.ID, c.ID, testLimits); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	owned, err := f.docs.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(owned) != 2 {
		t.Errorf("ListByOwner() returned %d, want 2", len(owned))
	}

	inCase, err := f.docs.ListByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	if len(inCase) != 1 || inCase[0].ID != a.ID {
		t.Errorf("ListByCase() = %+v, want only %s", inCase, a.ID)
	}
}

func TestDocumentRepo_ConcurrentAttachRespectsLimit(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	c := f.newCase(t, "u1")
	limits := CaseLimits{MaxDocuments: 5, MaxTotalBytes: 1 << 20}

	docs := make([]*DocumentRecord, 12)
	for i := range docs {
		docs[i] = f.newDoc(t, "u1", fmt.Sprintf("doc %d", i))
	}

	var wg sync.WaitGroup
	for _, d := range docs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = f.docs.Attach(ctx, id, c.ID, limits)
		}(d.ID)
	}
	wg.Wait()

	attached, err := f.docs.ListByCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListByCase() error = %v", err)
	}
	count, _ := f.aggregates(t, c.ID)
	if count > 5 || count != len(attached) {
		t.Errorf("count = %d, attached = %d, want equal and <= 5", count, len(attached))
	}
}

func strPtr(s string) *string { return &s }
