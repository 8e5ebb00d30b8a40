package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewCaseRepo(t *testing.T) {
	repo := NewCaseRepo(newTestDB(t))
	if repo == nil {
		t.Fatal("NewCaseRepo() returned nil")
	}
}

func TestCaseRepo_CreateAndGet(t *testing.T) {
	repo := NewCaseRepo(newTestDB(t))
	ctx := context.Background()

	c := &CaseRecord{OwnerID: "u1", Name: "Smith v. Jones", Description: "contract dispute"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == "" {
		t.Fatal("Create() should assign an ID")
	}

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "existing case", id: c.ID},
		{name: "missing case", id: "does-not-exist", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID() unexpected error: %v", err)
			}
			if got.Name != c.Name || got.Description != c.Description || got.OwnerID != "u1" {
				t.Errorf("GetByID() = %+v, want %+v", got, c)
			}
			if !got.IsActive || got.DocumentCount != 0 || got.TotalSize != 0 {
				t.Errorf("GetByID() new case should be active and empty, got %+v", got)
			}
			if !got.CreatedAt.Equal(c.CreatedAt) {
				t.Errorf("GetByID() CreatedAt = %v, want %v", got.CreatedAt, c.CreatedAt)
			}
		})
	}
}

func TestCaseRepo_ListActiveByOwner(t *testing.T) {
	repo := NewCaseRepo(newTestDB(t))
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	older := &CaseRecord{OwnerID: "u1", Name: "older"}
	newer := &CaseRecord{OwnerID: "u1", Name: "newer"}
	deleted := &CaseRecord{OwnerID: "u1", Name: "deleted"}
	other := &CaseRecord{OwnerID: "u2", Name: "not mine"}
	for _, c := range []*CaseRecord{older, newer, deleted, other} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.SoftDelete(ctx, deleted.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	got, err := repo.ListActiveByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListActiveByOwner() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListActiveByOwner() returned %d cases, want 2", len(got))
	}
	if got[0].Name != "newer" || got[1].Name != "older" {
		t.Errorf("ListActiveByOwner() order = [%s %s], want [newer older]", got[0].Name, got[1].Name)
	}
}

func TestCaseRepo_Update(t *testing.T) {
	repo := NewCaseRepo(newTestDB(t))
	ctx := context.Background()

	c := &CaseRecord{OwnerID: "u1", Name: "draft"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	c.Name = "final"
	c.Description = "renamed"
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, c.ID)
	if got.Name != "final" || got.Description != "renamed" {
		t.Errorf("Update() persisted %+v", got)
	}

	missing := &CaseRecord{ID: "nope", Name: "x"}
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() missing error = %v, want ErrNotFound", err)
	}
}

func TestCaseRepo_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	cases := NewCaseRepo(db)
	docs := NewDocumentRepo(db)
	ctx := context.Background()
	limits := CaseLimits{MaxDocuments: 30, MaxTotalBytes: 1 << 20}

	c := &CaseRecord{OwnerID: "u1", Name: "closing"}
	if err := cases.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	doc := &DocumentRecord{OwnerID: "u1", Title: "memo", Content: "hello", CaseID: &c.ID}
	if err := docs.Create(ctx, doc, limits); err != nil {
		t.Fatalf("Create() document error = %v", err)
	}

	if err := cases.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	got, err := cases.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.IsActive || got.DocumentCount != 0 || got.TotalSize != 0 {
		t.Errorf("SoftDelete() case = %+v, want inactive and empty", got)
	}

	gotDoc, err := docs.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("SoftDelete() should keep documents, GetByID() error = %v", err)
	}
	if gotDoc.CaseID != nil {
		t.Errorf("SoftDelete() document CaseID = %v, want nil", *gotDoc.CaseID)
	}

	if err := cases.SoftDelete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SoftDelete() missing error = %v, want ErrNotFound", err)
	}
}
