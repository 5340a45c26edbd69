package storage

import (
	"context"
	"path/filepath"
	"testing"

	"finboard/internal/core"
	"finboard/internal/dictionary"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "finboard.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptyDatabaseGivesDefault(t *testing.T) {
	repo := newTestRepo(t)
	d, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := d.Names()
	if len(names) != 1 || names[0] != core.Uncategorized {
		t.Fatalf("expected default dictionary, got %v", names)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	d := dictionary.New()
	_ = d.AddCategory("Food")
	_ = d.AddCategory("Dining")
	_, _ = d.AddKeyword("Food", "coffee shop")
	_, _ = d.AddKeyword("Food", "bakery corner")
	_, _ = d.AddKeyword("Dining", "restaurant row")

	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantNames := d.Names()
	gotNames := loaded.Names()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("names differ: %v vs %v", gotNames, wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("category order changed: %v vs %v", gotNames, wantNames)
		}
	}
	got := loaded.Keywords("Food")
	if len(got) != 2 || got[0] != "coffee shop" || got[1] != "bakery corner" {
		t.Fatalf("unexpected Food keywords: %v", got)
	}

	// Second save replaces content rather than appending.
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("second save: %v", err)
	}
	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(again.Keywords("Food")) != 2 {
		t.Fatalf("save is not idempotent: %v", again.Keywords("Food"))
	}
}
