package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"foodloss/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "test.sqlite"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_IngredientsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	inputs := []core.NewIngredient{
		{Name: "Tofu", PurchaseDate: "2025-03-01", StorageLocation: core.Refrigerator},
		{Name: " Ice cream ", PurchaseDate: "2025-02-01", StorageLocation: core.Freezer},
		{Name: "Banana", PurchaseDate: "2025-03-02", StorageLocation: core.RoomTemp},
	}
	var ids []int64
	for _, in := range inputs {
		id, err := repo.CreateIngredient(ctx, in)
		if err != nil {
			t.Fatalf("CreateIngredient(%s): %v", in.Name, err)
		}
		ids = append(ids, id)
	}

	items, err := repo.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(items))
	}
	// Same-second inserts fall back to id ordering.
	if items[0].ID != ids[2] || items[2].ID != ids[0] {
		t.Fatalf("expected newest first, got ids %d,%d,%d", items[0].ID, items[1].ID, items[2].ID)
	}
	if items[1].Name != "Ice cream" {
		t.Errorf("name not trimmed: %q", items[1].Name)
	}
	if items[0].StorageLocation != core.RoomTemp || items[0].PurchaseDate != "2025-03-02" {
		t.Errorf("unexpected row: %+v", items[0])
	}
	if items[0].AddedAt.IsZero() || time.Since(items[0].AddedAt) > time.Hour {
		t.Errorf("added_at not set by storage: %v", items[0].AddedAt)
	}

	got, err := repo.GetIngredient(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetIngredient: %v", err)
	}
	if got.Name != "Tofu" {
		t.Errorf("GetIngredient name = %q", got.Name)
	}

	if _, err := repo.GetIngredient(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepository_ContributionTotals(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	total, err := repo.TotalContributionGrams(ctx)
	if err != nil {
		t.Fatalf("TotalContributionGrams on empty table: %v", err)
	}
	if total != 0 {
		t.Fatalf("NULL sum should be reported as 0, got %v", total)
	}

	for _, g := range []float64{500, 300} {
		if _, err := repo.AddContribution(ctx, g); err != nil {
			t.Fatalf("AddContribution(%v): %v", g, err)
		}
	}
	total, err = repo.TotalContributionGrams(ctx)
	if err != nil {
		t.Fatalf("TotalContributionGrams: %v", err)
	}
	if total != 800 {
		t.Fatalf("total = %v, want 800", total)
	}
}

func TestSQLiteRepository_RejectsNonPositiveAmountAtSchemaLevel(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.AddContribution(ctx, 0); err == nil {
		t.Fatal("expected CHECK constraint failure for amount 0")
	}
	total, _ := repo.TotalContributionGrams(ctx)
	if total != 0 {
		t.Fatalf("no row should have been written, total = %v", total)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.sqlite")
	for i := 0; i < 2; i++ {
		if err := RunMigrations(path); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}

func TestSQLiteRepository_Ping(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
