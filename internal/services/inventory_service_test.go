package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodloss/internal/core"
	"foodloss/internal/inventory/memory"
)

type fakePublisher struct {
	ingredients   []int64
	contributions []float64
	err           error
}

func (f *fakePublisher) PublishIngredientRegistered(_ context.Context, id int64) error {
	f.ingredients = append(f.ingredients, id)
	return f.err
}

func (f *fakePublisher) PublishContributionAdded(_ context.Context, _ int64, g float64) error {
	f.contributions = append(f.contributions, g)
	return f.err
}

// failingStore fails every operation with a storage-layer error.
type failingStore struct{ err error }

func (f failingStore) CreateIngredient(context.Context, core.NewIngredient) (int64, error) {
	return 0, f.err
}
func (f failingStore) GetIngredient(context.Context, int64) (core.Ingredient, error) {
	return core.Ingredient{}, f.err
}
func (f failingStore) ListIngredients(context.Context) ([]core.Ingredient, error) { return nil, f.err }
func (f failingStore) AddContribution(context.Context, float64) (int64, error)     { return 0, f.err }
func (f failingStore) TotalContributionGrams(context.Context) (float64, error)     { return 0, f.err }
func (f failingStore) Ping(context.Context) error                                 { return f.err }

func fixedClassifier() *Classifier {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	return NewClassifier(func() time.Time { return now }, time.UTC)
}

func TestInventoryService_RegisterAndList(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewInventoryService(memory.New(), pub, fixedClassifier())

	id, err := svc.RegisterIngredient(ctx, core.NewIngredient{Name: "Tofu", PurchaseDate: "2025-03-10", StorageLocation: core.Refrigerator})
	if err != nil {
		t.Fatalf("RegisterIngredient: %v", err)
	}
	if _, err := svc.RegisterIngredient(ctx, core.NewIngredient{Name: "Tofu", PurchaseDate: "2025-03-10", StorageLocation: core.Freezer}); err != nil {
		t.Fatalf("RegisterIngredient: %v", err)
	}

	items, err := svc.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].StorageLocation != core.Freezer || items[0].Status != core.StatusNormal {
		t.Errorf("newest item = %+v", items[0])
	}
	if items[1].ID != id || items[1].Status != core.StatusCritical {
		t.Errorf("oldest item = %+v", items[1])
	}
	if len(pub.ingredients) != 2 || pub.ingredients[0] != id {
		t.Errorf("published = %v", pub.ingredients)
	}

	got, err := svc.ClassifyIngredient(ctx, id)
	if err != nil || got.Status != core.StatusCritical {
		t.Errorf("ClassifyIngredient = %+v, %v", got, err)
	}
}

func TestInventoryService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	pub := &fakePublisher{}
	svc := NewInventoryService(store, pub, fixedClassifier())

	bads := []core.NewIngredient{
		{Name: "", PurchaseDate: "2025-03-10", StorageLocation: core.Refrigerator},
		{Name: "   ", PurchaseDate: "2025-03-10", StorageLocation: core.Refrigerator},
		{Name: "Tofu", PurchaseDate: "", StorageLocation: core.Refrigerator},
		{Name: "Tofu", PurchaseDate: "10/03/2025", StorageLocation: core.Refrigerator},
		{Name: "Tofu", PurchaseDate: "2025-03-10", StorageLocation: ""},
		{Name: "Tofu", PurchaseDate: "2025-03-10", StorageLocation: " "},
	}
	for i, in := range bads {
		_, err := svc.RegisterIngredient(ctx, in)
		if !core.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
		if core.IsStorage(err) {
			t.Fatalf("case %d: validation error classified as storage error", i)
		}
	}

	items, _ := store.ListIngredients(ctx)
	if len(items) != 0 {
		t.Fatalf("no rows should be written, got %d", len(items))
	}
	if len(pub.ingredients) != 0 {
		t.Fatalf("no events should be published, got %v", pub.ingredients)
	}
}

func TestInventoryService_UnknownStorageIsAccepted(t *testing.T) {
	svc := NewInventoryService(memory.New(), nil, fixedClassifier())
	if _, err := svc.RegisterIngredient(context.Background(), core.NewIngredient{Name: "Rice", PurchaseDate: "2025-01-01", StorageLocation: "pantry"}); err != nil {
		t.Fatalf("RegisterIngredient: %v", err)
	}
	items, _ := svc.ListIngredients(context.Background())
	if items[0].Status != core.StatusNormal {
		t.Errorf("unknown storage status = %s, want normal", items[0].Status)
	}
}

func TestInventoryService_Contributions(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewInventoryService(memory.New(), pub, nil)

	summary, err := svc.Contribution(ctx)
	if err != nil {
		t.Fatalf("Contribution: %v", err)
	}
	if summary != (core.ContributionSummary{}) {
		t.Errorf("empty summary = %+v", summary)
	}

	for _, g := range []float64{500, 300} {
		if _, err := svc.AddContribution(ctx, g); err != nil {
			t.Fatalf("AddContribution(%v): %v", g, err)
		}
	}
	summary, _ = svc.Contribution(ctx)
	want := core.ContributionSummary{TotalGrams: 800, CO2EquivalentKg: 1.6, SavedAmountYen: 800}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
	if len(pub.contributions) != 2 {
		t.Errorf("published = %v", pub.contributions)
	}

	for _, g := range []float64{0, -1} {
		if _, err := svc.AddContribution(ctx, g); !core.IsValidation(err) {
			t.Errorf("AddContribution(%v) err = %v, want validation error", g, err)
		}
	}
	summary, _ = svc.Contribution(ctx)
	if summary.TotalGrams != 800 {
		t.Errorf("rejected contributions were persisted: %v", summary.TotalGrams)
	}
}

func TestInventoryService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	svc := NewInventoryService(memory.New(), &fakePublisher{err: errors.New("broker down")}, fixedClassifier())

	if _, err := svc.RegisterIngredient(ctx, core.NewIngredient{Name: "Milk", PurchaseDate: "2025-03-10", StorageLocation: core.Refrigerator}); err != nil {
		t.Fatalf("RegisterIngredient: %v", err)
	}
	if _, err := svc.AddContribution(ctx, 10); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
}

func TestInventoryService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk I/O error")
	svc := NewInventoryService(failingStore{err: cause}, nil, fixedClassifier())

	checks := map[string]error{}
	_, checks["register"] = svc.RegisterIngredient(ctx, core.NewIngredient{Name: "Tofu", PurchaseDate: "2025-03-10", StorageLocation: core.Refrigerator})
	_, checks["list"] = svc.ListIngredients(ctx)
	_, checks["classify"] = svc.ClassifyIngredient(ctx, 1)
	_, checks["add"] = svc.AddContribution(ctx, 1)
	_, checks["total"] = svc.Contribution(ctx)
	checks["ready"] = svc.Ready(ctx)

	for op, err := range checks {
		if !core.IsStorage(err) {
			t.Errorf("%s: expected storage error, got %v", op, err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s: underlying error not wrapped: %v", op, err)
		}
		if core.IsValidation(err) {
			t.Errorf("%s: storage error classified as validation", op)
		}
	}
}

func TestInventoryService_Close(t *testing.T) {
	svc := &InventoryService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close with nil store: %v", err)
	}
	if err := NewInventoryService(memory.New(), nil, nil).Close(); err != nil {
		t.Fatalf("Close with memory store: %v", err)
	}
}
