package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"foodloss/internal/amqp"
	"foodloss/internal/core"
	"foodloss/internal/inventory/memory"
	applog "foodloss/internal/log"
	"foodloss/internal/services"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newWorker(t *testing.T) (*AlertWorker, *memory.Store, *bytes.Buffer) {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	store := memory.NewWithClock(clock)
	svc := services.NewInventoryService(store, nil, services.NewClassifier(clock, time.UTC))
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Output: &buf})
	return NewAlertWorker(svc, logger), store, &buf
}

func seed(t *testing.T, store *memory.Store, name, date string, loc core.StorageLocation) int64 {
	t.Helper()
	id, err := store.CreateIngredient(context.Background(), core.NewIngredient{Name: name, PurchaseDate: date, StorageLocation: loc})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return id
}

func TestHandleIngredientRegistered(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		storage core.StorageLocation
		level   string
		message string
	}{
		{"critical logs a warning", "2025-03-10", core.Refrigerator, "level=WARN", "Ingredient should be used today"},
		{"warning logs info", "2025-03-08", core.Refrigerator, "level=INFO", "Ingredient should be used soon"},
		{"normal logs debug", "2025-03-10", core.Freezer, "level=DEBUG", "Ingredient is fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, store, buf := newWorker(t)
			id := seed(t, store, "Tofu", tt.date, tt.storage)

			if err := w.HandleIngredientRegistered(context.Background(), amqp.NewIngredientRegisteredMessage(id)); err != nil {
				t.Fatalf("HandleIngredientRegistered() error = %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.level) || !strings.Contains(out, tt.message) {
				t.Fatalf("log = %s", out)
			}
			if !strings.Contains(out, "component=worker") || !strings.Contains(out, "ingredient_name=Tofu") {
				t.Fatalf("log missing fields: %s", out)
			}
		})
	}
}

func TestHandleIngredientRegisteredMissingIsAcked(t *testing.T) {
	w, _, buf := newWorker(t)
	if err := w.HandleIngredientRegistered(context.Background(), amqp.NewIngredientRegisteredMessage(42)); err != nil {
		t.Fatalf("missing ingredient should be acknowledged, got %v", err)
	}
	if !strings.Contains(buf.String(), "not found") {
		t.Fatalf("log = %s", buf.String())
	}
}

type failingInventory struct{}

func (failingInventory) ClassifyIngredient(context.Context, int64) (core.ClassifiedIngredient, error) {
	return core.ClassifiedIngredient{}, core.NewStorageError("get ingredient", errors.New("disk I/O error"))
}

func (failingInventory) ListIngredients(context.Context) ([]core.ClassifiedIngredient, error) {
	return nil, core.NewStorageError("list ingredients", errors.New("disk I/O error"))
}

func TestHandleIngredientRegisteredStorageErrorRequeues(t *testing.T) {
	w := NewAlertWorker(failingInventory{}, applog.New(applog.Config{Output: &bytes.Buffer{}}))
	err := w.HandleIngredientRegistered(context.Background(), amqp.NewIngredientRegisteredMessage(1))
	if err == nil || !core.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := w.Sweep(context.Background()); err == nil {
		t.Fatal("Sweep should surface the storage error")
	}
}

func TestSweepCounts(t *testing.T) {
	w, store, buf := newWorker(t)
	seed(t, store, "Tofu", "2025-03-10", core.Refrigerator)
	seed(t, store, "Milk", "2025-03-08", core.Refrigerator)
	seed(t, store, "Peas", "2025-03-01", core.Freezer)
	seed(t, store, "Rice", "2025-03-01", "pantry")

	counts, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if counts[core.StatusCritical] != 1 || counts[core.StatusWarning] != 1 || counts[core.StatusNormal] != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if !strings.Contains(buf.String(), "total=4") {
		t.Fatalf("log = %s", buf.String())
	}
}

func TestRunSweepsStopsOnCancel(t *testing.T) {
	w, _, _ := newWorker(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.RunSweeps(ctx, time.Hour) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunSweeps() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunSweeps did not stop")
	}
}
