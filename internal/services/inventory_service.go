package services

import (
	"context"
	"fmt"
	"log/slog"

	"foodloss/internal/core"
	"foodloss/internal/inventory"
)

// EventPublisher announces successful writes to other processes.
type EventPublisher interface {
	PublishIngredientRegistered(ctx context.Context, id int64) error
	PublishContributionAdded(ctx context.Context, id int64, amountG float64) error
}

// InventoryService validates requests, writes them through the store and
// derives freshness and contribution views on read.
type InventoryService struct {
	store      inventory.Store
	publisher  EventPublisher
	classifier *Classifier
}

// NewInventoryService wires a store with an optional publisher (may be nil).
func NewInventoryService(store inventory.Store, publisher EventPublisher, classifier *Classifier) *InventoryService {
	if classifier == nil {
		classifier = NewClassifier(nil, nil)
	}
	return &InventoryService{
		store:      store,
		publisher:  publisher,
		classifier: classifier,
	}
}

// RegisterIngredient validates and stores an ingredient. No row is written
// when validation fails.
func (s *InventoryService) RegisterIngredient(ctx context.Context, in core.NewIngredient) (int64, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if !in.StorageLocation.IsKnown() {
		slog.WarnContext(ctx, "Unrecognized storage location, freshness will default to normal",
			"storage_location", in.StorageLocation,
			"name", in.Name)
	}

	id, err := s.store.CreateIngredient(ctx, in)
	if err != nil {
		return 0, core.NewStorageError("register ingredient", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishIngredientRegistered(ctx, id); err != nil {
			// The ingredient is stored; event delivery is best effort.
			slog.ErrorContext(ctx, "Failed to publish ingredient registered message", "id", id, "error", err)
		}
	}

	return id, nil
}

// ListIngredients returns every ingredient, newest first, with its freshness.
func (s *InventoryService) ListIngredients(ctx context.Context) ([]core.ClassifiedIngredient, error) {
	items, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, core.NewStorageError("list ingredients", err)
	}
	return s.classifier.Annotate(items), nil
}

// ClassifyIngredient loads one ingredient and classifies it.
func (s *InventoryService) ClassifyIngredient(ctx context.Context, id int64) (core.ClassifiedIngredient, error) {
	item, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return core.ClassifiedIngredient{}, core.NewStorageError(fmt.Sprintf("get ingredient %d", id), err)
	}
	return s.classifier.Annotate([]core.Ingredient{item})[0], nil
}

// AddContribution validates and records grams of food saved.
func (s *InventoryService) AddContribution(ctx context.Context, grams float64) (int64, error) {
	if err := core.ValidateAmount(grams); err != nil {
		return 0, err
	}

	id, err := s.store.AddContribution(ctx, grams)
	if err != nil {
		return 0, core.NewStorageError("add contribution", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishContributionAdded(ctx, id, grams); err != nil {
			slog.ErrorContext(ctx, "Failed to publish contribution added message", "id", id, "error", err)
		}
	}

	return id, nil
}

// Contribution recomputes the contribution summary from storage.
func (s *InventoryService) Contribution(ctx context.Context) (core.ContributionSummary, error) {
	total, err := s.store.TotalContributionGrams(ctx)
	if err != nil {
		return core.ContributionSummary{}, core.NewStorageError("sum contributions", err)
	}
	return core.Summarize(total), nil
}

// Ready reports whether the store is reachable.
func (s *InventoryService) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return core.NewStorageError("ping", err)
	}
	return nil
}

// StatusCounts tallies ingredients per freshness status.
func StatusCounts(items []core.ClassifiedIngredient) map[core.Freshness]int {
	counts := map[core.Freshness]int{
		core.StatusCritical: 0,
		core.StatusWarning:  0,
		core.StatusNormal:   0,
	}
	for _, it := range items {
		counts[it.Status]++
	}
	return counts
}

// Close releases the store when it owns resources.
func (s *InventoryService) Close() error {
	if s.store == nil {
		return nil
	}
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
