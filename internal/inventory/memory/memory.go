package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foodloss/internal/core"
	"foodloss/internal/inventory"
)

// ErrNotFound is returned by GetIngredient for an unknown ID.
var ErrNotFound = inventory.ErrNotFound

var _ inventory.Store = (*Store)(nil)

type Store struct {
	mu            sync.Mutex
	now           func() time.Time
	ingredients   []core.Ingredient
	contributions []core.Contribution
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock is New with a custom timestamp source for added_at values.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// CreateIngredient stores the ingredient and returns its sequential ID.
func (s *Store) CreateIngredient(_ context.Context, in core.NewIngredient) (int64, error) {
	in = in.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.ingredients) + 1)
	s.ingredients = append(s.ingredients, core.Ingredient{
		ID:              id,
		Name:            in.Name,
		PurchaseDate:    in.PurchaseDate,
		StorageLocation: in.StorageLocation,
		AddedAt:         s.now().UTC(),
	})
	return id, nil
}

func (s *Store) GetIngredient(_ context.Context, id int64) (core.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id > int64(len(s.ingredients)) {
		return core.Ingredient{}, fmt.Errorf("get ingredient %d: %w", id, ErrNotFound)
	}
	return s.ingredients[id-1], nil
}

// ListIngredients returns a copy, newest first.
func (s *Store) ListIngredients(_ context.Context) ([]core.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Ingredient, 0, len(s.ingredients))
	for i := len(s.ingredients) - 1; i >= 0; i-- {
		out = append(out, s.ingredients[i])
	}
	return out, nil
}

func (s *Store) AddContribution(_ context.Context, grams float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.contributions) + 1)
	s.contributions = append(s.contributions, core.Contribution{
		ID:            id,
		AmountGrams:   grams,
		ContributedAt: s.now().UTC(),
	})
	return id, nil
}

func (s *Store) TotalContributionGrams(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, c := range s.contributions {
		total += c.AmountGrams
	}
	return total, nil
}

func (s *Store) Ping(context.Context) error { return nil }
