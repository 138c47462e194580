package inventory

import (
	"context"
	"errors"

	"foodloss/internal/core"
)

// ErrNotFound is returned by GetIngredient for an unknown ID.
var ErrNotFound = errors.New("ingredient not found")

// Ports for storage adapters.
type (
	IngredientWriter interface {
		// CreateIngredient persists a validated ingredient and returns its ID.
		CreateIngredient(ctx context.Context, in core.NewIngredient) (id int64, err error)
	}

	// IngredientReader looks up a single ingredient.
	IngredientReader interface {
		GetIngredient(ctx context.Context, id int64) (core.Ingredient, error)
	}

	// IngredientLister returns every ingredient, most recently added first.
	IngredientLister interface {
		ListIngredients(ctx context.Context) ([]core.Ingredient, error)
	}

	ContributionWriter interface {
		AddContribution(ctx context.Context, grams float64) (id int64, err error)
	}

	// ContributionReader returns the sum of all contributions, 0 when there are none.
	ContributionReader interface {
		TotalContributionGrams(ctx context.Context) (float64, error)
	}

	// Pinger reports whether the store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Store is everything a backend provides.
	Store interface {
		IngredientWriter
		IngredientReader
		IngredientLister
		ContributionWriter
		ContributionReader
		Pinger
	}
)
