package core

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Refrigerator StorageLocation = "refrigerator"
	Freezer      StorageLocation = "freezer"
	RoomTemp     StorageLocation = "roomTemp"
)

const (
	StatusCritical Freshness = "critical"
	StatusWarning  Freshness = "warning"
	StatusNormal   Freshness = "normal"
)

// DateLayout is the wire and storage format of purchase dates.
// Writes and reads both go through ParsePurchaseDate.
const DateLayout = "2006-01-02"

const (
	// MaxNameLength is the longest accepted ingredient name, in characters.
	MaxNameLength = 200
	// MaxAmountGrams caps a single contribution so running totals stay finite.
	MaxAmountGrams = 1e7
)

type (
	// StorageLocation tags where an ingredient is kept.
	StorageLocation string

	// Freshness is the urgency classification of an ingredient.
	Freshness string

	// NewIngredient carries the fields of a registration request.
	NewIngredient struct {
		Name            string
		PurchaseDate    string
		StorageLocation StorageLocation
	}

	// Ingredient is a persisted ingredient record.
	Ingredient struct {
		ID              int64
		Name            string
		PurchaseDate    string
		StorageLocation StorageLocation
		AddedAt         time.Time
	}

	// ClassifiedIngredient is an ingredient annotated with its freshness.
	ClassifiedIngredient struct {
		Ingredient
		Status Freshness
	}

	// Contribution is a recorded amount of food saved from waste.
	Contribution struct {
		ID            int64
		AmountGrams   float64
		ContributedAt time.Time
	}
)

var (
	ErrEmptyName            = errors.New("empty name")
	ErrNameTooLong          = errors.New("name too long (max 200 characters)")
	ErrEmptyPurchaseDate    = errors.New("empty purchase date")
	ErrInvalidPurchaseDate  = errors.New("invalid purchase date")
	ErrEmptyStorageLocation = errors.New("empty storage location")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// IsKnown reports whether l is one of the supported storage locations.
func (l StorageLocation) IsKnown() bool {
	switch l {
	case Refrigerator, Freezer, RoomTemp:
		return true
	}
	return false
}

// Normalize trims surrounding whitespace from every field.
func (n NewIngredient) Normalize() NewIngredient {
	return NewIngredient{
		Name:            strings.TrimSpace(n.Name),
		PurchaseDate:    strings.TrimSpace(n.PurchaseDate),
		StorageLocation: StorageLocation(strings.TrimSpace(string(n.StorageLocation))),
	}
}

// Validate checks the required fields of a registration request.
// Failures are returned as *ValidationError.
func (n NewIngredient) Validate() error {
	n = n.Normalize()
	if n.Name == "" {
		return NewValidationError("name", ErrEmptyName)
	}
	if utf8.RuneCountInString(n.Name) > MaxNameLength {
		return NewValidationError("name", ErrNameTooLong)
	}
	if n.PurchaseDate == "" {
		return NewValidationError("purchaseDate", ErrEmptyPurchaseDate)
	}
	if _, err := ParsePurchaseDate(n.PurchaseDate, time.UTC); err != nil {
		return NewValidationError("purchaseDate", ErrInvalidPurchaseDate)
	}
	if n.StorageLocation == "" {
		return NewValidationError("storageLocation", ErrEmptyStorageLocation)
	}
	return nil
}

// ValidateAmount checks a contribution amount in grams: finite, positive
// and at most MaxAmountGrams.
func ValidateAmount(grams float64) error {
	if math.IsNaN(grams) || grams <= 0 || grams > MaxAmountGrams {
		return NewValidationError("amount_g", ErrInvalidAmount)
	}
	return nil
}
