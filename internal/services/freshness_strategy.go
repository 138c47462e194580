// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for freshness classification.
// Each storage location (refrigerator, freezer, roomTemp) has its own policy
// that maps the days elapsed since purchase to an urgency tag.

package services

import (
	"time"

	"foodloss/internal/core"
)

// FreshnessPolicy is the strategy interface for classifying an ingredient.
type FreshnessPolicy interface {
	// Classify returns the urgency tag for the given number of elapsed days.
	Classify(elapsedDays int) core.Freshness
}

// RefrigeratorPolicy: used within a day is critical, within three days a warning.
type RefrigeratorPolicy struct{}

func (RefrigeratorPolicy) Classify(elapsedDays int) core.Freshness {
	switch {
	case elapsedDays <= 1:
		return core.StatusCritical
	case elapsedDays <= 3:
		return core.StatusWarning
	default:
		return core.StatusNormal
	}
}

// FreezerPolicy warns only about long-term storage.
type FreezerPolicy struct{}

func (FreezerPolicy) Classify(elapsedDays int) core.Freshness {
	if elapsedDays <= 30 {
		return core.StatusNormal
	}
	return core.StatusWarning
}

// RoomTempPolicy is harsh: only the day after purchase is a warning,
// every other day is critical.
type RoomTempPolicy struct{}

func (RoomTempPolicy) Classify(elapsedDays int) core.Freshness {
	switch {
	case elapsedDays <= 0:
		return core.StatusCritical
	case elapsedDays <= 1:
		return core.StatusWarning
	default:
		return core.StatusCritical
	}
}

// FallbackPolicy is used for unrecognized storage locations. It fails open.
type FallbackPolicy struct{}

func (FallbackPolicy) Classify(int) core.Freshness {
	return core.StatusNormal
}

// defaultPolicies returns a fresh policy table for the supported storage locations.
func defaultPolicies() map[core.StorageLocation]FreshnessPolicy {
	return map[core.StorageLocation]FreshnessPolicy{
		core.Refrigerator: RefrigeratorPolicy{},
		core.Freezer:      FreezerPolicy{},
		core.RoomTemp:     RoomTempPolicy{},
	}
}

// Classifier classifies ingredients against a clock and a time zone.
// Its policy table is built once by NewClassifier and never mutated.
type Classifier struct {
	now      func() time.Time
	location *time.Location
	policies map[core.StorageLocation]FreshnessPolicy
}

// NewClassifier returns a Classifier. A nil clock means time.Now and a nil
// location means time.Local.
func NewClassifier(now func() time.Time, loc *time.Location) *Classifier {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{now: now, location: loc, policies: defaultPolicies()}
}

// Policy returns the policy for a storage location, or FallbackPolicy when
// the location is not supported.
func (c *Classifier) Policy(location core.StorageLocation) FreshnessPolicy {
	if p, ok := c.policies[location]; ok {
		return p
	}
	return FallbackPolicy{}
}

// ClassifyElapsed classifies an ingredient from its elapsed days and storage location.
func (c *Classifier) ClassifyElapsed(elapsedDays int, location core.StorageLocation) core.Freshness {
	return c.Policy(location).Classify(elapsedDays)
}

// Classify returns the freshness of an ingredient bought on purchaseDate.
// It never fails: an unparseable date classifies as normal.
func (c *Classifier) Classify(purchaseDate string, storage core.StorageLocation) core.Freshness {
	purchased, err := core.ParsePurchaseDate(purchaseDate, c.location)
	if err != nil {
		return core.StatusNormal
	}
	return c.ClassifyElapsed(core.ElapsedDays(purchased, c.now(), c.location), storage)
}

// Annotate classifies every ingredient, preserving order.
func (c *Classifier) Annotate(items []core.Ingredient) []core.ClassifiedIngredient {
	out := make([]core.ClassifiedIngredient, len(items))
	for i, it := range items {
		out[i] = core.ClassifiedIngredient{
			Ingredient: it,
			Status:     c.Classify(it.PurchaseDate, it.StorageLocation),
		}
	}
	return out
}
