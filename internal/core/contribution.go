package core

import "math"

const (
	// CO2KgPerGram is the fixed CO2-equivalent factor of avoided food loss.
	CO2KgPerGram = 0.002
	// YenPerGram is the fixed value of one gram of avoided food loss.
	YenPerGram = 1.0
)

// ContributionSummary is the derived view of all recorded contributions.
type ContributionSummary struct {
	TotalGrams      float64
	CO2EquivalentKg float64
	SavedAmountYen  int64
}

// Summarize derives the display metrics from the total grams saved.
// Rounding is half away from zero: CO2 to one decimal, yen to an integer.
// A non-finite total is reported as zero.
func Summarize(totalGrams float64) ContributionSummary {
	if math.IsNaN(totalGrams) || math.IsInf(totalGrams, 0) {
		totalGrams = 0
	}
	return ContributionSummary{
		TotalGrams:      totalGrams,
		CO2EquivalentKg: math.Round(totalGrams*CO2KgPerGram*10) / 10,
		SavedAmountYen:  int64(math.Round(totalGrams * YenPerGram)),
	}
}
