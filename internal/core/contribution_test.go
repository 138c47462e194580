package core

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		in   float64
		want ContributionSummary
	}{
		{0, ContributionSummary{TotalGrams: 0, CO2EquivalentKg: 0, SavedAmountYen: 0}},
		{1000, ContributionSummary{TotalGrams: 1000, CO2EquivalentKg: 2.0, SavedAmountYen: 1000}},
		{800, ContributionSummary{TotalGrams: 800, CO2EquivalentKg: 1.6, SavedAmountYen: 800}},
		{24, ContributionSummary{TotalGrams: 24, CO2EquivalentKg: 0, SavedAmountYen: 24}},
		{25, ContributionSummary{TotalGrams: 25, CO2EquivalentKg: 0.1, SavedAmountYen: 25}},
		{123.4, ContributionSummary{TotalGrams: 123.4, CO2EquivalentKg: 0.2, SavedAmountYen: 123}},
		{99.5, ContributionSummary{TotalGrams: 99.5, CO2EquivalentKg: 0.2, SavedAmountYen: 100}},
	}
	for _, tc := range cases {
		if got := Summarize(tc.in); got != tc.want {
			t.Errorf("Summarize(%v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSummarizeNonFiniteIsZero(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Summarize(in); got != (ContributionSummary{}) {
			t.Fatalf("Summarize(%v) = %+v", in, got)
		}
	}
}
