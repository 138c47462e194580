package core

import (
	"testing"
	"time"
)

func TestElapsedDays(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	tests := []struct {
		name     string
		purchase time.Time
		now      time.Time
		loc      *time.Location
		want     int
	}{
		{
			name:     "same day, different times",
			purchase: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			loc:      time.UTC,
			want:     0,
		},
		{
			name:     "one minute past midnight counts as a day",
			purchase: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC),
			loc:      time.UTC,
			want:     1,
		},
		{
			name:     "future purchase date is absolute",
			purchase: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			want:     3,
		},
		{
			name:     "dates are taken in the configured zone",
			purchase: time.Date(2025, 3, 10, 0, 0, 0, 0, jst),
			now:      time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC), // 01:00 on the 11th in JST
			loc:      jst,
			want:     1,
		},
		{
			name:     "across a month and leap day",
			purchase: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			want:     2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedDays(tt.purchase, tt.now, tt.loc); got != tt.want {
				t.Errorf("ElapsedDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElapsedDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2025-03-09 is 23 hours long in New York.
	purchase := time.Date(2025, 3, 9, 0, 0, 0, 0, ny)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, ny)
	if got := ElapsedDays(purchase, now, ny); got != 1 {
		t.Fatalf("ElapsedDays across DST = %d, want 1", got)
	}
}

func TestParsePurchaseDate(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-03-10", "2025-03-10", true},
		{" 2025-03-10 ", "2025-03-10", true},
		{"2025-03-09T16:00:00Z", "2025-03-10", true},
		{"2025-03-10T08:00:00+09:00", "2025-03-10", true},
		{"2025/03/10", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePurchaseDate(tc.in, jst)
		if tc.ok {
			if err != nil || got.Format(DateLayout) != tc.want {
				t.Fatalf("%q expected %s, got %v (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
