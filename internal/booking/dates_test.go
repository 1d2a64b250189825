package booking

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Error("ParseDate accepted a non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("ParseDate accepted an empty string")
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2026, time.July, 4, 18, 45, 12, 0, time.UTC)
	want := Date(2026, time.July, 4)
	if got := DayOf(ts); !got.Equal(want) {
		t.Errorf("DayOf = %v, want %v", got, want)
	}
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		in, out  time.Time
		expected int
	}{
		{"three nights", Date(2026, 3, 10), Date(2026, 3, 13), 3},
		{"one night", Date(2026, 3, 10), Date(2026, 3, 11), 1},
		{"same day", Date(2026, 3, 10), Date(2026, 3, 10), 0},
		{"inverted", Date(2026, 3, 13), Date(2026, 3, 10), -3},
		{"across month end", Date(2026, 1, 30), Date(2026, 2, 2), 3},
	}
	for _, tc := range cases {
		if got := Nights(tc.in, tc.out); got != tc.expected {
			t.Errorf("%s: Nights = %d, want %d", tc.name, got, tc.expected)
		}
	}
}

func TestOverlaps(t *testing.T) {
	type span struct {
		in, out time.Time
	}
	cases := []struct {
		name     string
		a, b     span
		expected bool
	}{
		{"identical", span{Date(2026, 3, 10), Date(2026, 3, 13)}, span{Date(2026, 3, 10), Date(2026, 3, 13)}, true},
		{"contained", span{Date(2026, 3, 10), Date(2026, 3, 20)}, span{Date(2026, 3, 12), Date(2026, 3, 14)}, true},
		{"partial front", span{Date(2026, 3, 10), Date(2026, 3, 13)}, span{Date(2026, 3, 12), Date(2026, 3, 15)}, true},
		{"partial back", span{Date(2026, 3, 12), Date(2026, 3, 15)}, span{Date(2026, 3, 10), Date(2026, 3, 13)}, true},
		{"disjoint", span{Date(2026, 3, 10), Date(2026, 3, 12)}, span{Date(2026, 3, 20), Date(2026, 3, 22)}, false},
		{"back to back", span{Date(2026, 3, 10), Date(2026, 3, 13)}, span{Date(2026, 3, 13), Date(2026, 3, 15)}, false},
		{"back to back reversed", span{Date(2026, 3, 13), Date(2026, 3, 15)}, span{Date(2026, 3, 10), Date(2026, 3, 13)}, false},
		{"single shared night", span{Date(2026, 3, 10), Date(2026, 3, 13)}, span{Date(2026, 3, 12), Date(2026, 3, 13)}, true},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.a.in, tc.a.out, tc.b.in, tc.b.out); got != tc.expected {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.expected)
		}
		// Overlap is symmetric.
		if got := Overlaps(tc.b.in, tc.b.out, tc.a.in, tc.a.out); got != tc.expected {
			t.Errorf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.March)
	if !start.Equal(Date(2026, 3, 1)) {
		t.Errorf("start = %v, want 2026-03-01", start)
	}
	if !end.Equal(Date(2026, 4, 1)) {
		t.Errorf("end = %v, want 2026-04-01", end)
	}

	// December rolls into the next year.
	start, end = MonthRange(2026, time.December)
	if !start.Equal(Date(2026, 12, 1)) {
		t.Errorf("december start = %v, want 2026-12-01", start)
	}
	if !end.Equal(Date(2027, 1, 1)) {
		t.Errorf("december end = %v, want 2027-01-01", end)
	}

	// February in a leap year still ends on the first of March.
	start, end = MonthRange(2028, time.February)
	if got := Nights(start, end); got != 29 {
		t.Errorf("leap february has %d days, want 29", got)
	}
}
