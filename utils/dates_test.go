package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 9, 1, 15, 42, 7, 123, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"same day, different times",
			time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC),
			0,
		},
		{
			"one week apart",
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			7,
		},
		{
			"end before start",
			time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			-7,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.start, tc.end); got != tc.want {
				t.Errorf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}
