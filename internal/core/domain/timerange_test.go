package domain

import (
	"testing"
	"time"
)

// fixed zone to make sure resolution respects the instant's location, not UTC.
var tokyo = time.FixedZone("JST", 9*60*60)

func TestResolveRangeStart_Today(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 30, 45, 0, tokyo) // a Wednesday afternoon
	start, ok := ResolveRangeStart(RangeToday, now)
	if !ok {
		t.Fatal("today must have a lower bound")
	}
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, tokyo)
	if !start.Equal(want) {
		t.Errorf("expected %v, got %v", want, start)
	}
}

func TestResolveRangeStart_WeekFromWednesday(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, tokyo) // Wednesday
	start, ok := ResolveRangeStart(RangeWeek, now)
	if !ok {
		t.Fatal("week must have a lower bound")
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, tokyo) // preceding Sunday
	if !start.Equal(want) {
		t.Errorf("expected Sunday midnight %v, got %v", want, start)
	}
	if start.Weekday() != time.Sunday {
		t.Errorf("expected Sunday, got %v", start.Weekday())
	}
}

func TestResolveRangeStart_WeekOnSunday(t *testing.T) {
	// Already Sunday: the boundary is that same day's midnight.
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, tokyo)
	start, _ := ResolveRangeStart(RangeWeek, now)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, tokyo)
	if !start.Equal(want) {
		t.Errorf("expected %v, got %v", want, start)
	}
}

func TestResolveRangeStart_Month(t *testing.T) {
	now := time.Date(2026, 3, 31, 23, 59, 59, 0, tokyo)
	start, _ := ResolveRangeStart(RangeMonth, now)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, tokyo)
	if !start.Equal(want) {
		t.Errorf("expected day 1 midnight %v, got %v", want, start)
	}
}

func TestResolveRangeStart_All(t *testing.T) {
	_, ok := ResolveRangeStart(RangeAll, time.Now())
	if ok {
		t.Error("all must have no lower bound")
	}
}

func TestResolveRangeStart_ExactMidnight(t *testing.T) {
	// At exactly midnight the boundary instant itself belongs to the new day:
	// the bound is inclusive (start_time >= bound).
	now := time.Date(2026, 3, 4, 0, 0, 0, 0, tokyo)
	start, _ := ResolveRangeStart(RangeToday, now)
	if !start.Equal(now) {
		t.Errorf("midnight call must bound at itself: expected %v, got %v", now, start)
	}
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{"today", RangeToday, false},
		{"week", RangeWeek, false},
		{"month", RangeMonth, false},
		{"all", RangeAll, false},
		{"", RangeToday, false},
		{"yesterday", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRange(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRange(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseRange(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
