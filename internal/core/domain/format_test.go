package domain

import (
	"testing"
	"time"
)

func TestFormatDuration_PrecisionTiers(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0秒"},
		{45, "45秒"},
		{59, "59秒"},
		{60, "1分"},
		{125, "2分"},
		{3599, "59分"},
		{3600, "1時間 0分"},
		{3725, "1時間 2分"},
		{7322, "2時間 2分"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestFormatTotal_ZeroPadded(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{90000, "25:00:00"}, // hours do not wrap at 24
	}
	for _, tc := range cases {
		if got := FormatTotal(tc.seconds); got != tc.want {
			t.Errorf("FormatTotal(%d): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestFormatEndTime_Today(t *testing.T) {
	now := time.Date(2026, 3, 4, 18, 0, 0, 0, tokyo)
	end := time.Date(2026, 3, 4, 14, 5, 0, 0, tokyo)
	if got := FormatEndTime(end, now); got != "今日 14:05" {
		t.Errorf("expected 今日 14:05, got %q", got)
	}
}

func TestFormatEndTime_OtherDay(t *testing.T) {
	now := time.Date(2026, 3, 4, 18, 0, 0, 0, tokyo)
	end := time.Date(2026, 3, 2, 9, 41, 0, 0, tokyo)
	if got := FormatEndTime(end, now); got != "3/2 09:41" {
		t.Errorf("expected 3/2 09:41, got %q", got)
	}
}

func TestFormatEndTime_ConvertsToNowLocation(t *testing.T) {
	// An entry stored in UTC that ended "today" in Tokyo must be labelled as
	// today even though the UTC date differs.
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, tokyo)
	end := time.Date(2026, 3, 3, 22, 30, 0, 0, time.UTC) // 2026-03-04 07:30 JST
	if got := FormatEndTime(end, now); got != "今日 07:30" {
		t.Errorf("expected 今日 07:30, got %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle(""); got != UntitledTaskLabel {
		t.Errorf("empty description must fall back to %q, got %q", UntitledTaskLabel, got)
	}
	if got := DisplayTitle("設計レビュー"); got != "設計レビュー" {
		t.Errorf("non-empty description must pass through, got %q", got)
	}
}

func TestElapsedSince_ClampsClockSkew(t *testing.T) {
	start := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	e := &TimeEntry{StartTime: start}

	if got := e.ElapsedSince(start.Add(90 * time.Second)); got != 90 {
		t.Errorf("expected 90, got %d", got)
	}
	// now before start (client/server clock skew) clamps to zero
	if got := e.ElapsedSince(start.Add(-5 * time.Second)); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}
