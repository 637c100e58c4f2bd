package util

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	if got := DateOf(ts); got != "2026-08-28" {
		t.Fatalf("got %q", got)
	}
	if len(Today()) != len(DateLayout) {
		t.Fatalf("today should use the calendar-date layout")
	}
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("06:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mins != 6*60+30 {
		t.Fatalf("unexpected minutes %d", mins)
	}
}

func TestParseClockInvalid(t *testing.T) {
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseClock("bogus"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestIsWeekday(t *testing.T) {
	mon := time.Date(2024, 10, 7, 12, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 10, 6, 12, 0, 0, 0, time.UTC)
	if !IsWeekday(mon) {
		t.Fatalf("monday should be a weekday")
	}
	if IsWeekday(sun) {
		t.Fatalf("sunday should not be a weekday")
	}
}

func TestWithinWindow(t *testing.T) {
	open, _ := ParseClock("06:30")
	close, _ := ParseClock("13:00")

	inside := time.Date(2024, 10, 7, 9, 15, 0, 0, time.UTC)
	before := time.Date(2024, 10, 7, 6, 29, 0, 0, time.UTC)
	at := time.Date(2024, 10, 7, 6, 30, 0, 0, time.UTC)
	after := time.Date(2024, 10, 7, 13, 0, 0, 0, time.UTC)

	if !WithinWindow(inside, open, close) {
		t.Fatalf("expected inside window")
	}
	if WithinWindow(before, open, close) {
		t.Fatalf("expected before window")
	}
	if !WithinWindow(at, open, close) {
		t.Fatalf("open boundary should be inclusive")
	}
	if WithinWindow(after, open, close) {
		t.Fatalf("close boundary should be exclusive")
	}
}

func TestSanitizeKey(t *testing.T) {
	got := SanitizeKey("technical_indicator/rsi?period=14&type=stock")
	want := "technical_indicator_rsi_period_14_type_stock"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
