package utils

import (
	"testing"
	"time"
)

func TestDateRoundtrip(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got := FormatDate(d); got != "2024-01-10" {
		t.Errorf("got %q, want 2024-01-10", got)
	}

	if _, err := ParseDate("10/01/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestClockRoundtrip(t *testing.T) {
	c, err := ParseClock("02:30 PM")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	if got := FormatClock(c); got != "02:30 PM" {
		t.Errorf("got %q, want 02:30 PM", got)
	}

	if _, err := ParseClock("14:30"); err == nil {
		t.Error("expected error for 24-hour layout")
	}
}

func TestDatesBetween(t *testing.T) {
	first := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	got := DatesBetween(first, last)
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(got) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}

	single := DatesBetween(first, first)
	if len(single) != 1 || single[0] != "2024-01-30" {
		t.Errorf("single-day range: got %v", single)
	}
}

func TestSanitizeTrimsStrings(t *testing.T) {
	type form struct {
		Name  string
		Tags  []string
		Count int
	}

	f := &form{Name: "  alice \n", Tags: []string{" a ", "b"}, Count: 3}
	Sanitize(f)

	if f.Name != "alice" {
		t.Errorf("got %q, want alice", f.Name)
	}
	if f.Tags[0] != "a" || f.Tags[1] != "b" {
		t.Errorf("got tags %v", f.Tags)
	}
	if f.Count != 3 {
		t.Errorf("non-string field changed: %d", f.Count)
	}
}
