package service

import (
	"testing"

	"hms/cmd/internal/utils/apierror"
)

func newAvailabilityFixture() *DefaultAvailabilityService {
	template := SlotTemplate{StartHour: 11, EndHour: 17, StepMinutes: 30}
	return NewAvailabilityService(newFakeAvailabilityRepo(), newTestValidator(), template)
}

func TestSlotTemplateTimes(t *testing.T) {
	template := SlotTemplate{StartHour: 11, EndHour: 17, StepMinutes: 30}
	times := template.Times()

	if len(times) != 12 {
		t.Fatalf("got %d times, want 12", len(times))
	}
	if times[0] != "11:00 AM" {
		t.Errorf("first slot is %q, want 11:00 AM", times[0])
	}
	if times[1] != "11:30 AM" {
		t.Errorf("second slot is %q, want 11:30 AM", times[1])
	}
	if times[2] != "12:00 PM" {
		t.Errorf("third slot is %q, want 12:00 PM", times[2])
	}
	// End hour is exclusive.
	if last := times[len(times)-1]; last != "04:30 PM" {
		t.Errorf("last slot is %q, want 04:30 PM", last)
	}
}

func TestSetAvailabilityOverwritesOnlySuppliedDates(t *testing.T) {
	s := newAvailabilityFixture()

	apierr := s.SetAvailability(1, &SetAvailabilityRequest{
		Availability: map[string]bool{"2024-01-10": true, "2024-01-11": false},
	})
	if apierr != nil {
		t.Fatalf("SetAvailability failed: %v", apierr)
	}

	apierr = s.SetAvailability(1, &SetAvailabilityRequest{
		Availability: map[string]bool{"2024-01-11": true},
	})
	if apierr != nil {
		t.Fatalf("second SetAvailability failed: %v", apierr)
	}

	got, apierr := s.GetAvailability(1)
	if apierr != nil {
		t.Fatalf("GetAvailability failed: %v", apierr)
	}
	want := map[string]bool{"2024-01-10": true, "2024-01-11": true}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for date, available := range want {
		if got[date] != available {
			t.Errorf("date %s: got %v, want %v", date, got[date], available)
		}
	}
}

func TestSetAvailabilityValidation(t *testing.T) {
	s := newAvailabilityFixture()

	apierr := s.SetAvailability(1, &SetAvailabilityRequest{})
	if apierr == nil || apierr.Kind() != apierror.KindValidation {
		t.Errorf("expected validation error for empty map, got %v", apierr)
	}

	apierr = s.SetAvailability(1, &SetAvailabilityRequest{
		Availability: map[string]bool{"10/01/2024": true},
	})
	if apierr == nil || apierr.Kind() != apierror.KindValidation {
		t.Errorf("expected validation error for malformed date key, got %v", apierr)
	}
}

func TestSetAvailabilityIsPerDoctor(t *testing.T) {
	s := newAvailabilityFixture()

	if apierr := s.SetAvailability(1, &SetAvailabilityRequest{
		Availability: map[string]bool{"2024-01-10": false},
	}); apierr != nil {
		t.Fatalf("SetAvailability failed: %v", apierr)
	}

	other, apierr := s.GetAvailability(2)
	if apierr != nil {
		t.Fatalf("GetAvailability failed: %v", apierr)
	}
	if len(other) != 0 {
		t.Errorf("doctor 2 ledger should be empty, got %v", other)
	}
}

func TestCandidateSlots(t *testing.T) {
	s := newAvailabilityFixture()

	if apierr := s.SetAvailability(1, &SetAvailabilityRequest{
		Availability: map[string]bool{"2024-01-10": false, "2024-01-11": true},
	}); apierr != nil {
		t.Fatalf("SetAvailability failed: %v", apierr)
	}

	slots, err := s.CandidateSlots(1, "2024-01-10")
	if err != nil {
		t.Fatalf("CandidateSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("unavailable day: got %d slots, want 0", len(slots))
	}

	slots, err = s.CandidateSlots(1, "2024-01-11")
	if err != nil {
		t.Fatalf("CandidateSlots failed: %v", err)
	}
	if len(slots) != 12 {
		t.Errorf("available day: got %d slots, want 12", len(slots))
	}

	// A date with no ledger row defaults to the full template.
	slots, err = s.CandidateSlots(1, "2024-02-01")
	if err != nil {
		t.Fatalf("CandidateSlots failed: %v", err)
	}
	if len(slots) != 12 {
		t.Errorf("unset day: got %d slots, want 12", len(slots))
	}
}
