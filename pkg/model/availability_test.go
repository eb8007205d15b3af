package model

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "already midnight UTC",
			input:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "afternoon truncated",
			input:    time.Date(2026, 5, 1, 15, 30, 45, 999, time.UTC),
			expected: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "non-UTC zone converted before truncation",
			input:    time.Date(2026, 5, 1, 23, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			expected: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateOnly(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("Expected same UTC date to match")
	}
	if SameDay(evening, nextDay) {
		t.Error("Expected adjacent dates to differ")
	}
}

func TestSetSlot_FindOrAppend(t *testing.T) {
	var a Availability
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	a.SetSlot(date, SlotAvailable, "")
	if len(a.Schedule) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(a.Schedule))
	}

	// Same date again, including a time-of-day variant, overwrites in place.
	a.SetSlot(date.Add(14*time.Hour), SlotBooked, "evt-1")
	if len(a.Schedule) != 1 {
		t.Fatalf("Expected 1 slot after overwrite, got %d", len(a.Schedule))
	}
	if a.Schedule[0].Status != SlotBooked || a.Schedule[0].EventID != "evt-1" {
		t.Errorf("Expected overwrite, got %+v", a.Schedule[0])
	}

	// Clearing the booking back to available keeps the prior event reference
	// unless a new one is supplied.
	a.SetSlot(date, SlotAvailable, "")
	if a.Schedule[0].Status != SlotAvailable {
		t.Errorf("Expected status available, got %s", a.Schedule[0].Status)
	}
	if a.Schedule[0].EventID != "evt-1" {
		t.Errorf("Expected event ID preserved, got %q", a.Schedule[0].EventID)
	}

	a.SetSlot(date.AddDate(0, 0, 1), SlotUnavailable, "")
	if len(a.Schedule) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(a.Schedule))
	}
}

func TestSlotsInRange(t *testing.T) {
	a := Availability{
		Schedule: []AvailabilitySlot{
			{Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Status: SlotAvailable},
			{Date: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), Status: SlotBooked},
			{Date: time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), Status: SlotAvailable},
		},
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "inclusive bounds",
			start:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "interior window",
			start:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "single day",
			start:    time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "inverted range",
			start:    time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "no overlap",
			start:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.SlotsInRange(tt.start, tt.end)
			if len(got) != tt.expected {
				t.Errorf("Expected %d slots, got %d", tt.expected, len(got))
			}
		})
	}
}

func TestSlotOn_TimeOfDayInsensitive(t *testing.T) {
	a := Availability{
		Schedule: []AvailabilitySlot{
			{Date: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), Status: SlotAvailable},
		},
	}

	slot, ok := a.SlotOn(time.Date(2026, 5, 1, 22, 15, 0, 0, time.UTC))
	if !ok {
		t.Fatal("Expected slot found for same calendar date")
	}
	if slot.Status != SlotAvailable {
		t.Errorf("Expected available, got %s", slot.Status)
	}

	if _, ok := a.SlotOn(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("Expected no slot on the next date")
	}
}
