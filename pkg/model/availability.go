package model

import "time"

// Availability is a vendor's sparse booking calendar. Schedule holds at most
// one entry per calendar date; a date with no entry is "open/unknown", which
// is distinct from an explicit available slot.
type Availability struct {
	Schedule           []AvailabilitySlot `json:"schedule" bson:"schedule" validate:"omitempty,dive"`
	WorkingHours       WorkingHours       `json:"working_hours" bson:"working_hours"`
	AdvanceBookingDays int                `json:"advance_booking_days" bson:"advance_booking_days" validate:"min=0"`
}

type AvailabilitySlot struct {
	Date    time.Time  `json:"date" bson:"date" validate:"required"`
	Status  SlotStatus `json:"status" bson:"status" validate:"required,slot_status"`
	EventID string     `json:"event_id,omitempty" bson:"event_id,omitempty"`
}

type WorkingHours struct {
	Start string `json:"start" bson:"start" validate:"omitempty,working_hours"`
	End   string `json:"end" bson:"end" validate:"omitempty,working_hours"`
}

// DateOnly truncates a timestamp to its UTC calendar date. All schedule
// comparisons happen at date granularity; time-of-day is never significant.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// SlotOn returns the schedule entry for the given calendar date, if any.
func (a *Availability) SlotOn(date time.Time) (*AvailabilitySlot, bool) {
	for i := range a.Schedule {
		if SameDay(a.Schedule[i].Date, date) {
			return &a.Schedule[i], true
		}
	}
	return nil, false
}

// SetSlot records a status for a calendar date: an existing entry for that
// date is overwritten in place, otherwise a new entry is appended. Calling it
// twice with the same arguments leaves exactly one entry for the date.
func (a *Availability) SetSlot(date time.Time, status SlotStatus, eventID string) {
	if slot, ok := a.SlotOn(date); ok {
		slot.Status = status
		if eventID != "" {
			slot.EventID = eventID
		}
		return
	}
	a.Schedule = append(a.Schedule, AvailabilitySlot{
		Date:    DateOnly(date),
		Status:  status,
		EventID: eventID,
	})
}

// SlotsInRange returns schedule entries with start <= date <= end, preserving
// stored order. An inverted range yields an empty result.
func (a *Availability) SlotsInRange(start, end time.Time) []AvailabilitySlot {
	start = DateOnly(start)
	end = DateOnly(end)

	slots := []AvailabilitySlot{}
	for _, slot := range a.Schedule {
		d := DateOnly(slot.Date)
		if !d.Before(start) && !d.After(end) {
			slots = append(slots, slot)
		}
	}
	return slots
}
