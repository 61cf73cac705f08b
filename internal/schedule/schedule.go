package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Business rules for appointment scheduling. The clinic takes visits
// Monday to Friday; the last bookable slot starts at closing time exactly.
const (
	OpeningHour     = 9
	ClosingHour     = 17
	SlotInterval    = 30 * time.Minute
	MaxAdvanceDays  = 30
	DatesPerPage    = 6
	maxLookaheadDay = 30
)

// IsWeekday reports whether t falls on Monday through Friday.
// The zero time is never a weekday.
func IsWeekday(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := t.Weekday()
	return day != time.Sunday && day != time.Saturday
}

// IsWithinBusinessHours reports whether the local clock time of t is inside
// clinic hours. Closing time itself is a valid slot start (17:00 books the
// final half-hour), but nothing after it.
func IsWithinBusinessHours(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	h, m := t.Hour(), t.Minute()
	return h >= OpeningHour && (h < ClosingHour || (h == ClosingHour && m == 0))
}

// IsValidAppointmentTimeAt decides whether t is a bookable instant as seen
// from now. Future calendar days only need the weekday and business-hours
// checks; on the current day an already-elapsed time is rejected. An instant
// equal to now is still bookable.
func IsValidAppointmentTimeAt(now, t time.Time) bool {
	if t.IsZero() {
		return false
	}

	sameDay := t.Year() == now.Year() && t.YearDay() == now.YearDay()
	if !sameDay {
		return IsWeekday(t) && IsWithinBusinessHours(t)
	}

	if t.Before(now) {
		return false
	}
	return IsWeekday(t) && IsWithinBusinessHours(t)
}

// IsValidAppointmentTime is IsValidAppointmentTimeAt against the wall clock.
func IsValidAppointmentTime(t time.Time) bool {
	return IsValidAppointmentTimeAt(time.Now(), t)
}

// IsPastDayAt reports whether t falls on a calendar day before now's.
// Bookings need this lower bound on top of IsValidAppointmentTimeAt, whose
// elapsed check only covers the current day.
func IsPastDayAt(now, t time.Time) bool {
	return t.Year() < now.Year() ||
		(t.Year() == now.Year() && t.YearDay() < now.YearDay())
}

// IsPastDay is IsPastDayAt against the wall clock.
func IsPastDay(t time.Time) bool {
	return IsPastDayAt(time.Now(), t)
}

// TimeSlots returns the fixed daily slot grid: every half-hour boundary from
// opening through closing, as 12-hour clock labels ("9:00 AM" ... "5:00 PM").
// The grid is the same every call.
func TimeSlots() []string {
	slots := make([]string, 0, 17)
	for hour := OpeningHour; hour <= ClosingHour; hour++ {
		for minute := 0; minute < 60; minute += int(SlotInterval.Minutes()) {
			if hour == ClosingHour && minute > 0 {
				break
			}
			slots = append(slots, formatSlot(hour, minute))
		}
	}
	return slots
}

// PaginatedDatesAt collects up to perPage weekdays starting from
// now + page*perPage days, scanning at most 30 raw days so a large perPage
// cannot loop forever. Fewer dates may come back near the horizon.
func PaginatedDatesAt(now time.Time, page, perPage int) []time.Time {
	if perPage <= 0 {
		perPage = DatesPerPage
	}
	if page < 0 {
		page = 0
	}

	start := now.AddDate(0, 0, page*perPage)
	dates := make([]time.Time, 0, perPage)
	for offset := 0; len(dates) < perPage && offset < maxLookaheadDay; offset++ {
		d := start.AddDate(0, 0, offset)
		if IsWeekday(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// PaginatedDates is PaginatedDatesAt against the wall clock.
func PaginatedDates(page, perPage int) []time.Time {
	return PaginatedDatesAt(time.Now(), page, perPage)
}

// ParseSlot parses a 12-hour slot label like "2:30 PM" into a 24-hour
// clock time.
func ParseSlot(label string) (hour, minute int, err error) {
	parts := strings.Fields(strings.TrimSpace(label))
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time slot %q", label)
	}

	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("invalid time slot %q: %w", label, err)
	}
	if h < 1 || h > 12 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid time slot %q", label)
	}

	switch strings.ToUpper(parts[1]) {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return 0, 0, fmt.Errorf("invalid time slot %q", label)
	}
	return h, m, nil
}

// DateTimeFromSlot combines the calendar day of date with the clock time of
// a slot label.
func DateTimeFromSlot(date time.Time, label string) (time.Time, error) {
	h, m, err := ParseSlot(label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

// SlotLabel formats t back into its 12-hour slot label, the inverse of
// DateTimeFromSlot for every label in TimeSlots().
func SlotLabel(t time.Time) string {
	return formatSlot(t.Hour(), t.Minute())
}

func formatSlot(hour, minute int) string {
	period := "AM"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		h = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

// ToAppointmentISO renders t in the canonical wire format: UTC RFC3339
// with millisecond precision.
func ToAppointmentISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// DateKey renders the calendar day of t as YYYY-MM-DD, the format the
// booked-slots endpoint accepts.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
