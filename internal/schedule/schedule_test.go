package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-10 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2024, 6, 10, hour, min, 0, 0, time.Local)
}

func TestIsWeekday(t *testing.T) {
	for d := 0; d < 7; d++ {
		day := time.Date(2024, 6, 9, 12, 0, 0, 0, time.Local).AddDate(0, 0, d) // Sunday + d
		want := day.Weekday() != time.Sunday && day.Weekday() != time.Saturday
		assert.Equal(t, want, IsWeekday(day), day.Weekday().String())
	}
	assert.False(t, IsWeekday(time.Time{}))
}

func TestIsWithinBusinessHours(t *testing.T) {
	tests := []struct {
		hour, min int
		want      bool
	}{
		{8, 59, false},
		{9, 0, true},
		{12, 30, true},
		{16, 59, true},
		{17, 0, true},
		{17, 1, false},
		{17, 30, false},
		{18, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWithinBusinessHours(monday(tt.hour, tt.min)),
			"%02d:%02d", tt.hour, tt.min)
	}
	assert.False(t, IsWithinBusinessHours(time.Time{}))
}

func TestIsValidAppointmentTimeAt(t *testing.T) {
	now := monday(10, 0)

	t.Run("zero time invalid", func(t *testing.T) {
		assert.False(t, IsValidAppointmentTimeAt(now, time.Time{}))
	})

	t.Run("elapsed same-day slot invalid", func(t *testing.T) {
		assert.False(t, IsValidAppointmentTimeAt(now, now.Add(-time.Second)))
	})

	t.Run("exactly now valid", func(t *testing.T) {
		assert.True(t, IsValidAppointmentTimeAt(now, now))
	})

	t.Run("upcoming same-day slot valid", func(t *testing.T) {
		assert.True(t, IsValidAppointmentTimeAt(now, now.Add(time.Second)))
	})

	t.Run("future weekday in hours valid even if clock earlier", func(t *testing.T) {
		next := monday(9, 0).AddDate(0, 0, 1) // Tuesday 09:00
		assert.True(t, IsValidAppointmentTimeAt(now, next))
	})

	t.Run("weekend always invalid", func(t *testing.T) {
		sat := monday(10, 0).AddDate(0, 0, 5)
		assert.False(t, IsValidAppointmentTimeAt(now, sat))
	})

	t.Run("after hours invalid", func(t *testing.T) {
		assert.False(t, IsValidAppointmentTimeAt(now, monday(17, 30)))
	})

	t.Run("late afternoon today", func(t *testing.T) {
		// At 16:45 the 4:30 PM slot has elapsed but 5:00 PM is still open.
		clock := monday(16, 45)
		assert.False(t, IsValidAppointmentTimeAt(clock, monday(16, 30)))
		assert.True(t, IsValidAppointmentTimeAt(clock, monday(17, 0)))
	})
}

func TestIsPastDayAt(t *testing.T) {
	now := monday(10, 0)

	assert.True(t, IsPastDayAt(now, now.AddDate(0, 0, -1)))
	assert.True(t, IsPastDayAt(now, now.AddDate(-1, 0, 0)))
	assert.False(t, IsPastDayAt(now, now.Add(-time.Hour)), "same day is not a past day")
	assert.False(t, IsPastDayAt(now, now.AddDate(0, 0, 1)))

	// New Year boundary: 31 Dec is a past day seen from 1 Jan.
	jan1 := time.Date(2027, time.January, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, IsPastDayAt(jan1, jan1.AddDate(0, 0, -1)))
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 17)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "5:00 PM", slots[16])

	// Strictly increasing in time of day.
	prev := -1
	for _, s := range slots {
		h, m, err := ParseSlot(s)
		require.NoError(t, err, s)
		cur := h*60 + m
		assert.Greater(t, cur, prev, s)
		prev = cur
	}

	// Deterministic across calls.
	assert.Equal(t, slots, TimeSlots())
}

func TestSlotRoundTrip(t *testing.T) {
	date := monday(0, 0)
	for _, label := range TimeSlots() {
		dt, err := DateTimeFromSlot(date, label)
		require.NoError(t, err, label)
		assert.Equal(t, label, SlotLabel(dt), label)
		assert.Equal(t, date.Day(), dt.Day())
	}
}

func TestParseSlotRejectsGarbage(t *testing.T) {
	for _, label := range []string{"", "9:00", "25:00 AM", "9:61 AM", "9:00 XM", "midnight"} {
		_, _, err := ParseSlot(label)
		assert.Error(t, err, label)
	}
}

func TestParseSlotEdges(t *testing.T) {
	h, m, err := ParseSlot("12:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)

	h, _, err = ParseSlot("12:30 PM")
	require.NoError(t, err)
	assert.Equal(t, 12, h)
}

func TestPaginatedDatesAt(t *testing.T) {
	now := monday(10, 0)

	t.Run("first page is six weekdays", func(t *testing.T) {
		dates := PaginatedDatesAt(now, 0, 6)
		require.Len(t, dates, 6)
		for _, d := range dates {
			assert.True(t, IsWeekday(d), d.Weekday().String())
		}
		assert.Equal(t, now.Day(), dates[0].Day())
	})

	t.Run("pages advance by perPage raw days", func(t *testing.T) {
		p0 := PaginatedDatesAt(now, 0, 6)
		p1 := PaginatedDatesAt(now, 1, 6)
		require.NotEmpty(t, p1)
		assert.True(t, p1[0].After(p0[0]))
	})

	t.Run("lookahead bounded at 30 raw days", func(t *testing.T) {
		dates := PaginatedDatesAt(now, 0, 60)
		// 30 consecutive days contain at most 22 weekdays.
		assert.LessOrEqual(t, len(dates), 22)
		assert.NotEmpty(t, dates)
	})

	t.Run("defaults applied for bad arguments", func(t *testing.T) {
		assert.Len(t, PaginatedDatesAt(now, -1, 0), DatesPerPage)
	})
}

func TestToAppointmentISO(t *testing.T) {
	loc := time.FixedZone("MYT", 8*3600)
	local := time.Date(2024, 6, 10, 17, 0, 0, 0, loc)
	assert.Equal(t, "2024-06-10T09:00:00.000Z", ToAppointmentISO(local))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-06-10", DateKey(monday(15, 4)))
}
