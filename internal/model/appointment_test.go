package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusConfirmed.Valid())
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestNoteHistoryValueNilIsEmptyArray(t *testing.T) {
	var h NoteHistory
	v, err := h.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "a nil history stores as an empty JSON array")
}

func TestNoteHistoryRoundTrip(t *testing.T) {
	at := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	h := NoteHistory{
		{Note: "Feeling better already", Author: "patient", Action: "cancelled", Timestamp: at},
	}

	v, err := h.Value()
	require.NoError(t, err)

	var out NoteHistory
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.Equal(t, "Feeling better already", out[0].Note)
	assert.Equal(t, "patient", out[0].Author)
	assert.Equal(t, "cancelled", out[0].Action)
	assert.True(t, out[0].Timestamp.Equal(at))
}

func TestNoteHistoryScan(t *testing.T) {
	var h NoteHistory
	require.NoError(t, h.Scan(nil))
	assert.Empty(t, h, "NULL scans to an empty history")

	require.NoError(t, h.Scan(`[{"note":"x","author":"clinic","action":"completed"}]`))
	require.Len(t, h, 1)
	assert.Equal(t, "clinic", h[0].Author)

	assert.Error(t, h.Scan(42), "unsupported source types are rejected")
}

func TestPaginationNormalize(t *testing.T) {
	p := &Pagination{}
	p.Normalize(20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = &Pagination{Page: 3, PageSize: 500}
	p.Normalize(20, 100)
	assert.Equal(t, 100, p.PageSize, "page size is capped")
	assert.Equal(t, 200, p.Offset())
}
