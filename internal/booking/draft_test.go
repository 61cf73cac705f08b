package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sunrisemc/booking-api/internal/model"
)

func TestComposeNotes(t *testing.T) {
	tests := []struct {
		name  string
		pref  model.DoctorPreference
		notes string
		want  string
	}{
		{"preference and notes", model.DoctorPreferenceFemale, "Follow-up for blood test results", "Female doctor preferred\n\nFollow-up for blood test results"},
		{"male preference only", model.DoctorPreferenceMale, "", "Male doctor preferred"},
		{"notes only", model.DoctorPreferenceAny, "First visit", "First visit"},
		{"nothing", model.DoctorPreferenceAny, "", ""},
		{"whitespace notes dropped", model.DoctorPreferenceFemale, "   ", "Female doctor preferred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeNotes(tt.pref, tt.notes))
		})
	}
}

func TestDraftGuards(t *testing.T) {
	serviceID := uuid.New()

	draft := &Draft{Step: StepPersonal}
	assert.Error(t, draft.guard(StepPersonal), "empty personal step must not pass")

	draft.Name = "Jane Tan"
	draft.Email = "jane@example.com"
	assert.Error(t, draft.guard(StepPersonal), "phone still missing")

	draft.Phone = "+60123456789"
	assert.Error(t, draft.guard(StepPersonal), "address still missing")

	draft.Address = "12 Jalan Ampang, Kuala Lumpur"
	assert.NoError(t, draft.guard(StepPersonal))

	assert.Error(t, draft.guard(StepService))
	draft.ServiceID = &serviceID
	assert.NoError(t, draft.guard(StepService))

	assert.Error(t, draft.guard(StepSchedule))
	draft.Date = "2024-06-10"
	assert.Error(t, draft.guard(StepSchedule), "slot still missing")
	draft.SlotLabel = "10:00 AM"
	assert.NoError(t, draft.guard(StepSchedule))

	assert.NoError(t, draft.ReadyToSubmit())
}
