package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/errors"
)

// Step identifies a page of the booking wizard.
type Step int

const (
	StepPersonal Step = iota + 1
	StepService
	StepSchedule
	StepExtras
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepService:
		return "service"
	case StepSchedule:
		return "schedule"
	case StepExtras:
		return "extras"
	}
	return "unknown"
}

// Draft accumulates booking details across wizard steps. A draft is only
// submitted once every step's guard has passed.
type Draft struct {
	ID     string `json:"id"`
	Step   Step   `json:"step"`
	UserID *uuid.UUID `json:"user_id,omitempty"`

	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Weight  *float64 `json:"weight,omitempty"`
	Height  *float64 `json:"height,omitempty"`

	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ServiceID   *uuid.UUID `json:"service_id,omitempty"`
	ServiceName string     `json:"service_name,omitempty"`

	Date      string `json:"date,omitempty"`
	SlotLabel string `json:"slot_label,omitempty"`

	DoctorPreference model.DoctorPreference `json:"doctor_preference"`
	Notes            string                 `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

// guard reports whether the given step is complete.
func (d *Draft) guard(step Step) error {
	switch step {
	case StepPersonal:
		if err := ValidateName(d.Name); err != nil {
			return err
		}
		if err := ValidateEmail(d.Email); err != nil {
			return err
		}
		if d.Phone == "" {
			return errors.BadRequest("please enter your phone number", nil)
		}
		if strings.TrimSpace(d.Address) == "" {
			return errors.BadRequest("please enter your address", nil)
		}
		return nil
	case StepService:
		if d.ServiceID == nil {
			return errors.BadRequest("please select a service", nil)
		}
		return nil
	case StepSchedule:
		if d.Date == "" || d.SlotLabel == "" {
			return errors.BadRequest("please select a date and time", nil)
		}
		return nil
	case StepExtras:
		return nil
	}
	return errors.BadRequest("unknown step", nil)
}

// ReadyToSubmit checks all step guards in order.
func (d *Draft) ReadyToSubmit() error {
	for step := StepPersonal; step <= StepExtras; step++ {
		if err := d.guard(step); err != nil {
			return err
		}
	}
	return nil
}

// ComposeNotes joins the doctor-preference sentence and the free-text notes
// with a blank line, skipping empty parts.
func ComposeNotes(pref model.DoctorPreference, notes string) string {
	parts := make([]string, 0, 2)
	switch pref {
	case model.DoctorPreferenceMale:
		parts = append(parts, "Male doctor preferred")
	case model.DoctorPreferenceFemale:
		parts = append(parts, "Female doctor preferred")
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, "\n\n")
}
