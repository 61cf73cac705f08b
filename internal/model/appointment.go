package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether no further status changes are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusNoShow, AppointmentStatusCancelled:
		return true
	}
	return false
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusNoShow, AppointmentStatusCancelled:
		return true
	}
	return false
}

type DoctorPreference string

const (
	DoctorPreferenceAny    DoctorPreference = "any"
	DoctorPreferenceMale   DoctorPreference = "male"
	DoctorPreferenceFemale DoctorPreference = "female"
)

// NoteEntry is one record in an appointment's note history.
type NoteEntry struct {
	Note      string    `json:"note"`
	Author    string    `json:"author"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NoteHistory is stored as a JSONB column.
type NoteHistory []NoteEntry

func (h NoteHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return json.Marshal(h)
}

func (h *NoteHistory) Scan(src interface{}) error {
	if src == nil {
		*h = NoteHistory{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for NoteHistory: %T", src)
	}
	return json.Unmarshal(data, h)
}

type Appointment struct {
	Base
	UserID           *uuid.UUID        `db:"user_id" json:"user_id,omitempty"`
	PatientName      string            `db:"patient_name" json:"name"`
	PatientEmail     string            `db:"patient_email" json:"email"`
	PatientPhone     string            `db:"patient_phone" json:"phone"`
	PatientAddress   string            `db:"patient_address" json:"address"`
	Weight           *float64          `db:"weight" json:"weight,omitempty"`
	Height           *float64          `db:"height" json:"height,omitempty"`
	ServiceID        uuid.UUID         `db:"service_id" json:"service_id"`
	ServiceName      string            `db:"service_name" json:"service_name,omitempty"`
	AppointmentTime  time.Time         `db:"appointment_time" json:"appointment_datetime"`
	Status           AppointmentStatus `db:"status" json:"status"`
	DoctorPreference DoctorPreference  `db:"doctor_preference" json:"doctor_preference,omitempty"`
	Notes            string            `db:"notes" json:"notes,omitempty"`
	NoteHistory      NoteHistory       `db:"note_history" json:"note_history,omitempty"`
	CancelReason     *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CancelledBy      *string           `db:"cancelled_by" json:"cancelled_by,omitempty"`
}

type CreateAppointmentRequest struct {
	Name                string   `json:"name" binding:"required"`
	Email               string   `json:"email" binding:"required,email"`
	Phone               string   `json:"phone" binding:"required"`
	Address             string   `json:"address" binding:"required"`
	Weight              *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height              *float64 `json:"height" binding:"omitempty,gt=0"`
	ServiceID           string   `json:"service_id" binding:"required,uuid"`
	AppointmentDateTime string   `json:"appointment_datetime" binding:"required"`
	DoctorPreference    string   `json:"doctor_preference" binding:"omitempty,oneof=any male female"`
	Notes               string   `json:"notes" binding:"max=2000"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=completed no_show cancelled"`
	Notes       string `json:"notes" binding:"max=2000"`
	CancelledBy string `json:"cancelled_by" binding:"omitempty,oneof=patient clinic"`
}

type RescheduleRequest struct {
	NewDateTime string `json:"new_datetime" binding:"required"`
	Reason      string `json:"reason" binding:"required,max=2000"`
}

type AppointmentFilters struct {
	UserID    *uuid.UUID
	Email     string
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
	Upcoming  bool
}
