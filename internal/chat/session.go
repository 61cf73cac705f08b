package chat

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sunrisemc/booking-api/internal/model"
)

// State identifies where a conversation is in the dialogue graph.
type State string

const (
	StateIdle State = "idle"

	// booking flow
	StateAskCategory   State = "ask_category"
	StateAskService    State = "ask_service"
	StateAskDate       State = "ask_date"
	StateAskTime       State = "ask_time"
	StateAskName       State = "ask_name"
	StateAskEmail      State = "ask_email"
	StateAskPhone      State = "ask_phone"
	StateAskAddress    State = "ask_address"
	StateAskPreference State = "ask_preference"
	StateAskNotes      State = "ask_notes"
	StateConfirm       State = "confirm"

	// management flow
	StateManageSelect     State = "manage_select"
	StateManageAction     State = "manage_action"
	StateRescheduleDate   State = "reschedule_date"
	StateRescheduleTime   State = "reschedule_time"
	StateRescheduleReason State = "reschedule_reason"
	StateCancelReason     State = "cancel_reason"
)

const (
	ActionReschedule = "Reschedule"
	ActionCancel     = "Cancel"
)

// Session holds dialogue state and the data gathered so far.
type Session struct {
	ID     string
	UserID *uuid.UUID
	State  State

	// booking data
	Name             string
	Email            string
	Phone            string
	Address          string
	CategoryID       *uuid.UUID
	CategoryName     string
	ServiceID        *uuid.UUID
	ServiceName      string
	Date             string
	SlotLabel        string
	DoctorPreference model.DoctorPreference
	Notes            string

	// pagination cursors
	DatePage        int
	AppointmentPage int

	// management data
	Action        string
	AppointmentID *uuid.UUID
	NewDate       string
	NewSlotLabel  string

	UpdatedAt time.Time
}

// resetBooking clears booking data but keeps identity fields so a second
// booking in the same conversation starts prefilled.
func (s *Session) resetBooking() {
	s.CategoryID = nil
	s.CategoryName = ""
	s.ServiceID = nil
	s.ServiceName = ""
	s.Date = ""
	s.SlotLabel = ""
	s.DoctorPreference = model.DoctorPreferenceAny
	s.Notes = ""
	s.DatePage = 0
}

func (s *Session) resetManagement() {
	s.Action = ""
	s.AppointmentID = nil
	s.NewDate = ""
	s.NewSlotLabel = ""
	s.AppointmentPage = 0
}

type sessionStore struct {
	cache *gocache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &sessionStore{cache: gocache.New(ttl, 10*time.Minute)}
}

func (st *sessionStore) get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (st *sessionStore) put(s *Session) {
	s.UpdatedAt = time.Now()
	st.cache.SetDefault(s.ID, s)
}

func (st *sessionStore) delete(id string) {
	st.cache.Delete(id)
}
