package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/schedule"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/logger"
)

// Booker creates the appointment once a draft is complete.
type Booker interface {
	Book(ctx context.Context, req *model.CreateAppointmentRequest, userID *uuid.UUID, source string) (*model.Appointment, error)
}

// Accounts covers the account operations the wizard needs.
type Accounts interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
}

// Catalog resolves the selected category and service.
type Catalog interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

// Wizard drives the four-step booking flow. Drafts live in an in-memory
// cache and expire if abandoned.
type Wizard struct {
	sessions *gocache.Cache
	inflight sync.Map
	booker   Booker
	accounts Accounts
	catalog  Catalog
	phones   *PhonePolicy
	location *time.Location
	logger   *logger.Logger
}

func NewWizard(
	booker Booker,
	accounts Accounts,
	catalog Catalog,
	phones *PhonePolicy,
	location *time.Location,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Wizard {
	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	if location == nil {
		location = time.Local
	}
	return &Wizard{
		sessions: gocache.New(sessionTTL, 10*time.Minute),
		booker:   booker,
		accounts: accounts,
		catalog:  catalog,
		phones:   phones,
		location: location,
		logger:   logger,
	}
}

// Start opens a new draft, prefilled from the account when authenticated.
func (w *Wizard) Start(ctx context.Context, userID *uuid.UUID) (*Draft, error) {
	draft := &Draft{
		ID:               uuid.NewString(),
		Step:             StepPersonal,
		UserID:           userID,
		DoctorPreference: model.DoctorPreferenceAny,
		CreatedAt:        time.Now(),
	}

	if userID != nil {
		user, err := w.accounts.GetUser(ctx, *userID)
		if err != nil {
			return nil, err
		}
		draft.Name = user.Name
		draft.Email = user.Email
		draft.Phone = user.Phone
		draft.Address = user.Address
		draft.Weight = user.Weight
		draft.Height = user.Height
	}

	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

func (w *Wizard) Get(sessionID string) (*Draft, error) {
	v, ok := w.sessions.Get(sessionID)
	if !ok {
		return nil, errors.NotFound("booking session", nil)
	}
	return v.(*Draft), nil
}

// PersonalDetails carries the fields collected on the first wizard step.
type PersonalDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Weight  *float64
	Height  *float64
}

// SetPersonal validates and stores step one. Guests may not reuse an email
// that belongs to a registered account.
func (w *Wizard) SetPersonal(ctx context.Context, sessionID string, details PersonalDetails) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := ValidateName(details.Name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(details.Email); err != nil {
		return nil, err
	}
	normalized, err := w.phones.Normalize(details.Phone)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(details.Address)
	if address == "" {
		return nil, errors.BadRequest("please enter your address", nil)
	}

	if draft.UserID == nil {
		exists, err := w.accounts.EmailExists(ctx, details.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Conflict("an account with this email already exists, please log in to book", nil)
		}
	}

	draft.Name = details.Name
	draft.Email = details.Email
	draft.Phone = normalized
	draft.Address = address
	draft.Weight = details.Weight
	draft.Height = details.Height
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

// SetCategory stores the chosen category. Switching categories discards a
// previously selected service.
func (w *Wizard) SetCategory(ctx context.Context, sessionID string, categoryID uuid.UUID) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}

	cat, err := w.catalog.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !cat.Active {
		return nil, errors.BadRequest("category is not available for booking", nil)
	}

	if draft.CategoryID == nil || *draft.CategoryID != cat.ID {
		draft.ServiceID = nil
		draft.ServiceName = ""
	}
	draft.CategoryID = &cat.ID
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

func (w *Wizard) SetService(ctx context.Context, sessionID string, serviceID uuid.UUID) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}

	svc, err := w.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, errors.BadRequest("service is not available for booking", nil)
	}
	if draft.CategoryID != nil && svc.CategoryID != *draft.CategoryID {
		return nil, errors.BadRequest("service does not belong to the selected category", nil)
	}

	draft.ServiceID = &svc.ID
	draft.ServiceName = svc.Name
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

// SetSchedule stores the chosen date and slot after checking the slot is
// still in the future.
func (w *Wizard) SetSchedule(sessionID, date, slotLabel string) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}

	at, err := w.slotTime(date, slotLabel)
	if err != nil {
		return nil, err
	}
	if schedule.IsPastDay(at) || !schedule.IsValidAppointmentTime(at) {
		return nil, errors.BadRequest("this time slot is no longer available", nil)
	}

	draft.Date = date
	draft.SlotLabel = slotLabel
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

func (w *Wizard) SetExtras(sessionID string, pref model.DoctorPreference, notes string) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if pref == "" {
		pref = model.DoctorPreferenceAny
	}
	switch pref {
	case model.DoctorPreferenceAny, model.DoctorPreferenceMale, model.DoctorPreferenceFemale:
	default:
		return nil, errors.BadRequest("invalid doctor preference", nil)
	}

	draft.DoctorPreference = pref
	draft.Notes = notes
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

// Next advances to the following step if the current step's guard passes.
func (w *Wizard) Next(sessionID string) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step >= StepExtras {
		return nil, errors.BadRequest("already at the last step", nil)
	}
	if err := draft.guard(draft.Step); err != nil {
		return nil, err
	}
	draft.Step++
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

func (w *Wizard) Back(sessionID string) (*Draft, error) {
	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step > StepPersonal {
		draft.Step--
	}
	w.sessions.SetDefault(draft.ID, draft)
	return draft, nil
}

// Submit finalizes the draft. For authenticated patients the account
// profile is synced first and any failure aborts the booking. A session
// allows one submission at a time.
func (w *Wizard) Submit(ctx context.Context, sessionID string) (*model.Appointment, error) {
	if _, busy := w.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, errors.Conflict("a submission is already in progress for this session", nil)
	}
	defer w.inflight.Delete(sessionID)

	draft, err := w.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := draft.ReadyToSubmit(); err != nil {
		return nil, err
	}

	at, err := w.slotTime(draft.Date, draft.SlotLabel)
	if err != nil {
		return nil, err
	}

	if draft.UserID != nil {
		if _, err := w.accounts.UpdateUser(ctx, *draft.UserID, &model.UpdateUserRequest{
			Phone:   &draft.Phone,
			Address: &draft.Address,
			Weight:  draft.Weight,
			Height:  draft.Height,
		}); err != nil {
			return nil, errors.Internal("failed to update account details", err)
		}
	}

	req := &model.CreateAppointmentRequest{
		Name:                draft.Name,
		Email:               draft.Email,
		Phone:               draft.Phone,
		Address:             draft.Address,
		Weight:              draft.Weight,
		Height:              draft.Height,
		ServiceID:           draft.ServiceID.String(),
		AppointmentDateTime: schedule.ToAppointmentISO(at),
		DoctorPreference:    string(draft.DoctorPreference),
		Notes:               ComposeNotes(draft.DoctorPreference, draft.Notes),
	}

	appointment, err := w.booker.Book(ctx, req, draft.UserID, "wizard")
	if err != nil {
		return nil, err
	}

	w.sessions.Delete(sessionID)
	return appointment, nil
}

func (w *Wizard) slotTime(date, slotLabel string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, w.location)
	if err != nil {
		return time.Time{}, errors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}
	at, err := schedule.DateTimeFromSlot(day, slotLabel)
	if err != nil {
		return time.Time{}, errors.BadRequest("invalid time slot", err)
	}
	return at, nil
}
