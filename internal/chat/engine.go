package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/booking"
	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/schedule"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/logger"
	"github.com/sunrisemc/booking-api/pkg/metrics"
)

const appointmentsPerPage = 3

// Appointments covers the appointment operations the engine needs.
type Appointments interface {
	Book(ctx context.Context, req *model.CreateAppointmentRequest, userID *uuid.UUID, source string) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListForEmail(ctx context.Context, email string, upcoming bool) ([]*model.Appointment, error)
	BookedSlots(ctx context.Context, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateStatusRequest, author string) (*model.Appointment, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *model.RescheduleRequest, author string) (*model.Appointment, error)
}

type Catalog interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	ListServices(ctx context.Context, categoryID *uuid.UUID) ([]*model.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

type Accounts interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Option is a quick-reply button offered to the patient.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Reply is what the engine sends back for one inbound message.
type Reply struct {
	SessionID string   `json:"session_id"`
	Messages  []string `json:"messages"`
	Options   []Option `json:"options,omitempty"`
	State     State    `json:"state"`
	Done      bool     `json:"done,omitempty"`
}

// Engine drives the assistant conversation. All flow logic lives in the
// single transition method so every state change is visible in one place.
type Engine struct {
	sessions     *sessionStore
	appointments Appointments
	catalog      Catalog
	accounts     Accounts
	detector     *Detector
	phones       *booking.PhonePolicy
	location     *time.Location
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewEngine(
	appointments Appointments,
	catalog Catalog,
	accounts Accounts,
	detector *Detector,
	phones *booking.PhonePolicy,
	location *time.Location,
	sessionTTL time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Engine {
	if location == nil {
		location = time.Local
	}
	return &Engine{
		sessions:     newSessionStore(sessionTTL),
		appointments: appointments,
		catalog:      catalog,
		accounts:     accounts,
		detector:     detector,
		phones:       phones,
		location:     location,
		logger:       logger,
		metrics:      metrics,
	}
}

// Handle processes one inbound message. An empty sessionID starts a new
// conversation and returns the welcome message.
func (e *Engine) Handle(ctx context.Context, sessionID string, userID *uuid.UUID, input string) (*Reply, error) {
	if sessionID == "" {
		s := &Session{
			ID:               uuid.NewString(),
			UserID:           userID,
			State:            StateIdle,
			DoctorPreference: model.DoctorPreferenceAny,
		}
		if userID != nil {
			user, err := e.accounts.GetUser(ctx, *userID)
			if err == nil {
				s.Name = user.Name
				s.Email = user.Email
				s.Phone = user.Phone
				s.Address = user.Address
			}
		}
		e.sessions.put(s)
		return e.reply(s, []string{welcomeMessage}, nil, false), nil
	}

	s, ok := e.sessions.get(sessionID)
	if !ok {
		return nil, errors.NotFound("chat session", nil)
	}
	if userID != nil {
		s.UserID = userID
	}

	reply, err := e.transition(ctx, s, strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}
	e.sessions.put(s)
	return reply, nil
}

// transition is the only place session state changes.
func (e *Engine) transition(ctx context.Context, s *Session, input string) (*Reply, error) {
	switch s.State {
	case StateIdle:
		return e.fromIdle(ctx, s, input)

	case StateAskCategory:
		cat, err := e.resolveCategory(ctx, input)
		if err != nil {
			options, lerr := e.categoryOptions(ctx)
			if lerr != nil {
				return nil, lerr
			}
			return e.reply(s, []string{"I couldn't find that category. Please pick one from the list:"}, options, false), nil
		}
		if s.CategoryID == nil || *s.CategoryID != cat.ID {
			s.ServiceID = nil
			s.ServiceName = ""
		}
		s.CategoryID = &cat.ID
		s.CategoryName = cat.Name
		options, err := e.serviceOptions(ctx, s.CategoryID)
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			catOptions, lerr := e.categoryOptions(ctx)
			if lerr != nil {
				return nil, lerr
			}
			return e.reply(s, []string{"There are no services in that category right now. Please pick another:"}, catOptions, false), nil
		}
		s.State = StateAskService
		return e.reply(s, []string{fmt.Sprintf("Here are our %s services:", cat.Name)}, options, false), nil

	case StateAskService:
		svc, err := e.resolveService(ctx, s.CategoryID, input)
		if err != nil {
			options, lerr := e.serviceOptions(ctx, s.CategoryID)
			if lerr != nil {
				return nil, lerr
			}
			return e.reply(s, []string{"I couldn't find that service. Please pick one from the list:"}, options, false), nil
		}
		s.ServiceID = &svc.ID
		s.ServiceName = svc.Name
		s.State = StateAskDate
		s.DatePage = 0
		return e.reply(s, []string{"Please select your preferred appointment date:"}, e.dateOptions(s.DatePage), false), nil

	case StateAskDate, StateRescheduleDate:
		if strings.EqualFold(input, "more") {
			s.DatePage++
			return e.reply(s, []string{"Here are more dates:"}, e.dateOptions(s.DatePage), false), nil
		}
		options, err := e.timeOptions(ctx, input)
		if err != nil {
			return e.reply(s, []string{"That date isn't available. Please pick one of the offered dates:"}, e.dateOptions(s.DatePage), false), nil
		}
		if len(options) == 0 {
			return e.reply(s, []string{"All slots on that day are taken. Please pick another date:"}, e.dateOptions(s.DatePage), false), nil
		}
		if s.State == StateAskDate {
			s.Date = input
			s.State = StateAskTime
		} else {
			s.NewDate = input
			s.State = StateRescheduleTime
		}
		return e.reply(s, []string{"Please select a preferred time:"}, options, false), nil

	case StateAskTime:
		if err := e.checkSlot(ctx, s.Date, input); err != nil {
			options, _ := e.timeOptions(ctx, s.Date)
			return e.reply(s, []string{"That slot is no longer available. Please pick another time:"}, options, false), nil
		}
		s.SlotLabel = input
		if s.UserID != nil && s.Name != "" && s.Email != "" {
			if s.Phone == "" {
				s.State = StateAskPhone
				return e.reply(s, []string{"Please enter your phone number (+601X-XXXXXXX):"}, nil, false), nil
			}
			if s.Address == "" {
				s.State = StateAskAddress
				return e.reply(s, []string{"Please enter your address:"}, nil, false), nil
			}
			s.State = StateAskPreference
			return e.reply(s, []string{"Please select your preferred doctor gender:"}, preferenceOptions(), false), nil
		}
		s.State = StateAskName
		return e.reply(s, []string{"Please enter your full name:"}, nil, false), nil

	case StateAskName:
		if err := booking.ValidateName(input); err != nil {
			return e.reply(s, []string{"Please enter a valid name:"}, nil, false), nil
		}
		s.Name = input
		s.State = StateAskEmail
		return e.reply(s, []string{"Please enter your email address:"}, nil, false), nil

	case StateAskEmail:
		if err := booking.ValidateEmail(input); err != nil {
			return e.reply(s, []string{"Please enter a valid email address:"}, nil, false), nil
		}
		if s.UserID == nil {
			exists, err := e.accounts.EmailExists(ctx, input)
			if err != nil {
				return nil, err
			}
			if exists {
				return e.reply(s, []string{"An account with this email already exists. Please log in to book, or use a different email:"}, nil, false), nil
			}
		}
		s.Email = input
		s.State = StateAskPhone
		return e.reply(s, []string{"Please enter your phone number (+601X-XXXXXXX):"}, nil, false), nil

	case StateAskPhone:
		normalized, err := e.phones.Normalize(input)
		if err != nil {
			return e.reply(s, []string{"Please enter a valid Malaysian phone number:\nExamples: +60123456789"}, nil, false), nil
		}
		s.Phone = normalized
		if s.Address == "" {
			s.State = StateAskAddress
			return e.reply(s, []string{"Please enter your address:"}, nil, false), nil
		}
		s.State = StateAskPreference
		return e.reply(s, []string{"Please select your preferred doctor gender:"}, preferenceOptions(), false), nil

	case StateAskAddress:
		address := strings.TrimSpace(input)
		if address == "" {
			return e.reply(s, []string{"Please enter your address:"}, nil, false), nil
		}
		s.Address = address
		s.State = StateAskPreference
		return e.reply(s, []string{"Please select your preferred doctor gender:"}, preferenceOptions(), false), nil

	case StateAskPreference:
		pref, err := parsePreference(input)
		if err != nil {
			return e.reply(s, []string{"Please choose one of the options:"}, preferenceOptions(), false), nil
		}
		s.DoctorPreference = pref
		s.State = StateAskNotes
		return e.reply(s, []string{"Any notes for the doctor? This is optional, type 'skip' to continue."}, nil, false), nil

	case StateAskNotes:
		if !strings.EqualFold(input, "skip") {
			s.Notes = input
		}
		s.State = StateConfirm
		return e.reply(s, []string{e.bookingSummary(s), "Shall I confirm this booking?"}, confirmOptions(), false), nil

	case StateConfirm:
		return e.fromConfirm(ctx, s, input)

	case StateManageAction:
		action := ParseManagementAction(input)
		if action == "" {
			return e.reply(s, []string{randomResponse(IntentManaging)}, managementOptions(), false), nil
		}
		return e.startManagement(ctx, s, action)

	case StateManageSelect:
		return e.fromManageSelect(ctx, s, input)

	case StateRescheduleTime:
		if err := e.checkSlot(ctx, s.NewDate, input); err != nil {
			options, _ := e.timeOptions(ctx, s.NewDate)
			return e.reply(s, []string{"That slot is no longer available. Please pick another time:"}, options, false), nil
		}
		s.NewSlotLabel = input
		s.State = StateRescheduleReason
		return e.reply(s, []string{"Please tell us briefly why you are rescheduling:"}, nil, false), nil

	case StateRescheduleReason:
		if input == "" {
			return e.reply(s, []string{"A reason is required to reschedule. Please tell us briefly why:"}, nil, false), nil
		}
		return e.finishReschedule(ctx, s, input)

	case StateCancelReason:
		if input == "" {
			return e.reply(s, []string{"A reason is required to cancel. Please tell us briefly why:"}, nil, false), nil
		}
		return e.finishCancel(ctx, s, input)
	}

	s.State = StateIdle
	return e.reply(s, []string{fallbackMessage}, nil, false), nil
}

func (e *Engine) fromIdle(ctx context.Context, s *Session, input string) (*Reply, error) {
	if action := ParseManagementAction(input); action != "" {
		return e.startManagement(ctx, s, action)
	}

	intent, _ := e.detector.Detect(ctx, input)
	e.metrics.ChatMessages.WithLabelValues(string(intent)).Inc()

	switch intent {
	case IntentBooking:
		s.resetBooking()
		options, err := e.categoryOptions(ctx)
		if err != nil {
			return nil, err
		}
		s.State = StateAskCategory
		return e.reply(s, []string{randomResponse(IntentBooking)}, options, false), nil

	case IntentManaging:
		s.State = StateManageAction
		return e.reply(s, []string{randomResponse(IntentManaging)}, managementOptions(), false), nil

	case IntentServices:
		services, err := e.catalog.ListServices(ctx, nil)
		if err != nil {
			return nil, err
		}
		lines := []string{"Here are our services:"}
		for i, svc := range services {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("• %s (%d min, RM%.2f)", svc.Name, svc.Duration, svc.Price))
		}
		return e.reply(s, lines, nil, false), nil

	case IntentGreeting, IntentHelp, IntentLocation, IntentContact:
		return e.reply(s, []string{randomResponse(intent)}, nil, false), nil

	default:
		return e.reply(s, []string{fallbackMessage}, nil, false), nil
	}
}

func (e *Engine) fromConfirm(ctx context.Context, s *Session, input string) (*Reply, error) {
	lowered := strings.ToLower(input)
	switch {
	case lowered == "confirm" || lowered == "yes":
		day, err := time.ParseInLocation("2006-01-02", s.Date, e.location)
		if err != nil {
			return nil, errors.BadRequest("invalid date", err)
		}
		at, err := schedule.DateTimeFromSlot(day, s.SlotLabel)
		if err != nil {
			return nil, errors.BadRequest("invalid time slot", err)
		}

		req := &model.CreateAppointmentRequest{
			Name:                s.Name,
			Email:               s.Email,
			Phone:               s.Phone,
			Address:             s.Address,
			ServiceID:           s.ServiceID.String(),
			AppointmentDateTime: schedule.ToAppointmentISO(at),
			DoctorPreference:    string(s.DoctorPreference),
			Notes:               booking.ComposeNotes(s.DoctorPreference, s.Notes),
		}
		appointment, err := e.appointments.Book(ctx, req, s.UserID, "chat")
		if err != nil {
			if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrConflict {
				s.State = StateAskDate
				return e.reply(s, []string{"Sorry, that slot was just taken. Please pick another date:"}, e.dateOptions(s.DatePage), false), nil
			}
			return nil, err
		}

		s.State = StateIdle
		s.resetBooking()
		return e.reply(s, []string{fmt.Sprintf(
			"Your appointment is confirmed for %s. A confirmation email is on its way to %s.",
			e.formatTime(appointment.AppointmentTime), appointment.PatientEmail)}, nil, true), nil

	case lowered == "cancel" || lowered == "no":
		s.State = StateIdle
		s.resetBooking()
		return e.reply(s, []string{"No problem, I've discarded that booking. Anything else I can help with?"}, nil, false), nil

	default:
		return e.reply(s, []string{"Shall I confirm this booking?"}, confirmOptions(), false), nil
	}
}

func (e *Engine) startManagement(ctx context.Context, s *Session, action string) (*Reply, error) {
	if s.UserID == nil {
		s.State = StateIdle
		return e.reply(s, []string{"Please log in first so I can look up your appointments."}, nil, false), nil
	}

	// The listing and ownership checks key on the account's email, never on
	// whatever was typed into the session earlier.
	user, err := e.accounts.GetUser(ctx, *s.UserID)
	if err != nil {
		s.State = StateIdle
		return e.reply(s, []string{"I couldn't verify your account just now. Please try again in a moment."}, nil, false), nil
	}
	s.Email = user.Email

	s.resetManagement()
	s.Action = action
	s.State = StateManageSelect
	return e.appointmentPage(ctx, s)
}

func (e *Engine) fromManageSelect(ctx context.Context, s *Session, input string) (*Reply, error) {
	if strings.EqualFold(input, "more") {
		s.AppointmentPage++
		return e.appointmentPage(ctx, s)
	}

	id, err := uuid.Parse(input)
	if err != nil {
		return e.reply(s, []string{"Please pick an appointment from the list:"}, nil, false), nil
	}

	appointment, err := e.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(appointment.PatientEmail, s.Email) {
		return nil, errors.Forbidden("appointment does not belong to this account")
	}

	s.AppointmentID = &appointment.ID
	if s.Action == ActionCancel {
		s.State = StateCancelReason
		return e.reply(s, []string{"Please tell us briefly why you are cancelling:"}, nil, false), nil
	}

	s.State = StateRescheduleDate
	s.DatePage = 0
	return e.reply(s, []string{"Select a preferred date:"}, e.dateOptions(s.DatePage), false), nil
}

func (e *Engine) finishReschedule(ctx context.Context, s *Session, reason string) (*Reply, error) {
	day, err := time.ParseInLocation("2006-01-02", s.NewDate, e.location)
	if err != nil {
		return nil, errors.BadRequest("invalid date", err)
	}
	at, err := schedule.DateTimeFromSlot(day, s.NewSlotLabel)
	if err != nil {
		return nil, errors.BadRequest("invalid time slot", err)
	}

	appointment, err := e.appointments.Reschedule(ctx, *s.AppointmentID, &model.RescheduleRequest{
		NewDateTime: schedule.ToAppointmentISO(at),
		Reason:      reason,
	}, "patient")
	if err != nil {
		return nil, err
	}

	s.State = StateIdle
	s.resetManagement()
	return e.reply(s, []string{fmt.Sprintf(
		"Done! Your appointment has been moved to %s.", e.formatTime(appointment.AppointmentTime))}, nil, true), nil
}

func (e *Engine) finishCancel(ctx context.Context, s *Session, reason string) (*Reply, error) {
	_, err := e.appointments.UpdateStatus(ctx, *s.AppointmentID, &model.UpdateStatusRequest{
		Status:      string(model.AppointmentStatusCancelled),
		Notes:       reason,
		CancelledBy: "patient",
	}, "patient")
	if err != nil {
		return nil, err
	}

	s.State = StateIdle
	s.resetManagement()
	return e.reply(s, []string{"Your appointment has been cancelled. We hope to see you again soon."}, nil, true), nil
}

func (e *Engine) appointmentPage(ctx context.Context, s *Session) (*Reply, error) {
	appointments, err := e.appointments.ListForEmail(ctx, s.Email, true)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		s.State = StateIdle
		return e.reply(s, []string{"You have no upcoming appointments. Would you like to book one?"}, nil, false), nil
	}

	start := s.AppointmentPage * appointmentsPerPage
	if start >= len(appointments) {
		s.AppointmentPage = 0
		start = 0
	}
	end := start + appointmentsPerPage
	if end > len(appointments) {
		end = len(appointments)
	}

	options := make([]Option, 0, appointmentsPerPage+1)
	for _, a := range appointments[start:end] {
		options = append(options, Option{
			Label: fmt.Sprintf("%s — %s", a.ServiceName, e.formatTime(a.AppointmentTime)),
			Value: a.ID.String(),
		})
	}
	if end < len(appointments) {
		options = append(options, Option{Label: "More appointments", Value: "more"})
	}

	verb := "reschedule"
	if s.Action == ActionCancel {
		verb = "cancel"
	}
	return e.reply(s, []string{fmt.Sprintf("Which appointment would you like to %s?", verb)}, options, false), nil
}

func (e *Engine) categoryOptions(ctx context.Context) ([]Option, error) {
	categories, err := e.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(categories))
	for _, cat := range categories {
		options = append(options, Option{Label: cat.Name, Value: cat.ID.String()})
	}
	return options, nil
}

func (e *Engine) resolveCategory(ctx context.Context, input string) (*model.Category, error) {
	categories, err := e.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, input) || strings.EqualFold(cat.ID.String(), input) {
			return cat, nil
		}
	}
	return nil, errors.NotFound("category", nil)
}

func (e *Engine) serviceOptions(ctx context.Context, categoryID *uuid.UUID) ([]Option, error) {
	services, err := e.catalog.ListServices(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(services))
	for _, svc := range services {
		options = append(options, Option{Label: svc.Name, Value: svc.ID.String()})
	}
	return options, nil
}

func (e *Engine) resolveService(ctx context.Context, categoryID *uuid.UUID, input string) (*model.Service, error) {
	if id, err := uuid.Parse(input); err == nil {
		svc, err := e.catalog.GetService(ctx, id)
		if err != nil {
			return nil, err
		}
		if categoryID != nil && svc.CategoryID != *categoryID {
			return nil, errors.NotFound("service", nil)
		}
		return svc, nil
	}
	services, err := e.catalog.ListServices(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, svc := range services {
		if strings.EqualFold(svc.Name, input) {
			return svc, nil
		}
	}
	return nil, errors.NotFound("service", nil)
}

func (e *Engine) dateOptions(page int) []Option {
	dates := schedule.PaginatedDatesAt(time.Now().In(e.location), page, schedule.DatesPerPage)
	options := make([]Option, 0, len(dates)+1)
	for _, d := range dates {
		options = append(options, Option{
			Label: d.Format("Mon, 2 Jan"),
			Value: schedule.DateKey(d),
		})
	}
	if len(dates) == schedule.DatesPerPage {
		options = append(options, Option{Label: "More dates", Value: "more"})
	}
	return options
}

func (e *Engine) timeOptions(ctx context.Context, date string) ([]Option, error) {
	day, err := time.ParseInLocation("2006-01-02", date, e.location)
	if err != nil || !schedule.IsWeekday(day) {
		return nil, errors.BadRequest("invalid date", err)
	}
	now := time.Now().In(e.location)
	if schedule.IsPastDayAt(now, day) {
		return nil, errors.BadRequest("invalid date", nil)
	}

	booked, err := e.appointments.BookedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, label := range booked {
		taken[label] = true
	}
	options := make([]Option, 0, len(schedule.TimeSlots()))
	for _, label := range schedule.TimeSlots() {
		at, err := schedule.DateTimeFromSlot(day, label)
		if err != nil {
			continue
		}
		if taken[label] || !schedule.IsValidAppointmentTimeAt(now, at) {
			continue
		}
		options = append(options, Option{Label: label, Value: label})
	}
	return options, nil
}

func (e *Engine) checkSlot(ctx context.Context, date, label string) error {
	options, err := e.timeOptions(ctx, date)
	if err != nil {
		return err
	}
	for _, opt := range options {
		if opt.Value == label {
			return nil
		}
	}
	return errors.Conflict("slot unavailable", nil)
}

func (e *Engine) bookingSummary(s *Session) string {
	var b strings.Builder
	b.WriteString("Here's your booking:\n")
	fmt.Fprintf(&b, "• Service: %s\n", s.ServiceName)
	fmt.Fprintf(&b, "• When: %s, %s\n", s.Date, s.SlotLabel)
	fmt.Fprintf(&b, "• Name: %s\n", s.Name)
	fmt.Fprintf(&b, "• Email: %s\n", s.Email)
	fmt.Fprintf(&b, "• Phone: %s\n", s.Phone)
	fmt.Fprintf(&b, "• Address: %s", s.Address)
	if s.DoctorPreference == model.DoctorPreferenceMale || s.DoctorPreference == model.DoctorPreferenceFemale {
		fmt.Fprintf(&b, "\n• Doctor: %s preferred", s.DoctorPreference)
	}
	if s.Notes != "" {
		fmt.Fprintf(&b, "\n• Notes: %s", s.Notes)
	}
	return b.String()
}

func (e *Engine) formatTime(t time.Time) string {
	return t.In(e.location).Format("Monday, 2 January 2006 at 3:04 PM")
}

func (e *Engine) reply(s *Session, messages []string, options []Option, done bool) *Reply {
	return &Reply{
		SessionID: s.ID,
		Messages:  messages,
		Options:   options,
		State:     s.State,
		Done:      done,
	}
}

func preferenceOptions() []Option {
	return []Option{
		{Label: "No preference", Value: "any"},
		{Label: "Male doctor", Value: "male"},
		{Label: "Female doctor", Value: "female"},
	}
}

func confirmOptions() []Option {
	return []Option{
		{Label: "Confirm", Value: "confirm"},
		{Label: "Cancel", Value: "cancel"},
	}
}

func managementOptions() []Option {
	return []Option{
		{Label: "Reschedule", Value: "reschedule"},
		{Label: "Cancel", Value: "cancel"},
	}
}

func parsePreference(input string) (model.DoctorPreference, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "any", "no preference", "":
		return model.DoctorPreferenceAny, nil
	case "male", "male doctor":
		return model.DoctorPreferenceMale, nil
	case "female", "female doctor":
		return model.DoctorPreferenceFemale, nil
	}
	return "", fmt.Errorf("unknown preference")
}
