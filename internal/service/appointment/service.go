package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sunrisemc/booking-api/internal/email"
	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/repository"
	"github.com/sunrisemc/booking-api/internal/schedule"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/logger"
	"github.com/sunrisemc/booking-api/pkg/messaging"
	"github.com/sunrisemc/booking-api/pkg/metrics"
)

// NoteAuthorPatient and NoteAuthorClinic identify who made a status change.
const (
	NoteAuthorPatient = "patient"
	NoteAuthorClinic  = "clinic"
)

type Service struct {
	repo        repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	outboxRepo  repository.OutboxRepository
	emailSvc    email.Service
	location    *time.Location
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	outboxRepo repository.OutboxRepository,
	emailSvc email.Service,
	location *time.Location,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		outboxRepo:  outboxRepo,
		emailSvc:    emailSvc,
		location:    location,
		logger:      logger,
		metrics:     metrics,
	}
}

// Book validates the requested slot and creates a confirmed appointment.
// The appointment row and its outbox event commit in one transaction.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest, userID *uuid.UUID, source string) (*model.Appointment, error) {
	at, err := s.parseAppointmentTime(req.AppointmentDateTime)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(ctx, at, nil); err != nil {
		return nil, err
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, errors.BadRequest("invalid service id", err)
	}
	svc, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, errors.BadRequest("service is not available for booking", nil)
	}

	pref := model.DoctorPreference(req.DoctorPreference)
	if pref == "" {
		pref = model.DoctorPreferenceAny
	}

	appointment := &model.Appointment{
		UserID:           userID,
		PatientName:      strings.TrimSpace(req.Name),
		PatientEmail:     strings.TrimSpace(req.Email),
		PatientPhone:     req.Phone,
		PatientAddress:   strings.TrimSpace(req.Address),
		Weight:           req.Weight,
		Height:           req.Height,
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		AppointmentTime:  at,
		Status:           model.AppointmentStatusConfirmed,
		DoctorPreference: pref,
		Notes:            strings.TrimSpace(req.Notes),
		NoteHistory:      model.NoteHistory{},
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.CreateTx(ctx, tx, appointment); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, messaging.ChannelAppointmentCreated, appointment)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentsBooked.WithLabelValues(source).Inc()
	s.sendAsync(func() error {
		return s.emailSvc.SendBookingConfirmation(context.Background(),
			appointment.PatientEmail, appointment.PatientName, svc.Name, at.In(s.location))
	})

	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters, p *model.Pagination) ([]*model.Appointment, int, error) {
	return s.repo.List(ctx, filters, p)
}

// ListForEmail returns a patient's appointments looked up by email. An empty
// email would list everyone's, so it is rejected outright.
func (s *Service) ListForEmail(ctx context.Context, email string, upcoming bool) ([]*model.Appointment, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.BadRequest("email is required", nil)
	}

	appointments, _, err := s.repo.List(ctx, &model.AppointmentFilters{
		Email:    email,
		Upcoming: upcoming,
	}, nil)
	return appointments, err
}

// BookedSlots returns the slot labels already taken on the given clinic day.
func (s *Service) BookedSlots(ctx context.Context, date string) ([]string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return nil, errors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}

	times, err := s.repo.BookedTimes(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(times))
	for _, t := range times {
		slots = append(slots, schedule.SlotLabel(t.In(s.location)))
	}
	return slots, nil
}

// UpdateStatus moves a confirmed appointment to one of its terminal states
// and appends the change to the note history.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateStatusRequest, author string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := model.AppointmentStatus(req.Status)
	if !newStatus.Valid() || newStatus == model.AppointmentStatusConfirmed {
		return nil, errors.BadRequest("invalid status", nil)
	}
	if appointment.Status.IsTerminal() {
		return nil, errors.Conflict(
			fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}

	notes := strings.TrimSpace(req.Notes)
	if newStatus == model.AppointmentStatusCancelled && notes == "" {
		return nil, errors.BadRequest("cancellation reason is required", nil)
	}

	appointment.Status = newStatus
	if notes != "" {
		appointment.NoteHistory = append(appointment.NoteHistory, model.NoteEntry{
			Note:      notes,
			Author:    author,
			Action:    string(newStatus),
			Timestamp: time.Now(),
		})
	}
	if newStatus == model.AppointmentStatusCancelled {
		appointment.CancelReason = &notes
		cancelledBy := req.CancelledBy
		if cancelledBy == "" {
			cancelledBy = author
		}
		appointment.CancelledBy = &cancelledBy
	}

	channel := statusChannel(newStatus)
	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, appointment); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, channel, appointment)
	})
	if err != nil {
		return nil, err
	}

	if newStatus == model.AppointmentStatusCancelled {
		s.metrics.AppointmentsCancelled.Inc()
		s.sendAsync(func() error {
			return s.emailSvc.SendCancellation(context.Background(),
				appointment.PatientEmail, appointment.PatientName,
				appointment.ServiceName, appointment.AppointmentTime.In(s.location), notes)
		})
	}

	return appointment, nil
}

// Reschedule moves a confirmed appointment to a new valid slot. The reason
// is recorded in the note history.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req *model.RescheduleRequest, author string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, errors.Conflict(
			fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, errors.BadRequest("reschedule reason is required", nil)
	}

	newAt, err := s.parseAppointmentTime(req.NewDateTime)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(ctx, newAt, &appointment.ID); err != nil {
		return nil, err
	}

	oldAt := appointment.AppointmentTime
	appointment.AppointmentTime = newAt
	appointment.NoteHistory = append(appointment.NoteHistory, model.NoteEntry{
		Note:      reason,
		Author:    author,
		Action:    "reschedule",
		Timestamp: time.Now(),
	})

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, appointment); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, messaging.ChannelAppointmentRescheduled, appointment)
	})
	if err != nil {
		return nil, err
	}

	s.sendAsync(func() error {
		return s.emailSvc.SendReschedule(context.Background(),
			appointment.PatientEmail, appointment.PatientName,
			appointment.ServiceName, oldAt.In(s.location), newAt.In(s.location))
	})

	return appointment, nil
}

func (s *Service) parseAppointmentTime(value string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.BadRequest("invalid appointment datetime, expected RFC 3339", err)
	}
	return at, nil
}

func (s *Service) validateSlot(ctx context.Context, at time.Time, excludeID *uuid.UUID) error {
	local := at.In(s.location)

	if !schedule.IsWeekday(local) {
		return errors.BadRequest("appointments are only available Monday to Friday", nil)
	}
	if !schedule.IsWithinBusinessHours(local) {
		return errors.BadRequest("appointments are only available between 9:00 AM and 5:00 PM", nil)
	}
	if schedule.IsPastDay(local) || !schedule.IsValidAppointmentTime(local) {
		return errors.BadRequest("appointment time has already passed", nil)
	}
	if local.After(time.Now().AddDate(0, 0, schedule.MaxAdvanceDays)) {
		return errors.BadRequest("appointments can only be booked up to 30 days in advance", nil)
	}

	taken, err := s.repo.ExistsAt(ctx, at, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("this time slot is already booked", nil)
	}
	return nil
}

func (s *Service) enqueueEvent(ctx context.Context, tx *sqlx.Tx, channel string, appointment *model.Appointment) error {
	event, err := model.NewOutboxEvent(channel, appointment)
	if err != nil {
		return fmt.Errorf("failed to build outbox event: %w", err)
	}
	return s.outboxRepo.CreateTx(ctx, tx, event)
}

func (s *Service) sendAsync(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			s.logger.Error(err, "notification email failed")
		}
	}()
}

func statusChannel(status model.AppointmentStatus) string {
	switch status {
	case model.AppointmentStatusCompleted:
		return messaging.ChannelAppointmentCompleted
	case model.AppointmentStatusNoShow:
		return messaging.ChannelAppointmentNoShow
	case model.AppointmentStatusCancelled:
		return messaging.ChannelAppointmentCancelled
	default:
		return messaging.ChannelAppointmentCreated
	}
}
