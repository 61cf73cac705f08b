package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/schedule"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/logger"
)

type stubBooker struct {
	lastReq  *model.CreateAppointmentRequest
	lastUser *uuid.UUID
	err      error
}

func (b *stubBooker) Book(_ context.Context, req *model.CreateAppointmentRequest, userID *uuid.UUID, _ string) (*model.Appointment, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.lastReq = req
	b.lastUser = userID
	return &model.Appointment{Status: model.AppointmentStatusConfirmed}, nil
}

type stubAccounts struct {
	users     map[uuid.UUID]*model.User
	existing  map[string]bool
	updateErr error
	updates   int
}

func (a *stubAccounts) EmailExists(_ context.Context, email string) (bool, error) {
	return a.existing[email], nil
}

func (a *stubAccounts) GetUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := a.users[id]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	return user, nil
}

func (a *stubAccounts) UpdateUser(_ context.Context, id uuid.UUID, _ *model.UpdateUserRequest) (*model.User, error) {
	if a.updateErr != nil {
		return nil, a.updateErr
	}
	a.updates++
	return a.users[id], nil
}

type stubCatalog struct {
	categories map[uuid.UUID]*model.Category
	services   map[uuid.UUID]*model.Service
}

func (c *stubCatalog) GetCategory(_ context.Context, id uuid.UUID) (*model.Category, error) {
	cat, ok := c.categories[id]
	if !ok {
		return nil, errors.NotFound("category", nil)
	}
	return cat, nil
}

func (c *stubCatalog) GetService(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, errors.NotFound("service", nil)
	}
	return svc, nil
}

func newTestWizard(booker Booker, accounts *stubAccounts, catalog *stubCatalog) *Wizard {
	return NewWizard(
		booker, accounts, catalog,
		NewPhonePolicy("MY"), time.Local, time.Minute,
		logger.NewLogger(nil),
	)
}

func futureWeekday() time.Time {
	d := time.Now().AddDate(0, 0, 2)
	for !schedule.IsWeekday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func newService(name string) *model.Service {
	return &model.Service{
		Base:   model.Base{ID: uuid.New()},
		Name:   name,
		Active: true,
	}
}

func TestWizardGuestFlow(t *testing.T) {
	booker := &stubBooker{}
	accounts := &stubAccounts{existing: map[string]bool{}}
	svc := newService("General Consultation")
	catalog := &stubCatalog{services: map[uuid.UUID]*model.Service{svc.ID: svc}}
	w := newTestWizard(booker, accounts, catalog)

	ctx := context.Background()
	draft, err := w.Start(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, StepPersonal, draft.Step)

	_, err = w.SetPersonal(ctx, draft.ID, PersonalDetails{
		Name:    "Jane Tan",
		Email:   "jane@example.com",
		Phone:   "012-345 6789",
		Address: "12 Jalan Ampang, Kuala Lumpur",
	})
	require.NoError(t, err)

	draft, err = w.Next(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, StepService, draft.Step)

	_, err = w.SetService(ctx, draft.ID, svc.ID)
	require.NoError(t, err)
	draft, err = w.Next(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, StepSchedule, draft.Step)

	_, err = w.SetSchedule(draft.ID, schedule.DateKey(futureWeekday()), "10:00 AM")
	require.NoError(t, err)
	draft, err = w.Next(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, StepExtras, draft.Step)

	_, err = w.SetExtras(draft.ID, model.DoctorPreferenceFemale, "Follow-up visit")
	require.NoError(t, err)

	_, err = w.Submit(ctx, draft.ID)
	require.NoError(t, err)

	require.NotNil(t, booker.lastReq)
	assert.Equal(t, "+60123456789", booker.lastReq.Phone)
	assert.Equal(t, "12 Jalan Ampang, Kuala Lumpur", booker.lastReq.Address)
	assert.Equal(t, "Female doctor preferred\n\nFollow-up visit", booker.lastReq.Notes)
	assert.Nil(t, booker.lastUser)

	_, err = w.Get(draft.ID)
	assert.Error(t, err, "session should be gone after submit")
}

func TestWizardGuestDuplicateEmail(t *testing.T) {
	booker := &stubBooker{}
	accounts := &stubAccounts{existing: map[string]bool{"taken@example.com": true}}
	w := newTestWizard(booker, accounts, &stubCatalog{})

	ctx := context.Background()
	draft, err := w.Start(ctx, nil)
	require.NoError(t, err)

	_, err = w.SetPersonal(ctx, draft.ID, PersonalDetails{
		Name:    "Jane Tan",
		Email:   "taken@example.com",
		Phone:   "0123456789",
		Address: "12 Jalan Ampang, Kuala Lumpur",
	})
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestWizardProfileSyncAbortsBooking(t *testing.T) {
	userID := uuid.New()
	booker := &stubBooker{}
	accounts := &stubAccounts{
		users: map[uuid.UUID]*model.User{userID: {
			Base:    model.Base{ID: userID},
			Name:    "Jane Tan",
			Email:   "jane@example.com",
			Phone:   "+60123456789",
			Address: "12 Jalan Ampang, Kuala Lumpur",
		}},
		updateErr: fmt.Errorf("db down"),
	}
	svc := newService("Dental Checkup")
	catalog := &stubCatalog{services: map[uuid.UUID]*model.Service{svc.ID: svc}}
	w := newTestWizard(booker, accounts, catalog)

	ctx := context.Background()
	draft, err := w.Start(ctx, &userID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", draft.Email, "logged-in drafts are prefilled")

	_, err = w.SetService(ctx, draft.ID, svc.ID)
	require.NoError(t, err)
	_, err = w.SetSchedule(draft.ID, schedule.DateKey(futureWeekday()), "2:30 PM")
	require.NoError(t, err)

	_, err = w.Submit(ctx, draft.ID)
	require.Error(t, err)
	assert.Nil(t, booker.lastReq, "booking must not go through when the profile update fails")
}

func TestWizardCategoryChangeClearsService(t *testing.T) {
	dental := &model.Category{Base: model.Base{ID: uuid.New()}, Name: "Dental", Active: true}
	general := &model.Category{Base: model.Base{ID: uuid.New()}, Name: "General", Active: true}
	cleaning := newService("Cleaning")
	cleaning.CategoryID = dental.ID

	catalog := &stubCatalog{
		categories: map[uuid.UUID]*model.Category{dental.ID: dental, general.ID: general},
		services:   map[uuid.UUID]*model.Service{cleaning.ID: cleaning},
	}
	w := newTestWizard(&stubBooker{}, &stubAccounts{existing: map[string]bool{}}, catalog)

	ctx := context.Background()
	draft, err := w.Start(ctx, nil)
	require.NoError(t, err)

	draft, err = w.SetCategory(ctx, draft.ID, dental.ID)
	require.NoError(t, err)
	draft, err = w.SetService(ctx, draft.ID, cleaning.ID)
	require.NoError(t, err)
	require.NotNil(t, draft.ServiceID)

	draft, err = w.SetCategory(ctx, draft.ID, general.ID)
	require.NoError(t, err)
	assert.Nil(t, draft.ServiceID, "switching category discards the selected service")
	assert.Empty(t, draft.ServiceName)

	_, err = w.SetService(ctx, draft.ID, cleaning.ID)
	require.Error(t, err, "a service from another category is rejected")

	draft, err = w.SetCategory(ctx, draft.ID, dental.ID)
	require.NoError(t, err)
	draft, err = w.SetService(ctx, draft.ID, cleaning.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", draft.ServiceName)
}

// blockingBooker parks inside Book until released, to exercise the
// one-submission-per-session guard.
type blockingBooker struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingBooker) Book(_ context.Context, _ *model.CreateAppointmentRequest, _ *uuid.UUID, _ string) (*model.Appointment, error) {
	close(b.started)
	<-b.release
	return &model.Appointment{Status: model.AppointmentStatusConfirmed}, nil
}

func TestWizardRejectsConcurrentSubmit(t *testing.T) {
	booker := &blockingBooker{started: make(chan struct{}), release: make(chan struct{})}
	accounts := &stubAccounts{existing: map[string]bool{}}
	svc := newService("General Consultation")
	catalog := &stubCatalog{services: map[uuid.UUID]*model.Service{svc.ID: svc}}
	w := newTestWizard(booker, accounts, catalog)

	ctx := context.Background()
	draft, err := w.Start(ctx, nil)
	require.NoError(t, err)
	_, err = w.SetPersonal(ctx, draft.ID, PersonalDetails{
		Name:    "Jane Tan",
		Email:   "jane@example.com",
		Phone:   "0123456789",
		Address: "12 Jalan Ampang, Kuala Lumpur",
	})
	require.NoError(t, err)
	_, err = w.SetService(ctx, draft.ID, svc.ID)
	require.NoError(t, err)
	_, err = w.SetSchedule(draft.ID, schedule.DateKey(futureWeekday()), "10:00 AM")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx, draft.ID)
		done <- err
	}()
	<-booker.started

	_, err = w.Submit(ctx, draft.ID)
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	close(booker.release)
	require.NoError(t, <-done)
}

func TestWizardRejectsPastSlot(t *testing.T) {
	w := newTestWizard(&stubBooker{}, &stubAccounts{existing: map[string]bool{}}, &stubCatalog{})

	ctx := context.Background()
	draft, err := w.Start(ctx, nil)
	require.NoError(t, err)

	past := time.Now().AddDate(0, 0, -7)
	for !schedule.IsWeekday(past) {
		past = past.AddDate(0, 0, -1)
	}
	_, err = w.SetSchedule(draft.ID, schedule.DateKey(past), "10:00 AM")
	assert.Error(t, err)
}
