package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sunrisemc/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		CreateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		UpdateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters, p *model.Pagination) ([]*model.Appointment, int, error)
		BookedTimes(ctx context.Context, dayStart, dayEnd time.Time) ([]time.Time, error)
		ExistsAt(ctx context.Context, at time.Time, excludeID *uuid.UUID) (bool, error)
		WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
	}

	CategoryRepository interface {
		List(ctx context.Context) ([]*model.Category, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	}

	ServiceRepository interface {
		List(ctx context.Context, categoryID *uuid.UUID) ([]*model.Service, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		Update(ctx context.Context, user *model.User) error
		RecordLoginAttempt(ctx context.Context, user *model.User) error
	}

	OutboxRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error
	}
)
