package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/model"
)

// OutboxRepository exposes only what the worker needs
type OutboxRepository interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error
}
