package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event channels published by the booking service.
const (
	ChannelAppointmentCreated     = "appointment.created"
	ChannelAppointmentCancelled   = "appointment.cancelled"
	ChannelAppointmentRescheduled = "appointment.rescheduled"
	ChannelAppointmentCompleted   = "appointment.completed"
	ChannelAppointmentNoShow      = "appointment.no_show"
)
