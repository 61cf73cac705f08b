package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/sunrisemc/booking-api/config"
	"github.com/sunrisemc/booking-api/pkg/logger"
	"github.com/sunrisemc/booking-api/pkg/metrics"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to, name, serviceName string, at time.Time) error
	SendCancellation(ctx context.Context, to, name, serviceName string, at time.Time, reason string) error
	SendReschedule(ctx context.Context, to, name, serviceName string, oldAt, newAt time.Time) error
}

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(cfg config.EmailConfig, logger *logger.Logger, metrics *metrics.Metrics) Service {
	return &smtpService{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		enabled: cfg.Enabled,
		logger:  logger,
		metrics: metrics,
	}
}

const timeDisplayFormat = "Monday, 2 January 2006 at 3:04 PM"

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, name, serviceName string, at time.Time) error {
	subject := "Your appointment is confirmed"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment for %s on %s is confirmed.\n\nIf you need to reschedule or cancel, please contact the clinic or use the online booking page.\n\nSunrise Medical Center",
		name, serviceName, at.Format(timeDisplayFormat),
	)
	return s.send(ctx, "confirmation", to, subject, body)
}

func (s *smtpService) SendCancellation(ctx context.Context, to, name, serviceName string, at time.Time, reason string) error {
	subject := "Your appointment has been cancelled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment for %s on %s has been cancelled.\nReason: %s\n\nYou are welcome to book a new appointment at any time.\n\nSunrise Medical Center",
		name, serviceName, at.Format(timeDisplayFormat), reason,
	)
	return s.send(ctx, "cancellation", to, subject, body)
}

func (s *smtpService) SendReschedule(ctx context.Context, to, name, serviceName string, oldAt, newAt time.Time) error {
	subject := "Your appointment has been rescheduled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment for %s has been moved from %s to %s.\n\nSunrise Medical Center",
		name, serviceName, oldAt.Format(timeDisplayFormat), newAt.Format(timeDisplayFormat),
	)
	return s.send(ctx, "reschedule", to, subject, body)
}

func (s *smtpService) send(ctx context.Context, kind, to, subject, body string) error {
	if !s.enabled {
		s.logger.Debug("email disabled, skipping send", "type", kind, "to", to)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		s.logger.Error(err, "failed to send email", "type", kind, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.metrics.EmailsSent.WithLabelValues(kind, "success").Inc()
	return nil
}
