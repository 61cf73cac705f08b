package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/errors"
)

const appointmentColumns = `
	a.id, a.user_id, a.patient_name, a.patient_email, a.patient_phone,
	a.patient_address, a.weight, a.height,
	a.service_id, s.name AS service_name, a.appointment_time, a.status,
	a.doctor_preference, a.notes, a.note_history,
	a.cancel_reason, a.cancelled_by, a.created_at, a.updated_at
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.insert(ctx, r.db, appointment)
}

func (r *appointmentRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error {
	return r.insert(ctx, tx, appointment)
}

func (r *appointmentRepository) insert(ctx context.Context, ext sqlx.ExtContext, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, user_id, patient_name, patient_email, patient_phone,
			patient_address, weight, height,
			service_id, appointment_time, status, doctor_preference,
			notes, note_history, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if appointment.NoteHistory == nil {
		appointment.NoteHistory = model.NoteHistory{}
	}

	_, err := ext.ExecContext(ctx, query,
		appointment.ID,
		appointment.UserID,
		appointment.PatientName,
		appointment.PatientEmail,
		appointment.PatientPhone,
		appointment.PatientAddress,
		appointment.Weight,
		appointment.Height,
		appointment.ServiceID,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.DoctorPreference,
		appointment.Notes,
		appointment.NoteHistory,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return r.update(ctx, r.db, appointment)
}

func (r *appointmentRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error {
	return r.update(ctx, tx, appointment)
}

func (r *appointmentRepository) update(ctx context.Context, ext sqlx.ExtContext, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_time = $1, status = $2, notes = $3, note_history = $4,
		    cancel_reason = $5, cancelled_by = $6,
		    patient_name = $7, patient_email = $8, patient_phone = $9,
		    patient_address = $10, weight = $11, height = $12,
		    updated_at = $13
		WHERE id = $14
	`
	appointment.UpdatedAt = time.Now()

	result, err := ext.ExecContext(ctx, query,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.Notes,
		appointment.NoteHistory,
		appointment.CancelReason,
		appointment.CancelledBy,
		appointment.PatientName,
		appointment.PatientEmail,
		appointment.PatientPhone,
		appointment.PatientAddress,
		appointment.Weight,
		appointment.Height,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("appointment", nil)
	}

	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters, p *model.Pagination) ([]*model.Appointment, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filters != nil {
		if filters.UserID != nil {
			where += fmt.Sprintf(" AND a.user_id = $%d", idx)
			args = append(args, *filters.UserID)
			idx++
		}
		if filters.Email != "" {
			where += fmt.Sprintf(" AND LOWER(a.patient_email) = LOWER($%d)", idx)
			args = append(args, filters.Email)
			idx++
		}
		if filters.Status != "" {
			where += fmt.Sprintf(" AND a.status = $%d", idx)
			args = append(args, filters.Status)
			idx++
		}
		if !filters.StartDate.IsZero() {
			where += fmt.Sprintf(" AND a.appointment_time >= $%d", idx)
			args = append(args, filters.StartDate)
			idx++
		}
		if !filters.EndDate.IsZero() {
			where += fmt.Sprintf(" AND a.appointment_time < $%d", idx)
			args = append(args, filters.EndDate)
			idx++
		}
		if filters.Upcoming {
			where += fmt.Sprintf(" AND a.appointment_time >= $%d AND a.status = $%d", idx, idx+1)
			args = append(args, time.Now(), model.AppointmentStatusConfirmed)
			idx += 2
		}
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM appointments a" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := `SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN services s ON s.id = a.service_id` + where + `
		ORDER BY a.appointment_time ASC`

	if p != nil {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, p.PageSize, p.Offset())
	}

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

// BookedTimes returns the start times of active appointments in [dayStart, dayEnd).
func (r *appointmentRepository) BookedTimes(ctx context.Context, dayStart, dayEnd time.Time) ([]time.Time, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE appointment_time >= $1 AND appointment_time < $2
		  AND status != $3
		ORDER BY appointment_time ASC
	`
	var times []time.Time
	err := r.db.SelectContext(ctx, &times, query, dayStart, dayEnd, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked times: %w", err)
	}
	return times, nil
}

func (r *appointmentRepository) ExistsAt(ctx context.Context, at time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_time = $1 AND status != $2
	`
	args := []interface{}{at, model.AppointmentStatusCancelled}
	if excludeID != nil {
		query += " AND id != $3"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check slot conflict: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return withTx(ctx, r.db, fn)
}
