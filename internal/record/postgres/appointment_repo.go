// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/record"
)

// AppointmentRepository implements record.AppointmentRepository using
// PostgreSQL.
type AppointmentRepository struct {
	pool poolIface
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(pool poolIface) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, doctor_id, date, time, status, created_at`

// Create stores a new appointment and fills in the generated ID.
func (r *AppointmentRepository) Create(ctx context.Context, a *record.Appointment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, date, time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return oops.Code("APPOINTMENT_CREATE_FAILED").
			With("operation", "insert appointment").
			With("doctor_id", a.DoctorID).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an appointment by ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*record.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("APPOINTMENT_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("APPOINTMENT_GET_FAILED").
			With("operation", "get appointment by id").
			With("id", id).
			Wrap(err)
	}
	return a, nil
}

// ListForUser returns appointments where the user is a party on
// either side.
func (r *AppointmentRepository) ListForUser(ctx context.Context, userID int64) ([]*record.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1 OR doctor_id = $1
		ORDER BY date, time
	`, userID)
}

// ListAll returns every appointment.
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]*record.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		ORDER BY date, time
	`)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]*record.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("APPOINTMENT_LIST_FAILED").
			With("operation", "list appointments").
			Wrap(err)
	}
	defer rows.Close()

	var appointments []*record.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, oops.Code("APPOINTMENT_LIST_FAILED").
				With("operation", "scan appointment row").
				Wrap(err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("APPOINTMENT_LIST_FAILED").
			With("operation", "iterate appointments").
			Wrap(err)
	}
	return appointments, nil
}

// ApprovedSlotExists reports whether the doctor already has an
// approved appointment at the exact date and time.
func (r *AppointmentRepository) ApprovedSlotExists(ctx context.Context, doctorID int64, date time.Time, slot string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status = 'approved'
		)
	`, doctorID, date, slot).Scan(&exists)
	if err != nil {
		return false, oops.Code("APPOINTMENT_SLOT_CHECK_FAILED").
			With("operation", "check approved slot").
			With("doctor_id", doctorID).
			Wrap(err)
	}
	return exists, nil
}

func scanAppointment(row pgx.Row) (*record.Appointment, error) {
	var a record.Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

var _ record.AppointmentRepository = (*AppointmentRepository)(nil)
