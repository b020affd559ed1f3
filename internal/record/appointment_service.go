// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// slotPattern matches 24h wall-clock slots like "14:00".
var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AppointmentService coordinates appointment booking.
type AppointmentService struct {
	appointments AppointmentRepository
	users        UserDirectory
	logger       *slog.Logger
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(appointments AppointmentRepository, users UserDirectory, logger *slog.Logger) (*AppointmentService, error) {
	if appointments == nil {
		return nil, errors.New("appointment repository must not be nil")
	}
	if users == nil {
		return nil, errors.New("user directory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AppointmentService{appointments: appointments, users: users, logger: logger}, nil
}

// AppointmentInput is the payload for booking an appointment.
type AppointmentInput struct {
	PatientID int64
	DoctorID  int64
	Date      time.Time
	Time      string
}

// Create books a pending appointment. The slot is refused when the
// doctor already holds an approved appointment at the same date and
// time; pending and cancelled appointments do not block it.
func (s *AppointmentService) Create(ctx context.Context, ident access.Identity, in AppointmentInput) (*Appointment, error) {
	if !slotPattern.MatchString(in.Time) {
		return nil, oops.
			Code("APPOINTMENT_VALIDATION").
			With("time", in.Time).
			Errorf("time must be HH:MM")
	}
	if in.Date.IsZero() {
		return nil, oops.
			Code("APPOINTMENT_VALIDATION").
			Errorf("date must not be empty")
	}

	patient, err := s.users.GetRef(ctx, in.PatientID)
	if err != nil || patient.Role != access.RolePatient {
		return nil, oops.
			Code("APPOINTMENT_VALIDATION").
			With("patient_id", in.PatientID).
			Errorf("patient id does not reference a patient")
	}
	doctor, err := s.users.GetRef(ctx, in.DoctorID)
	if err != nil || doctor.Role != access.RoleDoctor {
		return nil, oops.
			Code("APPOINTMENT_VALIDATION").
			With("doctor_id", in.DoctorID).
			Errorf("doctor id does not reference a doctor")
	}

	// The booked day is the calendar date of the submitted timestamp
	// in its own zone, stored as midnight UTC.
	y, m, d := in.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	taken, err := s.appointments.ApprovedSlotExists(ctx, in.DoctorID, date, in.Time)
	if err != nil {
		return nil, oops.
			Code("APPOINTMENT_STORE_FAILED").
			Wrapf(err, "checking slot availability")
	}
	if taken {
		return nil, oops.
			Code("APPOINTMENT_CONFLICT").
			With("doctor_id", in.DoctorID).
			With("time", in.Time).
			Errorf("doctor already has an approved appointment at this time")
	}

	a := &Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      date,
		Time:      in.Time,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, oops.
			Code("APPOINTMENT_STORE_FAILED").
			Wrapf(err, "creating appointment")
	}

	s.logger.InfoContext(ctx, "appointment booked",
		"appointment_id", a.ID,
		"doctor_id", a.DoctorID,
		"patient_id", a.PatientID,
		"slot", a.Time,
	)
	return a, nil
}

// Get returns an appointment the identity is a party to.
func (s *AppointmentService) Get(ctx context.Context, ident access.Identity, id int64) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.
				Code("APPOINTMENT_NOT_FOUND").
				With("appointment_id", id).
				Errorf("appointment not found")
		}
		return nil, oops.
			Code("APPOINTMENT_STORE_FAILED").
			Wrapf(err, "loading appointment")
	}

	snap := access.Appointment{DoctorID: a.DoctorID, PatientID: a.PatientID}
	if dec := access.Decide(ident, access.ActionRead, snap); !dec.Allowed {
		return nil, denied(dec)
	}
	return a, nil
}

// List returns the appointments visible to the identity: everything
// for admins, otherwise the ones the identity is a party to.
func (s *AppointmentService) List(ctx context.Context, ident access.Identity) ([]*Appointment, error) {
	var (
		appointments []*Appointment
		err          error
	)
	if ident.Role == access.RoleAdmin {
		appointments, err = s.appointments.ListAll(ctx)
	} else {
		appointments, err = s.appointments.ListForUser(ctx, ident.ID)
	}
	if err != nil {
		return nil, oops.
			Code("APPOINTMENT_STORE_FAILED").
			Wrapf(err, "listing appointments")
	}
	return appointments, nil
}
