// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"time"
)

// Appointment statuses. New appointments always start pending; only an
// approved appointment occupies its slot.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Appointment is a requested consultation slot between a patient and
// a doctor. Date carries the day; Time is the wall-clock slot as
// "HH:MM".
type Appointment struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patientId"`
	DoctorID  int64     `json:"doctorId"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentRepository provides access to appointment storage.
type AppointmentRepository interface {
	// Create persists a new appointment and fills in its ID.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment. Returns an error wrapping
	// ErrNotFound if no appointment exists.
	GetByID(ctx context.Context, id int64) (*Appointment, error)

	// ListForUser returns appointments where the user is a party on
	// either side.
	ListForUser(ctx context.Context, userID int64) ([]*Appointment, error)

	// ListAll returns every appointment.
	ListAll(ctx context.Context) ([]*Appointment, error)

	// ApprovedSlotExists reports whether the doctor already has an
	// approved appointment at the exact date and time.
	ApprovedSlotExists(ctx context.Context, doctorID int64, date time.Time, slot string) (bool, error)
}
