// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wassim-coder/medical-recording/internal/record"
)

var appointmentCols = []string{"id", "patient_id", "doctor_id", "date", "time", "status", "created_at"}

func TestAppointmentRepository_Create(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	a := &record.Appointment{
		PatientID: 2,
		DoctorID:  1,
		Date:      day,
		Time:      "14:00",
		Status:    record.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(50)))

	repo := NewAppointmentRepository(mock)
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, int64(50), a.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_ApprovedSlotExists(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		exists bool
	}{
		{"slot taken", true},
		{"slot free", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(int64(1), day, "14:00").
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewAppointmentRepository(mock)
			got, err := repo.ApprovedSlotExists(ctx, 1, day, "14:00")
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAppointmentRepository_ListForUser(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(appointmentCols).
		AddRow(int64(50), int64(2), int64(1), day, "14:00", "pending", created).
		AddRow(int64(51), int64(2), int64(3), day, "15:00", "approved", created)
	mock.ExpectQuery(`SELECT (.+) FROM appointments\s+WHERE patient_id = \$1 OR doctor_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	repo := NewAppointmentRepository(mock)
	got, err := repo.ListForUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "14:00", got[0].Time)
	assert.Equal(t, record.StatusApproved, got[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
