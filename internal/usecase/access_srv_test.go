package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAccessService(e *testEnv) AccessService {
	return NewAccessService(e.repo, e.config, e.clock, zap.NewNop())
}

// seedAppointment inserts an appointment directly into the fake ledger,
// bypassing booking validation.
func seedAppointment(t *testing.T, e *testEnv, a *entity.Appointment) *entity.Appointment {
	t.Helper()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PatientID == uuid.Nil {
		a.PatientID = e.patientID
	}
	if a.DoctorID == uuid.Nil {
		a.DoctorID = e.doctorID
	}
	require.NoError(t, e.appointments.Create(context.Background(), a))
	return a
}

func TestCheckVideoAccessWindow(t *testing.T) {
	visit := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	chatExpiry := visit.Add(7 * 24 * time.Hour)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"shortly after window opens", time.Date(2025, 10, 15, 13, 5, 0, 0, time.UTC), true},
		{"near window close", time.Date(2025, 10, 15, 14, 55, 0, 0, time.UTC), true},
		{"two hours early", time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC), false},
		{"after window closes", time.Date(2025, 10, 15, 16, 1, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(tc.now)
			a := seedAppointment(t, e, &entity.Appointment{
				ScheduledAt:   visit,
				Status:        entity.AppointmentStatusConfirmed,
				PaymentMethod: entity.PaymentMethodOnline,
				PaymentStatus: entity.PaymentStatusPaid,
				ChatExpiresAt: &chatExpiry,
			})

			resp := newAccessService(e).CheckVideoAccess(context.Background(), a.ID.String())
			assert.Equal(t, tc.want, resp.CanVideoCall)
		})
	}
}

func TestCheckVideoAccessDeniedWithoutChat(t *testing.T) {
	visit := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	e := newTestEnv(visit) // squarely inside the window

	// Cash booking awaiting payment: no chat privilege, so no video either.
	a := seedAppointment(t, e, &entity.Appointment{
		ScheduledAt:   visit,
		Status:        entity.AppointmentStatusScheduled,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPending,
	})

	resp := newAccessService(e).CheckVideoAccess(context.Background(), a.ID.String())
	assert.False(t, resp.CanVideoCall)
}

func TestCheckVideoAccessDeniedForCancelled(t *testing.T) {
	visit := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	chatExpiry := visit.Add(7 * 24 * time.Hour)
	e := newTestEnv(visit)

	a := seedAppointment(t, e, &entity.Appointment{
		ScheduledAt:   visit,
		Status:        entity.AppointmentStatusCancelled,
		PaymentMethod: entity.PaymentMethodOnline,
		PaymentStatus: entity.PaymentStatusPaid,
		ChatExpiresAt: &chatExpiry,
	})

	resp := newAccessService(e).CheckVideoAccess(context.Background(), a.ID.String())
	assert.False(t, resp.CanVideoCall)
}

func TestCheckVideoAccessUnknownAppointment(t *testing.T) {
	e := newTestEnv(bookingNow)
	svc := newAccessService(e)

	assert.False(t, svc.CheckVideoAccess(context.Background(), uuid.New().String()).CanVideoCall)
	assert.False(t, svc.CheckVideoAccess(context.Background(), "not-a-uuid").CanVideoCall)
}

func TestCheckChatAccessAnyLiveAppointmentGrants(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	e := newTestEnv(now)

	// An old visit whose chat window has lapsed.
	staleExpiry := now.Add(-48 * time.Hour)
	seedAppointment(t, e, &entity.Appointment{
		ScheduledAt:   time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:        entity.AppointmentStatusCompleted,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		ChatExpiresAt: &staleExpiry,
	})

	svc := newAccessService(e)
	assert.False(t, svc.CheckChatAccess(context.Background(), e.patientID.String(), e.doctorID.String()).CanChat)

	// A fresh visit reopens the channel even though the old one lapsed.
	liveExpiry := now.Add(72 * time.Hour)
	seedAppointment(t, e, &entity.Appointment{
		ScheduledAt:   time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC),
		Status:        entity.AppointmentStatusCompleted,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		ChatExpiresAt: &liveExpiry,
	})

	assert.True(t, svc.CheckChatAccess(context.Background(), e.patientID.String(), e.doctorID.String()).CanChat)
}

func TestCheckChatAccessWrongPair(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	e := newTestEnv(now)

	liveExpiry := now.Add(72 * time.Hour)
	seedAppointment(t, e, &entity.Appointment{
		ScheduledAt:   time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC),
		Status:        entity.AppointmentStatusConfirmed,
		PaymentMethod: entity.PaymentMethodOnline,
		PaymentStatus: entity.PaymentStatusPaid,
		ChatExpiresAt: &liveExpiry,
	})

	svc := newAccessService(e)
	assert.False(t, svc.CheckChatAccess(context.Background(), uuid.New().String(), e.doctorID.String()).CanChat)
	assert.False(t, svc.CheckChatAccess(context.Background(), e.patientID.String(), uuid.New().String()).CanChat)
}

func TestCheckChatAccessMalformedIDs(t *testing.T) {
	e := newTestEnv(bookingNow)
	svc := newAccessService(e)

	assert.False(t, svc.CheckChatAccess(context.Background(), "nope", e.doctorID.String()).CanChat)
	assert.False(t, svc.CheckChatAccess(context.Background(), e.patientID.String(), "nope").CanChat)
}
