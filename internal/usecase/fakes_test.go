package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clinic-booking/internal/data/entity"
	"clinic-booking/internal/data/repository"
	"clinic-booking/pkg/utils"

	"github.com/google/uuid"
)

// fakeClock is a settable clock for deterministic access-window tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeAppointmentRepo is an in-memory ledger honoring the same atomicity
// contract as the SQL implementation: the conflict check and the insert
// happen under one lock, and status updates are guarded.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.items {
		if existing.DoctorID == a.DoctorID && existing.ScheduledAt.Equal(a.ScheduledAt) && existing.HoldsSlot() {
			return fmt.Errorf("doctor %s at %s: %w",
				a.DoctorID.String(), a.ScheduledAt.Format(time.RFC3339), utils.ErrSlotConflict)
		}
	}

	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) FindByDoctorBetween(_ context.Context, doctorID uuid.UUID, from, until time.Time) ([]*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Appointment
	for _, a := range f.items {
		if a.DoctorID == doctorID && !a.ScheduledAt.Before(from) && a.ScheduledAt.Before(until) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByPatientAndDoctor(_ context.Context, patientID, doctorID uuid.UUID) ([]*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Appointment
	for _, a := range f.items {
		if a.PatientID == patientID && a.DoctorID == doctorID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByParticipant(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Appointment
	for _, a := range f.items {
		if a.PatientID == userID || a.DoctorID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByParticipant(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, a := range f.items {
		if a.PatientID == userID || a.DoctorID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentRepo) TransitionStatus(_ context.Context, id uuid.UUID, to entity.AppointmentStatus, from ...entity.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.items[id]
	if !ok {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}
	for _, s := range from {
		if a.Status == s {
			a.Status = to
			return nil
		}
	}
	return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
}

func (f *fakeAppointmentRepo) ActivateChat(_ context.Context, id uuid.UUID, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.items[id]
	if !ok || a.Status == entity.AppointmentStatusCancelled {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}
	a.Status = entity.AppointmentStatusCompleted
	if a.ChatExpiresAt == nil || expiresAt.After(*a.ChatExpiresAt) {
		a.ChatExpiresAt = &expiresAt
	}
	return nil
}

func (f *fakeAppointmentRepo) ConfirmPayment(_ context.Context, id uuid.UUID, chatExpiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.items[id]
	if !ok || a.Status != entity.AppointmentStatusScheduled {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}
	a.Status = entity.AppointmentStatusConfirmed
	a.PaymentStatus = entity.PaymentStatusPaid
	if a.ChatExpiresAt == nil {
		a.ChatExpiresAt = &chatExpiresAt
	}
	return nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.Doctor
}

func (f *fakeDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func (f *fakePatientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []*entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	return nil
}

type fakeActivityRepo struct {
	mu    sync.Mutex
	items []*entity.ActivityLog
}

func (f *fakeActivityRepo) Create(_ context.Context, e *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, e)
	return nil
}

// testEnv bundles the fake-backed wiring most service tests need.
type testEnv struct {
	repo          *repository.Repository
	appointments  *fakeAppointmentRepo
	notifications *fakeNotificationRepo
	activity      *fakeActivityRepo
	clock         *fakeClock
	config        *utils.Config
	doctorID      uuid.UUID
	patientID     uuid.UUID
}

func newTestEnv(now time.Time) *testEnv {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointments := newFakeAppointmentRepo()
	notifications := &fakeNotificationRepo{}
	activity := &fakeActivityRepo{}

	repo := &repository.Repository{
		Appointment: appointments,
		Doctor: &fakeDoctorRepo{doctors: map[uuid.UUID]*entity.Doctor{
			doctorID: {
				Base:            entity.Base{ID: doctorID, CreatedAt: now, UpdatedAt: now},
				FullName:        "Dr. Amara Osei",
				Email:           "amara.osei@clinic.test",
				Specialization:  "cardiology",
				ConsultationFee: 150,
				Approved:        true,
			},
		}},
		Patient: &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{
			patientID: {
				Base:     entity.Base{ID: patientID, CreatedAt: now, UpdatedAt: now},
				FullName: "Jonas Lindqvist",
				Email:    "jonas.lindqvist@mail.test",
			},
		}},
		Notification: notifications,
		ActivityLog:  activity,
	}

	return &testEnv{
		repo:          repo,
		appointments:  appointments,
		notifications: notifications,
		activity:      activity,
		clock:         newFakeClock(now),
		config: &utils.Config{
			Schedule: utils.ScheduleConfig{OpenHour: 9, CloseHour: 17, SlotMinutes: 30},
			Access:   utils.AccessConfig{ChatExpiryDays: 7, VideoWindowMinutes: 60},
		},
		doctorID:  doctorID,
		patientID: patientID,
	}
}

func (e *testEnv) addDoctor(d *entity.Doctor) {
	e.repo.Doctor.(*fakeDoctorRepo).doctors[d.ID] = d
}
