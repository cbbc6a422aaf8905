package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-booking/internal/data/repository"
	"clinic-booking/internal/dto/response"
	"clinic-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotService projects the clinic's bookable slot grid for a doctor and day.
type SlotService interface {
	ListAvailableSlots(ctx context.Context, doctorID string, date string) (*response.DaySlotsResponse, error)
}

type slotService struct {
	repo *repository.Repository
	grid slotGrid
	log  *zap.Logger
}

func NewSlotService(repo *repository.Repository, schedule utils.ScheduleConfig, log *zap.Logger) SlotService {
	return &slotService{
		repo: repo,
		grid: newSlotGrid(schedule),
		log:  log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) ListAvailableSlots(ctx context.Context, doctorID string, date string) (*response.DaySlotsResponse, error) {
	doctorUUID, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID format %s: %w", doctorID, err)
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", date, err)
	}

	doctor, err := s.repo.Doctor.FindByID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("look up doctor %s: %w", doctorID, err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %s: %w", doctorID, utils.ErrNotFound)
	}

	// A slot is taken iff a non-cancelled appointment sits exactly on it.
	// Cancelled rows release the slot immediately.
	appointments, err := s.repo.Appointment.FindByDoctorBetween(ctx, doctorUUID, day, day.Add(24*time.Hour))
	if err != nil {
		s.log.Error("Failed to load appointments for slot projection",
			zap.Error(err),
			zap.String("doctor_id", doctorID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("load appointments for doctor %s on %s: %w", doctorID, date, err)
	}

	taken := make(map[int64]struct{}, len(appointments))
	for _, a := range appointments {
		if a.HoldsSlot() {
			taken[a.ScheduledAt.Unix()] = struct{}{}
		}
	}

	times := s.grid.Times(day)
	slots := make([]response.SlotResponse, len(times))
	for i, t := range times {
		_, isTaken := taken[t.Unix()]
		slots[i] = response.SlotResponse{
			Time:        t.Format("15:04"),
			IsAvailable: !isTaken,
		}
	}

	return &response.DaySlotsResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    slots,
	}, nil
}

// slotGrid is the canonical daily slot grid shared by slot listing and
// booking validation.
type slotGrid struct {
	openHour    int
	closeHour   int
	slotMinutes int
}

func newSlotGrid(schedule utils.ScheduleConfig) slotGrid {
	grid := slotGrid{
		openHour:    schedule.OpenHour,
		closeHour:   schedule.CloseHour,
		slotMinutes: schedule.SlotMinutes,
	}
	if grid.openHour < 0 || grid.closeHour <= grid.openHour {
		grid.openHour, grid.closeHour = 9, 17
	}
	if grid.slotMinutes <= 0 {
		grid.slotMinutes = 30
	}
	return grid
}

// Times returns the ordered slot start times for a calendar day.
func (g slotGrid) Times(day time.Time) []time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), g.openHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), g.closeHour, 0, 0, 0, time.UTC)
	step := time.Duration(g.slotMinutes) * time.Minute

	var times []time.Time
	for t := start; t.Before(end); t = t.Add(step) {
		times = append(times, t)
	}
	return times
}

// Contains reports whether the timestamp lies exactly on the grid.
func (g slotGrid) Contains(t time.Time) bool {
	t = t.UTC()
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	open := g.openHour * 60
	close := g.closeHour * 60
	if minutes < open || minutes >= close {
		return false
	}
	return (minutes-open)%g.slotMinutes == 0
}
