package repository

import (
	"clinic-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Appointment  AppointmentRepository
	Doctor       DoctorRepository
	Patient      PatientRepository
	Session      SessionRepository
	Notification NotificationRepository
	ActivityLog  ActivityLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Appointment:  NewAppointmentRepository(db, log),
		Doctor:       NewDoctorRepository(db, log),
		Patient:      NewPatientRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		ActivityLog:  NewActivityLogRepository(db, log),
	}
}
