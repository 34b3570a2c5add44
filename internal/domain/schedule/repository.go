package schedule

import (
	"context"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Service / SubService --------
	GetBookingService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetSubService(
		ctx context.Context,
		serviceID uint,
		subServiceID uint,
	) (*models.SubService, error)

	ListActiveSubServices(
		ctx context.Context,
		serviceID uint,
	) ([]models.SubService, error)

	// -------- Appointment (conflict) --------

	// ListActiveAppointments retorna os agendamentos pending/confirmed
	// do serviço, ordenados por start_time, com subserviço carregado.
	ListActiveAppointments(
		ctx context.Context,
		serviceID uint,
		excludeID *uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// BookAtomically executa fn dentro de uma transação que serializa
	// as escritas do serviço (lock na linha do serviço). A checagem de
	// conflito e o insert precisam acontecer dentro de fn.
	BookAtomically(
		ctx context.Context,
		serviceID uint,
		fn func(tx Repository) error,
	) error

	// -------- Appointment (state change / listing) --------
	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
