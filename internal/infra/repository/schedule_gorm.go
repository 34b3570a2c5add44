package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EssiesHairStudio/salon-scheduler/internal/domain/schedule"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Service / SubService
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBookingService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_type = ? AND is_active = true",
			serviceID, models.ServiceTypeBooking).
		First(&svc).Error; err != nil {

		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) GetSubService(
	ctx context.Context,
	serviceID uint,
	subServiceID uint,
) (*models.SubService, error) {

	var sub models.SubService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ? AND is_active = true",
			subServiceID, serviceID).
		First(&sub).Error; err != nil {

		return nil, httperr.ErrBusiness("subservice_not_found")
	}
	return &sub, nil
}

func (r *ScheduleGormRepository) ListActiveSubServices(
	ctx context.Context,
	serviceID uint,
) ([]models.SubService, error) {

	var subs []models.SubService
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND is_active = true", serviceID).
		Order("position ASC, name ASC").
		Find(&subs).Error; err != nil {

		return nil, err
	}
	return subs, nil
}

// --------------------------------------------------
// Appointment (conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListActiveAppointments(
	ctx context.Context,
	serviceID uint,
	excludeID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("SubService").
		Where("service_id = ? AND status IN ?", serviceID, schedule.ActiveStatuses)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// BookAtomically serializa as escritas por serviço: a transação tranca a
// linha do serviço com FOR UPDATE antes de rodar fn. Duas reservas
// concorrentes do mesmo serviço nunca passam juntas pela checagem —
// trancar só as linhas de agendamento não bloquearia inserts novos.
func (r *ScheduleGormRepository) BookAtomically(
	ctx context.Context,
	serviceID uint,
	fn func(tx schedule.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var svc models.Service
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, serviceID).Error; err != nil {
			return err
		}

		return fn(&ScheduleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment (state change / listing)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("SubService").
		Preload("HairStyle").
		First(&ap, appointmentID).Error; err != nil {

		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentByReference(
	ctx context.Context,
	reference string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("SubService").
		Where("reference = ?", reference).
		First(&ap).Error; err != nil {

		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("SubService").
		Preload("HairStyle").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {

		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
