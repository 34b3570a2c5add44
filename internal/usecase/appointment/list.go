package appointment

import (
	"context"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// ListByDate devolve a agenda de um dia, em ordem de início.
func (s *Service) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return s.repo.ListAppointmentsForPeriod(ctx, day, day.AddDate(0, 0, 1))
}

// ListByMonth devolve a agenda do mês para a visão de calendário.
func (s *Service) ListByMonth(ctx context.Context, year int, month time.Month) ([]models.Appointment, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return s.repo.ListAppointmentsForPeriod(ctx, start, start.AddDate(0, 1, 0))
}

// GetByReference é a consulta pública "minha reserva" do cliente.
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.Appointment, error) {
	return s.repo.GetAppointmentByReference(ctx, reference)
}
