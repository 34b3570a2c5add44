package schedule

import (
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// ResolveDuration decide a duração efetiva de um atendimento.
// Precedência: duração do subserviço > estimativa informada > padrão.
func ResolveDuration(
	cfg config.Scheduling,
	sub *models.SubService,
	override *time.Duration,
) time.Duration {

	if sub != nil && sub.HasDuration() {
		return time.Duration(*sub.DurationMin) * time.Minute
	}

	if override != nil && *override > 0 {
		return *override
	}

	return time.Duration(cfg.DefaultBookingDurationMin) * time.Minute
}

// AppointmentDuration aplica ResolveDuration a um agendamento existente.
func AppointmentDuration(
	cfg config.Scheduling,
	ap *models.Appointment,
) time.Duration {

	var override *time.Duration
	if ap.EstimatedDurationMin != nil && *ap.EstimatedDurationMin > 0 {
		d := time.Duration(*ap.EstimatedDurationMin) * time.Minute
		override = &d
	}

	return ResolveDuration(cfg, ap.SubService, override)
}
