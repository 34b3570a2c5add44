package schedule

import (
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
)

// ValidateBookingTime rejeita horários no passado e fora da janela de
// funcionamento (08:00–22:00 por padrão). A janela aqui é a de validação
// de reserva, mais larga que a janela de sugestão de slots.
func ValidateBookingTime(
	cfg config.Scheduling,
	now time.Time,
	candidateStart time.Time,
) error {

	if !candidateStart.After(now) {
		return httperr.ErrBusiness("past_time")
	}

	hour := candidateStart.Hour()
	if hour < cfg.BookingHourStart || hour >= cfg.BookingHourEnd {
		return httperr.ErrBusiness("outside_hours")
	}

	return nil
}
