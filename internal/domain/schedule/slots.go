package schedule

import (
	"context"
	"iter"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// AvailableSlots gera os horários livres do dia para o serviço, em ordem
// crescente, dentro da janela de sugestão (08:00–20:00 por padrão), com
// passo fixo. A disponibilidade é do serviço inteiro: os agendamentos de
// qualquer subserviço ocupam a mesma agenda.
//
// A sequência é preguiçosa e pode ser percorrida mais de uma vez; quem
// chama normalmente só consome os primeiros horários.
func (e *Engine) AvailableSlots(
	ctx context.Context,
	serviceID uint,
	date time.Time,
	sub *models.SubService,
) (iter.Seq[time.Time], error) {

	existing, err := e.repo.ListActiveAppointments(ctx, serviceID, nil)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(e.cfg.DefaultSlotDurationMin) * time.Minute
	if sub != nil {
		duration = ResolveDuration(e.cfg, sub, nil)
	}

	loc := date.Location()
	windowStart := time.Date(date.Year(), date.Month(), date.Day(),
		e.cfg.SlotWindowStartHour, 0, 0, 0, loc)
	windowEnd := time.Date(date.Year(), date.Month(), date.Day(),
		e.cfg.SlotWindowEndHour, 0, 0, 0, loc)

	step := time.Duration(e.cfg.SlotStepMin) * time.Minute
	buffer := e.Buffer()

	return func(yield func(time.Time) bool) {
		for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(step) {
			if e.slotTaken(cur, duration, existing, buffer) {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}, nil
}

func (e *Engine) slotTaken(
	start time.Time,
	duration time.Duration,
	existing []models.Appointment,
	buffer time.Duration,
) bool {

	for i := range existing {
		other := &existing[i]
		otherDuration := AppointmentDuration(e.cfg, other)

		if Overlaps(start, duration, other.StartTime, otherDuration, buffer) {
			return true
		}
	}
	return false
}

// FirstN materializa os n primeiros horários da sequência.
func FirstN(slots iter.Seq[time.Time], n int) []time.Time {
	out := make([]time.Time, 0, n)
	for t := range slots {
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}
