package appointment

import (
	"context"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/domain/schedule"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

type TimeSlot struct {
	Start string `json:"start"` // 15:04
	End   string `json:"end"`
}

// Availability devolve os horários livres do dia, já formatados.
// O snapshot fica 60s no Redis; a invalidação acontece a cada
// reserva/cancelamento do serviço.
func (s *Service) Availability(
	ctx context.Context,
	serviceID uint,
	date string,
	subServiceID *uint,
) ([]TimeSlot, error) {

	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := s.repo.GetBookingService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	var sub *models.SubService
	if subServiceID != nil {
		sub, err = s.repo.GetSubService(ctx, svc.ID, *subServiceID)
		if err != nil {
			return nil, err
		}
	}

	duration := time.Duration(s.cfg.DefaultSlotDurationMin) * time.Minute
	if sub != nil {
		duration = schedule.ResolveDuration(s.cfg, sub, nil)
	}

	if starts, ok := s.cache.Get(ctx, svc.ID, date, subServiceID); ok {
		return buildSlots(starts, duration), nil
	}

	engine := schedule.NewEngine(s.repo, s.cfg)
	seq, err := engine.AvailableSlots(ctx, svc.ID, day, sub)
	if err != nil {
		return nil, err
	}

	var starts []string
	for t := range seq {
		starts = append(starts, t.Format("15:04"))
	}

	s.cache.Set(ctx, svc.ID, date, subServiceID, starts)

	return buildSlots(starts, duration), nil
}

// AvailabilityBySubService monta o mapa subserviço → horários livres do
// dia, usado pela página de detalhe do serviço.
func (s *Service) AvailabilityBySubService(
	ctx context.Context,
	serviceID uint,
	date string,
) (map[string][]string, error) {

	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := s.repo.GetBookingService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.ListActiveSubServices(ctx, svc.ID)
	if err != nil {
		return nil, err
	}

	engine := schedule.NewEngine(s.repo, s.cfg)

	out := make(map[string][]string, len(subs))
	for i := range subs {
		sub := &subs[i]

		seq, err := engine.AvailableSlots(ctx, svc.ID, day, sub)
		if err != nil {
			return nil, err
		}

		slots := []string{}
		for t := range seq {
			slots = append(slots, t.Format("2006-01-02 15:04"))
		}
		out[sub.Name] = slots
	}

	return out, nil
}

func buildSlots(starts []string, duration time.Duration) []TimeSlot {
	slots := make([]TimeSlot, 0, len(starts))
	for _, start := range starts {
		t, err := time.Parse("15:04", start)
		if err != nil {
			continue
		}
		slots = append(slots, TimeSlot{
			Start: start,
			End:   t.Add(duration).Format("15:04"),
		})
	}
	return slots
}
