package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/domain/schedule"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
)

const suggestionCount = 5

type BookInput struct {
	ServiceID    uint   `json:"service_id" binding:"required"`
	SubServiceID *uint  `json:"sub_service_id"`
	HairStyleID  *uint  `json:"hair_style_id"`
	CustomStyle  string `json:"custom_hair_style"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04

	EstimatedDurationMin *int   `json:"estimated_duration_min"`
	Notes                string `json:"notes"`
	PaymentMethod        string `json:"payment_method"`
}

type BookResult struct {
	Appointment *models.Appointment      `json:"appointment,omitempty"`
	Conflict    *schedule.ConflictResult `json:"conflict,omitempty"`
	Suggestions []string                 `json:"suggestions,omitempty"`
}

// sinaliza o rollback quando a checagem dentro da transação falha
var errSlotTaken = errors.New("slot taken")

// Book executa o fluxo completo de reserva. Conflito de horário não é
// erro: o resultado volta com Conflict preenchido e até 5 sugestões.
func (s *Service) Book(ctx context.Context, input BookInput) (*BookResult, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.Time, s.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_datetime")
	}

	if err := schedule.ValidateBookingTime(s.cfg, s.now().In(s.loc), start); err != nil {
		return nil, err
	}

	svc, err := s.repo.GetBookingService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	var sub *models.SubService
	if input.SubServiceID != nil {
		sub, err = s.repo.GetSubService(ctx, svc.ID, *input.SubServiceID)
		if err != nil {
			return nil, err
		}
	}

	var override *time.Duration
	if input.EstimatedDurationMin != nil && *input.EstimatedDurationMin > 0 {
		d := time.Duration(*input.EstimatedDurationMin) * time.Minute
		override = &d
	}
	duration := schedule.ResolveDuration(s.cfg, sub, override)

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	ap := &models.Appointment{
		Reference:            uuid.NewString(),
		CustomerName:         input.CustomerName,
		CustomerPhone:        input.CustomerPhone,
		CustomerEmail:        input.CustomerEmail,
		ServiceID:            svc.ID,
		SubServiceID:         input.SubServiceID,
		HairStyleID:          input.HairStyleID,
		CustomHairStyle:      input.CustomStyle,
		StartTime:            start,
		EstimatedDurationMin: input.EstimatedDurationMin,
		Notes:                input.Notes,
		Status:               string(schedule.InitialStatus()),
		PaymentMethod:        paymentMethod,
		PaymentStatus:        models.PaymentStatusPending,
	}

	conflict, err := s.bookWithRetry(ctx, svc.ID, start, duration, ap)
	if err != nil {
		return nil, err
	}

	if conflict.Conflict {
		suggestions, sugErr := s.suggestions(ctx, svc.ID, start, sub)
		if sugErr != nil {
			suggestions = nil
		}

		s.dispatchAudit(audit.Event{
			Action: "appointment_conflict",
			Entity: "appointment",
			Metadata: map[string]any{
				"service_id": svc.ID,
				"requested":  start,
			},
		})

		return &BookResult{Conflict: &conflict, Suggestions: suggestions}, nil
	}

	ap.Service = *svc
	ap.SubService = sub

	s.cache.Invalidate(ctx, svc.ID)

	s.dispatchAudit(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"reference":  ap.Reference,
			"service_id": ap.ServiceID,
			"start_time": ap.StartTime,
		},
	})

	s.dispatchMail(notify.AppointmentRequested(ap, s.loc))
	if s.adminEmail != "" {
		s.dispatchMail(notify.NewBookingAlert(s.adminEmail, ap, s.loc))
	}

	return &BookResult{Appointment: ap}, nil
}

// bookWithRetry roda checagem + insert dentro da transação serializada.
// Perder a corrida de serialização rende uma única repetição: na segunda
// vez o vencedor já está visível e a checagem reporta o conflito.
func (s *Service) bookWithRetry(
	ctx context.Context,
	serviceID uint,
	start time.Time,
	duration time.Duration,
	ap *models.Appointment,
) (schedule.ConflictResult, error) {

	var conflict schedule.ConflictResult

	attempt := func() error {
		return s.repo.BookAtomically(ctx, serviceID, func(tx schedule.Repository) error {
			engine := schedule.NewEngine(tx, s.cfg)

			result, err := engine.CheckConflict(ctx, serviceID, start, duration, nil)
			if err != nil {
				return err
			}
			if result.Conflict {
				conflict = result
				return errSlotTaken
			}

			return tx.CreateAppointment(ctx, ap)
		})
	}

	err := attempt()
	if err != nil && httperr.IsSerializationConflict(err) {
		err = attempt()
	}

	if errors.Is(err, errSlotTaken) {
		return conflict, nil
	}
	if err != nil {
		return schedule.ConflictResult{}, fmt.Errorf("book appointment: %w", err)
	}

	return schedule.ConflictResult{}, nil
}

func (s *Service) suggestions(
	ctx context.Context,
	serviceID uint,
	requested time.Time,
	sub *models.SubService,
) ([]string, error) {

	engine := schedule.NewEngine(s.repo, s.cfg)

	slots, err := engine.AvailableSlots(ctx, serviceID, requested, sub)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, suggestionCount)
	for _, t := range schedule.FirstN(slots, suggestionCount) {
		out = append(out, t.Format("2006-01-02 15:04"))
	}
	return out, nil
}
