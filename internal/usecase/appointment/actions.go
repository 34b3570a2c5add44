package appointment

import (
	"context"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/domain/schedule"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
)

// Ações da equipe sobre um agendamento existente. As regras de transição
// de estado vivem no domínio; aqui fica a persistência e os efeitos
// colaterais (cache, audit, e-mail).

func (s *Service) Confirm(ctx context.Context, appointmentID uint, actorID uint) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := schedule.Confirm(ap, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	s.dispatchMail(notify.AppointmentConfirmed(ap, s.loc))

	return ap, nil
}

func (s *Service) Complete(ctx context.Context, appointmentID uint, actorID uint) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := schedule.Complete(ap, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// completed sai da agenda ativa → libera o horário
	s.cache.Invalidate(ctx, ap.ServiceID)

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (s *Service) CancelByStaff(ctx context.Context, appointmentID uint, actorID uint, reason string) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.cancel(ctx, ap, "staff", reason); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return ap, nil
}

// CancelByReference é o cancelamento sem login: o cliente informa o
// código de referência e o telefone usado na reserva.
func (s *Service) CancelByReference(ctx context.Context, reference, phone, reason string) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointmentByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if ap.CustomerPhone != phone {
		// mesma resposta de referência inválida, para não vazar dados
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := s.cancel(ctx, ap, "customer", reason); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"by": "customer", "reason": reason},
	})

	return ap, nil
}

func (s *Service) cancel(ctx context.Context, ap *models.Appointment, actor, reason string) error {
	if err := schedule.Cancel(ap, s.now(), actor, reason); err != nil {
		return err
	}

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, ap.ServiceID)
	s.dispatchMail(notify.AppointmentCancelled(ap, s.loc))

	return nil
}
