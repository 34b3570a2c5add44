package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
	"github.com/EssiesHairStudio/salon-scheduler/internal/payments"
)

type WigOrderInput struct {
	WigID    uint `json:"wig_id" binding:"required"`
	Quantity int  `json:"quantity"`

	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`

	PaymentMethod string `json:"payment_method"`
}

type WigOrderResult struct {
	Order      *models.WigOrder `json:"order"`
	PaymentURL string           `json:"payment_url,omitempty"`
}

// OrderWig reserva o estoque e registra o pedido. O total é sempre
// calculado aqui — preço do cliente não entra na conta.
func (s *Service) OrderWig(ctx context.Context, input WigOrderInput) (*WigOrderResult, error) {
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	paymentMethod, err := normalizePayment(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var created *models.WigOrder

	err = s.repo.WithWigLocked(ctx, input.WigID, func(tx Repository, wig *models.Wig) error {
		if !wig.IsActive {
			return httperr.ErrBusiness("wig_not_found")
		}
		if wig.Stock < qty {
			return httperr.ErrBusiness("out_of_stock")
		}

		o := &models.WigOrder{
			Reference:       uuid.NewString(),
			WigID:           wig.ID,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			CustomerEmail:   input.CustomerEmail,
			CustomerAddress: input.CustomerAddress,
			Quantity:        qty,
			TotalPrice:      wig.Price * float64(qty),
			PaymentMethod:   paymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			Status:          StatusPending,
		}

		if err := tx.CreateWigOrder(ctx, o); err != nil {
			return err
		}

		wig.Stock -= qty
		if err := tx.SaveWig(ctx, wig); err != nil {
			return err
		}

		o.Wig = *wig
		created = o
		return nil
	})
	if err != nil && httperr.IsSerializationConflict(err) {
		// perdeu a corrida de estoque, o vencedor já decrementou
		return nil, httperr.ErrBusiness("out_of_stock")
	}
	if err != nil {
		return nil, err
	}

	result := &WigOrderResult{Order: created}

	if paymentMethod == models.PaymentMethodOnline && s.checkout != nil {
		url, payErr := s.checkout.CreatePreference(ctx, created.Reference, payments.OrderItem{
			Title:     fmt.Sprintf("%s x%d", created.Wig.Name, created.Quantity),
			Quantity:  1,
			UnitPrice: created.TotalPrice,
		})
		if payErr != nil {
			// pedido fica registrado; o pagamento pode ser refeito depois
			result.PaymentURL = ""
		} else {
			result.PaymentURL = url
		}
	}

	s.dispatchAudit(audit.Event{
		Action:   "wig_order_created",
		Entity:   "wig_order",
		EntityID: &created.ID,
		Metadata: map[string]any{"reference": created.Reference, "quantity": created.Quantity},
	})
	s.dispatchMail(notify.WigOrderConfirmation(created))

	return result, nil
}

func (s *Service) ConfirmWigOrder(ctx context.Context, orderID uint, actorID uint) (*models.WigOrder, error) {
	o, err := s.repo.GetWigOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	o.Status = StatusConfirmed

	if err := s.repo.UpdateWigOrder(ctx, o); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "wig_order_confirmed",
		Entity:   "wig_order",
		EntityID: &o.ID,
	})

	return o, nil
}

func (s *Service) ShipWigOrder(ctx context.Context, orderID uint, actorID uint) (*models.WigOrder, error) {
	return s.advanceWigOrder(ctx, orderID, actorID, StatusConfirmed, StatusShipped, "wig_order_shipped")
}

func (s *Service) DeliverWigOrder(ctx context.Context, orderID uint, actorID uint) (*models.WigOrder, error) {
	return s.advanceWigOrder(ctx, orderID, actorID, StatusShipped, StatusDelivered, "wig_order_delivered")
}

func (s *Service) advanceWigOrder(ctx context.Context, orderID, actorID uint, from, to, action string) (*models.WigOrder, error) {
	o, err := s.repo.GetWigOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != from {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	o.Status = to

	if err := s.repo.UpdateWigOrder(ctx, o); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "wig_order",
		EntityID: &o.ID,
	})

	return o, nil
}

// CancelWigOrder devolve a quantidade ao estoque na mesma transação.
// O status é rechecado com o lock preso: dois cancelamentos
// concorrentes não podem estornar o estoque duas vezes.
func (s *Service) CancelWigOrder(ctx context.Context, orderID uint, actorID uint) (*models.WigOrder, error) {
	o, err := s.repo.GetWigOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	err = s.repo.WithWigLocked(ctx, o.WigID, func(tx Repository, wig *models.Wig) error {
		current, err := tx.GetWigOrderByID(ctx, o.ID)
		if err != nil {
			return err
		}
		if current.Status != StatusPending && current.Status != StatusConfirmed {
			return httperr.ErrBusiness("invalid_state")
		}

		current.Status = StatusCancelled
		if err := tx.UpdateWigOrder(ctx, current); err != nil {
			return err
		}

		wig.Stock += current.Quantity
		o = current
		return tx.SaveWig(ctx, wig)
	})
	if err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "wig_order_cancelled",
		Entity:   "wig_order",
		EntityID: &o.ID,
	})
	s.dispatchMail(notify.WigOrderCancelled(o))

	return o, nil
}

// ConfirmWigPayment marca o pedido como pago (retorno do checkout).
func (s *Service) ConfirmWigPayment(ctx context.Context, reference string) (*models.WigOrder, error) {
	o, err := s.repo.GetWigOrderByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if o.PaymentStatus == models.PaymentStatusPaid {
		return o, nil // idempotente
	}
	o.PaymentStatus = models.PaymentStatusPaid

	if err := s.repo.UpdateWigOrder(ctx, o); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		Action:   "wig_order_paid",
		Entity:   "wig_order",
		EntityID: &o.ID,
	})

	return o, nil
}

func (s *Service) ListWigOrders(ctx context.Context, status string) ([]models.WigOrder, error) {
	return s.repo.ListWigOrders(ctx, status)
}
