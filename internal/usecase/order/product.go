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

type ProductOrderInput struct {
	SubServiceID uint `json:"sub_service_id" binding:"required"`
	Quantity     int  `json:"quantity"`

	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`

	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

type ProductOrderResult struct {
	Order      *models.ProductOrder `json:"order"`
	PaymentURL string               `json:"payment_url,omitempty"`
}

// OrderProduct é o espelho de OrderWig para itens do catálogo de venda
// (subserviços de um serviço do tipo "order").
func (s *Service) OrderProduct(ctx context.Context, input ProductOrderInput) (*ProductOrderResult, error) {
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	paymentMethod, err := normalizePayment(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var created *models.ProductOrder

	err = s.repo.WithSubServiceLocked(ctx, input.SubServiceID, func(tx Repository, sub *models.SubService) error {
		if !sub.IsActive {
			return httperr.ErrBusiness("product_not_found")
		}
		if sub.Stock < qty {
			return httperr.ErrBusiness("out_of_stock")
		}

		subID := sub.ID
		o := &models.ProductOrder{
			Reference:       uuid.NewString(),
			SubServiceID:    &subID,
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			CustomerEmail:   input.CustomerEmail,
			CustomerAddress: input.CustomerAddress,
			ProductName:     sub.Name,
			Quantity:        qty,
			TotalPrice:      sub.Price * float64(qty),
			Notes:           input.Notes,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			Status:          StatusPending,
		}

		if err := tx.CreateProductOrder(ctx, o); err != nil {
			return err
		}

		sub.Stock -= qty
		if err := tx.SaveSubService(ctx, sub); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil && httperr.IsSerializationConflict(err) {
		return nil, httperr.ErrBusiness("out_of_stock")
	}
	if err != nil {
		return nil, err
	}

	result := &ProductOrderResult{Order: created}

	if paymentMethod == models.PaymentMethodOnline && s.checkout != nil {
		url, payErr := s.checkout.CreatePreference(ctx, created.Reference, payments.OrderItem{
			Title:     fmt.Sprintf("%s x%d", created.ProductName, created.Quantity),
			Quantity:  1,
			UnitPrice: created.TotalPrice,
		})
		if payErr == nil {
			result.PaymentURL = url
		}
	}

	s.dispatchAudit(audit.Event{
		Action:   "product_order_created",
		Entity:   "product_order",
		EntityID: &created.ID,
		Metadata: map[string]any{"reference": created.Reference, "quantity": created.Quantity},
	})
	s.dispatchMail(notify.ProductOrderConfirmation(created))

	return result, nil
}

func (s *Service) ConfirmProductOrder(ctx context.Context, orderID uint, actorID uint) (*models.ProductOrder, error) {
	o, err := s.repo.GetProductOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	o.Status = StatusConfirmed

	if err := s.repo.UpdateProductOrder(ctx, o); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "product_order_confirmed",
		Entity:   "product_order",
		EntityID: &o.ID,
	})

	return o, nil
}

func (s *Service) CancelProductOrder(ctx context.Context, orderID uint, actorID uint) (*models.ProductOrder, error) {
	o, err := s.repo.GetProductOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	// pedidos antigos podem apontar para subserviço removido
	if o.SubServiceID == nil {
		o.Status = StatusCancelled
		if err := s.repo.UpdateProductOrder(ctx, o); err != nil {
			return nil, err
		}
	} else {
		// status rechecado com o lock preso, como no cancelamento de peruca
		err = s.repo.WithSubServiceLocked(ctx, *o.SubServiceID, func(tx Repository, sub *models.SubService) error {
			current, err := tx.GetProductOrderByID(ctx, o.ID)
			if err != nil {
				return err
			}
			if current.Status != StatusPending && current.Status != StatusConfirmed {
				return httperr.ErrBusiness("invalid_state")
			}

			current.Status = StatusCancelled
			if err := tx.UpdateProductOrder(ctx, current); err != nil {
				return err
			}

			sub.Stock += current.Quantity
			o = current
			return tx.SaveSubService(ctx, sub)
		})
		if err != nil {
			return nil, err
		}
	}

	s.dispatchAudit(audit.Event{
		UserID:   &actorID,
		Action:   "product_order_cancelled",
		Entity:   "product_order",
		EntityID: &o.ID,
	})
	s.dispatchMail(notify.ProductOrderCancelled(o))

	return o, nil
}

func (s *Service) ConfirmProductPayment(ctx context.Context, reference string) (*models.ProductOrder, error) {
	o, err := s.repo.GetProductOrderByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if o.PaymentStatus == models.PaymentStatusPaid {
		return o, nil
	}
	o.PaymentStatus = models.PaymentStatusPaid

	if err := s.repo.UpdateProductOrder(ctx, o); err != nil {
		return nil, err
	}

	s.dispatchAudit(audit.Event{
		Action:   "product_order_paid",
		Entity:   "product_order",
		EntityID: &o.ID,
	})

	return o, nil
}

func (s *Service) ListProductOrders(ctx context.Context, status string) ([]models.ProductOrder, error) {
	return s.repo.ListProductOrders(ctx, status)
}
