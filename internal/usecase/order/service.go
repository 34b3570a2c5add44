package order

import (
	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
	"github.com/EssiesHairStudio/salon-scheduler/internal/payments"
)

// ===============================
// Order Status
// ===============================

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Service cuida dos pedidos de produto (perucas e itens de catálogo):
// reserva de estoque dentro da transação, preferência de pagamento no
// Mercado Pago quando o pedido é online, e-mails e audit.
type Service struct {
	repo     Repository
	checkout *payments.Checkout

	audit *audit.Dispatcher
	mail  *notify.Dispatcher
}

func NewService(
	repo Repository,
	checkout *payments.Checkout,
	auditDispatcher *audit.Dispatcher,
	mailDispatcher *notify.Dispatcher,
) *Service {
	return &Service{
		repo:     repo,
		checkout: checkout,
		audit:    auditDispatcher,
		mail:     mailDispatcher,
	}
}

func (s *Service) dispatchAudit(ev audit.Event) {
	if s.audit != nil {
		s.audit.Dispatch(ev)
	}
}

func (s *Service) dispatchMail(msg notify.Email) {
	if s.mail != nil {
		s.mail.Dispatch(msg)
	}
}

func normalizePayment(method string) (string, error) {
	switch method {
	case "", models.PaymentMethodCash:
		return models.PaymentMethodCash, nil
	case models.PaymentMethodOnline:
		return models.PaymentMethodOnline, nil
	}
	return "", httperr.ErrBusiness("invalid_payment_method")
}
