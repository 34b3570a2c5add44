package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Checkout cria preferências de pagamento no Mercado Pago para pedidos
// com pagamento online. Pedidos em dinheiro nunca passam por aqui.
type Checkout struct {
	client preference.Client
}

func NewCheckout(accessToken string) (*Checkout, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Checkout{client: preference.NewClient(cfg)}, nil
}

type OrderItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
}

// CreatePreference devolve a URL de checkout (init point) para o pedido.
func (c *Checkout) CreatePreference(ctx context.Context, reference string, item OrderItem) (string, error) {
	request := preference.Request{
		ExternalReference: reference,
		Items: []preference.ItemRequest{
			{
				Title:     item.Title,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			},
		},
	}

	resource, err := c.client.Create(ctx, request)
	if err != nil {
		return "", fmt.Errorf("mercadopago create preference: %w", err)
	}

	return resource.InitPoint, nil
}
