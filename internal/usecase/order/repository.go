package order

import (
	"context"

	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// Repository isola o acesso a pedidos e estoque. As operações WithXxx
// rodam fn dentro de uma transação com a linha do produto travada
// (FOR UPDATE): checar estoque e decrementar precisam ser atômicos.
type Repository interface {
	GetWig(ctx context.Context, wigID uint) (*models.Wig, error)
	GetProductSubService(ctx context.Context, subServiceID uint) (*models.SubService, error)

	WithWigLocked(
		ctx context.Context,
		wigID uint,
		fn func(tx Repository, wig *models.Wig) error,
	) error

	WithSubServiceLocked(
		ctx context.Context,
		subServiceID uint,
		fn func(tx Repository, sub *models.SubService) error,
	) error

	SaveWig(ctx context.Context, wig *models.Wig) error
	SaveSubService(ctx context.Context, sub *models.SubService) error

	CreateWigOrder(ctx context.Context, o *models.WigOrder) error
	GetWigOrderByID(ctx context.Context, orderID uint) (*models.WigOrder, error)
	GetWigOrderByReference(ctx context.Context, reference string) (*models.WigOrder, error)
	UpdateWigOrder(ctx context.Context, o *models.WigOrder) error
	ListWigOrders(ctx context.Context, status string) ([]models.WigOrder, error)

	CreateProductOrder(ctx context.Context, o *models.ProductOrder) error
	GetProductOrderByID(ctx context.Context, orderID uint) (*models.ProductOrder, error)
	GetProductOrderByReference(ctx context.Context, reference string) (*models.ProductOrder, error)
	UpdateProductOrder(ctx context.Context, o *models.ProductOrder) error
	ListProductOrders(ctx context.Context, status string) ([]models.ProductOrder, error)
}
