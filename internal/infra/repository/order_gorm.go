package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	"github.com/EssiesHairStudio/salon-scheduler/internal/usecase/order"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Catálogo (leitura)
// --------------------------------------------------

func (r *OrderGormRepository) GetWig(
	ctx context.Context,
	wigID uint,
) (*models.Wig, error) {

	var wig models.Wig
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = true", wigID).
		First(&wig).Error; err != nil {

		return nil, httperr.ErrBusiness("wig_not_found")
	}
	return &wig, nil
}

func (r *OrderGormRepository) GetProductSubService(
	ctx context.Context,
	subServiceID uint,
) (*models.SubService, error) {

	var sub models.SubService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = true", subServiceID).
		First(&sub).Error; err != nil {

		return nil, httperr.ErrBusiness("product_not_found")
	}
	return &sub, nil
}

// --------------------------------------------------
// Estoque (transação + FOR UPDATE)
// --------------------------------------------------

// WithWigLocked tranca a linha da peruca antes de rodar fn. Checagem de
// estoque e decremento acontecem com a linha presa — dois pedidos da
// última unidade nunca passam juntos.
func (r *OrderGormRepository) WithWigLocked(
	ctx context.Context,
	wigID uint,
	fn func(tx order.Repository, wig *models.Wig) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var wig models.Wig
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&wig, wigID).Error; err != nil {
			return httperr.ErrBusiness("wig_not_found")
		}

		return fn(&OrderGormRepository{db: tx}, &wig)
	})
}

func (r *OrderGormRepository) WithSubServiceLocked(
	ctx context.Context,
	subServiceID uint,
	fn func(tx order.Repository, sub *models.SubService) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sub models.SubService
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, subServiceID).Error; err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		return fn(&OrderGormRepository{db: tx}, &sub)
	})
}

func (r *OrderGormRepository) SaveWig(ctx context.Context, wig *models.Wig) error {
	return r.db.WithContext(ctx).Save(wig).Error
}

func (r *OrderGormRepository) SaveSubService(ctx context.Context, sub *models.SubService) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// --------------------------------------------------
// WigOrder
// --------------------------------------------------

func (r *OrderGormRepository) CreateWigOrder(ctx context.Context, o *models.WigOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetWigOrderByID(
	ctx context.Context,
	orderID uint,
) (*models.WigOrder, error) {

	var o models.WigOrder
	if err := r.db.WithContext(ctx).
		Preload("Wig").
		First(&o, orderID).Error; err != nil {

		return nil, httperr.ErrBusiness("order_not_found")
	}
	return &o, nil
}

func (r *OrderGormRepository) GetWigOrderByReference(
	ctx context.Context,
	reference string,
) (*models.WigOrder, error) {

	var o models.WigOrder
	if err := r.db.WithContext(ctx).
		Preload("Wig").
		Where("reference = ?", reference).
		First(&o).Error; err != nil {

		return nil, httperr.ErrBusiness("order_not_found")
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateWigOrder(ctx context.Context, o *models.WigOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderGormRepository) ListWigOrders(
	ctx context.Context,
	status string,
) ([]models.WigOrder, error) {

	q := r.db.WithContext(ctx).Preload("Wig")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.WigOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// --------------------------------------------------
// ProductOrder
// --------------------------------------------------

func (r *OrderGormRepository) CreateProductOrder(ctx context.Context, o *models.ProductOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetProductOrderByID(
	ctx context.Context,
	orderID uint,
) (*models.ProductOrder, error) {

	var o models.ProductOrder
	if err := r.db.WithContext(ctx).
		Preload("SubService").
		First(&o, orderID).Error; err != nil {

		return nil, httperr.ErrBusiness("order_not_found")
	}
	return &o, nil
}

func (r *OrderGormRepository) GetProductOrderByReference(
	ctx context.Context,
	reference string,
) (*models.ProductOrder, error) {

	var o models.ProductOrder
	if err := r.db.WithContext(ctx).
		Preload("SubService").
		Where("reference = ?", reference).
		First(&o).Error; err != nil {

		return nil, httperr.ErrBusiness("order_not_found")
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateProductOrder(ctx context.Context, o *models.ProductOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderGormRepository) ListProductOrders(
	ctx context.Context,
	status string,
) ([]models.ProductOrder, error) {

	q := r.db.WithContext(ctx).Preload("SubService")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.ProductOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Compile-time check
var _ order.Repository = (*OrderGormRepository)(nil)
