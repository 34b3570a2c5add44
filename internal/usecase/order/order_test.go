package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// memOrderRepo reproduz a semântica do Postgres: WithWigLocked e
// WithSubServiceLocked serializam com mutex no lugar do FOR UPDATE.
type memOrderRepo struct {
	mu     sync.Mutex
	lockMu sync.Mutex

	wigs map[uint]*models.Wig
	subs map[uint]*models.SubService

	wigOrders     []models.WigOrder
	productOrders []models.ProductOrder
	nextID        uint
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		wigs:   map[uint]*models.Wig{},
		subs:   map[uint]*models.SubService{},
		nextID: 1,
	}
}

func (r *memOrderRepo) GetWig(_ context.Context, wigID uint) (*models.Wig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wigs[wigID]
	if !ok {
		return nil, httperr.ErrBusiness("wig_not_found")
	}
	copied := *w
	return &copied, nil
}

func (r *memOrderRepo) GetProductSubService(_ context.Context, subServiceID uint) (*models.SubService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.subs[subServiceID]
	if !ok {
		return nil, httperr.ErrBusiness("product_not_found")
	}
	copied := *s
	return &copied, nil
}

func (r *memOrderRepo) WithWigLocked(ctx context.Context, wigID uint, fn func(tx Repository, wig *models.Wig) error) error {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	wig, err := r.GetWig(ctx, wigID)
	if err != nil {
		return err
	}
	return fn(r, wig)
}

func (r *memOrderRepo) WithSubServiceLocked(ctx context.Context, subServiceID uint, fn func(tx Repository, sub *models.SubService) error) error {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	sub, err := r.GetProductSubService(ctx, subServiceID)
	if err != nil {
		return err
	}
	return fn(r, sub)
}

func (r *memOrderRepo) SaveWig(_ context.Context, wig *models.Wig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *wig
	r.wigs[wig.ID] = &copied
	return nil
}

func (r *memOrderRepo) SaveSubService(_ context.Context, sub *models.SubService) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *sub
	r.subs[sub.ID] = &copied
	return nil
}

func (r *memOrderRepo) CreateWigOrder(_ context.Context, o *models.WigOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	r.wigOrders = append(r.wigOrders, *o)
	return nil
}

func (r *memOrderRepo) GetWigOrderByID(_ context.Context, orderID uint) (*models.WigOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.wigOrders {
		if r.wigOrders[i].ID == orderID {
			o := r.wigOrders[i]
			return &o, nil
		}
	}
	return nil, httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) GetWigOrderByReference(_ context.Context, reference string) (*models.WigOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.wigOrders {
		if r.wigOrders[i].Reference == reference {
			o := r.wigOrders[i]
			return &o, nil
		}
	}
	return nil, httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) UpdateWigOrder(_ context.Context, o *models.WigOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.wigOrders {
		if r.wigOrders[i].ID == o.ID {
			r.wigOrders[i] = *o
			return nil
		}
	}
	return httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) ListWigOrders(_ context.Context, status string) ([]models.WigOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.WigOrder
	for _, o := range r.wigOrders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) CreateProductOrder(_ context.Context, o *models.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	r.productOrders = append(r.productOrders, *o)
	return nil
}

func (r *memOrderRepo) GetProductOrderByID(_ context.Context, orderID uint) (*models.ProductOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.productOrders {
		if r.productOrders[i].ID == orderID {
			o := r.productOrders[i]
			return &o, nil
		}
	}
	return nil, httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) GetProductOrderByReference(_ context.Context, reference string) (*models.ProductOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.productOrders {
		if r.productOrders[i].Reference == reference {
			o := r.productOrders[i]
			return &o, nil
		}
	}
	return nil, httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) UpdateProductOrder(_ context.Context, o *models.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.productOrders {
		if r.productOrders[i].ID == o.ID {
			r.productOrders[i] = *o
			return nil
		}
	}
	return httperr.ErrBusiness("order_not_found")
}

func (r *memOrderRepo) ListProductOrders(_ context.Context, status string) ([]models.ProductOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ProductOrder
	for _, o := range r.productOrders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

var _ Repository = (*memOrderRepo)(nil)

func seedWig(r *memOrderRepo, stock int) {
	r.wigs[1] = &models.Wig{
		ID:       1,
		Name:     "Lace Front Bob",
		Price:    450,
		Stock:    stock,
		IsActive: true,
	}
}

func wigInput(qty int) WigOrderInput {
	return WigOrderInput{
		WigID:         1,
		Quantity:      qty,
		CustomerName:  "Ama Mensah",
		CustomerPhone: "+233201234567",
		CustomerEmail: "ama@example.com",
	}
}

func TestOrderWig_TotalComputedFromCatalogPrice(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 5)
	s := NewService(repo, nil, nil, nil)

	result, err := s.OrderWig(context.Background(), wigInput(2))
	require.NoError(t, err)

	o := result.Order
	assert.NotEmpty(t, o.Reference)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, 900.0, o.TotalPrice)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, models.PaymentStatusPending, o.PaymentStatus)

	wig, err := repo.GetWig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, wig.Stock)
}

func TestOrderWig_InsufficientStock(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 1)
	s := NewService(repo, nil, nil, nil)

	_, err := s.OrderWig(context.Background(), wigInput(2))
	assert.True(t, httperr.IsBusiness(err, "out_of_stock"))

	// estoque intacto
	wig, err := repo.GetWig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, wig.Stock)
}

// Última unidade disputada por N clientes: só um leva.
func TestOrderWig_ConcurrentLastUnit(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 1)
	s := NewService(repo, nil, nil, nil)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.OrderWig(context.Background(), wigInput(1))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	outOfStock := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if httperr.IsBusiness(err, "out_of_stock") {
			outOfStock++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, outOfStock)

	wig, err := repo.GetWig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, wig.Stock)
}

func TestCancelWigOrder_Restocks(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 3)
	s := NewService(repo, nil, nil, nil)

	result, err := s.OrderWig(context.Background(), wigInput(2))
	require.NoError(t, err)

	cancelled, err := s.CancelWigOrder(context.Background(), result.Order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	wig, err := repo.GetWig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, wig.Stock)

	// cancelar de novo é inválido (e não duplica o estorno)
	_, err = s.CancelWigOrder(context.Background(), result.Order.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// gateOrderRepo segura a leitura inicial do pedido até que todos os
// cancelamentos concorrentes tenham visto o status antigo — só depois
// deixa cada um disputar o lock do estoque.
type gateOrderRepo struct {
	*memOrderRepo
	gate *sync.WaitGroup
}

func (r *gateOrderRepo) GetWigOrderByID(ctx context.Context, orderID uint) (*models.WigOrder, error) {
	o, err := r.memOrderRepo.GetWigOrderByID(ctx, orderID)
	r.gate.Done()
	r.gate.Wait()
	return o, err
}

func (r *gateOrderRepo) GetProductOrderByID(ctx context.Context, orderID uint) (*models.ProductOrder, error) {
	o, err := r.memOrderRepo.GetProductOrderByID(ctx, orderID)
	r.gate.Done()
	r.gate.Wait()
	return o, err
}

// Dois cancelamentos do mesmo pedido lendo "pending" ao mesmo tempo:
// a rechecagem dentro do lock garante um único estorno de estoque.
func TestCancelWigOrder_ConcurrentDoubleCancel(t *testing.T) {
	base := newMemOrderRepo()
	seedWig(base, 3)
	s := NewService(base, nil, nil, nil)

	result, err := s.OrderWig(context.Background(), wigInput(2))
	require.NoError(t, err)
	orderID := result.Order.ID

	var gate sync.WaitGroup
	gate.Add(2)
	gated := &gateOrderRepo{memOrderRepo: base, gate: &gate}
	s = NewService(gated, nil, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CancelWigOrder(context.Background(), orderID, 1)
		}(i)
	}
	wg.Wait()

	cancelled := 0
	rejected := 0
	for _, err := range errs {
		if err == nil {
			cancelled++
		} else if httperr.IsBusiness(err, "invalid_state") {
			rejected++
		}
	}
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, 1, rejected)

	// estoque devolvido uma única vez: 1 + 2, nunca 5
	wig, err := base.GetWig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, wig.Stock)
}

func TestCancelProductOrder_ConcurrentDoubleCancel(t *testing.T) {
	base := newMemOrderRepo()
	base.subs[7] = &models.SubService{
		ID:        7,
		ServiceID: 2,
		Name:      "Argan Oil Treatment",
		Price:     120,
		Stock:     4,
		IsActive:  true,
	}
	s := NewService(base, nil, nil, nil)

	result, err := s.OrderProduct(context.Background(), ProductOrderInput{
		SubServiceID:  7,
		Quantity:      3,
		CustomerName:  "Efua Owusu",
		CustomerPhone: "+233209876543",
	})
	require.NoError(t, err)
	orderID := result.Order.ID

	var gate sync.WaitGroup
	gate.Add(2)
	gated := &gateOrderRepo{memOrderRepo: base, gate: &gate}
	s = NewService(gated, nil, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CancelProductOrder(context.Background(), orderID, 1)
		}(i)
	}
	wg.Wait()

	cancelled := 0
	rejected := 0
	for _, err := range errs {
		if err == nil {
			cancelled++
		} else if httperr.IsBusiness(err, "invalid_state") {
			rejected++
		}
	}
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, 1, rejected)

	sub, err := base.GetProductSubService(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, sub.Stock)
}

func TestWigOrder_Lifecycle(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 3)
	s := NewService(repo, nil, nil, nil)

	result, err := s.OrderWig(context.Background(), wigInput(1))
	require.NoError(t, err)
	id := result.Order.ID

	// shipped antes de confirmed é inválido
	_, err = s.ShipWigOrder(context.Background(), id, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	o, err := s.ConfirmWigOrder(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status)

	o, err = s.ShipWigOrder(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, o.Status)

	o, err = s.DeliverWigOrder(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestConfirmWigPayment_Idempotent(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 3)
	s := NewService(repo, nil, nil, nil)

	result, err := s.OrderWig(context.Background(), wigInput(1))
	require.NoError(t, err)
	ref := result.Order.Reference

	o, err := s.ConfirmWigPayment(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, o.PaymentStatus)

	o, err = s.ConfirmWigPayment(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, o.PaymentStatus)
}

func TestOrderProduct_StockAndTotal(t *testing.T) {
	repo := newMemOrderRepo()
	repo.subs[7] = &models.SubService{
		ID:        7,
		ServiceID: 2,
		Name:      "Argan Oil Treatment",
		Price:     120,
		Stock:     4,
		IsActive:  true,
	}
	s := NewService(repo, nil, nil, nil)

	result, err := s.OrderProduct(context.Background(), ProductOrderInput{
		SubServiceID:  7,
		Quantity:      3,
		CustomerName:  "Efua Owusu",
		CustomerPhone: "+233209876543",
	})
	require.NoError(t, err)

	o := result.Order
	assert.Equal(t, "Argan Oil Treatment", o.ProductName)
	assert.Equal(t, 360.0, o.TotalPrice)

	sub, err := repo.GetProductSubService(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Stock)

	// cancelamento devolve as 3 unidades
	_, err = s.CancelProductOrder(context.Background(), o.ID, 1)
	require.NoError(t, err)

	sub, err = repo.GetProductSubService(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, sub.Stock)
}

func TestOrderWig_InvalidPaymentMethod(t *testing.T) {
	repo := newMemOrderRepo()
	seedWig(repo, 3)
	s := NewService(repo, nil, nil, nil)

	input := wigInput(1)
	input.PaymentMethod = "bitcoin"
	_, err := s.OrderWig(context.Background(), input)
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))
}
