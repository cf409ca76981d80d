package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"
	"andhara-backend/internal/repositories"
	"andhara-backend/internal/services"
	"andhara-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements every store the purchase flow needs, in memory,
// with switchable failure points to drive the rollback paths.
type fakeBackend struct {
	customers map[string]bool // document -> active
	branches  map[int]bool
	pricing   map[int]repositories.ProductPricing
	stock     map[int]int // product -> quantity at the test branch

	nextID     int
	headers    map[int]string // purchase id -> customer document
	lines      map[int][]models.PurchaseLine
	payments   map[int]*models.Payment
	deliveries map[int]*models.Delivery
	followUps  []int

	failPaymentInsert  bool
	failDeliveryInsert bool
	failFollowUp       bool
	failLineForProduct int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		customers:  map[string]bool{"CC-1001": true},
		branches:   map[int]bool{1: true},
		pricing:    map[int]repositories.ProductPricing{},
		stock:      map[int]int{},
		headers:    map[int]string{},
		lines:      map[int][]models.PurchaseLine{},
		payments:   map[int]*models.Payment{},
		deliveries: map[int]*models.Delivery{},
	}
}

func (f *fakeBackend) State(ctx context.Context, document string) (bool, bool, error) {
	active, ok := f.customers[document]
	return ok, active, nil
}

func (f *fakeBackend) Exists(ctx context.Context, id int) (bool, error) {
	return f.branches[id], nil
}

func (f *fakeBackend) GetPricing(ctx context.Context, ids []int) (map[int]repositories.ProductPricing, error) {
	result := map[int]repositories.ProductPricing{}
	for _, id := range ids {
		if p, ok := f.pricing[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeBackend) GetForProducts(ctx context.Context, branchID int, productIDs []int) (map[int]int, error) {
	result := map[int]int{}
	for _, id := range productIDs {
		if q, ok := f.stock[id]; ok {
			result[id] = q
		}
	}
	return result, nil
}

func (f *fakeBackend) Decrement(ctx context.Context, branchID, productID, quantity int) error {
	if f.stock[productID] < quantity {
		return fmt.Errorf("%w: product %d", apperrors.ErrInsufficientStock, productID)
	}
	f.stock[productID] -= quantity
	return nil
}

func (f *fakeBackend) Increment(ctx context.Context, branchID, productID, quantity int) error {
	f.stock[productID] += quantity
	return nil
}

func (f *fakeBackend) InsertHeader(ctx context.Context, document string, purchaseDate time.Time, duration int, nextPurchaseDate time.Time) (int, error) {
	f.nextID++
	f.headers[f.nextID] = document
	return f.nextID, nil
}

func (f *fakeBackend) DeleteHeader(ctx context.Context, purchaseID int) error {
	delete(f.headers, purchaseID)
	return nil
}

func (f *fakeBackend) InsertLine(ctx context.Context, line *models.PurchaseLine) error {
	if f.failLineForProduct == line.ProductID {
		return fmt.Errorf("%w: simulated line failure", apperrors.ErrStoreWrite)
	}
	f.lines[line.PurchaseID] = append(f.lines[line.PurchaseID], *line)
	return nil
}

func (f *fakeBackend) DeleteLine(ctx context.Context, purchaseID, productID int) error {
	kept := f.lines[purchaseID][:0]
	for _, l := range f.lines[purchaseID] {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	f.lines[purchaseID] = kept
	return nil
}

func (f *fakeBackend) InsertPayment(ctx context.Context, p *models.Payment) error {
	if f.failPaymentInsert {
		return fmt.Errorf("%w: simulated payment failure", apperrors.ErrStoreWrite)
	}
	p.ID = p.PurchaseID
	f.payments[p.PurchaseID] = p
	return nil
}

func (f *fakeBackend) DeletePayment(ctx context.Context, purchaseID int) error {
	delete(f.payments, purchaseID)
	return nil
}

func (f *fakeBackend) InsertDelivery(ctx context.Context, d *models.Delivery) error {
	if f.failDeliveryInsert {
		return fmt.Errorf("%w: simulated delivery failure", apperrors.ErrStoreWrite)
	}
	d.ID = d.PurchaseID
	f.deliveries[d.PurchaseID] = d
	return nil
}

func (f *fakeBackend) DeleteDelivery(ctx context.Context, purchaseID int) error {
	delete(f.deliveries, purchaseID)
	return nil
}

func (f *fakeBackend) Get(ctx context.Context, purchaseID int) (*models.PurchaseResponse, error) {
	if _, ok := f.headers[purchaseID]; !ok {
		return nil, fmt.Errorf("%w: purchase %d", apperrors.ErrNotFound, purchaseID)
	}
	return &models.PurchaseResponse{ID: purchaseID, Products: f.lines[purchaseID]}, nil
}

func (f *fakeBackend) Create(ctx context.Context, purchaseID int, serviceDate, nextContactDate time.Time) (*models.FollowUp, error) {
	if f.failFollowUp {
		return nil, errors.New("simulated follow-up failure")
	}
	f.followUps = append(f.followUps, purchaseID)
	return &models.FollowUp{ID: len(f.followUps), PurchaseID: purchaseID}, nil
}

func newService(f *fakeBackend) *services.PurchaseService {
	return services.NewPurchaseService(f, f, f, f, f, f)
}

func saleRequest() *models.SaleCreate {
	return &models.SaleCreate{
		CustomerDocument: "CC-1001",
		BranchID:         1,
		PurchaseDuration: 30,
		Products:         []models.ProductInSale{{ProductID: 7, Quantity: 3}},
		PaymentType:      "Efectivo",
	}
}

func TestMakePurchase(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, Name: "Detergente", SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10

		resp, err := newService(f).MakePurchase(context.Background(), saleRequest())
		require.NoError(t, err)

		assert.Equal(t, 7, f.stock[7], "stock decremented by the sold quantity")
		require.Len(t, resp.Products, 1)
		assert.Equal(t, 300.0, resp.Products[0].SubtotalWithoutVAT)
		assert.InDelta(t, 357.0, resp.Products[0].TotalWithVAT, 0.0001)

		assert.Equal(t, timeutil.Today(), resp.PurchaseDate)
		assert.Equal(t, timeutil.Today().AddDate(0, 0, 30), resp.NextPurchaseDate)

		require.NotNil(t, resp.Payment)
		assert.Equal(t, models.PaymentStatusCompleted, resp.Payment.PaymentStatus, "payment status defaults to completed")
		assert.Nil(t, resp.Delivery, "no delivery requested")

		assert.Equal(t, []int{resp.ID}, f.followUps, "follow-up created for the purchase")
	})

	t.Run("delivery record created when requested", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10

		req := saleRequest()
		req.DeliveryType = models.DeliveryTypeBogota
		req.DeliveryCost = 8000

		resp, err := newService(f).MakePurchase(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Delivery)
		assert.Equal(t, models.DeliveryStatusUnprepared, resp.Delivery.Status)
		assert.Equal(t, 8000.0, resp.Delivery.Cost)
	})

	t.Run("unknown customer", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		req := saleRequest()
		req.CustomerDocument = "CC-9999"

		_, err := newService(f).MakePurchase(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("inactive customer", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.customers["CC-1001"] = false

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("unknown branch", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		req := saleRequest()
		req.BranchID = 99

		_, err := newService(f).MakePurchase(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.stock[7] = 10

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("inactive product", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: false}
		f.stock[7] = 10

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("insufficient stock rejected before any write", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 2

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Empty(t, f.headers, "no purchase header written")
		assert.Equal(t, 2, f.stock[7], "stock untouched")
	})

	t.Run("zero vat product rejected", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 0, Active: true}
		f.stock[7] = 10

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Empty(t, f.headers)
	})

	t.Run("duplicate product rejected", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10

		req := saleRequest()
		req.Products = append(req.Products, models.ProductInSale{ProductID: 7, Quantity: 1})

		_, err := newService(f).MakePurchase(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown payment status rejected", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		req := saleRequest()
		req.PaymentStatus = "Casi Pago"

		_, err := newService(f).MakePurchase(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown delivery type rejected", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		req := saleRequest()
		req.DeliveryType = "Paloma Mensajera"

		_, err := newService(f).MakePurchase(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestMakePurchaseRollback(t *testing.T) {
	t.Parallel()

	t.Run("payment failure unwinds lines stock and header", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10
		f.failPaymentInsert = true

		_, err := newService(f).MakePurchase(context.Background(), saleRequest())
		require.ErrorIs(t, err, apperrors.ErrStoreWrite)

		assert.Equal(t, 10, f.stock[7], "decrement compensated")
		assert.Empty(t, f.headers, "header compensated")
		for _, lines := range f.lines {
			assert.Empty(t, lines, "lines compensated")
		}
		assert.Empty(t, f.payments)
		assert.Empty(t, f.followUps, "no follow-up after a failed sale")
	})

	t.Run("delivery failure unwinds payment too", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10
		f.failDeliveryInsert = true

		req := saleRequest()
		req.DeliveryType = models.DeliveryTypePickup

		_, err := newService(f).MakePurchase(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrStoreWrite)

		assert.Empty(t, f.payments, "payment compensated")
		assert.Empty(t, f.deliveries)
		assert.Equal(t, 10, f.stock[7])
		assert.Empty(t, f.headers)
	})

	t.Run("second line failure keeps earlier line compensations", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.pricing[8] = repositories.ProductPricing{ID: 8, SalePrice: 50, VAT: 19, Active: true}
		f.stock[7] = 10
		f.stock[8] = 5
		f.failLineForProduct = 8

		req := saleRequest()
		req.Products = append(req.Products, models.ProductInSale{ProductID: 8, Quantity: 2})

		_, err := newService(f).MakePurchase(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrStoreWrite)

		assert.Equal(t, 10, f.stock[7], "first product stock restored")
		assert.Equal(t, 5, f.stock[8], "second product stock never taken")
		assert.Empty(t, f.headers)
	})

	t.Run("follow-up failure does not fail the purchase", func(t *testing.T) {
		t.Parallel()
		f := newFakeBackend()
		f.pricing[7] = repositories.ProductPricing{ID: 7, SalePrice: 100, VAT: 19, Active: true}
		f.stock[7] = 10
		f.failFollowUp = true

		resp, err := newService(f).MakePurchase(context.Background(), saleRequest())
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, 7, f.stock[7], "sale still committed")
	})
}
