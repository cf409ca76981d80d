package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/metrics"
	"andhara-backend/internal/models"
	"andhara-backend/internal/pricing"
	"andhara-backend/internal/repositories"
	"andhara-backend/internal/saga"
	"andhara-backend/internal/timeutil"
)

// The purchase flow talks to its stores through these narrow interfaces so
// the saga can be exercised against in-memory fakes.

type customerStateStore interface {
	State(ctx context.Context, document string) (exists, active bool, err error)
}

type branchStore interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type pricingStore interface {
	GetPricing(ctx context.Context, ids []int) (map[int]repositories.ProductPricing, error)
}

type stockStore interface {
	GetForProducts(ctx context.Context, branchID int, productIDs []int) (map[int]int, error)
	Decrement(ctx context.Context, branchID, productID, quantity int) error
	Increment(ctx context.Context, branchID, productID, quantity int) error
}

type purchaseStore interface {
	InsertHeader(ctx context.Context, document string, purchaseDate time.Time, duration int, nextPurchaseDate time.Time) (int, error)
	DeleteHeader(ctx context.Context, purchaseID int) error
	InsertLine(ctx context.Context, line *models.PurchaseLine) error
	DeleteLine(ctx context.Context, purchaseID, productID int) error
	InsertPayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, purchaseID int) error
	InsertDelivery(ctx context.Context, d *models.Delivery) error
	DeleteDelivery(ctx context.Context, purchaseID int) error
	Get(ctx context.Context, purchaseID int) (*models.PurchaseResponse, error)
}

type followUpCreator interface {
	Create(ctx context.Context, purchaseID int, serviceDate, nextContactDate time.Time) (*models.FollowUp, error)
}

type PurchaseService struct {
	Customers customerStateStore
	Branches  branchStore
	Products  pricingStore
	Stock     stockStore
	Purchases purchaseStore
	FollowUps followUpCreator
}

func NewPurchaseService(
	customers customerStateStore,
	branches branchStore,
	products pricingStore,
	stock stockStore,
	purchases purchaseStore,
	followUps followUpCreator,
) *PurchaseService {
	return &PurchaseService{
		Customers: customers,
		Branches:  branches,
		Products:  products,
		Stock:     stock,
		Purchases: purchases,
		FollowUps: followUps,
	}
}

// MakePurchase runs the whole sale: validation, pricing, then the write
// sequence across purchase, purchase_product, branch_stock, payment and
// delivery. The writes are independent statements, so each successful one
// registers a compensation that undoes it if a later write fails. Stock is
// taken with a conditional decrement, which both enforces availability and
// keeps concurrent sales from driving a quantity negative.
func (s *PurchaseService) MakePurchase(ctx context.Context, req *models.SaleCreate) (*models.PurchaseResponse, error) {
	resp, err := s.makePurchase(ctx, req)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.PurchasesTotal.WithLabelValues("completed").Inc()
	return resp, nil
}

func (s *PurchaseService) makePurchase(ctx context.Context, req *models.SaleCreate) (*models.PurchaseResponse, error) {
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusCompleted
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, paymentStatus)
	}
	if req.DeliveryType != "" && !models.ValidDeliveryType(req.DeliveryType) {
		return nil, fmt.Errorf("%w: unknown delivery type %q", apperrors.ErrValidation, req.DeliveryType)
	}
	if err := pricing.NonNegative("remaining_balance", req.RemainingBalance); err != nil {
		return nil, err
	}

	exists, active, err := s.Customers.State(ctx, req.CustomerDocument)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerDocument)
	}
	if !active {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrInvalidState, req.CustomerDocument)
	}

	branchOK, err := s.Branches.Exists(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !branchOK {
		return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, req.BranchID)
	}

	productIDs := make([]int, 0, len(req.Products))
	seen := make(map[int]bool, len(req.Products))
	for _, item := range req.Products {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: product %d listed twice", apperrors.ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = true
		productIDs = append(productIDs, item.ProductID)
	}

	// Upfront bulk checks. The conditional decrement below re-checks stock
	// atomically; this pass exists to reject the whole sale before any write.
	available, err := s.Stock.GetForProducts(ctx, req.BranchID, productIDs)
	if err != nil {
		return nil, err
	}
	priced, err := s.Products.GetPricing(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]models.PurchaseLine, 0, len(req.Products))
	for _, item := range req.Products {
		p, ok := priced[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, item.ProductID)
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: product %d is inactive", apperrors.ErrInvalidState, item.ProductID)
		}
		if available[item.ProductID] < item.Quantity {
			return nil, fmt.Errorf("%w: product %d at branch %d: have %d, want %d",
				apperrors.ErrInsufficientStock, item.ProductID, req.BranchID, available[item.ProductID], item.Quantity)
		}
		subtotal, total, err := pricing.LineTotals(p.SalePrice, item.Quantity, p.VAT)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		lines = append(lines, models.PurchaseLine{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			SubtotalWithoutVAT: subtotal,
			TotalWithVAT:       total,
			ProductName:        p.Name,
		})
	}

	purchaseDate := timeutil.Today()
	nextPurchaseDate := purchaseDate.AddDate(0, 0, req.PurchaseDuration)

	run := saga.New("purchase")
	var purchaseID int
	err = run.Execute(ctx, saga.Step{
		Name: "purchase-header",
		Run: func(ctx context.Context) error {
			var err error
			purchaseID, err = s.Purchases.InsertHeader(ctx, req.CustomerDocument, purchaseDate, req.PurchaseDuration, nextPurchaseDate)
			return err
		},
		Compensate: func(ctx context.Context) error {
			return s.Purchases.DeleteHeader(ctx, purchaseID)
		},
	})
	if err != nil {
		return nil, err
	}

	for i := range lines {
		line := &lines[i]
		line.PurchaseID = purchaseID
		err = run.Execute(ctx, saga.Step{
			Name: fmt.Sprintf("line-%d", line.ProductID),
			Run: func(ctx context.Context) error {
				return s.Purchases.InsertLine(ctx, line)
			},
			Compensate: func(ctx context.Context) error {
				return s.Purchases.DeleteLine(ctx, purchaseID, line.ProductID)
			},
		})
		if err != nil {
			return nil, err
		}
		err = run.Execute(ctx, saga.Step{
			Name: fmt.Sprintf("stock-%d", line.ProductID),
			Run: func(ctx context.Context) error {
				return s.Stock.Decrement(ctx, req.BranchID, line.ProductID, line.Quantity)
			},
			Compensate: func(ctx context.Context) error {
				return s.Stock.Increment(ctx, req.BranchID, line.ProductID, line.Quantity)
			},
		})
		if err != nil {
			return nil, err
		}
	}

	payment := &models.Payment{
		PurchaseID:       purchaseID,
		PaymentType:      req.PaymentType,
		PaymentStatus:    paymentStatus,
		RemainingBalance: req.RemainingBalance,
	}
	err = run.Execute(ctx, saga.Step{
		Name: "payment",
		Run: func(ctx context.Context) error {
			return s.Purchases.InsertPayment(ctx, payment)
		},
		Compensate: func(ctx context.Context) error {
			return s.Purchases.DeletePayment(ctx, purchaseID)
		},
	})
	if err != nil {
		return nil, err
	}

	var delivery *models.Delivery
	if req.DeliveryType != "" {
		delivery = &models.Delivery{
			PurchaseID: purchaseID,
			Type:       req.DeliveryType,
			Status:     models.DeliveryStatusUnprepared,
			Cost:       req.DeliveryCost,
			Comment:    req.DeliveryComment,
		}
		err = run.Execute(ctx, saga.Step{
			Name: "delivery",
			Run: func(ctx context.Context) error {
				return s.Purchases.InsertDelivery(ctx, delivery)
			},
			Compensate: func(ctx context.Context) error {
				return s.Purchases.DeleteDelivery(ctx, purchaseID)
			},
		})
		if err != nil {
			return nil, err
		}
	}

	// The sale is committed. The follow-up record is a best-effort side
	// effect: its failure is logged and never unwinds the purchase.
	if _, err := s.FollowUps.Create(ctx, purchaseID, purchaseDate, nextPurchaseDate); err != nil {
		log.Printf("[Purchase] purchase %d: follow-up creation failed: %v", purchaseID, err)
	}

	return &models.PurchaseResponse{
		ID:               purchaseID,
		CustomerDocument: req.CustomerDocument,
		PurchaseDate:     purchaseDate,
		PurchaseDuration: req.PurchaseDuration,
		NextPurchaseDate: nextPurchaseDate,
		Products:         lines,
		Payment:          payment,
		Delivery:         delivery,
	}, nil
}

// GetPurchase returns the assembled purchase, used by the receipt endpoint.
func (s *PurchaseService) GetPurchase(ctx context.Context, id int) (*models.PurchaseResponse, error) {
	return s.Purchases.Get(ctx, id)
}
