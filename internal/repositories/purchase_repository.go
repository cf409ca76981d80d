package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PurchaseRepository persists the four purchase tables. Each insert has a
// matching delete so the purchase saga can unwind a half-finished sale.
type PurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) InsertHeader(ctx context.Context, document string, purchaseDate time.Time, duration int, nextPurchaseDate time.Time) (int, error) {
	var id int
	err := r.DB.QueryRow(ctx, `
		INSERT INTO purchase (customer_document, purchase_date, purchase_duration, next_purchase_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id_purchase
	`, document, purchaseDate, duration, nextPurchaseDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: purchase header: %v", apperrors.ErrStoreWrite, err)
	}
	return id, nil
}

func (r *PurchaseRepository) DeleteHeader(ctx context.Context, purchaseID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM purchase WHERE id_purchase = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) InsertLine(ctx context.Context, line *models.PurchaseLine) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO purchase_product (id_purchase, id_product, unit_quantity, subtotal_without_vat, total_price_with_vat)
		VALUES ($1, $2, $3, $4, $5)
	`, line.PurchaseID, line.ProductID, line.Quantity, line.SubtotalWithoutVAT, line.TotalWithVAT)
	if err != nil {
		return fmt.Errorf("%w: purchase line product %d: %v", apperrors.ErrStoreWrite, line.ProductID, err)
	}
	return nil
}

// DeleteLine removes a single line, used when unwinding a partial sale.
func (r *PurchaseRepository) DeleteLine(ctx context.Context, purchaseID, productID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM purchase_product WHERE id_purchase = $1 AND id_product = $2`, purchaseID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) DeleteLines(ctx context.Context, purchaseID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM purchase_product WHERE id_purchase = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) InsertPayment(ctx context.Context, p *models.Payment) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO payment (id_purchase, payment_type, payment_status, remaining_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id_payment
	`, p.PurchaseID, p.PaymentType, p.PaymentStatus, p.RemainingBalance).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("%w: payment: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) DeletePayment(ctx context.Context, purchaseID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM payment WHERE id_purchase = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) InsertDelivery(ctx context.Context, d *models.Delivery) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO delivery (id_purchase, delivery_type, delivery_status, delivery_cost, delivery_comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_delivery
	`, d.PurchaseID, d.Type, d.Status, d.Cost, d.Comment).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("%w: delivery: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (r *PurchaseRepository) DeleteDelivery(ctx context.Context, purchaseID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM delivery WHERE id_purchase = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return nil
}

// Get assembles the full purchase: header, priced lines, payment and the
// delivery record when one exists.
func (r *PurchaseRepository) Get(ctx context.Context, purchaseID int) (*models.PurchaseResponse, error) {
	resp := &models.PurchaseResponse{ID: purchaseID}
	err := r.DB.QueryRow(ctx, `
		SELECT customer_document, purchase_date, purchase_duration, next_purchase_date
		FROM purchase WHERE id_purchase = $1
	`, purchaseID).Scan(&resp.CustomerDocument, &resp.PurchaseDate, &resp.PurchaseDuration, &resp.NextPurchaseDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase %d", apperrors.ErrNotFound, purchaseID)
		}
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT pp.id_product, pp.unit_quantity, pp.subtotal_without_vat, pp.total_price_with_vat, p.product_name
		FROM purchase_product pp
		JOIN product p ON p.product_id = pp.id_product
		WHERE pp.id_purchase = $1
		ORDER BY pp.id_product
	`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		line := models.PurchaseLine{PurchaseID: purchaseID}
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.SubtotalWithoutVAT,
			&line.TotalWithVAT, &line.ProductName); err != nil {
			return nil, err
		}
		resp.Products = append(resp.Products, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	payment := &models.Payment{PurchaseID: purchaseID}
	err = r.DB.QueryRow(ctx, `
		SELECT id_payment, payment_type, payment_status, remaining_balance
		FROM payment WHERE id_purchase = $1
	`, purchaseID).Scan(&payment.ID, &payment.PaymentType, &payment.PaymentStatus, &payment.RemainingBalance)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		resp.Payment = payment
	}

	delivery := &models.Delivery{PurchaseID: purchaseID}
	var comment *string
	err = r.DB.QueryRow(ctx, `
		SELECT id_delivery, delivery_type, delivery_status, delivery_cost, delivery_comment
		FROM delivery WHERE id_purchase = $1
	`, purchaseID).Scan(&delivery.ID, &delivery.Type, &delivery.Status, &delivery.Cost, &comment)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		if comment != nil {
			delivery.Comment = *comment
		}
		resp.Delivery = delivery
	}
	return resp, nil
}
