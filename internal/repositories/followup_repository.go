package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"
	"andhara-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowUpRepository persists customer_service rows: the follow-up contact
// tasks spawned by completed purchases.
type FollowUpRepository struct {
	DB *pgxpool.Pool
}

func NewFollowUpRepository(db *pgxpool.Pool) *FollowUpRepository {
	return &FollowUpRepository{DB: db}
}

func (r *FollowUpRepository) Create(ctx context.Context, purchaseID int, serviceDate, nextContactDate time.Time) (*models.FollowUp, error) {
	f := &models.FollowUp{PurchaseID: purchaseID}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO customer_service (id_purchase, service_date, next_contact_date, contact_comment, customer_service_status)
		VALUES ($1, $2, $3, '', TRUE)
		RETURNING id_customer_service, service_date, next_contact_date, customer_service_status
	`, purchaseID, serviceDate, nextContactDate).
		Scan(&f.ID, &f.ServiceDate, &f.NextContactDate, &f.Active)
	if err != nil {
		return nil, fmt.Errorf("%w: follow-up: %v", apperrors.ErrStoreWrite, err)
	}
	return f, nil
}

// List returns the open follow-ups as the table view, newest service date
// first. Closed follow-ups are finished work and never listed.
func (r *FollowUpRepository) List(ctx context.Context, skip, limit int) ([]*models.FollowUpRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT cs.id_customer_service, cs.id_purchase, cs.service_date,
			c.nombre_cliente || ' ' || c.apellido_cliente,
			c.telefono, c.id_branch, COALESCE(b.branch_name, ''),
			cs.next_contact_date, COALESCE(cs.contact_comment, ''), cs.customer_service_status
		FROM customer_service cs
		JOIN purchase p ON p.id_purchase = cs.id_purchase
		JOIN cliente c ON c.documento_cliente = p.customer_document
		LEFT JOIN branch b ON b.id_branch = c.id_branch
		WHERE cs.customer_service_status = TRUE
		ORDER BY cs.service_date DESC, cs.id_customer_service DESC
		LIMIT $1 OFFSET $2
	`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.FollowUpRow
	for rows.Next() {
		row := &models.FollowUpRow{}
		var nextContact time.Time
		if err := rows.Scan(&row.ID, &row.PurchaseID, &row.ServiceDate,
			&row.CustomerFullName, &row.Phone, &row.BranchID, &row.BranchName,
			&nextContact, &row.ContactComment, &row.Active); err != nil {
			return nil, err
		}
		row.DaysRemaining = timeutil.DaysUntil(nextContact)
		row.HasComment = row.ContactComment != ""
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *FollowUpRepository) GetByID(ctx context.Context, id int) (*models.FollowUp, error) {
	f := &models.FollowUp{}
	var comment *string
	err := r.DB.QueryRow(ctx, `
		SELECT id_customer_service, id_purchase, service_date, next_contact_date, contact_comment, customer_service_status
		FROM customer_service WHERE id_customer_service = $1
	`, id).Scan(&f.ID, &f.PurchaseID, &f.ServiceDate, &f.NextContactDate, &comment, &f.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	if comment != nil {
		f.ContactComment = *comment
	}
	return f, nil
}

// Update stores the new comment and status on an open follow-up.
func (r *FollowUpRepository) Update(ctx context.Context, id int, comment string, active bool) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE customer_service SET contact_comment = $2, customer_service_status = $3
		WHERE id_customer_service = $1
	`, id, comment, active)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
	}
	return nil
}

// Detail assembles the get-by-id response: the customer behind the purchase
// and the purchase itself with its totals.
func (r *FollowUpRepository) Detail(ctx context.Context, id int) (*models.FollowUpDetail, error) {
	d := &models.FollowUpDetail{ID: id}
	var nextContact time.Time
	err := r.DB.QueryRow(ctx, `
		SELECT cs.next_contact_date,
			c.documento_cliente, c.nombre_cliente, c.apellido_cliente,
			c.telefono, c.correo, c.direccion, COALESCE(b.branch_name, ''),
			p.id_purchase, p.purchase_date,
			pay.payment_type, pay.payment_status,
			COALESCE((SELECT SUM(subtotal_without_vat) FROM purchase_product WHERE id_purchase = p.id_purchase), 0),
			COALESCE((SELECT SUM(total_price_with_vat) FROM purchase_product WHERE id_purchase = p.id_purchase), 0)
		FROM customer_service cs
		JOIN purchase p ON p.id_purchase = cs.id_purchase
		JOIN cliente c ON c.documento_cliente = p.customer_document
		LEFT JOIN branch b ON b.id_branch = c.id_branch
		JOIN payment pay ON pay.id_purchase = p.id_purchase
		WHERE cs.id_customer_service = $1
	`, id).Scan(&nextContact,
		&d.Customer.Document, &d.Customer.FirstName, &d.Customer.LastName,
		&d.Customer.Phone, &d.Customer.Email, &d.Customer.HomeAddress, &d.Customer.BranchName,
		&d.Purchase.PurchaseID, &d.Purchase.PurchaseDate,
		&d.Purchase.PaymentType, &d.Purchase.PaymentStatus,
		&d.Purchase.SubtotalWithoutVAT, &d.Purchase.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	d.Customer.FullName = d.Customer.FirstName + " " + d.Customer.LastName
	d.Purchase.DaysRemaining = timeutil.DaysUntil(nextContact)
	return d, nil
}

// ListDue returns the open follow-ups whose next contact date falls inside
// [from, to], for the daily reminder email. Contacts due tomorrow are included
// so the business can plan the day ahead.
func (r *FollowUpRepository) ListDue(ctx context.Context, from, to time.Time) ([]*models.DueFollowUp, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.documento_cliente, c.nombre_cliente || ' ' || c.apellido_cliente, c.telefono,
			p.purchase_duration, p.purchase_date
		FROM customer_service cs
		JOIN purchase p ON p.id_purchase = cs.id_purchase
		JOIN cliente c ON c.documento_cliente = p.customer_document
		WHERE cs.customer_service_status = TRUE
			AND cs.next_contact_date >= $1 AND cs.next_contact_date <= $2
		ORDER BY c.nombre_cliente
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []*models.DueFollowUp
	for rows.Next() {
		f := &models.DueFollowUp{}
		if err := rows.Scan(&f.CustomerDocument, &f.CustomerName, &f.Phone,
			&f.PurchaseDuration, &f.PurchaseDate); err != nil {
			return nil, err
		}
		due = append(due, f)
	}
	return due, rows.Err()
}
