package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The cliente table predates this service and keeps its original Spanish
// column names. All queries alias them to the API field names.
const customerColumns = `
	c.documento_cliente, c.tipo_documento, c.nombre_cliente, c.apellido_cliente,
	c.telefono, c.correo, c.direccion, c.estado_cliente, c.id_branch, b.branch_name
`

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(&c.Document, &c.DocumentType, &c.FirstName, &c.LastName,
		&c.Phone, &c.Email, &c.HomeAddress, &c.Active, &c.BranchID, &c.BranchName)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	query := `
		INSERT INTO cliente (documento_cliente, tipo_documento, nombre_cliente, apellido_cliente,
			telefono, correo, direccion, estado_cliente, id_branch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
	`
	_, err := r.DB.Exec(ctx, query, req.Document, req.DocumentType, req.FirstName, req.LastName,
		req.Phone, req.Email, req.HomeAddress, req.BranchID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: customer %s already exists", apperrors.ErrConflict, req.Document)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return r.GetByDocument(ctx, req.Document)
}

func (r *CustomerRepository) GetByDocument(ctx context.Context, document string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM cliente c
		LEFT JOIN branch b ON b.id_branch = c.id_branch
		WHERE c.documento_cliente = $1
	`
	c, err := scanCustomer(r.DB.QueryRow(ctx, query, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, document)
		}
		return nil, err
	}
	return c, nil
}

// State returns whether the customer exists and whether it is active,
// without loading the full record.
func (r *CustomerRepository) State(ctx context.Context, document string) (exists, active bool, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT estado_cliente FROM cliente WHERE documento_cliente = $1`, document,
	).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, active, nil
}

// List returns customers matching the filter, most recent buyers first.
// Customers with no purchases sort last.
func (r *CustomerRepository) List(ctx context.Context, f *models.CustomerListFilter) ([]*models.Customer, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	add("c.documento_cliente", f.Document)
	add("c.nombre_cliente", f.FirstName)
	add("c.apellido_cliente", f.LastName)
	add("c.telefono", f.Phone)

	args = append(args, f.Limit, f.Skip)
	query := fmt.Sprintf(`
		SELECT `+customerColumns+`
		FROM cliente c
		LEFT JOIN branch b ON b.id_branch = c.id_branch
		LEFT JOIN (
			SELECT customer_document, MAX(purchase_date) AS last_purchase
			FROM purchase GROUP BY customer_document
		) p ON p.customer_document = c.documento_cliente
		WHERE %s
		ORDER BY p.last_purchase DESC NULLS LAST, c.nombre_cliente
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, document string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.DocumentType != nil {
		set("tipo_documento", *req.DocumentType)
	}
	if req.FirstName != nil {
		set("nombre_cliente", *req.FirstName)
	}
	if req.LastName != nil {
		set("apellido_cliente", *req.LastName)
	}
	if req.Phone != nil {
		set("telefono", *req.Phone)
	}
	if req.Email != nil {
		set("correo", *req.Email)
	}
	if req.HomeAddress != nil {
		set("direccion", *req.HomeAddress)
	}
	if req.BranchID != nil {
		set("id_branch", *req.BranchID)
	}
	if len(sets) == 0 {
		return r.GetByDocument(ctx, document)
	}

	args = append(args, document)
	query := fmt.Sprintf(`UPDATE cliente SET %s WHERE documento_cliente = $%d`,
		strings.Join(sets, ", "), len(args))
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, document)
	}
	return r.GetByDocument(ctx, document)
}

// ToggleActive flips estado_cliente and returns the new value.
func (r *CustomerRepository) ToggleActive(ctx context.Context, document string) (bool, error) {
	var active bool
	err := r.DB.QueryRow(ctx,
		`UPDATE cliente SET estado_cliente = NOT estado_cliente WHERE documento_cliente = $1 RETURNING estado_cliente`,
		document,
	).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, document)
		}
		return false, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return active, nil
}

// PurchaseHistory returns every purchase of the customer, newest first,
// together with the all-time spend total.
func (r *CustomerRepository) PurchaseHistory(ctx context.Context, document string) (*models.CustomerPurchaseHistory, error) {
	query := `
		SELECT p.id_purchase, p.purchase_date, p.purchase_duration, p.next_purchase_date,
			COALESCE(SUM(pp.total_price_with_vat), 0)
		FROM purchase p
		LEFT JOIN purchase_product pp ON pp.id_purchase = p.id_purchase
		WHERE p.customer_document = $1
		GROUP BY p.id_purchase, p.purchase_date, p.purchase_duration, p.next_purchase_date
		ORDER BY p.purchase_date DESC, p.id_purchase DESC
	`
	rows, err := r.DB.Query(ctx, query, document)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := &models.CustomerPurchaseHistory{Purchases: []models.CustomerPurchaseSummary{}}
	for rows.Next() {
		var s models.CustomerPurchaseSummary
		if err := rows.Scan(&s.PurchaseID, &s.PurchaseDate, &s.PurchaseDuration,
			&s.NextPurchaseDate, &s.Total); err != nil {
			return nil, err
		}
		history.HistoricalPurchases += s.Total
		history.Purchases = append(history.Purchases, s)
	}
	return history, rows.Err()
}
