package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `
	product_id, supplier_id, product_name, product_description, purchase_price,
	product_discount, sale_price, profit_margin, vat, product_state
`

// ProductPricing is the slice of a product the purchase flow needs: the
// sale price and VAT used to compute line totals, plus the activity flag.
type ProductPricing struct {
	ID        int
	Name      string
	SalePrice float64
	VAT       float64
	Active    bool
}

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.PurchasePrice,
		&p.Discount, &p.SalePrice, &p.ProfitMargin, &p.VAT, &p.Active)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts the product together with its initial stock rows in one
// transaction, so a failed stock insert never leaves a stockless product.
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest, profitMargin float64) (*models.Product, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO product (supplier_id, product_name, product_description, purchase_price,
			product_discount, sale_price, profit_margin, vat, product_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING product_id
	`, req.SupplierID, req.Name, req.Description, req.PurchasePrice,
		req.Discount, req.SalePrice, profitMargin, req.VAT).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	for _, s := range req.Stock {
		_, err = tx.Exec(ctx,
			`INSERT INTO branch_stock (id_branch, id_product, quantity) VALUES ($1, $2, $3)`,
			s.BranchID, id, s.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: stock for branch %d: %v", apperrors.ErrStoreWrite, s.BranchID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM product WHERE product_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id_branch, id_product, quantity FROM branch_stock WHERE id_product = $1 ORDER BY id_branch`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.StockEntry
		if err := rows.Scan(&s.BranchID, &s.ProductID, &s.Quantity); err != nil {
			return nil, err
		}
		p.Stock = append(p.Stock, s)
	}
	return p, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM product ORDER BY product_name LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	byID := map[int]*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	stockRows, err := r.DB.Query(ctx,
		`SELECT id_branch, id_product, quantity FROM branch_stock WHERE id_product = ANY($1) ORDER BY id_branch`,
		ids)
	if err != nil {
		return nil, err
	}
	defer stockRows.Close()
	for stockRows.Next() {
		var s models.StockEntry
		if err := stockRows.Scan(&s.BranchID, &s.ProductID, &s.Quantity); err != nil {
			return nil, err
		}
		if p, ok := byID[s.ProductID]; ok {
			p.Stock = append(p.Stock, s)
		}
	}
	return products, stockRows.Err()
}

// Update patches the given fields. profitMargin is the recomputed margin to
// store whenever either price changed; pass nil to leave it as is.
func (r *ProductRepository) Update(ctx context.Context, id int, req *models.UpdateProductRequest, profitMargin *float64) (*models.Product, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.SupplierID != nil {
		set("supplier_id", *req.SupplierID)
	}
	if req.Name != nil {
		set("product_name", *req.Name)
	}
	if req.Description != nil {
		set("product_description", *req.Description)
	}
	if req.PurchasePrice != nil {
		set("purchase_price", *req.PurchasePrice)
	}
	if req.Discount != nil {
		set("product_discount", *req.Discount)
	}
	if req.SalePrice != nil {
		set("sale_price", *req.SalePrice)
	}
	if req.VAT != nil {
		set("vat", *req.VAT)
	}
	if profitMargin != nil {
		set("profit_margin", *profitMargin)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE product SET %s WHERE product_id = $%d`,
		strings.Join(sets, ", "), len(args))
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// ToggleActive flips product_state and returns the new value.
func (r *ProductRepository) ToggleActive(ctx context.Context, id int) (bool, error) {
	var active bool
	err := r.DB.QueryRow(ctx,
		`UPDATE product SET product_state = NOT product_state WHERE product_id = $1 RETURNING product_state`,
		id,
	).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, id)
		}
		return false, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return active, nil
}

// GetPricing loads the pricing rows for all requested products at once.
// Missing ids are simply absent from the result map.
func (r *ProductRepository) GetPricing(ctx context.Context, ids []int) (map[int]ProductPricing, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, product_name, sale_price, vat, product_state
		FROM product WHERE product_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pricing := make(map[int]ProductPricing, len(ids))
	for rows.Next() {
		var p ProductPricing
		if err := rows.Scan(&p.ID, &p.Name, &p.SalePrice, &p.VAT, &p.Active); err != nil {
			return nil, err
		}
		pricing[p.ID] = p
	}
	return pricing, rows.Err()
}
