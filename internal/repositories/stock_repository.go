package repositories

import (
	"context"
	"fmt"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepository struct {
	DB *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{DB: db}
}

// GetForProducts loads the branch quantities for all requested products in
// one round trip. Products with no stock row are absent from the map.
func (r *StockRepository) GetForProducts(ctx context.Context, branchID int, productIDs []int) (map[int]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id_product, quantity FROM branch_stock WHERE id_branch = $1 AND id_product = ANY($2)`,
		branchID, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quantities := make(map[int]int, len(productIDs))
	for rows.Next() {
		var productID, quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			return nil, err
		}
		quantities[productID] = quantity
	}
	return quantities, rows.Err()
}

// Decrement takes quantity units of the product from the branch. The WHERE
// clause makes the check-and-take atomic: if a concurrent sale drained the
// stock first, no row matches and ErrInsufficientStock is returned instead
// of driving the quantity negative.
func (r *StockRepository) Decrement(ctx context.Context, branchID, productID, quantity int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE branch_stock SET quantity = quantity - $3
		WHERE id_branch = $1 AND id_product = $2 AND quantity >= $3
	`, branchID, productID, quantity)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d at branch %d", apperrors.ErrInsufficientStock, productID, branchID)
	}
	return nil
}

// Increment returns quantity units to the branch. Used by purchase rollback.
func (r *StockRepository) Increment(ctx context.Context, branchID, productID, quantity int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE branch_stock SET quantity = quantity + $3
		WHERE id_branch = $1 AND id_product = $2
	`, branchID, productID, quantity)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock row for product %d at branch %d", apperrors.ErrNotFound, productID, branchID)
	}
	return nil
}

// SetQuantity sets the absolute quantity, creating the stock row if the
// product has never been stocked at the branch.
func (r *StockRepository) SetQuantity(ctx context.Context, branchID, productID, quantity int) (*models.StockEntry, error) {
	query := `
		INSERT INTO branch_stock (id_branch, id_product, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (id_branch, id_product) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id_branch, id_product, quantity
	`
	s := &models.StockEntry{}
	err := r.DB.QueryRow(ctx, query, branchID, productID, quantity).
		Scan(&s.BranchID, &s.ProductID, &s.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}
	return s, nil
}
