package repositories

import (
	"context"
	"errors"
	"fmt"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchRepository struct {
	DB *pgxpool.Pool
}

func NewBranchRepository(db *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{DB: db}
}

func (r *BranchRepository) Get(ctx context.Context, id int) (*models.Branch, error) {
	b := &models.Branch{}
	err := r.DB.QueryRow(ctx,
		`SELECT id_branch, branch_name, manager_name, branch_address, city FROM branch WHERE id_branch = $1`, id,
	).Scan(&b.ID, &b.Name, &b.ManagerName, &b.Address, &b.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return b, nil
}

// Exists reports whether the branch id is known.
func (r *BranchRepository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.DB.QueryRow(ctx, `SELECT 1 FROM branch WHERE id_branch = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *BranchRepository) List(ctx context.Context) ([]*models.Branch, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id_branch, branch_name, manager_name, branch_address, city FROM branch ORDER BY branch_name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*models.Branch
	for rows.Next() {
		b := &models.Branch{}
		if err := rows.Scan(&b.ID, &b.Name, &b.ManagerName, &b.Address, &b.City); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
