package services

import (
	"context"
	"fmt"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/cache"
	"andhara-backend/internal/models"
	"andhara-backend/internal/pricing"
	"andhara-backend/internal/repositories"
)

type ProductService struct {
	Repo     *repositories.ProductRepository
	Stock    *repositories.StockRepository
	Branches *repositories.BranchRepository
}

func NewProductService(repo *repositories.ProductRepository, stock *repositories.StockRepository, branches *repositories.BranchRepository) *ProductService {
	return &ProductService{Repo: repo, Stock: stock, Branches: branches}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	margin, err := pricing.ProfitMargin(req.PurchasePrice, req.SalePrice)
	if err != nil {
		return nil, err
	}
	for _, entry := range req.Stock {
		ok, err := s.Branches.Exists(ctx, entry.BranchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, entry.BranchID)
		}
	}
	return s.Repo.Create(ctx, req, margin)
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	if p := cache.GetProduct(ctx, id); p != nil {
		return p, nil
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.SetProduct(ctx, p)
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.Repo.List(ctx, skip, limit)
}

// UpdateProduct patches the product. Whenever either price changes the
// profit margin is recomputed from the effective pair, never taken from the
// request.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	var margin *float64
	if req.PurchasePrice != nil || req.SalePrice != nil {
		current, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		purchasePrice := current.PurchasePrice
		salePrice := current.SalePrice
		if req.PurchasePrice != nil {
			purchasePrice = *req.PurchasePrice
		}
		if req.SalePrice != nil {
			salePrice = *req.SalePrice
		}
		m, err := pricing.ProfitMargin(purchasePrice, salePrice)
		if err != nil {
			return nil, err
		}
		margin = &m
	}
	if req.VAT != nil {
		if err := pricing.ValidVAT(*req.VAT); err != nil {
			return nil, err
		}
	}
	p, err := s.Repo.Update(ctx, id, req, margin)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProduct(ctx, id)
	return p, nil
}

// ToggleProductState flips the active flag and returns the new value.
func (s *ProductService) ToggleProductState(ctx context.Context, id int) (bool, error) {
	active, err := s.Repo.ToggleActive(ctx, id)
	if err != nil {
		return false, err
	}
	cache.InvalidateProduct(ctx, id)
	return active, nil
}

// UpdateStock sets the absolute quantity of the product at one branch.
func (s *ProductService) UpdateStock(ctx context.Context, productID int, req *models.UpdateStockRequest) (*models.StockEntry, error) {
	if _, err := s.Repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	ok, err := s.Branches.Exists(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, req.BranchID)
	}
	entry, err := s.Stock.SetQuantity(ctx, req.BranchID, productID, req.Quantity)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProduct(ctx, productID)
	return entry, nil
}
