package services

import (
	"context"
	"fmt"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"
	"andhara-backend/internal/repositories"
)

type CustomerService struct {
	Repo     *repositories.CustomerRepository
	Branches *repositories.BranchRepository
}

func NewCustomerService(repo *repositories.CustomerRepository, branches *repositories.BranchRepository) *CustomerService {
	return &CustomerService{Repo: repo, Branches: branches}
}

func (s *CustomerService) checkBranch(ctx context.Context, branchID *int) error {
	if branchID == nil {
		return nil
	}
	ok, err := s.Branches.Exists(ctx, *branchID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, *branchID)
	}
	return nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := s.checkBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, req)
}

func (s *CustomerService) GetCustomer(ctx context.Context, document string) (*models.Customer, error) {
	return s.Repo.GetByDocument(ctx, document)
}

func (s *CustomerService) ListCustomers(ctx context.Context, filter *models.CustomerListFilter) ([]*models.Customer, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	return s.Repo.List(ctx, filter)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, document string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := s.checkBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, document, req)
}

// ToggleCustomerState flips the active flag: deactivating blocks future
// purchases, reactivating restores them.
func (s *CustomerService) ToggleCustomerState(ctx context.Context, document string) (bool, error) {
	return s.Repo.ToggleActive(ctx, document)
}

func (s *CustomerService) PurchaseHistory(ctx context.Context, document string) (*models.CustomerPurchaseHistory, error) {
	if _, err := s.Repo.GetByDocument(ctx, document); err != nil {
		return nil, err
	}
	return s.Repo.PurchaseHistory(ctx, document)
}
