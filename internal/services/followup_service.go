package services

import (
	"context"
	"fmt"
	"strings"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"
)

type followUpStore interface {
	List(ctx context.Context, skip, limit int) ([]*models.FollowUpRow, error)
	GetByID(ctx context.Context, id int) (*models.FollowUp, error)
	Update(ctx context.Context, id int, comment string, active bool) error
	Detail(ctx context.Context, id int) (*models.FollowUpDetail, error)
}

type purchaseHistoryStore interface {
	PurchaseHistory(ctx context.Context, document string) (*models.CustomerPurchaseHistory, error)
}

type FollowUpService struct {
	Repo      followUpStore
	Customers purchaseHistoryStore
}

func NewFollowUpService(repo followUpStore, customers purchaseHistoryStore) *FollowUpService {
	return &FollowUpService{Repo: repo, Customers: customers}
}

func (s *FollowUpService) ListFollowUps(ctx context.Context, skip, limit int) ([]*models.FollowUpRow, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.Repo.List(ctx, skip, limit)
}

// GetFollowUp returns the detail view: the customer and originating purchase
// plus the customer's full purchase history.
func (s *FollowUpService) GetFollowUp(ctx context.Context, id int) (*models.FollowUpDetail, error) {
	detail, err := s.Repo.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.Customers.PurchaseHistory(ctx, detail.Customer.Document)
	if err != nil {
		return nil, err
	}
	detail.LastPurchases = history
	return detail, nil
}

// ManageFollowUp records a contact: the comment is mandatory and a closed
// follow-up can never be updated or reopened.
func (s *FollowUpService) ManageFollowUp(ctx context.Context, id int, req *models.ManageFollowUpRequest) (*models.FollowUp, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, fmt.Errorf("%w: follow-up %d is closed", apperrors.ErrInvalidState, id)
	}
	comment := strings.TrimSpace(req.ContactComment)
	if comment == "" {
		return nil, fmt.Errorf("%w: contact comment must not be blank", apperrors.ErrValidation)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	if err := s.Repo.Update(ctx, id, comment, active); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}
