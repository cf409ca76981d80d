package services_test

import (
	"context"
	"fmt"
	"testing"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/models"
	"andhara-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowUpStore struct {
	followUps map[int]*models.FollowUp
	details   map[int]*models.FollowUpDetail
	history   map[string]*models.CustomerPurchaseHistory

	listedSkip, listedLimit int
}

func (f *fakeFollowUpStore) List(ctx context.Context, skip, limit int) ([]*models.FollowUpRow, error) {
	f.listedSkip, f.listedLimit = skip, limit
	return []*models.FollowUpRow{}, nil
}

func (f *fakeFollowUpStore) GetByID(ctx context.Context, id int) (*models.FollowUp, error) {
	fu, ok := f.followUps[id]
	if !ok {
		return nil, fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
	}
	copied := *fu
	return &copied, nil
}

func (f *fakeFollowUpStore) Update(ctx context.Context, id int, comment string, active bool) error {
	fu, ok := f.followUps[id]
	if !ok {
		return fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
	}
	fu.ContactComment = comment
	fu.Active = active
	return nil
}

func (f *fakeFollowUpStore) Detail(ctx context.Context, id int) (*models.FollowUpDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("%w: follow-up %d", apperrors.ErrNotFound, id)
	}
	return d, nil
}

func (f *fakeFollowUpStore) PurchaseHistory(ctx context.Context, document string) (*models.CustomerPurchaseHistory, error) {
	if h, ok := f.history[document]; ok {
		return h, nil
	}
	return &models.CustomerPurchaseHistory{Purchases: []models.CustomerPurchaseSummary{}}, nil
}

func newFollowUpService(f *fakeFollowUpStore) *services.FollowUpService {
	return services.NewFollowUpService(f, f)
}

func boolPtr(b bool) *bool { return &b }

func TestManageFollowUp(t *testing.T) {
	t.Parallel()

	t.Run("records comment and keeps it open", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{
			5: {ID: 5, PurchaseID: 11, Active: true},
		}}

		updated, err := newFollowUpService(f).ManageFollowUp(context.Background(), 5,
			&models.ManageFollowUpRequest{ContactComment: "llamé, volver a intentar el lunes"})
		require.NoError(t, err)
		assert.True(t, updated.Active)
		assert.Equal(t, "llamé, volver a intentar el lunes", updated.ContactComment)
	})

	t.Run("closing with comment", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{
			5: {ID: 5, PurchaseID: 11, Active: true},
		}}

		updated, err := newFollowUpService(f).ManageFollowUp(context.Background(), 5,
			&models.ManageFollowUpRequest{ContactComment: "cliente recompró", Active: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.Active)
	})

	t.Run("blank comment is rejected", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{
			5: {ID: 5, PurchaseID: 11, Active: true},
		}}

		_, err := newFollowUpService(f).ManageFollowUp(context.Background(), 5,
			&models.ManageFollowUpRequest{ContactComment: "   \t"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Empty(t, f.followUps[5].ContactComment, "record untouched")
	})

	t.Run("comment is stored trimmed", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{
			5: {ID: 5, PurchaseID: 11, Active: true},
		}}

		updated, err := newFollowUpService(f).ManageFollowUp(context.Background(), 5,
			&models.ManageFollowUpRequest{ContactComment: "  cliente contactado  "})
		require.NoError(t, err)
		assert.Equal(t, "cliente contactado", updated.ContactComment)
	})

	t.Run("closed follow-up is terminal", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{
			5: {ID: 5, PurchaseID: 11, Active: false, ContactComment: "cerrado"},
		}}

		_, err := newFollowUpService(f).ManageFollowUp(context.Background(), 5,
			&models.ManageFollowUpRequest{ContactComment: "reabrir", Active: boolPtr(true)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.Equal(t, "cerrado", f.followUps[5].ContactComment, "closed record untouched")
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		f := &fakeFollowUpStore{followUps: map[int]*models.FollowUp{}}

		_, err := newFollowUpService(f).ManageFollowUp(context.Background(), 404,
			&models.ManageFollowUpRequest{ContactComment: "hola"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestGetFollowUpAttachesHistory(t *testing.T) {
	t.Parallel()

	history := &models.CustomerPurchaseHistory{HistoricalPurchases: 9500}
	f := &fakeFollowUpStore{
		details: map[int]*models.FollowUpDetail{
			3: {ID: 3, Customer: models.FollowUpCustomerInfo{Document: "CC-1001"}},
		},
		history: map[string]*models.CustomerPurchaseHistory{"CC-1001": history},
	}

	detail, err := newFollowUpService(f).GetFollowUp(context.Background(), 3)
	require.NoError(t, err)
	assert.Same(t, history, detail.LastPurchases)
}

func TestListFollowUpsDefaults(t *testing.T) {
	t.Parallel()

	f := &fakeFollowUpStore{}
	_, err := newFollowUpService(f).ListFollowUps(context.Background(), -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.listedSkip)
	assert.Equal(t, 100, f.listedLimit)
}
