package importer_test

import (
	"context"
	"testing"

	"dummy-importer/core/dummyapi"
	"dummy-importer/core/reconcile"
	"dummy-importer/feature/importer"
	"dummy-importer/feature/importer/mocks"
	"dummy-importer/feature/importer/models"

	apimocks "dummy-importer/core/dummyapi/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func bankWithID(id uint) any {
	return mock.MatchedBy(func(b *models.Bank) bool { return b.ID == id })
}

func TestReconciler_AdoptsConcurrentlyInsertedUser(t *testing.T) {
	ctx := context.Background()
	api := new(apimocks.Client)
	api.On("Fetch", mock.Anything, "posts/user/1", 0, 0).Return(dummyapi.Payload{"posts": []any{}})

	winner := &models.User{ID: 40, DummyID: 1, Bank: &models.Bank{ID: 9, IBAN: "OLD"}}
	store := new(mocks.Store)
	store.On("FindUserByDummyID", mock.Anything, 1).Return(nil, nil).Once()
	store.On("SaveBank", mock.Anything, bankWithID(0)).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Bank).ID = 12
	}).Return(nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	store.On("LockUserByDummyID", mock.Anything, 1).Return(winner, nil).Once()
	store.On("SaveBank", mock.Anything, bankWithID(9)).Return(nil).Once()
	store.On("DeleteBank", mock.Anything, uint(12)).Return(nil).Once()
	store.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 40 && u.BankID != nil && *u.BankID == 9
	})).Return(nil).Once()

	r := importer.NewReconciler(api, zap.NewNop())
	res, err := r.ReconcileUser(ctx, store, rawUser(1, "YPUXISOBI7TTHPK2BR3HAIXL"))
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUpdated, res.User)
	assert.Equal(t, reconcile.OutcomeUpdated, res.Bank)
	assert.Equal(t, "YPUXISOBI7TTHPK2BR3HAIXL", winner.Bank.IBAN)

	store.AssertExpectations(t)
	api.AssertExpectations(t)
}

func TestReconciler_AdoptsWinnerWithoutBank(t *testing.T) {
	ctx := context.Background()
	api := new(apimocks.Client)
	api.On("Fetch", mock.Anything, "posts/user/1", 0, 0).Return(dummyapi.Payload{})

	store := new(mocks.Store)
	store.On("FindUserByDummyID", mock.Anything, 1).Return(nil, nil).Once()
	store.On("SaveBank", mock.Anything, bankWithID(0)).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Bank).ID = 12
	}).Return(nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	store.On("LockUserByDummyID", mock.Anything, 1).Return(&models.User{ID: 40, DummyID: 1}, nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()

	r := importer.NewReconciler(api, zap.NewNop())
	res, err := r.ReconcileUser(ctx, store, rawUser(1, "IBAN"))
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUpdated, res.User)
	assert.Equal(t, reconcile.OutcomeInserted, res.Bank)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "DeleteBank", mock.Anything, mock.Anything)
}

func TestReconciler_AdoptsConcurrentlyInsertedPost(t *testing.T) {
	ctx := context.Background()
	api := new(apimocks.Client)
	api.On("Fetch", mock.Anything, "posts/user/1", 0, 0).Return(dummyapi.Payload{"posts": []any{
		map[string]any{"id": 11, "title": "t", "body": "b", "reactions": 3},
	}})

	existing := &models.User{ID: 40, DummyID: 1, Bank: &models.Bank{ID: 9}}
	store := new(mocks.Store)
	store.On("FindUserByDummyID", mock.Anything, 1).Return(existing, nil).Once()
	store.On("SaveBank", mock.Anything, bankWithID(9)).Return(nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("FindPostByDummyID", mock.Anything, 11).Return(nil, nil).Once()
	store.On("SavePost", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	store.On("LockPostByDummyID", mock.Anything, 11).Return(&models.Post{ID: 77, DummyID: 11}, nil).Once()
	store.On("SavePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.ID == 77 && p.UserID == 40 && p.Reactions == 3
	})).Return(nil).Once()

	r := importer.NewReconciler(api, zap.NewNop())
	res, err := r.ReconcileUser(ctx, store, rawUser(1, "IBAN"))
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeUpdated, res.User)
	assert.Equal(t, reconcile.Tally{Updated: 1}, res.Posts)

	store.AssertExpectations(t)
}

func TestReconciler_MalformedPostAborts(t *testing.T) {
	ctx := context.Background()
	api := new(apimocks.Client)
	api.On("Fetch", mock.Anything, "posts/user/1", 0, 0).Return(dummyapi.Payload{"posts": []any{
		map[string]any{"id": 11, "body": "b", "reactions": 3},
	}})

	store := new(mocks.Store)
	store.On("FindUserByDummyID", mock.Anything, 1).Return(nil, nil).Once()
	store.On("SaveBank", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()

	r := importer.NewReconciler(api, zap.NewNop())
	_, err := r.ReconcileUser(ctx, store, rawUser(1, "IBAN"))
	assert.ErrorIs(t, err, importer.ErrMalformedRecord)
	store.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything)
}

func rawUser(id int, iban string) map[string]any {
	raw := testUser(id, "emilys", "1996-5-30", iban)
	return raw
}
