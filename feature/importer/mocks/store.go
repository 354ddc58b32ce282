package mocks

import (
	"context"

	"dummy-importer/feature/importer"
	"dummy-importer/feature/importer/models"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of importer.Store.
// Transaction runs the callback against the mock itself.
type Store struct {
	mock.Mock
}

func (m *Store) FindUserByDummyID(ctx context.Context, dummyID int) (*models.User, error) {
	args := m.Called(ctx, dummyID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *Store) FindPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error) {
	args := m.Called(ctx, dummyID)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *Store) LockUserByDummyID(ctx context.Context, dummyID int) (*models.User, error) {
	args := m.Called(ctx, dummyID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *Store) LockPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error) {
	args := m.Called(ctx, dummyID)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *Store) SaveBank(ctx context.Context, bank *models.Bank) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *Store) DeleteBank(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) SaveUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *Store) SavePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *Store) Transaction(ctx context.Context, fn func(tx importer.Store) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *Store) Counts(ctx context.Context) (*importer.Counts, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(*importer.Counts)
	return counts, args.Error(1)
}

func (m *Store) UserDetail(ctx context.Context, dummyID int) (*models.User, error) {
	args := m.Called(ctx, dummyID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *Store) DeleteUser(ctx context.Context, dummyID int) (bool, error) {
	args := m.Called(ctx, dummyID)
	return args.Bool(0), args.Error(1)
}
