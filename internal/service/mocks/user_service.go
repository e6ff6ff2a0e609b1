package mocks

import (
	"context"

	"socrates-bot/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, user *model.User, displayHandle string) error {
	args := m.Called(ctx, user, displayHandle)
	return args.Error(0)
}

func (m *MockUserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUserByReferralCode(ctx context.Context, referralCode string) (*model.User, error) {
	args := m.Called(ctx, referralCode)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) (*model.User, error) {
	args := m.Called(ctx, telegramID, isAdmin)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetLeaderboard(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User, displayHandle string) error {
	args := m.Called(ctx, user, displayHandle)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByReferralCode(ctx context.Context, referralCode string) (*model.User, error) {
	args := m.Called(ctx, referralCode)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) (*model.User, error) {
	args := m.Called(ctx, telegramID, isAdmin)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUsersByReferrals(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}
