package service

import (
	"context"
	"errors"
	"testing"

	"socrates-bot/internal/model"
	"socrates-bot/internal/repository"
	"socrates-bot/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserByTelegramID(t *testing.T) {
	tests := []struct {
		name          string
		telegramID    int64
		mockSetup     func(repo *mocks.MockUserRepository)
		expectedUser  *model.User
		expectedError error
	}{
		{
			name:       "User not found maps to service error",
			telegramID: 123,
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByTelegramID", mock.Anything, int64(123)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:       "User found",
			telegramID: 124,
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByTelegramID", mock.Anything, int64(124)).
					Return(&model.User{TelegramID: 124, Name: "Jane Doe"}, nil)
			},
			expectedUser: &model.User{TelegramID: 124, Name: "Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockUserRepository{}
			tt.mockSetup(repo)
			s := NewUserService(repo)

			user, err := s.GetUserByTelegramID(context.Background(), tt.telegramID)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}

func TestUserService_SetAdmin(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	repo.On("SetAdmin", mock.Anything, int64(42), true).
		Return(nil, repository.ErrNotFound)
	s := NewUserService(repo)

	_, err := s.SetAdmin(context.Background(), 42, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_RegisterUser(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	user := &model.User{TelegramID: 100, Name: "Jane Doe"}
	repo.On("CreateUser", mock.Anything, user, "janedoe").Return(nil)
	s := NewUserService(repo)

	require.NoError(t, s.RegisterUser(context.Background(), user, "janedoe"))
	repo.AssertExpectations(t)
}

func TestUserService_RegisterUserWrapsError(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	boom := errors.New("unique constraint violation")
	repo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(boom)
	s := NewUserService(repo)

	err := s.RegisterUser(context.Background(), &model.User{}, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestUserService_GetLeaderboard(t *testing.T) {
	repo := &mocks.MockUserRepository{}
	ranked := []*model.User{
		{TelegramID: 1, Referrals: 5},
		{TelegramID: 2, Referrals: 2},
	}
	repo.On("GetUsersByReferrals", mock.Anything).Return(ranked, nil)
	s := NewUserService(repo)

	users, err := s.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ranked, users)
}
