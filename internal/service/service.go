package service

import (
	"context"
	"errors"

	"socrates-bot/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserServiceI interface {
	RegisterUser(ctx context.Context, user *model.User, displayHandle string) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetUserByReferralCode(ctx context.Context, referralCode string) (*model.User, error)
	SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	GetLeaderboard(ctx context.Context) ([]*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User, displayHandle string) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetUserByReferralCode(ctx context.Context, referralCode string) (*model.User, error)
	SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	GetUsersByReferrals(ctx context.Context) ([]*model.User, error)
}
