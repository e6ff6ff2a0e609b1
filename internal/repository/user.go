package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"socrates-bot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type User struct {
	TelegramID       int64          `db:"telegram_id"`
	Name             string         `db:"name"`
	Email            string         `db:"email"`
	Whatsapp         string         `db:"whatsapp"`
	University       string         `db:"university"`
	Level            string         `db:"level"`
	Course           string         `db:"course"`
	WalletAddress    string         `db:"wallet_address"`
	ReferralCode     string         `db:"referral_code"`
	ReferrerID       *int64         `db:"referrer_id"`
	ReferredHandles  pq.StringArray `db:"referred_handles"`
	Referrals        int            `db:"referrals"`
	IsAdmin          bool           `db:"is_admin"`
	RegistrationDate time.Time      `db:"registration_date"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		TelegramID:       u.TelegramID,
		Name:             u.Name,
		Email:            u.Email,
		Whatsapp:         u.Whatsapp,
		University:       u.University,
		Level:            u.Level,
		Course:           u.Course,
		WalletAddress:    u.WalletAddress,
		ReferralCode:     u.ReferralCode,
		ReferrerID:       u.ReferrerID,
		ReferredHandles:  u.ReferredHandles,
		Referrals:        u.Referrals,
		IsAdmin:          u.IsAdmin,
		RegistrationDate: u.RegistrationDate,
	}
}

// CreateUser inserts the completed profile and, when a referrer was
// captured during registration, appends the new user's display handle
// to the referrer and bumps its referral counter. Both writes run in
// one transaction so the counter can never diverge from the handle
// list.
func (r *Repository) CreateUser(ctx context.Context, user *model.User, displayHandle string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("users").
			SetMap(map[string]interface{}{
				"telegram_id":       user.TelegramID,
				"name":              user.Name,
				"email":             user.Email,
				"whatsapp":          user.Whatsapp,
				"university":        user.University,
				"level":             user.Level,
				"course":            user.Course,
				"wallet_address":    user.WalletAddress,
				"referral_code":     user.ReferralCode,
				"referrer_id":       user.ReferrerID,
				"registration_date": user.RegistrationDate,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build user insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}

		if user.ReferrerID != nil {
			updateQuery, updateArgs, err := squirrel.
				Update("users").
				Set("referred_handles", squirrel.Expr("array_append(referred_handles, ?)", displayHandle)).
				Set("referrals", squirrel.Expr("referrals + 1")).
				Where(squirrel.Eq{"telegram_id": user.ReferrerID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build referrer update query: %w", err)
			}

			_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
			if err != nil {
				return fmt.Errorf("failed to update referrer: %w", err)
			}
		}

		return nil
	})
}

func (r *Repository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"telegram_id": telegramID})
}

func (r *Repository) GetUserByReferralCode(ctx context.Context, referralCode string) (*model.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"referral_code": referralCode})
}

func (r *Repository) getUserBy(ctx context.Context, pred squirrel.Eq) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

// SetAdmin flips the privilege flag on the target profile and returns
// the updated row, or ErrNotFound when no such profile exists.
func (r *Repository) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) (*model.User, error) {
	query, args, err := squirrel.
		Update("users").
		Set("is_admin", isAdmin).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		Suffix("RETURNING *").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user User
	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	return r.listUsers(ctx, "registration_date ASC")
}

// GetUsersByReferrals returns every profile, most referrals first.
func (r *Repository) GetUsersByReferrals(ctx context.Context) ([]*model.User, error) {
	return r.listUsers(ctx, "referrals DESC")
}

func (r *Repository) listUsers(ctx context.Context, orderBy string) ([]*model.User, error) {
	query, args, err := squirrel.
		Select("*").
		From("users").
		OrderBy(orderBy).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var users []User
	err = r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	userList := make([]*model.User, len(users))
	for i := range users {
		userList[i] = users[i].toModel()
	}

	return userList, nil
}
