package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"socrates-bot/internal/service"
	"socrates-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const userCommands = `/start - Start the registration process
/invite - Get your referral link
/referrals - View your referrals and their details
/help - Show this help message`

const adminCommands = `/admin - List available admin commands
/all_users - List all registered users
/makeadmin - Promote an admin
/removeadmin - Remove an admin
/users_wallet - List all registered contestants
/leaderboard - Show the leaderboard
/help - Show help information`

const (
	msgInviteUnregistered    = "You need to complete your registration before you can get your referral link."
	msgReferralsUnregistered = "You need to complete your registration before you can view your referrals."
	msgNoReferrals           = "You have no referrals yet."
)

// handleInvite returns the sender's deep link. Registration must be
// complete: unregistered users have no profile, hence no code.
func (d *Dispatcher) handleInvite(ctx context.Context, msg *tgbotapi.Message) {
	user, err := d.users.GetUserByTelegramID(ctx, msg.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			d.reply(msg.Chat.ID, msgInviteUnregistered)
			return
		}
		logger.Logger().Error("failed to get user for invite", zap.Error(err))
		d.reply(msg.Chat.ID, "An error occurred while generating your referral link. Please try again.")
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", d.cfg.BotUsername, user.ReferralCode)
	d.reply(msg.Chat.ID, fmt.Sprintf("Here is your referral link: %s", link))
}

func (d *Dispatcher) handleReferrals(ctx context.Context, msg *tgbotapi.Message) {
	user, err := d.users.GetUserByTelegramID(ctx, msg.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			d.reply(msg.Chat.ID, msgReferralsUnregistered)
			return
		}
		logger.Logger().Error("failed to get user for referrals", zap.Error(err))
		d.reply(msg.Chat.ID, "An error occurred while retrieving your referrals. Please try again.")
		return
	}

	if len(user.ReferredHandles) == 0 {
		d.reply(msg.Chat.ID, msgNoReferrals)
		return
	}

	var b strings.Builder
	b.WriteString("Your referrals:\n")
	for i, handle := range user.ReferredHandles {
		fmt.Fprintf(&b, "%d. Username: @%s\n", i+1, handle)
	}

	d.reply(msg.Chat.ID, b.String())
}

func (d *Dispatcher) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	if d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, fmt.Sprintf("Here are the available commands:\n%s\n\n%s", userCommands, adminCommands))
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("Here are the available commands:\n%s", userCommands))
}

func (d *Dispatcher) handleAdmin(ctx context.Context, msg *tgbotapi.Message) {
	if !d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, msgAdminDenied)
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("Here are the available admin commands:\n%s", adminCommands))
}
