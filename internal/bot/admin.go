package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"socrates-bot/internal/model"
	"socrates-bot/internal/service"
	"socrates-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// handleLookupLimit bounds concurrent GetChat calls when resolving
// display handles for the admin listings.
const handleLookupLimit = 8

const (
	msgMakeAdminDenied    = "You do not have permission to make another user an admin."
	msgRemoveAdminDenied  = "You do not have permission to remove another admin."
	msgAskPromoteTarget   = "Please enter the ID of the user you want to make an admin."
	msgAskDemoteTarget    = "Please enter the ID of the user you want to remove from admin."
	msgFinishRegistration = "Please finish your registration first."
	msgAdminDenied        = "You do not have permission to use this command. You can use the /help command to see available options."
	msgNoUsers            = "No users found in the database."
	msgListingFailed      = "An error occurred while retrieving users."
	msgAdminUpdateFailed  = "An error occurred while updating the user's admin status."
)

// handleMakeAdmin opens a one-shot promote session. Only the bot owner
// may promote; the general admin flag is not enough.
func (d *Dispatcher) handleMakeAdmin(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From.ID != d.cfg.OwnerID {
		d.reply(msg.Chat.ID, msgMakeAdminDenied)
		return
	}

	d.openAdminSession(msg, model.ActionPromote, msgAskPromoteTarget)
}

// handleRemoveAdmin opens a one-shot demote session for any admin.
func (d *Dispatcher) handleRemoveAdmin(ctx context.Context, msg *tgbotapi.Message) {
	if !d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, msgRemoveAdminDenied)
		return
	}

	d.openAdminSession(msg, model.ActionDemote, msgAskDemoteTarget)
}

func (d *Dispatcher) openAdminSession(msg *tgbotapi.Message, action model.AdminAction, prompt string) {
	if existing := d.sessions.Get(msg.From.ID); existing != nil && existing.Kind == model.KindRegistration {
		// A half-finished registration keeps claim on the next message.
		d.reply(msg.Chat.ID, msgFinishRegistration)
		return
	}

	d.sessions.Put(msg.From.ID, &model.Session{
		Kind:   model.KindAdminAction,
		Action: action,
	})
	d.reply(msg.Chat.ID, prompt)
}

// handleAdminTarget interprets the next message from a requester with a
// pending admin session as the target identity. One attempt only: the
// session is cleared whatever the outcome.
func (d *Dispatcher) handleAdminTarget(ctx context.Context, msg *tgbotapi.Message, sess *model.Session) {
	d.sessions.Delete(msg.From.ID)

	target := strings.TrimSpace(msg.Text)
	targetID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		d.reply(msg.Chat.ID, fmt.Sprintf("User with ID %s not found or could not be updated.", target))
		return
	}

	promote := sess.Action == model.ActionPromote
	updated, err := d.users.SetAdmin(ctx, targetID, promote)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			d.reply(msg.Chat.ID, fmt.Sprintf("User with ID %s not found or could not be updated.", target))
			return
		}
		logger.Logger().Error("failed to update admin status",
			zap.Int64("target_id", targetID),
			zap.Error(err))
		d.reply(msg.Chat.ID, msgAdminUpdateFailed)
		return
	}

	if promote {
		d.reply(msg.Chat.ID, fmt.Sprintf("User %s has been promoted to admin.", updated.Name))
		d.reply(targetID, fmt.Sprintf("You have been promoted to admin by @%s.\nClick /admin to get started.",
			displayHandle(msg.From)))
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("User %s has been removed from admin status.", updated.Name))
}

func (d *Dispatcher) isAdmin(ctx context.Context, telegramID int64) bool {
	user, err := d.users.GetUserByTelegramID(ctx, telegramID)
	return err == nil && user.IsAdmin
}

func (d *Dispatcher) handleAllUsers(ctx context.Context, msg *tgbotapi.Message) {
	if !d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, msgAdminDenied)
		return
	}

	users, err := d.users.GetAllUsers(ctx)
	if err != nil {
		logger.Logger().Error("failed to list users", zap.Error(err))
		d.reply(msg.Chat.ID, msgListingFailed)
		return
	}
	if len(users) == 0 {
		d.reply(msg.Chat.ID, msgNoUsers)
		return
	}

	handles := d.resolveHandles(ctx, users)

	var b strings.Builder
	fmt.Fprintf(&b, "List of all registered users (%d users):\n\n", len(users))
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s (@%s)\n", i+1, u.Name, handles[i])
		fmt.Fprintf(&b, "<b>Name:</b> %s\n", u.Name)
		fmt.Fprintf(&b, "<b>Email:</b> %s\n", u.Email)
		fmt.Fprintf(&b, "<b>University:</b> %s\n", u.University)
		fmt.Fprintf(&b, "<b>Level:</b> %s\n", u.Level)
		fmt.Fprintf(&b, "<b>Wallet Address:</b> <code>%s</code>\n", u.WalletAddress)
		fmt.Fprintf(&b, "<b>Referrals:</b> %d\n", u.Referrals)
	}

	d.replyHTML(msg.Chat.ID, b.String())
}

func (d *Dispatcher) handleUsersWallet(ctx context.Context, msg *tgbotapi.Message) {
	if !d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, msgAdminDenied)
		return
	}

	users, err := d.users.GetAllUsers(ctx)
	if err != nil {
		logger.Logger().Error("failed to list users", zap.Error(err))
		d.reply(msg.Chat.ID, msgListingFailed)
		return
	}
	if len(users) == 0 {
		d.reply(msg.Chat.ID, msgNoUsers)
		return
	}

	handles := d.resolveHandles(ctx, users)

	var b strings.Builder
	b.WriteString("Wallets of all qualified users:\n\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s (@%s)\n", i+1, u.Name, handles[i])
		fmt.Fprintf(&b, "<b>Wallet Address:</b> <code>%s</code>\n", u.WalletAddress)
	}

	d.replyHTML(msg.Chat.ID, b.String())
}

func (d *Dispatcher) handleLeaderboard(ctx context.Context, msg *tgbotapi.Message) {
	if !d.isAdmin(ctx, msg.From.ID) {
		d.reply(msg.Chat.ID, "You do not have permission to use this command.")
		return
	}

	users, err := d.users.GetLeaderboard(ctx)
	if err != nil {
		logger.Logger().Error("failed to get leaderboard", zap.Error(err))
		d.reply(msg.Chat.ID, "An error occurred while retrieving the leaderboard.")
		return
	}
	if len(users) == 0 {
		d.reply(msg.Chat.ID, msgNoUsers)
		return
	}

	handles := d.resolveHandles(ctx, users)

	var b strings.Builder
	b.WriteString("<b>Referral Leaderboard:</b>\n\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s (@%s)\n", i+1, u.Name, handles[i])
		fmt.Fprintf(&b, "<b>Referrals:</b> %d\n", u.Referrals)
	}

	d.replyHTML(msg.Chat.ID, b.String())
}

// resolveHandles looks up current display handles with bounded
// concurrency. A failed or empty lookup degrades to "Unknown" rather
// than aborting the listing.
func (d *Dispatcher) resolveHandles(ctx context.Context, users []*model.User) []string {
	handles := make([]string, len(users))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(handleLookupLimit)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			chat, err := d.tg.GetChat(tgbotapi.ChatInfoConfig{
				ChatConfig: tgbotapi.ChatConfig{ChatID: u.TelegramID},
			})
			if err != nil || chat.UserName == "" {
				handles[i] = "Unknown"
				return nil
			}
			handles[i] = chat.UserName
			return nil
		})
	}
	_ = g.Wait()

	return handles
}
