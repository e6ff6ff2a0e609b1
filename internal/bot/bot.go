package bot

import (
	"context"
	"sync"

	"socrates-bot/internal/model"
	"socrates-bot/internal/service"
	"socrates-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramClient is the slice of the Bot API the dispatcher needs.
// *tgbotapi.BotAPI satisfies it.
type TelegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

type Config struct {
	BotUsername string
	OwnerID     int64
	GroupLink   string
	ChannelLink string
}

// Dispatcher routes inbound updates: recognized slash commands to their
// handlers, free text to whichever session is open for the sender, and
// everything else to the floor.
type Dispatcher struct {
	tg       TelegramClient
	users    service.UserServiceI
	sessions *service.SessionStore
	cfg      Config

	mu         sync.Mutex
	registered map[int64]struct{}
}

func NewDispatcher(tg TelegramClient, users service.UserServiceI, sessions *service.SessionStore, cfg Config) *Dispatcher {
	return &Dispatcher{
		tg:         tg,
		users:      users,
		sessions:   sessions,
		cfg:        cfg,
		registered: make(map[int64]struct{}),
	}
}

func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if msg.IsCommand() {
		d.handleCommand(ctx, msg)
		return
	}

	d.handleText(ctx, msg)
}

func (d *Dispatcher) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		d.handleStart(ctx, msg)
	case "invite":
		d.handleInvite(ctx, msg)
	case "referrals":
		d.handleReferrals(ctx, msg)
	case "help":
		d.handleHelp(ctx, msg)
	case "admin":
		d.handleAdmin(ctx, msg)
	case "all_users":
		d.handleAllUsers(ctx, msg)
	case "users_wallet":
		d.handleUsersWallet(ctx, msg)
	case "leaderboard":
		d.handleLeaderboard(ctx, msg)
	case "makeadmin":
		d.handleMakeAdmin(ctx, msg)
	case "removeadmin":
		d.handleRemoveAdmin(ctx, msg)
	}
}

// handleText feeds a non-command message to the sender's open session.
// The session kind decides which flow consumes it; messages with no
// open session are dropped silently.
func (d *Dispatcher) handleText(ctx context.Context, msg *tgbotapi.Message) {
	sess := d.sessions.Get(msg.From.ID)
	if sess == nil {
		return
	}

	switch sess.Kind {
	case model.KindAdminAction:
		d.handleAdminTarget(ctx, msg, sess)
	case model.KindRegistration:
		d.advanceRegistration(ctx, msg, sess)
	}
}

func (d *Dispatcher) markRegistered(telegramID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registered[telegramID] = struct{}{}
}

// IsRegistered reports whether this process saw the identity complete
// registration. Membership tracking only.
func (d *Dispatcher) IsRegistered(telegramID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.registered[telegramID]
	return ok
}

func (d *Dispatcher) reply(chatID int64, text string) {
	d.send(tgbotapi.NewMessage(chatID, text))
}

func (d *Dispatcher) replyHTML(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	d.send(m)
}

func (d *Dispatcher) send(m tgbotapi.MessageConfig) {
	if _, err := d.tg.Send(m); err != nil {
		logger.Logger().Error("failed to send message",
			zap.Int64("chat_id", m.ChatID),
			zap.Error(err))
	}
}

func displayHandle(from *tgbotapi.User) string {
	if from.UserName == "" {
		return "No username"
	}
	return from.UserName
}
