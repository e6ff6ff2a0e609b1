package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"socrates-bot/internal/model"
	"socrates-bot/internal/service"
	"socrates-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgAlreadyRegistered = "You are already registered. You can use the /help command to see available options."
	msgWelcome           = "Welcome! Please provide your name (First and Last) to get started."
	msgAskEmail          = "Great! Please provide your email address."
	msgInvalidEmail      = "Please enter a valid email address."
	msgAskWhatsapp       = "Please provide your WhatsApp contact."
	msgAskUniversity     = "Which university do you attend?"
	msgAskLevel          = "What is your current level of study (e.g., 100, 200, etc.)?"
	msgAskCourse         = "What is your course of study?"
	msgAskWallet         = "Share your BEP20 wallet address."
	msgSaveFailed        = "An error occurred while saving your data. Please try again."
	msgLookupFailed      = "An error occurred while checking your registration status. Please try again."
)

// handleStart opens a registration session unless the sender already
// has a profile. An optional argument is treated as a referral code;
// when it resolves, the referrer's identity is captured into the
// session but nothing is persisted until the form completes.
func (d *Dispatcher) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	_, err := d.users.GetUserByTelegramID(ctx, userID)
	if err == nil {
		d.reply(msg.Chat.ID, msgAlreadyRegistered)
		return
	}
	if !errors.Is(err, service.ErrUserNotFound) {
		logger.Logger().Error("failed to check registration status",
			zap.Int64("telegram_id", userID),
			zap.Error(err))
		d.reply(msg.Chat.ID, msgLookupFailed)
		return
	}

	sess := &model.Session{
		Kind: model.KindRegistration,
		Step: model.StepName,
	}
	sess.Draft.TelegramID = userID
	sess.Draft.ReferralCode = uuid.NewString()

	if code := strings.TrimSpace(msg.CommandArguments()); code != "" {
		referrer, err := d.users.GetUserByReferralCode(ctx, code)
		if err == nil {
			referrerID := referrer.TelegramID
			sess.Draft.ReferrerID = &referrerID
		}
		// An unknown code is simply not credited.
	}

	d.sessions.Put(userID, sess)
	d.reply(msg.Chat.ID, msgWelcome)
}

// advanceRegistration consumes one free-text message as the next
// unfilled field, in fixed order. The wallet step commits the profile.
func (d *Dispatcher) advanceRegistration(ctx context.Context, msg *tgbotapi.Message, sess *model.Session) {
	text := strings.TrimSpace(msg.Text)

	switch sess.Step {
	case model.StepName:
		sess.Draft.Name = text
		sess.Step = model.StepEmail
		d.reply(msg.Chat.ID, msgAskEmail)
	case model.StepEmail:
		email := strings.ToLower(text)
		if !emailPattern.MatchString(email) {
			d.reply(msg.Chat.ID, msgInvalidEmail)
			return
		}
		sess.Draft.Email = email
		sess.Step = model.StepWhatsapp
		d.reply(msg.Chat.ID, msgAskWhatsapp)
	case model.StepWhatsapp:
		sess.Draft.Whatsapp = text
		sess.Step = model.StepUniversity
		d.reply(msg.Chat.ID, msgAskUniversity)
	case model.StepUniversity:
		sess.Draft.University = text
		sess.Step = model.StepLevel
		d.reply(msg.Chat.ID, msgAskLevel)
	case model.StepLevel:
		sess.Draft.Level = text
		sess.Step = model.StepCourse
		d.reply(msg.Chat.ID, msgAskCourse)
	case model.StepCourse:
		sess.Draft.Course = text
		sess.Step = model.StepWallet
		d.reply(msg.Chat.ID, msgAskWallet)
	case model.StepWallet:
		sess.Draft.WalletAddress = text
		d.finalizeRegistration(ctx, msg, sess)
		return
	}

	d.sessions.Put(msg.From.ID, sess)
}

// finalizeRegistration persists the collected profile together with
// the referrer update. On failure the session stays at the wallet step
// so resending the address retries the write.
func (d *Dispatcher) finalizeRegistration(ctx context.Context, msg *tgbotapi.Message, sess *model.Session) {
	user := sess.Draft
	user.RegistrationDate = time.Now().UTC()

	err := d.users.RegisterUser(ctx, &user, displayHandle(msg.From))
	if err != nil {
		logger.Logger().Error("failed to save registration",
			zap.Int64("telegram_id", user.TelegramID),
			zap.Error(err))
		d.reply(msg.Chat.ID, msgSaveFailed)
		d.sessions.Put(msg.From.ID, sess)
		return
	}

	d.markRegistered(user.TelegramID)
	d.sessions.Delete(msg.From.ID)

	d.reply(msg.Chat.ID, "Your information has been successfully saved. Welcome to the group!\n"+
		"Here are the commands you can use:\n"+userCommands)

	d.replyHTML(msg.Chat.ID, fmt.Sprintf(
		"Here is your invite link to join the group:\n"+
			"<b>GROUP LINK</b>\n%s\n\n"+
			"Join the Channel also through this link:\n"+
			"<b>CHANNEL LINK</b>\n%s",
		d.cfg.GroupLink, d.cfg.ChannelLink))
}
