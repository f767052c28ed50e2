// Package bot wires Telegram updates to the Telepath services: URL intake,
// the suggestion confirmation flow, the setup wizard and link management.
package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/service"
	"github.com/telepathbot/telepath/internal/session"
)

// handlerTimeout bounds the work done for a single update.
const handlerTimeout = 30 * time.Second

type Bot struct {
	api      *tgbotapi.BotAPI
	services *service.Services
	sessions *session.Store
	shortIDs *session.ShortIDMap
	gate     *Gate
	log      *zap.SugaredLogger
}

func New(api *tgbotapi.BotAPI, services *service.Services, gate *Gate, log *zap.SugaredLogger) *Bot {
	return &Bot{
		api:      api,
		services: services,
		sessions: session.NewStore(),
		shortIDs: session.NewShortIDMap(),
		gate:     gate,
		log:      log,
	}
}

// Run consumes updates until the context is cancelled. Each update is
// handled on its own goroutine so a slow provider call for one user never
// blocks the others.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	b.log.Infow("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(update)
		}
	}
}

// handleUpdate is the trust boundary: every error and panic below it is
// converted into a user-visible message, never a crash.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("handler panicked", "panic", r, "update_id", update.UpdateID)
			if chatID := updateChatID(update); chatID != 0 {
				b.send(chatID, "Something went wrong on my side. Please try again.")
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	if !b.gate.Allowed(userID) {
		b.log.Infow("unauthorized user", "user_id", userID)
		b.send(msg.Chat.ID, unauthorizedMessage)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Text != "" {
		b.handleText(ctx, msg)
		return
	}
	b.send(msg.Chat.ID, nonTextMessage)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.startSetup(ctx, chatID, userID)
	case "help":
		b.send(chatID, helpMessage)
	case "about":
		b.send(chatID, aboutMessage)
	case "links":
		if query := strings.TrimSpace(msg.CommandArguments()); query != "" {
			b.searchLinks(ctx, chatID, userID, query)
			return
		}
		b.showLinksPage(ctx, chatID, userID, 1, 0)
	case "settings":
		b.showSettings(ctx, chatID, userID, 0)
	case "stats":
		b.showStats(ctx, chatID, userID)
	default:
		b.send(chatID, "Unknown command. Try /help.")
	}
}

// handleText routes plain text by session mode: a pending slug edit consumes
// the message, otherwise it is scanned for URLs to shorten.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	switch {
	case b.sessions.Mode(userID) == session.ModeEditingLink:
		b.handleEditSlugText(ctx, msg)
	case b.sessions.AwaitingCustomSlug(userID):
		b.handleCustomSlugText(ctx, msg)
	default:
		b.handleURLMessage(ctx, msg)
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	if !b.gate.Allowed(userID) {
		b.answerCallback(query.ID, "Not authorized.")
		return
	}

	// Telegram omits the message for presses on very old messages.
	if query.Message == nil {
		b.answerCallback(query.ID, "This button has expired.")
		return
	}

	cb, err := DecodeCallback(query.Data)
	if err != nil {
		b.log.Warnw("undecodable callback", "user_id", userID, "data", query.Data, "error", err)
		b.answerCallback(query.ID, "This button is no longer valid.")
		return
	}

	b.answerCallback(query.ID, "")
	b.dispatchCallback(ctx, query, cb)
}

// dispatchCallback matches the closed action set exhaustively.
func (b *Bot) dispatchCallback(ctx context.Context, query *tgbotapi.CallbackQuery, cb Callback) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID

	switch cb.Action {
	case ActionConfirm:
		b.confirmSuggestion(ctx, chatID, messageID, userID)
	case ActionEdit:
		b.promptCustomSlug(chatID, userID)
	case ActionReject:
		b.rejectSuggestion(chatID, messageID, userID)
	case ActionSelectDomain:
		b.selectSuggestionDomain(ctx, chatID, messageID, userID, cb.Domain)

	case ActionLinksPage:
		b.showLinksPage(ctx, chatID, userID, cb.Page, messageID)
	case ActionLinkDetails:
		b.showLinkDetails(ctx, chatID, messageID, userID, cb.LinkID, cb.Page)
	case ActionLinkEdit:
		b.promptEditSlug(ctx, chatID, userID, cb.LinkID)
	case ActionLinkDelete:
		b.promptDeleteLink(ctx, chatID, messageID, userID, cb.LinkID, cb.Page)
	case ActionLinkDeleteConfirm:
		b.deleteLink(ctx, chatID, messageID, userID, cb.LinkID)
	case ActionCloseLinks:
		b.clearKeyboard(chatID, messageID)

	case ActionSetupNext:
		b.advanceSetup(ctx, chatID, messageID, userID, domain.SetupStep(cb.Step))
	case ActionSetupSetDomain:
		b.setSetupDomain(ctx, chatID, messageID, userID, cb.Domain)
	case ActionSetupSetStyle:
		b.setSetupStyle(ctx, chatID, messageID, userID, domain.SlugStyle(cb.Style))
	case ActionSetupSetAutoConfirm:
		b.setSetupAutoConfirm(ctx, chatID, messageID, userID, cb.Enabled)
	case ActionSetupSetReasoning:
		b.setSetupReasoning(ctx, chatID, messageID, userID, cb.Enabled)
	case ActionSetupSkip:
		b.skipSetup(ctx, chatID, messageID, userID)
	case ActionSetupCancel:
		b.cancelSetup(chatID, messageID, userID)

	case ActionSettingsSetStyle:
		b.setSettingsStyle(ctx, chatID, messageID, userID, domain.SlugStyle(cb.Style))
	case ActionSettingsToggleAuto:
		b.toggleAutoConfirm(ctx, chatID, messageID, userID)
	case ActionSettingsToggleReason:
		b.toggleShowReasoning(ctx, chatID, messageID, userID)
	case ActionSettingsRerunSetup:
		b.clearKeyboard(chatID, messageID)
		b.startSetup(ctx, chatID, userID)
	case ActionSettingsShowDomains:
		b.showSettingsDomains(ctx, chatID, messageID, userID)
	case ActionSettingsSetDomain:
		b.setSettingsDomain(ctx, chatID, messageID, userID, cb.Domain)
	case ActionSettingsReset:
		b.resetSettings(ctx, chatID, messageID, userID)
	case ActionSettingsClose:
		b.clearKeyboard(chatID, messageID)
	}
}

// send delivers a Markdown message, logging delivery failures.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("send failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("send failed", "chat_id", chatID, "error", err)
	}
}

// editMessage rewrites an existing message in place, with or without a
// keyboard.
func (b *Bot) editMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.DisableWebPagePreview = true
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Send(edit); err != nil {
		b.log.Errorw("edit failed", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Send(edit); err != nil {
		b.log.Debugw("clearing keyboard failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Debugw("answering callback failed", "error", err)
	}
}

// reportError converts any error into its safe user-facing message.
func (b *Bot) reportError(chatID int64, op string, err error) {
	b.log.Errorw("handler error", "op", op, "error", err)
	b.send(chatID, domain.UserMessage(err))
}

func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	default:
		return 0
	}
}
