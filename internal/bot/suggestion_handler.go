package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/telepathbot/telepath/internal/service"
	"github.com/telepathbot/telepath/internal/slug"
)

// handleURLMessage is the main intake path: scan the text for URLs, generate
// a suggestion for the first one and either confirm automatically or ask.
func (b *Bot) handleURLMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	urls := slug.ExtractURLs(msg.Text)
	if len(urls) == 0 {
		b.send(chatID, noURLFoundMessage)
		return
	}

	completed, err := b.services.Preferences.IsSetupCompleted(ctx, userID)
	if err != nil {
		b.reportError(chatID, "check setup", err)
		return
	}
	if !completed {
		b.send(chatID, setupRequiredMessage)
		return
	}

	rawURL := slug.NormalizeURL(urls[0])
	if slug.IsShortURL(rawURL) {
		b.send(chatID, shortURLRejectedMessage)
		return
	}

	b.send(chatID, analyzingMessage)

	prefs := b.services.Preferences.GetOrDefault(ctx, userID)
	suggestion := b.services.Suggestion.GenerateSlug(ctx,
		service.SuggestionRequest{URL: rawURL},
		prefs.PreferredSlugStyle, prefs.DefaultDomain)

	if prefs.AutoConfirm {
		link, err := b.services.Link.Create(ctx, userID, *suggestion)
		if err != nil {
			b.reportError(chatID, "auto-confirm create", err)
			return
		}
		b.send(chatID, linkCreatedMessage(link))
		return
	}

	domains := b.services.Link.AvailableDomains(ctx)
	b.sessions.SetPendingSuggestion(userID, suggestion, domains)
	b.sendWithKeyboard(chatID,
		suggestionMessage(*suggestion, prefs.ShowReasoning),
		suggestionKeyboard(domains, suggestion.Domain))
}

// confirmSuggestion creates the pending link. On failure the session is kept
// so the user can edit the slug or pick another domain and retry.
func (b *Bot) confirmSuggestion(ctx context.Context, chatID int64, messageID int, userID int64) {
	suggestion, _, ok := b.sessions.PendingSuggestion(userID)
	if !ok {
		b.editMessage(chatID, messageID, sessionExpiredMessage, nil)
		return
	}

	link, err := b.services.Link.Create(ctx, userID, suggestion)
	if err != nil {
		b.reportError(chatID, "confirm create", err)
		return
	}

	b.sessions.Clear(userID)
	b.editMessage(chatID, messageID, linkCreatedMessage(link), nil)
}

// promptCustomSlug asks for a replacement slug; the next text message from
// the user is consumed by handleCustomSlugText.
func (b *Bot) promptCustomSlug(chatID, userID int64) {
	if !b.sessions.AwaitCustomSlug(userID) {
		b.send(chatID, sessionExpiredMessage)
		return
	}
	b.send(chatID, customSlugPromptMessage)
}

// handleCustomSlugText mutates the pending suggestion with a user-typed slug
// and re-presents the confirmation prompt.
func (b *Bot) handleCustomSlugText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	candidate := strings.TrimSpace(msg.Text)
	if !slug.IsValidCustomSlug(candidate) {
		b.send(chatID, "That slug isn't valid. Use letters, digits, hyphens and underscores (up to 50 characters), then try again.")
		return
	}

	if !b.sessions.UpdatePendingSlug(userID, candidate, "User-provided custom slug") {
		b.send(chatID, sessionExpiredMessage)
		return
	}

	suggestion, domains, _ := b.sessions.PendingSuggestion(userID)
	prefs := b.services.Preferences.GetOrDefault(ctx, userID)
	b.sendWithKeyboard(chatID,
		suggestionMessage(suggestion, prefs.ShowReasoning),
		suggestionKeyboard(domains, suggestion.Domain))
}

func (b *Bot) rejectSuggestion(chatID int64, messageID int, userID int64) {
	b.sessions.Clear(userID)
	b.editMessage(chatID, messageID, "Suggestion discarded. Send another URL whenever you're ready.", nil)
}

// selectSuggestionDomain switches the pending suggestion to another domain
// and redraws the prompt in place.
func (b *Bot) selectSuggestionDomain(ctx context.Context, chatID int64, messageID int, userID int64, domainSlug string) {
	if !b.sessions.UpdatePendingDomain(userID, domainSlug) {
		b.editMessage(chatID, messageID, sessionExpiredMessage, nil)
		return
	}

	suggestion, domains, _ := b.sessions.PendingSuggestion(userID)
	prefs := b.services.Preferences.GetOrDefault(ctx, userID)
	keyboard := suggestionKeyboard(domains, suggestion.Domain)
	b.editMessage(chatID, messageID, suggestionMessage(suggestion, prefs.ShowReasoning), &keyboard)
}
