package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/telepathbot/telepath/internal/domain"
)

// showLinksPage renders one page of the management list. With a messageID it
// edits the existing list in place (pagination, refresh); with zero it sends
// a new message (/links).
func (b *Bot) showLinksPage(ctx context.Context, chatID, userID int64, page, messageID int) {
	linkPage, err := b.services.Link.List(ctx, userID, page)
	if err != nil {
		b.reportError(chatID, "list links", err)
		return
	}

	if linkPage.TotalLinks == 0 {
		if messageID != 0 {
			b.editMessage(chatID, messageID, noLinksMessage, nil)
		} else {
			b.send(chatID, noLinksMessage)
		}
		return
	}

	text := linksPageMessage(linkPage)
	keyboard := linksPageKeyboard(linkPage, b.shortIDs)
	if messageID != 0 {
		b.editMessage(chatID, messageID, text, &keyboard)
	} else {
		b.sendWithKeyboard(chatID, text, keyboard)
	}
}

// showLinkDetails renders the detail view; page is the list page the user
// navigated from.
func (b *Bot) showLinkDetails(ctx context.Context, chatID int64, messageID int, userID int64, shortID string, page int) {
	link, err := b.services.Link.Get(ctx, userID, b.shortIDs.Resolve(shortID))
	if errors.Is(err, domain.ErrNotFound) {
		b.editMessage(chatID, messageID, linkNotFoundMessage, nil)
		return
	}
	if err != nil {
		b.reportError(chatID, "link details", err)
		return
	}

	keyboard := linkDetailsKeyboard(shortID, page)
	b.editMessage(chatID, messageID, linkDetailsMessage(link), &keyboard)
}

// promptEditSlug enters the slug-editing flow; the next text message is the
// candidate slug.
func (b *Bot) promptEditSlug(ctx context.Context, chatID, userID int64, shortID string) {
	linkID := b.shortIDs.Resolve(shortID)
	if _, err := b.services.Link.Get(ctx, userID, linkID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			b.send(chatID, linkNotFoundMessage)
			return
		}
		b.reportError(chatID, "edit slug", err)
		return
	}

	b.sessions.BeginEditLink(userID, linkID)
	b.send(chatID, editSlugPromptMessage)
}

// handleEditSlugText consumes the text message while editing a link slug.
// "cancel" leaves the slug untouched; anything else is validated and
// applied. A format error keeps the session open for another try.
func (b *Bot) handleEditSlugText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	linkID, ok := b.sessions.EditingLink(userID)
	if !ok {
		b.send(chatID, sessionExpiredMessage)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if strings.EqualFold(text, "cancel") {
		b.sessions.Clear(userID)
		b.send(chatID, editCancelledMessage)
		return
	}

	link, err := b.services.Link.EditSlug(ctx, userID, linkID, text)
	if err != nil {
		var botErr *domain.BotError
		if errors.As(err, &botErr) && botErr.Kind == domain.ErrKindInvalidSlugFormat {
			// Stay in the editing session so the user can try again.
			b.send(chatID, domain.UserMessage(err)+" Or type *cancel* to keep the current slug.")
			return
		}
		b.sessions.Clear(userID)
		b.reportError(chatID, "apply slug edit", err)
		return
	}

	b.sessions.Clear(userID)
	b.send(chatID, slugUpdatedMessage(link))
}

// promptDeleteLink asks for confirmation before anything is removed.
func (b *Bot) promptDeleteLink(ctx context.Context, chatID int64, messageID int, userID int64, shortID string, page int) {
	link, err := b.services.Link.Get(ctx, userID, b.shortIDs.Resolve(shortID))
	if errors.Is(err, domain.ErrNotFound) {
		b.editMessage(chatID, messageID, linkNotFoundMessage, nil)
		return
	}
	if err != nil {
		b.reportError(chatID, "delete prompt", err)
		return
	}

	keyboard := deleteConfirmKeyboard(shortID, page)
	b.editMessage(chatID, messageID, deleteConfirmMessage(link), &keyboard)
}

// deleteLink performs the confirmed best-effort delete and reports the
// outcome of both stores.
func (b *Bot) deleteLink(ctx context.Context, chatID int64, messageID int, userID int64, shortID string) {
	result, err := b.services.Link.Delete(ctx, userID, b.shortIDs.Resolve(shortID))
	if errors.Is(err, domain.ErrNotFound) {
		b.editMessage(chatID, messageID, linkNotFoundMessage, nil)
		return
	}
	if err != nil {
		b.reportError(chatID, "delete link", err)
		return
	}

	b.editMessage(chatID, messageID, deleteResultMessage(result), nil)
}

// searchLinks handles "/links <query>": a flat filtered list with detail
// buttons, no pagination.
func (b *Bot) searchLinks(ctx context.Context, chatID, userID int64, query string) {
	links, err := b.services.Link.Search(ctx, userID, query)
	if err != nil {
		b.reportError(chatID, "search links", err)
		return
	}
	if len(links) == 0 {
		b.send(chatID, "No links match *"+query+"*.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, link := range links {
		short := b.shortIDs.Put(link.ID)
		row = append(row, button("🔗 "+link.Key, Callback{Action: ActionLinkDetails, LinkID: short}))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	b.sendWithKeyboard(chatID, searchResultsMessage(query, links), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// showStats renders the /stats aggregate view.
func (b *Bot) showStats(ctx context.Context, chatID, userID int64) {
	stats, err := b.services.Link.Stats(ctx, userID)
	if err != nil {
		b.reportError(chatID, "stats", err)
		return
	}
	b.send(chatID, statsMessage(stats))
}
