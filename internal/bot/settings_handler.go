package bot

import (
	"context"
	"errors"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/service"
)

// showSettings renders current preferences with inline controls. With a
// messageID the existing settings message is updated in place.
func (b *Bot) showSettings(ctx context.Context, chatID, userID int64, messageID int) {
	prefs, err := b.services.Preferences.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		target := setupRequiredMessage
		if messageID != 0 {
			b.editMessage(chatID, messageID, target, nil)
		} else {
			b.send(chatID, target)
		}
		return
	}
	if err != nil {
		b.reportError(chatID, "show settings", err)
		return
	}

	text := settingsMessage(prefs)
	keyboard := settingsKeyboard(prefs)
	if messageID != 0 {
		b.editMessage(chatID, messageID, text, &keyboard)
	} else {
		b.sendWithKeyboard(chatID, text, keyboard)
	}
}

func (b *Bot) setSettingsStyle(ctx context.Context, chatID int64, messageID int, userID int64, style domain.SlugStyle) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{PreferredSlugStyle: &style}); err != nil {
		b.reportError(chatID, "set style", err)
		return
	}
	b.showSettings(ctx, chatID, userID, messageID)
}

func (b *Bot) toggleAutoConfirm(ctx context.Context, chatID int64, messageID int, userID int64) {
	prefs, err := b.services.Preferences.Get(ctx, userID)
	if err != nil {
		b.reportError(chatID, "toggle auto confirm", err)
		return
	}

	next := !prefs.AutoConfirm
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{AutoConfirm: &next}); err != nil {
		b.reportError(chatID, "toggle auto confirm", err)
		return
	}
	b.showSettings(ctx, chatID, userID, messageID)
}

// showSettingsDomains swaps the settings keyboard for a domain picker built
// from the provider's verified domains.
func (b *Bot) showSettingsDomains(ctx context.Context, chatID int64, messageID int, userID int64) {
	prefs, err := b.services.Preferences.Get(ctx, userID)
	if err != nil {
		b.reportError(chatID, "show domains", err)
		return
	}

	current := prefs.DefaultDomain
	if current == "" {
		current = service.DefaultDomain
	}
	domains := b.services.Link.AvailableDomains(ctx)

	keyboard := settingsDomainKeyboard(domains, current)
	b.editMessage(chatID, messageID, "🌐 Pick a default domain for new links:", &keyboard)
}

func (b *Bot) setSettingsDomain(ctx context.Context, chatID int64, messageID int, userID int64, dom string) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{DefaultDomain: &dom}); err != nil {
		b.reportError(chatID, "set domain", err)
		return
	}
	b.showSettings(ctx, chatID, userID, messageID)
}

// resetSettings wipes the stored preferences entirely. The next URL the user
// sends will require the setup wizard again.
func (b *Bot) resetSettings(ctx context.Context, chatID int64, messageID int, userID int64) {
	if err := b.services.Preferences.Reset(ctx, userID); err != nil {
		b.reportError(chatID, "reset settings", err)
		return
	}
	b.sessions.Clear(userID)
	b.editMessage(chatID, messageID, settingsResetMessage, nil)
}

func (b *Bot) toggleShowReasoning(ctx context.Context, chatID int64, messageID int, userID int64) {
	prefs, err := b.services.Preferences.Get(ctx, userID)
	if err != nil {
		b.reportError(chatID, "toggle reasoning", err)
		return
	}

	next := !prefs.ShowReasoning
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{ShowReasoning: &next}); err != nil {
		b.reportError(chatID, "toggle reasoning", err)
		return
	}
	b.showSettings(ctx, chatID, userID, messageID)
}
