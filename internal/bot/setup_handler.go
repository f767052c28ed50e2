package bot

import (
	"context"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/service"
)

// startSetup begins or restarts the wizard. Preferences are created up
// front so each step can commit its answer immediately; quitting mid-way
// keeps the answers already given.
func (b *Bot) startSetup(ctx context.Context, chatID, userID int64) {
	if _, err := b.services.Preferences.EnsureExists(ctx, userID); err != nil {
		b.reportError(chatID, "start setup", err)
		return
	}

	b.sessions.BeginSetup(userID, domain.SetupStepWelcome)
	b.sendWithKeyboard(chatID, setupWelcomeMessage, setupWelcomeKeyboard())
}

// advanceSetup moves the wizard forward and renders the step's prompt.
func (b *Bot) advanceSetup(ctx context.Context, chatID int64, messageID int, userID int64, step domain.SetupStep) {
	if !step.Valid() {
		b.log.Warnw("callback carried unknown setup step", "user_id", userID, "step", step)
		b.editMessage(chatID, messageID, sessionExpiredMessage, nil)
		return
	}
	if !b.sessions.SetSetupStep(userID, step) {
		b.editMessage(chatID, messageID, sessionExpiredMessage, nil)
		return
	}

	switch step {
	case domain.SetupStepDomainSelection:
		domains := b.services.Link.AvailableDomains(ctx)
		keyboard := setupDomainKeyboard(domains, service.DefaultDomain)
		b.editMessage(chatID, messageID, setupDomainMessage, &keyboard)
	case domain.SetupStepSlugStyle:
		keyboard := setupStyleKeyboard()
		b.editMessage(chatID, messageID, setupStyleMessage, &keyboard)
	case domain.SetupStepAutoConfirm:
		keyboard := setupToggleKeyboard(ActionSetupSetAutoConfirm, domain.SetupStepAutoConfirm)
		b.editMessage(chatID, messageID, setupAutoConfirmMessage, &keyboard)
	case domain.SetupStepShowReasoning:
		keyboard := setupToggleKeyboard(ActionSetupSetReasoning, domain.SetupStepShowReasoning)
		b.editMessage(chatID, messageID, setupReasoningMessage, &keyboard)
	case domain.SetupStepCompleted:
		b.completeSetup(ctx, chatID, messageID, userID)
	case domain.SetupStepWelcome:
		b.editMessage(chatID, messageID, setupWelcomeMessage, keyboardPtr(setupWelcomeKeyboard()))
	}
}

// setSetupDomain commits the domain answer and moves to the style step.
func (b *Bot) setSetupDomain(ctx context.Context, chatID int64, messageID int, userID int64, domainSlug string) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{DefaultDomain: &domainSlug}); err != nil {
		b.reportError(chatID, "setup set domain", err)
		return
	}
	b.advanceSetup(ctx, chatID, messageID, userID, domain.SetupStepDomainSelection.Next())
}

func (b *Bot) setSetupStyle(ctx context.Context, chatID int64, messageID int, userID int64, style domain.SlugStyle) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{PreferredSlugStyle: &style}); err != nil {
		b.reportError(chatID, "setup set style", err)
		return
	}
	b.advanceSetup(ctx, chatID, messageID, userID, domain.SetupStepSlugStyle.Next())
}

func (b *Bot) setSetupAutoConfirm(ctx context.Context, chatID int64, messageID int, userID int64, enabled bool) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{AutoConfirm: &enabled}); err != nil {
		b.reportError(chatID, "setup set auto confirm", err)
		return
	}
	b.advanceSetup(ctx, chatID, messageID, userID, domain.SetupStepAutoConfirm.Next())
}

func (b *Bot) setSetupReasoning(ctx context.Context, chatID int64, messageID int, userID int64, enabled bool) {
	if _, err := b.services.Preferences.Update(ctx, userID, domain.PreferencesUpdate{ShowReasoning: &enabled}); err != nil {
		b.reportError(chatID, "setup set reasoning", err)
		return
	}
	b.advanceSetup(ctx, chatID, messageID, userID, domain.SetupStepShowReasoning.Next())
}

func (b *Bot) completeSetup(ctx context.Context, chatID int64, messageID int, userID int64) {
	if err := b.services.Preferences.MarkSetupCompleted(ctx, userID); err != nil {
		b.reportError(chatID, "complete setup", err)
		return
	}
	b.sessions.Clear(userID)

	text := setupCompletedMessage
	if prefs, err := b.services.Preferences.Get(ctx, userID); err == nil {
		text += "\n\n" + settingsMessage(prefs)
	}
	b.editMessage(chatID, messageID, text, nil)
}

// skipSetup keeps the defaults but still marks setup as done, so the user
// can shorten links right away.
func (b *Bot) skipSetup(ctx context.Context, chatID int64, messageID int, userID int64) {
	if err := b.services.Preferences.MarkSetupCompleted(ctx, userID); err != nil {
		b.reportError(chatID, "skip setup", err)
		return
	}
	b.sessions.Clear(userID)
	b.editMessage(chatID, messageID, setupSkippedMessage, nil)
}

// cancelSetup abandons the wizard without marking setup complete. Answers
// already committed stay in place.
func (b *Bot) cancelSetup(chatID int64, messageID int, userID int64) {
	b.sessions.Clear(userID)
	b.editMessage(chatID, messageID, setupCancelledMessage, nil)
}
