package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/telepathbot/telepath/internal/service"
)

const (
	botName             = "Telepath"
	botDescription      = "Send me any URL and I'll turn it into a short, memorable link. AI-suggested slugs, your style, managed right here in the chat."
	botShortDescription = "Conversational link shortener with AI-suggested slugs."
)

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Run the setup wizard"},
	{Command: "links", Description: "Manage your short links"},
	{Command: "settings", Description: "View and change preferences"},
	{Command: "stats", Description: "Your link statistics"},
	{Command: "help", Description: "How to use the bot"},
	{Command: "about", Description: "About this bot"},
}

// ConfigureProfile applies the one-time Telegram profile setup: command
// list, bot name, descriptions and the menu button. Each step is guarded by
// a persisted flag so restarts skip completed work, which matters because
// Telegram rate-limits profile calls aggressively. Failures are logged and
// retried on the next start, never fatal.
func (b *Bot) ConfigureProfile(ctx context.Context) {
	done, err := b.services.BotConfig.IsFullyConfigured(ctx)
	if err != nil {
		b.log.Warnw("reading profile config state failed", "error", err)
		return
	}
	if done {
		b.log.Debug("bot profile already configured")
		return
	}

	steps := []struct {
		key   string
		apply func() error
	}{
		{service.ConfigCommandsSet, b.applyCommands},
		{service.ConfigNameSet, b.applyName},
		{service.ConfigDescriptionSet, b.applyDescription},
		{service.ConfigShortDescriptionSet, b.applyShortDescription},
		{service.ConfigMenuButtonSet, b.applyMenuButton},
	}

	allDone := true
	for _, step := range steps {
		set, err := b.services.BotConfig.IsConfigured(ctx, step.key)
		if err != nil {
			b.log.Warnw("reading profile flag failed", "key", step.key, "error", err)
			allDone = false
			continue
		}
		if set {
			continue
		}

		if err := step.apply(); err != nil {
			b.log.Warnw("profile step failed, will retry on next start", "key", step.key, "error", err)
			allDone = false
			continue
		}
		if err := b.services.BotConfig.MarkConfigured(ctx, step.key); err != nil {
			b.log.Warnw("persisting profile flag failed", "key", step.key, "error", err)
			allDone = false
		}
	}

	if allDone {
		if err := b.services.BotConfig.MarkCompleted(ctx); err != nil {
			b.log.Warnw("persisting profile completion failed", "error", err)
			return
		}
		b.log.Info("bot profile configured")
	}
}

func (b *Bot) applyCommands() error {
	_, err := b.api.Request(tgbotapi.NewSetMyCommands(botCommands...))
	return err
}

// The client library predates the setMyName and description endpoints, so
// these go through MakeRequest directly.

func (b *Bot) applyName() error {
	_, err := b.api.MakeRequest("setMyName", tgbotapi.Params{"name": botName})
	return err
}

func (b *Bot) applyDescription() error {
	_, err := b.api.MakeRequest("setMyDescription", tgbotapi.Params{"description": botDescription})
	return err
}

func (b *Bot) applyShortDescription() error {
	_, err := b.api.MakeRequest("setMyShortDescription", tgbotapi.Params{"short_description": botShortDescription})
	return err
}

func (b *Bot) applyMenuButton() error {
	_, err := b.api.MakeRequest("setChatMenuButton", tgbotapi.Params{
		"menu_button": `{"type":"commands"}`,
	})
	return err
}
