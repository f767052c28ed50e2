package service

import (
	"context"

	"github.com/telepathbot/telepath/internal/repository"
)

// Bot profile components configured once per deployment. Each flag guards an
// idempotent Telegram API call so restarts do not re-run completed steps.
const (
	ConfigCommandsSet         = "commands_set"
	ConfigNameSet             = "name_set"
	ConfigDescriptionSet      = "description_set"
	ConfigShortDescriptionSet = "short_description_set"
	ConfigMenuButtonSet       = "menu_button_set"
	ConfigCompleted           = "full_configuration_completed"
)

// AllConfigKeys covers every profile flag, used when resetting.
var AllConfigKeys = []string{
	ConfigCommandsSet,
	ConfigNameSet,
	ConfigDescriptionSet,
	ConfigShortDescriptionSet,
	ConfigMenuButtonSet,
	ConfigCompleted,
}

// BotConfigService tracks which one-time bot profile steps have run.
type BotConfigService struct {
	flags repository.BotConfigRepository
}

func NewBotConfigService(flags repository.BotConfigRepository) *BotConfigService {
	return &BotConfigService{flags: flags}
}

func (s *BotConfigService) IsConfigured(ctx context.Context, key string) (bool, error) {
	return s.flags.IsSet(ctx, key)
}

func (s *BotConfigService) MarkConfigured(ctx context.Context, key string) error {
	return s.flags.MarkSet(ctx, key)
}

// IsFullyConfigured short-circuits the whole profile pass on restart.
func (s *BotConfigService) IsFullyConfigured(ctx context.Context) (bool, error) {
	return s.flags.IsSet(ctx, ConfigCompleted)
}

func (s *BotConfigService) MarkCompleted(ctx context.Context) error {
	return s.flags.MarkSet(ctx, ConfigCompleted)
}

// Reset clears every flag so the next start reapplies the full profile.
func (s *BotConfigService) Reset(ctx context.Context) error {
	return s.flags.Clear(ctx, AllConfigKeys)
}
