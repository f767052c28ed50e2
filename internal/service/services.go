package service

import (
	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/ai"
	"github.com/telepathbot/telepath/internal/provider"
	"github.com/telepathbot/telepath/internal/repository"
)

type Services struct {
	Suggestion  *SuggestionService
	Preferences *PreferencesService
	Link        *LinkService
	BotConfig   *BotConfigService
}

func NewServices(repos *repository.Repositories, prov provider.LinkProvider, completer ai.Completer, log *zap.SugaredLogger) *Services {
	return &Services{
		Suggestion:  NewSuggestionService(completer, log),
		Preferences: NewPreferencesService(repos.Preferences),
		Link:        NewLinkService(repos.Links, prov, log),
		BotConfig:   NewBotConfigService(repos.BotConfig),
	}
}
