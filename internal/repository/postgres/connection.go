package postgres

import (
	"context"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.UserPreferences{},
		&domain.UserLink{},
		&domain.BotConfigFlag{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Pinger adapts a gorm connection for readiness probes.
type Pinger struct {
	DB *gorm.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Preferences: NewPreferencesRepository(db),
		Links:       NewLinkRepository(db),
		BotConfig:   NewBotConfigRepository(db),
	}
}
