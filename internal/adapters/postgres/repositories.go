package postgres

import (
	"github.com/streamforge/media-access-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Streaming ports.StreamingReader
	Progress  ports.ProgressRepository
	Purchases ports.PurchaseRepository
	Settings  ports.SettingsRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Streaming: &streamingRepository{db: db},
		Progress:  &progressRepository{db: db},
		Purchases: &purchaseRepository{db: db},
		Settings:  &settingsRepository{db: db},
	}
}
