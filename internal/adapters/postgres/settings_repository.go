package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

const playerSettingsKey = "player_settings"

func (r *settingsRepository) GetPlayerSettings(ctx context.Context) (map[string]any, error) {
	var rec platformSettingModel
	err := r.db.WithContext(ctx).
		Where("key = ?", playerSettingsKey).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	settings := map[string]any{}
	if err := json.Unmarshal([]byte(rec.Value), &settings); err != nil {
		return nil, fmt.Errorf("decode player settings: %w", err)
	}
	return settings, nil
}
