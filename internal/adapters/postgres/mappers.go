package postgres

import (
	"github.com/streamforge/media-access-service/internal/domain"
)

func toDomainContent(row contentModel) domain.Content {
	return domain.Content{
		ContentID:       row.ContentID,
		OrganizationID:  row.OrganizationID,
		Title:           row.Title,
		Status:          domain.ContentStatus(row.Status),
		PriceCents:      row.PriceCents,
		DurationSeconds: row.DurationSeconds,
		DeletedAt:       row.DeletedAt,
		CreatedAt:       row.CreatedAt,
	}
}

func toDomainMedia(row contentMediaModel) domain.MediaAsset {
	return domain.MediaAsset{
		ContentID:   row.ContentID,
		MediaType:   domain.MediaType(row.MediaType),
		Status:      domain.MediaStatus(row.Status),
		ManifestKey: row.ManifestKey,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainProgress(row playbackProgressModel) domain.PlaybackProgress {
	return domain.PlaybackProgress{
		UserID:          row.UserID,
		ContentID:       row.ContentID,
		PositionSeconds: row.PositionSeconds,
		DurationSeconds: row.DurationSeconds,
		Completed:       row.Completed,
		UpdatedAt:       row.UpdatedAt,
	}
}
