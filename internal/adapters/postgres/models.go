package postgres

import (
	"time"

	"github.com/google/uuid"
)

type contentModel struct {
	ContentID       uuid.UUID  `gorm:"column:content_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID  *uuid.UUID `gorm:"column:organization_id"`
	Title           string     `gorm:"column:title"`
	Status          string     `gorm:"column:status"`
	PriceCents      int64      `gorm:"column:price_cents"`
	DurationSeconds int64      `gorm:"column:duration_seconds"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

func (contentModel) TableName() string { return "content" }

type contentMediaModel struct {
	MediaID     uuid.UUID `gorm:"column:media_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContentID   uuid.UUID `gorm:"column:content_id"`
	MediaType   string    `gorm:"column:media_type"`
	Status      string    `gorm:"column:status"`
	ManifestKey *string   `gorm:"column:manifest_key"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (contentMediaModel) TableName() string { return "content_media" }

type contentAccessModel struct {
	AccessID   uuid.UUID `gorm:"column:access_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id"`
	ContentID  uuid.UUID `gorm:"column:content_id"`
	AccessType string    `gorm:"column:access_type"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (contentAccessModel) TableName() string { return "content_access" }

type purchaseModel struct {
	PurchaseID      uuid.UUID `gorm:"column:purchase_id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID `gorm:"column:customer_id"`
	ContentID       uuid.UUID `gorm:"column:content_id"`
	Status          string    `gorm:"column:status"`
	AmountPaidCents int64     `gorm:"column:amount_paid_cents"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (purchaseModel) TableName() string { return "purchases" }

type organizationMemberModel struct {
	MembershipID   uuid.UUID `gorm:"column:membership_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id"`
	UserID         uuid.UUID `gorm:"column:user_id"`
	Role           string    `gorm:"column:role"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (organizationMemberModel) TableName() string { return "organization_members" }

type playbackProgressModel struct {
	UserID          uuid.UUID `gorm:"column:user_id;primaryKey"`
	ContentID       uuid.UUID `gorm:"column:content_id;primaryKey"`
	PositionSeconds int64     `gorm:"column:position_seconds"`
	DurationSeconds int64     `gorm:"column:duration_seconds"`
	Completed       bool      `gorm:"column:completed"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (playbackProgressModel) TableName() string { return "playback_progress" }

type platformSettingModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (platformSettingModel) TableName() string { return "platform_settings" }
