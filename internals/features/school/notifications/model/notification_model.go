package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	// ============ PK ============
	NotificationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:notification_id" json:"notification_id"`

	NotificationRecipientID uuid.UUID `gorm:"type:uuid;not null;index;column:notification_recipient_id" json:"notification_recipient_id"`
	NotificationTitle       string    `gorm:"type:text;not null;column:notification_title" json:"notification_title"`
	NotificationBody        string    `gorm:"type:text;not null;column:notification_body" json:"notification_body"`
	NotificationIsRead      bool      `gorm:"not null;default:false;column:notification_is_read" json:"notification_is_read"`

	// ============ Audit ============
	NotificationCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:notification_created_at" json:"notification_created_at"`
	NotificationUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:notification_updated_at" json:"notification_updated_at"`
	NotificationDeletedAt gorm.DeletedAt `gorm:"column:notification_deleted_at;index" json:"notification_deleted_at,omitempty"`
}

func (NotificationModel) TableName() string { return "notifications" }
