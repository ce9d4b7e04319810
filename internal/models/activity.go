package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog records a mutating admin action for auditing.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"index" json:"actor_id"`
	ActorRole  string            `gorm:"size:32" json:"actor_role"`
	Action     string            `gorm:"size:64;index;not null" json:"action"`
	EntityType string            `gorm:"size:64;index;not null" json:"entity_type"`
	EntityID   *uint             `gorm:"index" json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Upload records a stored file and where it ended up.
type Upload struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StaffUserID  *uint     `gorm:"index" json:"staff_user_id"`
	OriginalName string    `gorm:"size:512" json:"original_name"`
	FileType     string    `gorm:"size:128" json:"file_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Checksum     string    `gorm:"size:128;index" json:"checksum"`
	URL          string    `gorm:"size:1024" json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}
