package models

import (
	"time"

	"gorm.io/gorm"
)

// Child is one enrolled learner, owned by a parent account in the profile
// service. GrowthMeterLevel and CurrentDifficulty are always derived from
// TotalPoints — they are written only by the progression service, never set
// by callers directly.
type Child struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	ParentID string `gorm:"index;not null" json:"parent_id"` // gateway user id of the owning parent

	Name string `gorm:"not null" json:"name"`
	Age  int    `json:"age"`

	LearningDifficulties string `gorm:"type:jsonb" json:"learning_difficulties,omitempty"`
	AttentionSpan        string `gorm:"type:varchar(16);default:'short'" json:"attention_span"` // short, medium, long

	// Core progression
	GrowthMeterLevel  int    `json:"growth_meter_level" gorm:"default:1"`
	CurrentDifficulty string `json:"current_difficulty" gorm:"type:varchar(16);default:'easy'"`
	TotalPoints       int64  `json:"total_points" gorm:"default:0"`

	LastActivity time.Time `json:"last_activity"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
