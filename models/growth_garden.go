package models

import "time"

// Achievement kinds, in escalating tree-level weight order.
const (
	AchievementLeaf   = "leaf"
	AchievementBranch = "branch"
	AchievementFlower = "flower"
	AchievementFruit  = "fruit"
)

// GrowthGarden is the per-child gamification ledger, created together with
// the child profile. Each counter only ever grows, and every increment is
// paired with exactly one GardenAchievement row of the matching kind, so the
// counters can always be reconciled by summing the rows.
type GrowthGarden struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	ChildID string `gorm:"uniqueIndex;not null" json:"child_id"`

	TotalLeaves   int64 `json:"total_leaves" gorm:"default:0"`
	TotalBranches int64 `json:"total_branches" gorm:"default:0"`
	TotalFlowers  int64 `json:"total_flowers" gorm:"default:0"`
	TotalFruits   int64 `json:"total_fruits" gorm:"default:0"`

	// Derived from the four totals on read, never stored.
	TreeLevel int `json:"tree_level" gorm:"-"`

	LastUpdated time.Time `json:"last_updated"`

	Timestamps
}

// GardenAchievement is one append-only achievement event. Rows are never
// edited or deleted.
type GardenAchievement struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	ChildID string `gorm:"index;not null" json:"child_id"`

	Kind   string `gorm:"type:varchar(16);index;not null" json:"kind"` // leaf, branch, flower, fruit
	Label  string `gorm:"not null" json:"label"`                       // game type, module name or achievement type
	Points int    `json:"points" gorm:"default:1"`                     // counter weight; leaves carry a point value

	Message string `json:"message,omitempty"`

	EarnedAt time.Time `gorm:"index" json:"earned_at"`
}
