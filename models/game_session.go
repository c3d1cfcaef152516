package models

import "time"

// GameSession records a single completed mini-game attempt. Immutable once
// written: PointsEarned is computed at creation and never recomputed, and no
// code path updates or deletes session rows.
type GameSession struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	ChildID string `gorm:"index;not null" json:"child_id"`

	GameType    string `gorm:"index;not null" json:"game_type"` // "reading", "memory", "math", ...
	GameSubtype string `json:"game_subtype,omitempty"`

	// Game outcome
	Score           float64 `json:"score"`
	TimeSpent       int     `json:"time_spent" gorm:"default:0"` // seconds
	DifficultyLevel string  `json:"difficulty_level" gorm:"type:varchar(16)"`
	CorrectAnswers  int     `json:"correct_answers" gorm:"default:0"`
	TotalQuestions  int     `json:"total_questions" gorm:"default:0"`

	// Points awarded (pre-calculated to avoid recomputation)
	PointsEarned int `json:"points_earned" gorm:"default:0"`

	SessionNotes string `json:"session_notes,omitempty"`

	CompletedAt time.Time `gorm:"index" json:"completed_at"`

	Timestamps
}
