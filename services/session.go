package services

import (
	"errors"
	"fmt"
	"time"

	"growth-garden-system/models"
	"growth-garden-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompleteSessionInput is the payload for a finished mini-game attempt.
// Pointer fields distinguish "absent" from zero so validation can name the
// first missing field.
type CompleteSessionInput struct {
	ChildID         string   `json:"child_id"`
	GameType        string   `json:"game_type"`
	GameSubtype     string   `json:"game_subtype"`
	Score           *float64 `json:"score"`
	TimeSpent       *int     `json:"time_spent"`
	DifficultyLevel string   `json:"difficulty_level"`
	CorrectAnswers  int      `json:"correct_answers"`
	TotalQuestions  int      `json:"total_questions"`
	SessionNotes    string   `json:"notes"`
}

// CompleteSessionResult is what the client gets back: the stored session id,
// points credited, and only the achievements unlocked by this call.
type CompleteSessionResult struct {
	SessionID    string                     `json:"session_id"`
	PointsEarned int                        `json:"points_earned"`
	Achievements []models.GardenAchievement `json:"achievements"`
}

// StartSessionResult hands the client the difficulty and time budget for a
// new attempt, derived from the child's current growth meter.
type StartSessionResult struct {
	SessionID        string `json:"session_id"`
	DifficultyLevel  string `json:"difficulty_level"`
	GrowthMeterLevel int    `json:"growth_meter_level"`
	RecommendedTime  int    `json:"recommended_time"` // minutes
}

type SessionService struct {
	DB          *gorm.DB
	Progression *ProgressionService
	Garden      *GardenService
	Rules       []AchievementRule
}

func NewSessionService(db *gorm.DB, progression *ProgressionService, garden *GardenService) *SessionService {
	return &SessionService{
		DB:          db,
		Progression: progression,
		Garden:      garden,
		Rules:       DefaultAchievementRules,
	}
}

func (s *SessionService) validate(input *CompleteSessionInput) error {
	switch {
	case input.ChildID == "":
		return &ValidationError{Field: "child_id"}
	case input.GameType == "":
		return &ValidationError{Field: "game_type"}
	case input.Score == nil:
		return &ValidationError{Field: "score"}
	case input.TimeSpent == nil:
		return &ValidationError{Field: "time_spent"}
	}
	if *input.Score < 0 {
		return fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
	}
	if *input.TimeSpent < 0 {
		return fmt.Errorf("%w: time_spent cannot be negative", ErrInvalidInput)
	}
	if input.CorrectAnswers < 0 || input.TotalQuestions < 0 {
		return fmt.Errorf("%w: answer counts cannot be negative", ErrInvalidInput)
	}
	if input.TotalQuestions > 0 && input.CorrectAnswers > input.TotalQuestions {
		return fmt.Errorf("%w: correct_answers exceeds total_questions", ErrInvalidInput)
	}
	return nil
}

// CompleteSession validates and scores the attempt, records the immutable
// session, then feeds the result through progression and the growth garden.
// The three writes are each durable on their own; a crash mid-way leaves the
// session recorded with the child and garden still to be credited, which the
// garden audit job surfaces.
func (s *SessionService) CompleteSession(input *CompleteSessionInput) (*CompleteSessionResult, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	difficulty := input.DifficultyLevel
	if difficulty == "" {
		difficulty = DifficultyEasy
	}

	pointsEarned := ComputePoints(*input.Score, difficulty)

	session := models.GameSession{
		ID:              uuid.NewString(),
		ChildID:         input.ChildID,
		GameType:        utils.NormalizeGameType(input.GameType),
		GameSubtype:     utils.NormalizeGameType(input.GameSubtype),
		Score:           *input.Score,
		TimeSpent:       *input.TimeSpent,
		DifficultyLevel: difficulty,
		CorrectAnswers:  input.CorrectAnswers,
		TotalQuestions:  input.TotalQuestions,
		PointsEarned:    pointsEarned,
		SessionNotes:    input.SessionNotes,
		CompletedAt:     time.Now().UTC(),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	child, err := s.Progression.ApplySessionResult(session.ChildID, pointsEarned)
	if err != nil {
		return nil, err
	}

	events := EvaluateAchievements(s.Rules, SessionContext{Child: child, Session: &session})
	unlocked := make([]models.GardenAchievement, 0, len(events))
	for i := range events {
		if err := s.Garden.ApplyEvent(&events[i]); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, events[i])
	}

	return &CompleteSessionResult{
		SessionID:    session.ID,
		PointsEarned: pointsEarned,
		Achievements: unlocked,
	}, nil
}

// StartSession reads the child's current state and returns the difficulty and
// recommended time for the next attempt. No writes.
func (s *SessionService) StartSession(childID, gameType string) (*StartSessionResult, error) {
	if childID == "" {
		return nil, &ValidationError{Field: "child_id"}
	}
	if gameType == "" {
		return nil, &ValidationError{Field: "game_type"}
	}

	var child models.Child
	if err := s.DB.First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}

	return &StartSessionResult{
		SessionID:        fmt.Sprintf("%s_%s_%d", childID, utils.NormalizeGameType(gameType), time.Now().Unix()),
		DifficultyLevel:  child.CurrentDifficulty,
		GrowthMeterLevel: child.GrowthMeterLevel,
		RecommendedTime:  RecommendedMinutes(child.CurrentDifficulty),
	}, nil
}
