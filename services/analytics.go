package services

import (
	"math"
	"time"

	"growth-garden-system/models"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// RecentProgress returns a child's sessions from the last N days, newest
// first, optionally filtered by game type. days <= 0 falls back to the
// 30-day default window.
func (s *AnalyticsService) RecentProgress(childID, gameType string, days int) ([]models.GameSession, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	query := s.DB.Where("child_id = ? AND completed_at >= ?", childID, since)
	if gameType != "" {
		query = query.Where("game_type = ?", gameType)
	}

	var sessions []models.GameSession
	err := query.Order("completed_at DESC").Find(&sessions).Error
	return sessions, err
}

// GameTypeSummary aggregates a child's full session history for one game type.
type GameTypeSummary struct {
	GameType      string  `json:"game_type"`
	TotalSessions int64   `json:"total_sessions"`
	AvgScore      float64 `json:"avg_score"`
	TotalPoints   int64   `json:"total_points"`
	TotalTime     int64   `json:"total_time"`
	Accuracy      float64 `json:"accuracy"`
}

// PerformanceSummary groups the child's whole session history by game type.
// Per-session accuracy is correct/total when the session had questions and 0
// otherwise; the zeros stay in the average rather than being excluded.
func (s *AnalyticsService) PerformanceSummary(childID string) ([]GameTypeSummary, error) {
	var rows []GameTypeSummary
	err := s.DB.Raw(`
		SELECT game_type,
		       COUNT(*)           AS total_sessions,
		       AVG(score)         AS avg_score,
		       SUM(points_earned) AS total_points,
		       SUM(time_spent)    AS total_time,
		       AVG(CASE WHEN total_questions > 0
		                THEN CAST(correct_answers AS REAL) / total_questions
		                ELSE 0 END) AS accuracy
		FROM game_sessions
		WHERE child_id = ? AND deleted_at IS NULL
		GROUP BY game_type
	`, childID).Scan(&rows).Error
	return rows, err
}

// WeeklyStats summarizes the last 7 days of play.
type WeeklyStats struct {
	TotalPoints   int64   `json:"total_points"`
	TotalSessions int64   `json:"total_sessions"`
	AverageScore  float64 `json:"average_score"`
}

// WeeklyStats aggregates the rolling 7-day window. AverageScore is 0 when
// there were no sessions.
func (s *AnalyticsService) WeeklyStats(childID string) (*WeeklyStats, error) {
	sessions, err := s.RecentProgress(childID, "", 7)
	if err != nil {
		return nil, err
	}

	stats := &WeeklyStats{TotalSessions: int64(len(sessions))}
	var scoreSum float64
	for _, session := range sessions {
		stats.TotalPoints += int64(session.PointsEarned)
		scoreSum += session.Score
	}
	if stats.TotalSessions > 0 {
		stats.AverageScore = math.Round(scoreSum/float64(stats.TotalSessions)*100) / 100
	}
	return stats, nil
}
