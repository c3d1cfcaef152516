package services

import (
	"errors"
	"testing"

	"growth-garden-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionService(t *testing.T) (*SessionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewSessionService(db, NewProgressionService(db), NewGardenService(db)), db
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCompleteSessionHappyPath(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	result, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:         child.ID,
		GameType:        "Memory Match",
		Score:           floatPtr(80),
		TimeSpent:       intPtr(240),
		DifficultyLevel: DifficultyMedium,
		CorrectAnswers:  8,
		TotalQuestions:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 120, result.PointsEarned)
	require.Len(t, result.Achievements, 1)
	assert.Equal(t, models.AchievementLeaf, result.Achievements[0].Kind)

	var session models.GameSession
	require.NoError(t, db.First(&session, "id = ?", result.SessionID).Error)
	assert.Equal(t, "memory-match", session.GameType)
	assert.Equal(t, 80.0, session.Score)
	assert.Equal(t, 240, session.TimeSpent)
	assert.Equal(t, 120, session.PointsEarned)
	assert.False(t, session.CompletedAt.IsZero())

	var stored models.Child
	require.NoError(t, db.First(&stored, "id = ?", child.ID).Error)
	assert.Equal(t, int64(120), stored.TotalPoints)
	assert.Equal(t, 2, stored.GrowthMeterLevel)
	assert.Equal(t, DifficultyEasy, stored.CurrentDifficulty)

	var garden models.GrowthGarden
	require.NoError(t, db.First(&garden, "child_id = ?", child.ID).Error)
	assert.EqualValues(t, 1, garden.TotalLeaves)
	assert.EqualValues(t, 0, garden.TotalFlowers)
}

func TestCompleteSessionPerfectScore(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	result, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:   child.ID,
		GameType:  "math",
		Score:     floatPtr(100),
		TimeSpent: intPtr(300),
	})
	require.NoError(t, err)
	require.Len(t, result.Achievements, 2)
	assert.Equal(t, models.AchievementLeaf, result.Achievements[0].Kind)
	assert.Equal(t, models.AchievementFlower, result.Achievements[1].Kind)

	var garden models.GrowthGarden
	require.NoError(t, db.First(&garden, "child_id = ?", child.ID).Error)
	assert.EqualValues(t, 1, garden.TotalLeaves)
	assert.EqualValues(t, 1, garden.TotalFlowers)
}

func TestCompleteSessionGardenCounts(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	scores := []float64{100, 50, 120, 99, 100} // 3 of 5 reach the flower threshold
	for _, score := range scores {
		_, err := svc.CompleteSession(&CompleteSessionInput{
			ChildID:   child.ID,
			GameType:  "reading",
			Score:     floatPtr(score),
			TimeSpent: intPtr(60),
		})
		require.NoError(t, err)
	}

	var garden models.GrowthGarden
	require.NoError(t, db.First(&garden, "child_id = ?", child.ID).Error)
	assert.EqualValues(t, 5, garden.TotalLeaves)
	assert.EqualValues(t, 3, garden.TotalFlowers)

	// Counters always match the event log.
	drifts, err := NewGardenService(db).AuditTotals()
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestCompleteSessionMissingFields(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	tests := []struct {
		name  string
		input CompleteSessionInput
		field string
	}{
		{"missing child_id", CompleteSessionInput{GameType: "math", Score: floatPtr(10), TimeSpent: intPtr(5)}, "child_id"},
		{"missing game_type", CompleteSessionInput{ChildID: child.ID, Score: floatPtr(10), TimeSpent: intPtr(5)}, "game_type"},
		{"missing score", CompleteSessionInput{ChildID: child.ID, GameType: "math", TimeSpent: intPtr(5)}, "score"},
		{"missing time_spent", CompleteSessionInput{ChildID: child.ID, GameType: "math", Score: floatPtr(10)}, "time_spent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteSession(&tt.input)
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Validation failures happen before any store write.
	var sessions int64
	require.NoError(t, db.Model(&models.GameSession{}).Count(&sessions).Error)
	assert.EqualValues(t, 0, sessions)

	var stored models.Child
	require.NoError(t, db.First(&stored, "id = ?", child.ID).Error)
	assert.EqualValues(t, 0, stored.TotalPoints)

	var garden models.GrowthGarden
	require.NoError(t, db.First(&garden, "child_id = ?", child.ID).Error)
	assert.EqualValues(t, 0, garden.TotalLeaves)
}

func TestCompleteSessionNegativeScore(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	_, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:   child.ID,
		GameType:  "math",
		Score:     floatPtr(-5),
		TimeSpent: intPtr(60),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCompleteSessionUnknownChild(t *testing.T) {
	svc, db := newSessionService(t)

	_, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:   "no-such-child",
		GameType:  "math",
		Score:     floatPtr(50),
		TimeSpent: intPtr(60),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChildNotFound))

	// The session write precedes the progression update, so the record
	// remains even though the child was never credited.
	var sessions int64
	require.NoError(t, db.Model(&models.GameSession{}).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}

func TestCompleteSessionDefaultsDifficulty(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	result, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:   child.ID,
		GameType:  "math",
		Score:     floatPtr(40),
		TimeSpent: intPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 40, result.PointsEarned)

	var session models.GameSession
	require.NoError(t, db.First(&session, "id = ?", result.SessionID).Error)
	assert.Equal(t, DifficultyEasy, session.DifficultyLevel)
}

func TestStartSession(t *testing.T) {
	svc, db := newSessionService(t)

	easy := seedChild(t, db, 0)
	result, err := svc.StartSession(easy.ID, "reading")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, result.DifficultyLevel)
	assert.Equal(t, 1, result.GrowthMeterLevel)
	assert.Equal(t, 10, result.RecommendedTime)
	assert.NotEmpty(t, result.SessionID)

	advanced := seedChild(t, db, 650)
	result, err = svc.StartSession(advanced.ID, "reading")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, result.DifficultyLevel)
	assert.Equal(t, 4, result.GrowthMeterLevel)
	assert.Equal(t, 15, result.RecommendedTime)
}

func TestStartSessionMissingChild(t *testing.T) {
	svc, _ := newSessionService(t)

	_, err := svc.StartSession("no-such-child", "reading")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChildNotFound))
}

func TestCompletedSessionRoundTrip(t *testing.T) {
	svc, db := newSessionService(t)
	child := seedChild(t, db, 0)

	result, err := svc.CompleteSession(&CompleteSessionInput{
		ChildID:         child.ID,
		GameType:        "memory",
		GameSubtype:     "pairs",
		Score:           floatPtr(75),
		TimeSpent:       intPtr(180),
		DifficultyLevel: DifficultyHard,
		CorrectAnswers:  6,
		TotalQuestions:  8,
	})
	require.NoError(t, err)

	analytics := NewAnalyticsService(db)
	sessions, err := analytics.RecentProgress(child.ID, "", 30)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, result.SessionID, got.ID)
	assert.Equal(t, "memory", got.GameType)
	assert.Equal(t, "pairs", got.GameSubtype)
	assert.Equal(t, 75.0, got.Score)
	assert.Equal(t, 180, got.TimeSpent)
	assert.Equal(t, DifficultyHard, got.DifficultyLevel)
	assert.Equal(t, 6, got.CorrectAnswers)
	assert.Equal(t, 8, got.TotalQuestions)
	assert.Equal(t, 150, got.PointsEarned)
	assert.False(t, got.CompletedAt.IsZero())
}
