package services

import (
	"testing"

	"growth-garden-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCtx(gameType string, score float64) SessionContext {
	return SessionContext{
		Child: &models.Child{ID: "child-1"},
		Session: &models.GameSession{
			ChildID:  "child-1",
			GameType: gameType,
			Score:    score,
		},
	}
}

func TestSessionLeafRule(t *testing.T) {
	events := SessionLeafRule(sessionCtx("memory", 12))
	require.Len(t, events, 1)
	assert.Equal(t, models.AchievementLeaf, events[0].Kind)
	assert.Equal(t, "memory", events[0].Label)
	assert.Equal(t, 1, events[0].Points)
}

func TestPerfectScoreRule(t *testing.T) {
	assert.Empty(t, PerfectScoreRule(sessionCtx("math", 99.5)))

	events := PerfectScoreRule(sessionCtx("math", 100))
	require.Len(t, events, 1)
	assert.Equal(t, models.AchievementFlower, events[0].Kind)
	assert.Equal(t, "perfect_score", events[0].Label)

	// The threshold is a score value, not a percentage cap.
	assert.Len(t, PerfectScoreRule(sessionCtx("math", 250)), 1)
}

func TestEvaluateAchievementsOrder(t *testing.T) {
	events := EvaluateAchievements(DefaultAchievementRules, sessionCtx("reading", 110))
	require.Len(t, events, 2)
	assert.Equal(t, models.AchievementLeaf, events[0].Kind)
	assert.Equal(t, models.AchievementFlower, events[1].Kind)

	events = EvaluateAchievements(DefaultAchievementRules, sessionCtx("reading", 40))
	require.Len(t, events, 1)
	assert.Equal(t, models.AchievementLeaf, events[0].Kind)
}

func TestEvaluateAchievementsExtension(t *testing.T) {
	marathonRule := func(ctx SessionContext) []models.GardenAchievement {
		if ctx.Session.TimeSpent < 600 {
			return nil
		}
		return []models.GardenAchievement{{
			ChildID: ctx.Session.ChildID,
			Kind:    models.AchievementFlower,
			Label:   "marathon",
		}}
	}

	rules := append([]AchievementRule{}, DefaultAchievementRules...)
	rules = append(rules, marathonRule)

	ctx := sessionCtx("memory", 30)
	ctx.Session.TimeSpent = 700

	events := EvaluateAchievements(rules, ctx)
	require.Len(t, events, 2)
	assert.Equal(t, "marathon", events[1].Label)
}
