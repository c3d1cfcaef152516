package services

import (
	"growth-garden-system/models"
)

// SessionContext is what achievement rules get to look at: the session that
// just finished plus the child's state after progression was applied.
type SessionContext struct {
	Child   *models.Child
	Session *models.GameSession
}

// AchievementRule inspects a completed session and emits zero or more garden
// events. Rules only append: they never read or rewrite past events.
type AchievementRule func(ctx SessionContext) []models.GardenAchievement

// DefaultAchievementRules are evaluated in order on every completed session.
// New rules (streaks, time-based awards) get appended here without touching
// the session orchestrator.
var DefaultAchievementRules = []AchievementRule{
	SessionLeafRule,
	PerfectScoreRule,
}

// SessionLeafRule: every completed session grows the garden by one leaf,
// tagged with the game type.
func SessionLeafRule(ctx SessionContext) []models.GardenAchievement {
	return []models.GardenAchievement{{
		ChildID: ctx.Session.ChildID,
		Kind:    models.AchievementLeaf,
		Label:   ctx.Session.GameType,
		Points:  1,
	}}
}

// PerfectScoreRule: a score of 100 or more earns a flower. The threshold is a
// score value, not a percentage — scores are not capped at 100.
func PerfectScoreRule(ctx SessionContext) []models.GardenAchievement {
	if ctx.Session.Score < 100 {
		return nil
	}
	return []models.GardenAchievement{{
		ChildID: ctx.Session.ChildID,
		Kind:    models.AchievementFlower,
		Label:   "perfect_score",
		Points:  1,
		Message: "Perfect Score! 🌟",
	}}
}

// EvaluateAchievements runs every rule in registration order and collects the
// emitted events.
func EvaluateAchievements(rules []AchievementRule, ctx SessionContext) []models.GardenAchievement {
	var events []models.GardenAchievement
	for _, rule := range rules {
		events = append(events, rule(ctx)...)
	}
	return events
}
