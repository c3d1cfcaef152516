package services

import "math"

// Difficulty tiers a session can be attempted at.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ScoreMultipliers define per-difficulty point multipliers (tunable via config/env later)
var ScoreMultipliers = map[string]float64{
	DifficultyEasy:   1.0,
	DifficultyMedium: 1.5,
	DifficultyHard:   2.0,
}

// ComputePoints converts a raw session score into points earned. Unknown
// difficulty values fall back to the easy multiplier rather than failing.
func ComputePoints(score float64, difficulty string) int {
	multiplier, ok := ScoreMultipliers[difficulty]
	if !ok {
		multiplier = 1.0
	}
	return int(math.Floor(score * multiplier))
}

// GrowthLevelThresholds: cumulative points required before each growth meter
// level. Level 5 is the cap.
var GrowthLevelThresholds = map[int]int64{ // level → min points
	1: 0,
	2: 100,
	3: 300,
	4: 600,
	5: 1000,
}

// LevelFromPoints maps a cumulative point total to a growth meter level (1-5).
func LevelFromPoints(totalPoints int64) int {
	for level := 5; level >= 1; level-- {
		if totalPoints >= GrowthLevelThresholds[level] {
			return level
		}
	}
	return 1
}

// DifficultyFromLevel maps a growth meter level to the difficulty tier new
// sessions should be served at.
func DifficultyFromLevel(level int) string {
	switch {
	case level <= 2:
		return DifficultyEasy
	case level <= 4:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// RecommendedMinutes is the fixed per-session time budget for a difficulty.
func RecommendedMinutes(difficulty string) int {
	if difficulty == DifficultyEasy {
		return 10
	}
	return 15
}
