package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"growth-garden-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tree level derivation. The weights and thresholds intentionally stay
// independent from the growth meter thresholds in scoring.go: the tree tracks
// engagement, the meter tracks skill.
var TreeKindWeights = map[string]int64{ // kind → tree score per unit
	models.AchievementLeaf:   1,
	models.AchievementBranch: 10,
	models.AchievementFlower: 25,
	models.AchievementFruit:  50,
}

var TreeLevelThresholds = map[int]int64{ // level → min tree score
	1: 0,
	2: 50,
	3: 150,
	4: 300,
	5: 500,
}

// TreeLevelFromTotals derives the tree level (1-5) from the four counters.
// Pure and idempotent; recomputed on every read, never stored.
func TreeLevelFromTotals(leaves, branches, flowers, fruits int64) int {
	score := leaves*TreeKindWeights[models.AchievementLeaf] +
		branches*TreeKindWeights[models.AchievementBranch] +
		flowers*TreeKindWeights[models.AchievementFlower] +
		fruits*TreeKindWeights[models.AchievementFruit]
	for level := 5; level >= 1; level-- {
		if score >= TreeLevelThresholds[level] {
			return level
		}
	}
	return 1
}

var counterColumns = map[string]string{
	models.AchievementLeaf:   "total_leaves",
	models.AchievementBranch: "total_branches",
	models.AchievementFlower: "total_flowers",
	models.AchievementFruit:  "total_fruits",
}

type GardenService struct {
	DB *gorm.DB
}

func NewGardenService(db *gorm.DB) *GardenService {
	return &GardenService{DB: db}
}

// CreateGarden creates the garden that accompanies a new child profile.
// Called inside the child-creation transaction so a child never exists
// without its garden.
func (s *GardenService) CreateGarden(tx *gorm.DB, childID string) (*models.GrowthGarden, error) {
	garden := models.GrowthGarden{
		ID:          uuid.NewString(),
		ChildID:     childID,
		LastUpdated: time.Now().UTC(),
	}
	garden.TreeLevel = 1
	if err := tx.Create(&garden).Error; err != nil {
		return nil, err
	}
	return &garden, nil
}

// ApplyEvent increments the matching counter and appends the achievement row
// in one transaction, so the counters can always be reconciled from the rows.
// Leaves increment by the event's point value; every other kind by 1.
func (s *GardenService) ApplyEvent(event *models.GardenAchievement) error {
	column, ok := counterColumns[event.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown achievement kind %q", ErrInvalidInput, event.Kind)
	}
	if event.Points <= 0 {
		event.Points = 1
	}
	weight := 1
	if event.Kind == models.AchievementLeaf {
		weight = event.Points
	} else {
		event.Points = 1
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.EarnedAt.IsZero() {
		event.EarnedAt = time.Now().UTC()
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.GrowthGarden{}).
			Where("child_id = ?", event.ChildID).
			UpdateColumns(map[string]interface{}{
				column:         gorm.Expr(column+" + ?", weight),
				"last_updated": event.EarnedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGardenNotFound
		}
		return tx.Create(event).Error
	})
}

// AddBranch records an externally-signaled module completion.
func (s *GardenService) AddBranch(childID, moduleName string) (*models.GardenAchievement, error) {
	event := &models.GardenAchievement{
		ChildID: childID,
		Kind:    models.AchievementBranch,
		Label:   moduleName,
	}
	if err := s.ApplyEvent(event); err != nil {
		return nil, err
	}
	log.Printf("🌿 Branch earned: child=%s module=%s", childID, moduleName)
	return event, nil
}

// AddFruit awards a milestone fruit. Fruits are granted through the admin
// route, not derived from sessions.
func (s *GardenService) AddFruit(childID, milestone string) (*models.GardenAchievement, error) {
	event := &models.GardenAchievement{
		ChildID: childID,
		Kind:    models.AchievementFruit,
		Label:   milestone,
	}
	if err := s.ApplyEvent(event); err != nil {
		return nil, err
	}
	log.Printf("🍎 Fruit granted: child=%s milestone=%s", childID, milestone)
	return event, nil
}

// GetGarden returns the garden with its derived tree level plus the full
// achievement history, newest first.
func (s *GardenService) GetGarden(childID string) (*models.GrowthGarden, []models.GardenAchievement, error) {
	var garden models.GrowthGarden
	if err := s.DB.First(&garden, "child_id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGardenNotFound
		}
		return nil, nil, err
	}
	garden.TreeLevel = TreeLevelFromTotals(garden.TotalLeaves, garden.TotalBranches, garden.TotalFlowers, garden.TotalFruits)

	var achievements []models.GardenAchievement
	if err := s.DB.Where("child_id = ?", childID).
		Order("earned_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, nil, err
	}
	return &garden, achievements, nil
}

// GardenDrift reports a counter that no longer matches its event log.
type GardenDrift struct {
	ChildID  string `json:"child_id"`
	Kind     string `json:"kind"`
	Counter  int64  `json:"counter"`
	EventSum int64  `json:"event_sum"`
}

// AuditTotals recomputes each kind's total from the append-only achievement
// rows and returns every counter that disagrees. Read-only: the crash window
// between the session write and the garden update shows up here instead of
// being silently repaired.
func (s *GardenService) AuditTotals() ([]GardenDrift, error) {
	type kindSum struct {
		ChildID string
		Kind    string
		Total   int64
	}
	var sums []kindSum
	if err := s.DB.Model(&models.GardenAchievement{}).
		Select("child_id, kind, SUM(points) AS total").
		Group("child_id, kind").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	eventSums := make(map[string]map[string]int64) // child → kind → sum
	for _, row := range sums {
		if eventSums[row.ChildID] == nil {
			eventSums[row.ChildID] = make(map[string]int64)
		}
		eventSums[row.ChildID][row.Kind] = row.Total
	}

	var gardens []models.GrowthGarden
	if err := s.DB.Find(&gardens).Error; err != nil {
		return nil, err
	}

	var drifts []GardenDrift
	for _, g := range gardens {
		counters := map[string]int64{
			models.AchievementLeaf:   g.TotalLeaves,
			models.AchievementBranch: g.TotalBranches,
			models.AchievementFlower: g.TotalFlowers,
			models.AchievementFruit:  g.TotalFruits,
		}
		for kind, counter := range counters {
			if sum := eventSums[g.ChildID][kind]; sum != counter {
				drifts = append(drifts, GardenDrift{
					ChildID:  g.ChildID,
					Kind:     kind,
					Counter:  counter,
					EventSum: sum,
				})
			}
		}
	}
	return drifts, nil
}
