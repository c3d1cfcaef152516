package services

import (
	"fmt"
	"log"
	"time"

	"growth-garden-system/models"

	"gorm.io/gorm"
)

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// ApplySessionResult adds pointsEarned to the child's total and re-derives
// growth meter level and difficulty from the new total. Points, level,
// difficulty and last_activity land in one transaction — no partial update is
// ever visible.
func (s *ProgressionService) ApplySessionResult(childID string, pointsEarned int) (*models.Child, error) {
	if pointsEarned < 0 {
		return nil, fmt.Errorf("%w: points earned cannot be negative", ErrInvalidInput)
	}

	var child models.Child
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// SQL-side increment: two devices finishing sessions at the same time
		// must not lose points to a stale in-memory read.
		res := tx.Model(&models.Child{}).
			Where("id = ?", childID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", pointsEarned))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrChildNotFound
		}

		if err := tx.First(&child, "id = ?", childID).Error; err != nil {
			return err
		}

		child.GrowthMeterLevel = LevelFromPoints(child.TotalPoints)
		child.CurrentDifficulty = DifficultyFromLevel(child.GrowthMeterLevel)
		child.LastActivity = time.Now().UTC()

		return tx.Model(&models.Child{}).
			Where("id = ?", childID).
			UpdateColumns(map[string]interface{}{
				"growth_meter_level": child.GrowthMeterLevel,
				"current_difficulty": child.CurrentDifficulty,
				"last_activity":      child.LastActivity,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🌱 Points awarded: child=%s → total=%d, level=%d, difficulty=%s",
		childID, child.TotalPoints, child.GrowthMeterLevel, child.CurrentDifficulty)

	return &child, nil
}
