package services

import (
	"testing"
	"time"

	"growth-garden-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each new pool connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Child{},
		&models.GameSession{},
		&models.GrowthGarden{},
		&models.GardenAchievement{},
	))
	return db
}

// seedChild inserts a child with a consistent level/difficulty for the given
// point total, plus its garden.
func seedChild(t *testing.T, db *gorm.DB, points int64) *models.Child {
	t.Helper()

	level := LevelFromPoints(points)
	child := &models.Child{
		ID:                uuid.NewString(),
		ParentID:          uuid.NewString(),
		Name:              "Ada",
		Age:               7,
		GrowthMeterLevel:  level,
		CurrentDifficulty: DifficultyFromLevel(level),
		TotalPoints:       points,
		LastActivity:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(child).Error)

	garden := &models.GrowthGarden{
		ID:          uuid.NewString(),
		ChildID:     child.ID,
		LastUpdated: time.Now().UTC(),
	}
	require.NoError(t, db.Create(garden).Error)

	return child
}
