package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"growth-garden-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChildService struct {
	DB     *gorm.DB
	Garden *GardenService
}

func NewChildService(db *gorm.DB, garden *GardenService) *ChildService {
	return &ChildService{DB: db, Garden: garden}
}

// CreateChildInput is the payload for enrolling a new learner.
type CreateChildInput struct {
	Name                 string   `json:"name"`
	Age                  *int     `json:"age"`
	LearningDifficulties []string `json:"learning_difficulties"`
	AttentionSpan        string   `json:"attention_span"`
}

// CreateChild creates a child profile owned by the parent plus its growth
// garden in the same transaction — a child always has exactly one garden.
// New children start at level 1, easy difficulty, zero points.
func (s *ChildService) CreateChild(parentID string, input *CreateChildInput) (*models.Child, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if input.Age == nil {
		return nil, &ValidationError{Field: "age"}
	}

	difficulties := input.LearningDifficulties
	if difficulties == nil {
		difficulties = []string{}
	}
	difficultiesJSON, err := json.Marshal(difficulties)
	if err != nil {
		return nil, err
	}

	attentionSpan := input.AttentionSpan
	if attentionSpan == "" {
		attentionSpan = "short"
	}

	child := models.Child{
		ID:                   uuid.NewString(),
		ParentID:             parentID,
		Name:                 input.Name,
		Age:                  *input.Age,
		LearningDifficulties: string(difficultiesJSON),
		AttentionSpan:        attentionSpan,
		GrowthMeterLevel:     1,
		CurrentDifficulty:    DifficultyEasy,
		TotalPoints:          0,
		LastActivity:         time.Now().UTC(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&child).Error; err != nil {
			return err
		}
		_, err := s.Garden.CreateGarden(tx, child.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("👧 Child profile created: %s (parent %s)", child.ID, parentID)
	return &child, nil
}

// GetChild fetches a child without an ownership check. Internal callers only.
func (s *ChildService) GetChild(childID string) (*models.Child, error) {
	var child models.Child
	if err := s.DB.First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return &child, nil
}

// GetChildForParent fetches a child and enforces that it belongs to the
// requesting parent. A child owned by someone else reads as not found.
func (s *ChildService) GetChildForParent(childID, parentID string) (*models.Child, error) {
	var child models.Child
	if err := s.DB.First(&child, "id = ? AND parent_id = ?", childID, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return &child, nil
}

// GetChildrenByParent lists all children enrolled by a parent.
func (s *ChildService) GetChildrenByParent(parentID string) ([]models.Child, error) {
	var children []models.Child
	err := s.DB.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}
