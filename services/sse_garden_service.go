package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"growth-garden-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StreamAchievementsSSE streams newly earned garden achievements for a child
// to the parent dashboard in real time.
func (s *GardenService) StreamAchievementsSSE(c *fiber.Ctx) error {
	childID := c.Params("child_id")
	parentID := c.Locals("user_id").(string)

	// Ownership check before the stream opens; someone else's child reads as
	// not found.
	var child models.Child
	if err := s.DB.First(&child, "id = ? AND parent_id = ?", childID, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrChildNotFound.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load child",
			"cause": err.Error(),
		})
	}

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	// Use fasthttp stream writer (this replaces Flush)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastEarnedAt time.Time

		// Initialize cursor at the newest existing achievement
		var latest models.GardenAchievement
		if err := s.DB.
			Where("child_id = ?", childID).
			Order("earned_at DESC").
			First(&latest).Error; err == nil {
			lastEarnedAt = latest.EarnedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for child %s: %v", childID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var newEvents []models.GardenAchievement

				err := s.DB.
					Where("child_id = ? AND earned_at > ?", childID, lastEarnedAt).
					Order("earned_at ASC").
					Find(&newEvents).Error
				if err != nil {
					log.Printf("SSE query error for child %s: %v", childID, err)
					continue
				}

				if len(newEvents) == 0 {
					continue
				}

				lastEarnedAt = newEvents[len(newEvents)-1].EarnedAt

				for _, event := range newEvents {
					payload, _ := json.Marshal(event)

					fmt.Fprintf(w,
						"event: achievement\ndata: %s\n\n",
						payload,
					)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
