// handlers/game_routes.go
package handlers

import (
	"growth-garden-system/middleware"
	"growth-garden-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, sessionService *services.SessionService, gardenService *services.GardenService, analyticsService *services.AnalyticsService, childService *services.ChildService) {
	secured := app.Group("/games", middleware.UserContextMiddleware())

	secured.Post("/start-session", func(c *fiber.Ctx) error {
		type Req struct {
			ChildID  string `json:"child_id"`
			GameType string `json:"game_type"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := sessionService.StartSession(req.ChildID, req.GameType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})

	secured.Post("/complete-session", func(c *fiber.Ctx) error {
		var input services.CompleteSessionInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := sessionService.CompleteSession(&input)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":       "Session completed successfully",
			"session_id":    result.SessionID,
			"points_earned": result.PointsEarned,
			"achievements":  result.Achievements,
		})
	})

	// Module completion is signaled by the curriculum service, not derived
	// from sessions.
	secured.Post("/complete-module", func(c *fiber.Ctx) error {
		type Req struct {
			ChildID    string `json:"child_id"`
			ModuleName string `json:"module_name"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.ChildID == "" {
			return respondError(c, &services.ValidationError{Field: "child_id"})
		}
		if req.ModuleName == "" {
			return respondError(c, &services.ValidationError{Field: "module_name"})
		}

		event, err := gardenService.AddBranch(req.ChildID, req.ModuleName)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":     "Module completed",
			"achievement": event,
		})
	})

	secured.Get("/leaderboard/:child_id", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)
		childID := c.Params("child_id")

		if _, err := childService.GetChildForParent(childID, parentID); err != nil {
			return respondError(c, err)
		}

		stats, err := analyticsService.WeeklyStats(childID)
		if err != nil {
			return respondError(c, err)
		}
		recent, err := analyticsService.RecentProgress(childID, "", 7)
		if err != nil {
			return respondError(c, err)
		}
		if len(recent) > 5 {
			recent = recent[:5]
		}

		return c.JSON(fiber.Map{
			"weekly_stats":    stats,
			"recent_sessions": recent,
		})
	})
}
