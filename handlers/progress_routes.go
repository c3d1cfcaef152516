// handlers/progress_routes.go
package handlers

import (
	"strconv"

	"growth-garden-system/middleware"
	"growth-garden-system/services"
	"growth-garden-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App, childService *services.ChildService, gardenService *services.GardenService, analyticsService *services.AnalyticsService, authClient *services.AuthServiceClient) {
	secured := app.Group("/progress", middleware.UserContextMiddleware())

	secured.Get("/:child_id/recent", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)
		childID := c.Params("child_id")

		if _, err := childService.GetChildForParent(childID, parentID); err != nil {
			return respondError(c, err)
		}

		days, _ := strconv.Atoi(c.Query("days", "30"))
		gameType := utils.NormalizeGameType(c.Query("game_type", ""))

		sessions, err := analyticsService.RecentProgress(childID, gameType, days)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"sessions": sessions,
		})
	})

	secured.Get("/:child_id/summary", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)
		childID := c.Params("child_id")

		child, err := childService.GetChildForParent(childID, parentID)
		if err != nil {
			return respondError(c, err)
		}

		summary, err := analyticsService.PerformanceSummary(childID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"child_id":           child.ID,
			"growth_meter_level": child.GrowthMeterLevel,
			"current_difficulty": child.CurrentDifficulty,
			"total_points":       child.TotalPoints,
			"performance":        summary,
		})
	})

	secured.Get("/:child_id/garden", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)
		childID := c.Params("child_id")

		if _, err := childService.GetChildForParent(childID, parentID); err != nil {
			return respondError(c, err)
		}

		garden, achievements, err := gardenService.GetGarden(childID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"garden":       garden,
			"achievements": achievements,
		})
	})

	// SSE stream — query-param auth, since EventSource cannot set the
	// gateway headers.
	app.Get("/progress/:child_id/garden/stream", middleware.SSEAuthMiddleware(authClient), gardenService.StreamAchievementsSSE)

	// Admin endpoints
	admin := app.Group("/admin", middleware.UserContextMiddleware())

	admin.Post("/garden/fruit", func(c *fiber.Ctx) error {
		type Req struct {
			ChildID   string `json:"child_id"`
			Milestone string `json:"milestone"`
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
		if req.Milestone == "" {
			return respondError(c, &services.ValidationError{Field: "milestone"})
		}

		event, err := gardenService.AddFruit(req.ChildID, req.Milestone)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":     "Fruit granted successfully",
			"achievement": event,
		})
	})
}
