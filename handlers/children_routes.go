// handlers/children_routes.go
package handlers

import (
	"growth-garden-system/middleware"
	"growth-garden-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChildrenRoutes(app *fiber.App, childService *services.ChildService) {
	secured := app.Group("/children", middleware.UserContextMiddleware())

	secured.Post("/", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)

		var input services.CreateChildInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		child, err := childService.CreateChild(parentID, &input)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Child added successfully",
			"child_id": child.ID,
			"child":    child,
		})
	})

	secured.Get("/", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)

		children, err := childService.GetChildrenByParent(parentID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"children": children,
		})
	})

	secured.Get("/:child_id", func(c *fiber.Ctx) error {
		parentID := c.Locals("user_id").(string)

		child, err := childService.GetChildForParent(c.Params("child_id"), parentID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(child)
	})
}
