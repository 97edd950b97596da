package condition

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/route/:routeID", func(c *fiber.Ctx) error {
		conditions, err := svc.ForRoute(c.Context(), c.Params("routeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(conditions)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Condition
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.RouteID == "" || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id and condition_type required")
		}
		req.ReportedBy, _ = c.Locals("user_id").(string)
		reported, err := svc.Report(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(reported)
	})

	r.Post("/:id/resolve", authMiddleware, func(c *fiber.Ctx) error {
		resolved, err := svc.Resolve(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(resolved)
	})
}
