package run

import (
	"strconv"
	"time"

	"github.com/Lucky-TB/zephyrun-exp1/internal/query"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, _ := c.Locals("user_id").(string)
		runs, err := svc.History(c.Context(), userID, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(runs)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Run
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Distance <= 0 || req.Duration <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "distance and duration required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		logged, err := svc.Log(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(logged)
	})
}

func filterFromQuery(c *fiber.Ctx) (query.RunFilter, error) {
	var f query.RunFilter

	for key, dst := range map[string]**time.Time{"start_date": &f.StartDate, "end_date": &f.EndDate} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, key+" must be RFC 3339")
		}
		*dst = &t
	}
	for key, dst := range map[string]**int{"limit": &f.Limit, "offset": &f.Offset} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
		}
		*dst = &v
	}
	return f, nil
}
