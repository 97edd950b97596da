package challenge

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		var active *bool
		if raw := c.Query("active"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "active must be true or false")
			}
			active = &v
		}
		limit, offset, err := pageParams(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		challenges, err := svc.List(c.Context(), active, limit, offset)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(challenges)
	})

	r.Post("/:id/join", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		participant, err := svc.Join(c.Context(), c.Params("id"), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(participant)
	})
}

func pageParams(c *fiber.Ctx) (limit, offset *int, err error) {
	for key, dst := range map[string]**int{"limit": &limit, "offset": &offset} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
		}
		*dst = &v
	}
	return limit, offset, nil
}
