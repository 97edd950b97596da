package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lucky-TB/zephyrun-exp1/internal/query"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		routes, err := svc.List(c.Context(), f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		detail, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(detail)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Route
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		req.CreatedBy, _ = c.Locals("user_id").(string)
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/:id/ratings", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.BodyParser(&body); err != nil || body.Rating < 1 || body.Rating > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "rating between 1 and 5 required")
		}
		userID, _ := c.Locals("user_id").(string)
		rating, err := svc.Rate(c.Context(), Rating{
			RouteID: c.Params("id"),
			UserID:  userID,
			Rating:  body.Rating,
			Comment: body.Comment,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rating)
	})
}

func filterFromQuery(c *fiber.Ctx) (query.RouteFilter, error) {
	var f query.RouteFilter
	var err error

	if terrain := c.Query("terrain"); terrain != "" {
		f.Terrain = strings.Split(terrain, ",")
	}
	if f.MinDistance, err = floatParam(c, "min_distance"); err != nil {
		return f, err
	}
	if f.MaxDistance, err = floatParam(c, "max_distance"); err != nil {
		return f, err
	}
	if f.MinDifficulty, err = intParam(c, "min_difficulty"); err != nil {
		return f, err
	}
	if f.MaxDifficulty, err = intParam(c, "max_difficulty"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(c, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = intParam(c, "offset"); err != nil {
		return f, err
	}
	return f, nil
}

func floatParam(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

func intParam(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}
