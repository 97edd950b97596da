package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterRoutes(r fiber.Router, m *Manager) {
	r.Post("/register", func(c *fiber.Ctx) error {
		var req credentials
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}
		if err := m.SignUp(c.Context(), req.Email, req.Password); err != nil {
			return authStatus(err)
		}
		return c.Status(fiber.StatusCreated).JSON(m.Snapshot())
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req credentials
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}
		if err := m.SignIn(c.Context(), req.Email, req.Password); err != nil {
			return authStatus(err)
		}
		return c.JSON(m.Snapshot())
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if err := m.SignOut(c.Context()); err != nil {
			return authStatus(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/session", func(c *fiber.Ctx) error {
		return c.JSON(m.Snapshot())
	})

	// streams the current snapshot followed by every transition
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		ch := m.Subscribe()
		defer m.Unsubscribe(ch)

		if err := c.WriteJSON(m.Snapshot()); err != nil {
			return
		}
		for snap := range ch {
			if err := c.WriteJSON(snap); err != nil {
				return
			}
		}
	}))
}

func authStatus(err error) error {
	if errors.Is(err, ErrDisposed) {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return fiber.NewError(fiber.StatusUnauthorized, err.Error())
}
