package server

import (
	"encoding/json"

	"husq/internal/models"
	"husq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /users. With ?username= it is an exact lookup that
// returns the single user or 404; otherwise a cursor page of users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if username := c.Query("username"); username != "" {
		user, err := s.userService.GetUserByUsername(ctx, username)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(user)
	}

	users, err := s.userService.ListUsers(ctx, parseCursor(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetMyProfile handles GET /users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PATCH /users/:me. Only name and about are
// writable; any other key in the payload is rejected rather than ignored so
// a client cannot silently believe it changed something immutable.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	for key := range raw {
		if key != "name" && key != "about" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unknown field: "+key))
		}
	}

	in := service.UpdateProfileInput{UserID: userID}
	if v, ok := raw["name"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid name"))
		}
		in.Name = &name
	}
	if v, ok := raw["about"]; ok {
		var about string
		if err := json.Unmarshal(v, &about); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid about"))
		}
		in.About = &about
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
