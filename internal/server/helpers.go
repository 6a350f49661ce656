package server

import (
	"errors"

	"husq/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes the 400 JSON response itself and reports ok=false, so callers
// just return nil and cannot accidentally let Fiber's ErrorHandler overwrite
// the committed body.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param != "id" {
			label = param
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, false
	}
	return uint(id), true
}

// parseCursor extracts the optional cursor query parameter. Zero means the
// first page.
func parseCursor(c *fiber.Ctx) uint {
	cursor := c.QueryInt("cursor", 0)
	if cursor < 0 {
		cursor = 0
	}
	return uint(cursor)
}

// respondServiceError maps a service or repository error onto its HTTP
// status. Anything that is not a tagged application error is treated as an
// internal failure and kept generic.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		case models.CodeForbidden:
			status = fiber.StatusForbidden
		case models.CodeConflict:
			status = fiber.StatusConflict
		}
	}
	return models.RespondWithError(c, status, err)
}
