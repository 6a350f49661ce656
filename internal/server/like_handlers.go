package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLikers handles GET /husqs/:id/likes
func (s *Server) GetLikers(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	users, svcErr := s.husqService.ListLikers(c.UserContext(), id, parseCursor(c))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(users)
}

// GetLikedHusqs handles GET /users/:id/likes
func (s *Server) GetLikedHusqs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	husqs, svcErr := s.husqService.ListLiked(c.UserContext(), id, parseCursor(c), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(husqs)
}

// LikeHusq handles POST /husqs/:id/likes. Liking twice changes nothing.
func (s *Server) LikeHusq(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	likers, svcErr := s.husqService.Like(c.UserContext(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(likers)
}

// UnlikeHusq handles DELETE /husqs/:id/likes/:me. The self-match guard has
// already confirmed :me is the caller; removing a like that was never placed
// succeeds without effect.
func (s *Server) UnlikeHusq(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	likers, svcErr := s.husqService.Unlike(c.UserContext(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(likers)
}
