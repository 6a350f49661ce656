package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFollowers handles GET /users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	users, svcErr := s.userService.ListFollowers(c.UserContext(), id, parseCursor(c))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(users)
}

// GetFollows handles GET /users/:id/follows
func (s *Server) GetFollows(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	users, svcErr := s.userService.ListFollows(c.UserContext(), id, parseCursor(c))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(users)
}

// FollowUser handles POST /users/:id/followers. The authenticated caller
// becomes a follower of :id; repeating the request changes nothing.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	followers, svcErr := s.userService.Follow(c.UserContext(), id, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(followers)
}

// UnfollowUser handles DELETE /users/:id/followers/:me. The self-match
// guard has already confirmed :me is the caller; removing an edge that does
// not exist succeeds without effect.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	followers, svcErr := s.userService.Unfollow(c.UserContext(), id, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(followers)
}
