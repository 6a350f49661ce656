package server

import (
	"husq/internal/models"
	"husq/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHusqs handles GET /husqs. The global feed is top-level husqs, newest
// first; with ?userId= it becomes that author's feed, replies included.
func (s *Server) GetHusqs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	authorID := c.QueryInt("userId", 0)
	if authorID < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid userId"))
	}

	husqs, err := s.husqService.Feed(c.UserContext(), service.FeedInput{
		Cursor:        parseCursor(c),
		AuthorID:      uint(authorID),
		CurrentUserID: userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(husqs)
}

// CreateHusq handles POST /husqs
func (s *Server) CreateHusq(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text    string `json:"text"`
		ReplyID *uint  `json:"replyId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	husq, err := s.husqService.CreateHusq(c.UserContext(), service.CreateHusqInput{
		AuthorID: userID,
		Text:     req.Text,
		ReplyID:  req.ReplyID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(husq)
}

// GetHusq handles GET /husqs/:id
func (s *Server) GetHusq(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	husq, svcErr := s.husqService.GetHusq(c.UserContext(), id, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(husq)
}

// DeleteHusq handles DELETE /husqs/:id. A successful delete answers with an
// empty object, and so does deleting a husq that never existed; only trying
// to delete someone else's husq is distinguishable.
func (s *Server) DeleteHusq(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	if svcErr := s.husqService.DeleteHusq(c.UserContext(), service.DeleteHusqInput{
		UserID: userID,
		HusqID: id,
	}); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{})
}

// GetReplies handles GET /husqs/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	replies, svcErr := s.husqService.ListReplies(c.UserContext(), id, parseCursor(c), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(replies)
}

// GetTimeline handles GET /timelines
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	husqs, err := s.husqService.Timeline(c.UserContext(), userID, parseCursor(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(husqs)
}
