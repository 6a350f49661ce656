package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"husq/internal/models"
	"husq/internal/pagination"
	"husq/internal/repository"
)

const maxHusqLen = 140

type HusqService struct {
	husqRepo repository.HusqRepository
	userRepo repository.UserRepository
}

type CreateHusqInput struct {
	AuthorID uint
	Text     string
	ReplyID  *uint
}

type DeleteHusqInput struct {
	UserID uint
	HusqID uint
}

type FeedInput struct {
	Cursor        uint
	AuthorID      uint
	CurrentUserID uint
}

func NewHusqService(husqRepo repository.HusqRepository, userRepo repository.UserRepository) *HusqService {
	return &HusqService{husqRepo: husqRepo, userRepo: userRepo}
}

// CreateHusq validates and stores a new husq. A reply must point at a husq
// the author can still see; replying under a tombstone is rejected rather
// than silently creating an orphaned thread.
func (s *HusqService) CreateHusq(ctx context.Context, in CreateHusqInput) (*models.Husq, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if utf8.RuneCountInString(in.Text) > maxHusqLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Text too long (max %d characters)", maxHusqLen))
	}
	if in.ReplyID != nil {
		parent, err := s.husqRepo.GetAny(ctx, *in.ReplyID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return nil, models.NewValidationError(
					fmt.Sprintf("Husq %d does not exist", *in.ReplyID))
			}
			return nil, err
		}
		if parent.Deleted {
			return nil, models.NewValidationError(
				fmt.Sprintf("Husq %d does not exist", *in.ReplyID))
		}
	}

	husq := &models.Husq{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		ReplyID:  in.ReplyID,
	}
	if err := s.husqRepo.Create(ctx, husq); err != nil {
		return nil, err
	}
	// A fresh husq has no likes or replies; return it without the
	// aggregate round trip.
	return husq, nil
}

func (s *HusqService) GetHusq(ctx context.Context, id, currentUserID uint) (*models.Husq, error) {
	return s.husqRepo.GetByID(ctx, id, currentUserID)
}

// DeleteHusq tombstones the caller's husq. Deleting a husq that does not
// exist, or one already deleted, succeeds without effect so responses do not
// reveal which ids were ever assigned. Only ownership failures surface.
func (s *HusqService) DeleteHusq(ctx context.Context, in DeleteHusqInput) error {
	husq, err := s.husqRepo.GetAny(ctx, in.HusqID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil
		}
		return err
	}
	if husq.AuthorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own husqs")
	}
	if husq.Deleted {
		return nil
	}
	return s.husqRepo.SoftDelete(ctx, in.HusqID)
}

// Feed returns the global feed, or the author's feed when AuthorID is set.
// The author view includes their replies; the global view is top-level only.
func (s *HusqService) Feed(ctx context.Context, in FeedInput) ([]*models.Husq, error) {
	page := pagination.Husqs(in.Cursor)
	if in.AuthorID != 0 {
		return s.husqRepo.ListByAuthor(ctx, in.AuthorID, page, in.CurrentUserID)
	}
	return s.husqRepo.List(ctx, page, in.CurrentUserID)
}

func (s *HusqService) Timeline(ctx context.Context, userID, cursor uint) ([]*models.Husq, error) {
	return s.husqRepo.Timeline(ctx, userID, pagination.Husqs(cursor))
}

// ListReplies returns the thread under a parent. Replies are fetched by
// parent id, so they stay listable after the parent itself is tombstoned;
// only a parent id that was never assigned is not found.
func (s *HusqService) ListReplies(ctx context.Context, parentID, cursor, currentUserID uint) ([]*models.Husq, error) {
	if _, err := s.husqRepo.GetAny(ctx, parentID); err != nil {
		return nil, err
	}
	return s.husqRepo.Replies(ctx, parentID, pagination.Replies(cursor), currentUserID)
}

func (s *HusqService) ListLikers(ctx context.Context, husqID, cursor uint) ([]models.User, error) {
	if _, err := s.husqRepo.GetByID(ctx, husqID, 0); err != nil {
		return nil, err
	}
	return s.husqRepo.Likers(ctx, husqID, pagination.Users(cursor))
}

// ListLiked returns the husqs a user has liked, newest first. Likes on
// since-deleted husqs are filtered out rather than surfacing tombstones.
func (s *HusqService) ListLiked(ctx context.Context, userID, cursor, currentUserID uint) ([]*models.Husq, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.husqRepo.LikedBy(ctx, userID, pagination.Husqs(cursor), currentUserID)
}

// Like records userID liking husqID and returns the first page of likers.
// Liking your own husq is rejected; liking twice changes nothing.
func (s *HusqService) Like(ctx context.Context, userID, husqID uint) ([]models.User, error) {
	husq, err := s.husqRepo.GetByID(ctx, husqID, 0)
	if err != nil {
		return nil, err
	}
	if husq.AuthorID == userID {
		return nil, models.NewValidationError("Cannot like your own husq")
	}
	if err := s.husqRepo.Like(ctx, userID, husqID); err != nil {
		return nil, err
	}
	return s.husqRepo.Likers(ctx, husqID, pagination.Users(0))
}

func (s *HusqService) Unlike(ctx context.Context, userID, husqID uint) ([]models.User, error) {
	husq, err := s.husqRepo.GetByID(ctx, husqID, 0)
	if err != nil {
		return nil, err
	}
	if husq.AuthorID == userID {
		return nil, models.NewValidationError("Cannot unlike your own husq")
	}
	if err := s.husqRepo.Unlike(ctx, userID, husqID); err != nil {
		return nil, err
	}
	return s.husqRepo.Likers(ctx, husqID, pagination.Users(0))
}
