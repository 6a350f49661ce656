package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"husq/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHusqService_CreateHusq_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		svc := NewHusqService(new(MockHusqRepository), new(MockUserRepository))
		_, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("text over 140 characters", func(t *testing.T) {
		svc := NewHusqService(new(MockHusqRepository), new(MockUserRepository))
		_, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1, Text: strings.Repeat("x", 141)})
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("exactly 140 characters is fine", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Husq")).Return(nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		husq, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1, Text: strings.Repeat("x", 140)})
		require.NoError(t, err)
		assert.False(t, husq.Liked)
		assert.Zero(t, husq.LikeCount)
	})

	t.Run("reply to a missing parent names it", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(77)).Return(nil, models.NewNotFoundError("Husq", 77))

		svc := NewHusqService(repo, new(MockUserRepository))
		parent := uint(77)
		_, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1, Text: "hi", ReplyID: &parent})
		assertCode(t, err, models.CodeValidation)
		assert.Contains(t, err.Error(), "77")
	})

	t.Run("store failure while resolving the parent stays internal", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(77)).
			Return(nil, models.NewInternalError(errors.New("connection reset")))

		svc := NewHusqService(repo, new(MockUserRepository))
		parent := uint(77)
		_, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1, Text: "hi", ReplyID: &parent})
		assertCode(t, err, models.CodeInternal)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("reply to a tombstone is rejected the same way", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(77)).
			Return(&models.Husq{ID: 77, Deleted: true}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		parent := uint(77)
		_, err := svc.CreateHusq(ctx, CreateHusqInput{AuthorID: 1, Text: "hi", ReplyID: &parent})
		assertCode(t, err, models.CodeValidation)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestHusqService_DeleteHusq(t *testing.T) {
	ctx := context.Background()

	t.Run("missing husq is a silent success", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(4)).Return(nil, models.NewNotFoundError("Husq", 4))

		svc := NewHusqService(repo, new(MockUserRepository))
		err := svc.DeleteHusq(ctx, DeleteHusqInput{UserID: 1, HusqID: 4})
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "SoftDelete")
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(4)).Return(&models.Husq{ID: 4, AuthorID: 2}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		err := svc.DeleteHusq(ctx, DeleteHusqInput{UserID: 1, HusqID: 4})
		assertCode(t, err, models.CodeForbidden)
	})

	t.Run("second delete is the same no-op", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(4)).
			Return(&models.Husq{ID: 4, AuthorID: 1, Deleted: true}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		err := svc.DeleteHusq(ctx, DeleteHusqInput{UserID: 1, HusqID: 4})
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "SoftDelete")
	})

	t.Run("author tombstones", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(4)).Return(&models.Husq{ID: 4, AuthorID: 1}, nil)
		repo.On("SoftDelete", mock.Anything, uint(4)).Return(nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		err := svc.DeleteHusq(ctx, DeleteHusqInput{UserID: 1, HusqID: 4})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestHusqService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("own husq rejected", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetByID", mock.Anything, uint(4), uint(0)).
			Return(&models.Husq{ID: 4, AuthorID: 1}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		_, err := svc.Like(ctx, 1, 4)
		assertCode(t, err, models.CodeValidation)
		repo.AssertNotCalled(t, "Like")
	})

	t.Run("invisible husq is not found", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetByID", mock.Anything, uint(4), uint(0)).
			Return(nil, models.NewNotFoundError("Husq", 4))

		svc := NewHusqService(repo, new(MockUserRepository))
		_, err := svc.Like(ctx, 1, 4)
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("connect returns the liker page", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetByID", mock.Anything, uint(4), uint(0)).
			Return(&models.Husq{ID: 4, AuthorID: 2}, nil)
		repo.On("Like", mock.Anything, uint(1), uint(4)).Return(nil)
		repo.On("Likers", mock.Anything, uint(4), mock.Anything).
			Return([]models.User{{ID: 1}}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		likers, err := svc.Like(ctx, 1, 4)
		require.NoError(t, err)
		require.Len(t, likers, 1)
	})
}

func TestHusqService_ListReplies(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted parent keeps its thread listable", func(t *testing.T) {
		parentID := uint(5)
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, parentID).
			Return(&models.Husq{ID: parentID, AuthorID: 2, Deleted: true}, nil)
		repo.On("Replies", mock.Anything, parentID, mock.Anything, uint(3)).
			Return([]*models.Husq{{ID: 6, ReplyID: &parentID}}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		replies, err := svc.ListReplies(ctx, parentID, 0, 3)
		require.NoError(t, err)
		require.Len(t, replies, 1)
	})

	t.Run("parent that never existed is not found", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("GetAny", mock.Anything, uint(9)).
			Return(nil, models.NewNotFoundError("Husq", 9))

		svc := NewHusqService(repo, new(MockUserRepository))
		_, err := svc.ListReplies(ctx, 9, 0, 3)
		assertCode(t, err, models.CodeNotFound)
		repo.AssertNotCalled(t, "Replies")
	})
}

func TestHusqService_ListLiked_MissingUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Exists", mock.Anything, uint(9)).Return(false, nil)

	svc := NewHusqService(new(MockHusqRepository), userRepo)
	_, err := svc.ListLiked(context.Background(), 9, 0, 1)
	assertCode(t, err, models.CodeNotFound)
}

func TestHusqService_Feed_AuthorFilterSwitchesShape(t *testing.T) {
	ctx := context.Background()

	t.Run("global", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("List", mock.Anything, mock.Anything, uint(3)).Return([]*models.Husq{}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		_, err := svc.Feed(ctx, FeedInput{CurrentUserID: 3})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListByAuthor")
	})

	t.Run("author", func(t *testing.T) {
		repo := new(MockHusqRepository)
		repo.On("ListByAuthor", mock.Anything, uint(7), mock.Anything, uint(3)).
			Return([]*models.Husq{}, nil)

		svc := NewHusqService(repo, new(MockUserRepository))
		_, err := svc.Feed(ctx, FeedInput{AuthorID: 7, CurrentUserID: 3})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "List")
	})
}
