package service

import (
	"context"

	"husq/internal/models"
	"husq/internal/pagination"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User, digest string) error {
	args := m.Called(ctx, user, digest)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, page pagination.Page) ([]models.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Followers(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Follows(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Follow(ctx context.Context, userID, followerID uint) error {
	args := m.Called(ctx, userID, followerID)
	return args.Error(0)
}

func (m *MockUserRepository) Unfollow(ctx context.Context, userID, followerID uint) error {
	args := m.Called(ctx, userID, followerID)
	return args.Error(0)
}

func (m *MockUserRepository) IsFollowing(ctx context.Context, userID, followerID uint) (bool, error) {
	args := m.Called(ctx, userID, followerID)
	return args.Bool(0), args.Error(1)
}

type MockHusqRepository struct {
	mock.Mock
}

func (m *MockHusqRepository) Create(ctx context.Context, husq *models.Husq) error {
	args := m.Called(ctx, husq)
	return args.Error(0)
}

func (m *MockHusqRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Husq, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) GetAny(ctx context.Context, id uint) (*models.Husq, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) List(ctx context.Context, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	args := m.Called(ctx, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) ListByAuthor(ctx context.Context, authorID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	args := m.Called(ctx, authorID, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) Replies(ctx context.Context, parentID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	args := m.Called(ctx, parentID, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) Timeline(ctx context.Context, followerID uint, page pagination.Page) ([]*models.Husq, error) {
	args := m.Called(ctx, followerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) LikedBy(ctx context.Context, userID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	args := m.Called(ctx, userID, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Husq), args.Error(1)
}

func (m *MockHusqRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHusqRepository) Like(ctx context.Context, userID, husqID uint) error {
	args := m.Called(ctx, userID, husqID)
	return args.Error(0)
}

func (m *MockHusqRepository) Unlike(ctx context.Context, userID, husqID uint) error {
	args := m.Called(ctx, userID, husqID)
	return args.Error(0)
}

func (m *MockHusqRepository) Likers(ctx context.Context, husqID uint, page pagination.Page) ([]models.User, error) {
	args := m.Called(ctx, husqID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockHusqRepository) IsLiked(ctx context.Context, userID, husqID uint) (bool, error) {
	args := m.Called(ctx, userID, husqID)
	return args.Bool(0), args.Error(1)
}
