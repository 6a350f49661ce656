// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"husq/internal/cache"
	"husq/internal/models"
	"husq/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users, credentials and
// the follow graph.
type UserRepository interface {
	// Create stores the user and their credential in a single transaction;
	// either both rows exist afterwards or neither does.
	Create(ctx context.Context, user *models.User, digest string) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, page pagination.Page) ([]models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)

	Followers(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error)
	Follows(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error)
	Follow(ctx context.Context, userID, followerID uint) error
	Unfollow(ctx context.Context, userID, followerID uint) error
	IsFollowing(ctx context.Context, userID, followerID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User, digest string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		cred := &models.Credential{UserID: user.ID, Password: digest}
		return tx.Create(cred).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}

	var cred models.Credential
	if err := r.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	cred.User = *user
	return &cred, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, page pagination.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(page.Scope("users.id")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Followers(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.user_id = ?", userID).
		Scopes(page.Scope("users.id")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Follows(ctx context.Context, userID uint, page pagination.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.user_id = users.id").
		Where("follows.follower_id = ?", userID).
		Scopes(page.Scope("users.id")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Follow connects followerID to userID. The edge is a set: a duplicate
// connect hits the unique index and is dropped, so concurrent or repeated
// follows are no-op successes.
func (r *userRepository) Follow(ctx context.Context, userID, followerID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{UserID: userID, FollowerID: followerID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Unfollow removes the edge; deleting a non-existent edge is a no-op success.
func (r *userRepository) Unfollow(ctx context.Context, userID, followerID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) IsFollowing(ctx context.Context, userID, followerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
