package repository

import (
	"context"
	"errors"

	"husq/internal/models"
	"husq/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HusqRepository defines persistence operations for husqs and like edges.
type HusqRepository interface {
	Create(ctx context.Context, husq *models.Husq) error
	// GetByID returns the husq with computed counts and the caller's liked
	// flag. Tombstoned husqs are treated as not found.
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Husq, error)
	// GetAny returns the bare row including tombstones. Used for ownership
	// checks on delete, where a second delete of the same husq must not
	// behave differently from the first.
	GetAny(ctx context.Context, id uint) (*models.Husq, error)
	List(ctx context.Context, page pagination.Page, currentUserID uint) ([]*models.Husq, error)
	ListByAuthor(ctx context.Context, authorID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error)
	Replies(ctx context.Context, parentID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error)
	Timeline(ctx context.Context, followerID uint, page pagination.Page) ([]*models.Husq, error)
	LikedBy(ctx context.Context, userID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error)
	SoftDelete(ctx context.Context, id uint) error

	Like(ctx context.Context, userID, husqID uint) error
	Unlike(ctx context.Context, userID, husqID uint) error
	Likers(ctx context.Context, husqID uint, page pagination.Page) ([]models.User, error)
	IsLiked(ctx context.Context, userID, husqID uint) (bool, error)
}

type husqRepository struct {
	db *gorm.DB
}

// NewHusqRepository returns a new HusqRepository implementation.
func NewHusqRepository(db *gorm.DB) HusqRepository {
	return &husqRepository{db: db}
}

// applyHusqDetails adds subqueries to fetch counts and liked status in a
// single query. The liked column reflects the requesting user only and is
// recomputed on every read.
func (r *husqRepository) applyHusqDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "husqs.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.husq_id = husqs.id) as like_count, " +
		"(SELECT COUNT(*) FROM husqs replies WHERE replies.reply_id = husqs.id AND replies.deleted = false) as reply_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.husq_id = husqs.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *husqRepository) Create(ctx context.Context, husq *models.Husq) error {
	if err := r.db.WithContext(ctx).Create(husq).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *husqRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Husq, error) {
	var husq models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("husqs.deleted = ?", false).
		First(&husq, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Husq", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &husq, nil
}

func (r *husqRepository) GetAny(ctx context.Context, id uint) (*models.Husq, error) {
	var husq models.Husq
	if err := r.db.WithContext(ctx).First(&husq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Husq", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &husq, nil
}

// List returns the global feed: top-level husqs only, newest first.
func (r *husqRepository) List(ctx context.Context, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	var husqs []*models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("husqs.deleted = ?", false).
		Where("husqs.reply_id IS NULL").
		Scopes(page.Scope("husqs.id")).
		Find(&husqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return husqs, nil
}

// ListByAuthor returns everything the author wrote, replies included.
func (r *husqRepository) ListByAuthor(ctx context.Context, authorID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	var husqs []*models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("husqs.deleted = ?", false).
		Where("husqs.author_id = ?", authorID).
		Scopes(page.Scope("husqs.id")).
		Find(&husqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return husqs, nil
}

func (r *husqRepository) Replies(ctx context.Context, parentID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	var husqs []*models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("husqs.deleted = ?", false).
		Where("husqs.reply_id = ?", parentID).
		Scopes(page.Scope("husqs.id")).
		Find(&husqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return husqs, nil
}

// Timeline returns top-level husqs authored by users the follower follows.
// The follow set is resolved inside the query so the page comes back in one
// round trip regardless of how many accounts are followed.
func (r *husqRepository) Timeline(ctx context.Context, followerID uint, page pagination.Page) ([]*models.Husq, error) {
	var husqs []*models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), followerID).
		Preload("Author").
		Where("husqs.deleted = ?", false).
		Where("husqs.reply_id IS NULL").
		Where("husqs.author_id IN (SELECT user_id FROM follows WHERE follower_id = ?)", followerID).
		Scopes(page.Scope("husqs.id")).
		Find(&husqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return husqs, nil
}

func (r *husqRepository) LikedBy(ctx context.Context, userID uint, page pagination.Page, currentUserID uint) ([]*models.Husq, error) {
	var husqs []*models.Husq
	err := r.applyHusqDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Joins("JOIN likes ON likes.husq_id = husqs.id").
		Where("likes.user_id = ?", userID).
		Where("husqs.deleted = ?", false).
		Scopes(page.Scope("husqs.id")).
		Find(&husqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return husqs, nil
}

// SoftDelete tombstones the husq. The row survives so replies keep a valid
// parent reference; reads filter it out from then on.
func (r *husqRepository) SoftDelete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Husq{}).
		Where("id = ?", id).
		Update("deleted", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like records the edge. Repeats land on the unique index and are dropped,
// so liking twice is a no-op success.
func (r *husqRepository) Like(ctx context.Context, userID, husqID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, HusqID: husqID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike removes the edge; removing a non-existent edge is a no-op success.
func (r *husqRepository) Unlike(ctx context.Context, userID, husqID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND husq_id = ?", userID, husqID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *husqRepository) Likers(ctx context.Context, husqID uint, page pagination.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.husq_id = ?", husqID).
		Scopes(page.Scope("users.id")).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *husqRepository) IsLiked(ctx context.Context, userID, husqID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND husq_id = ?", userID, husqID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
