// Package service contains the business logic between handlers and
// repositories: input validation, policy checks and edge-case resolution.
package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"husq/internal/models"
	"husq/internal/pagination"
	"husq/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 3
	maxPasswordLen = 20
	maxAboutLen    = 1000
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	About    string
}

type UpdateProfileInput struct {
	UserID uint
	Name   *string
	About  *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the signup payload, stores the bcrypt digest in a
// credentials row created atomically with the user, and returns the user.
// No token is issued; login is a separate step.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if l := utf8.RuneCountInString(in.Username); l < minUsernameLen || l > maxUsernameLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Username must be %d-%d characters", minUsernameLen, maxUsernameLen))
	}
	if l := len(in.Password); l < minPasswordLen || l > maxPasswordLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Password must be %d-%d characters", minPasswordLen, maxPasswordLen))
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if utf8.RuneCountInString(in.About) > maxAboutLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("About too long (max %d characters)", maxAboutLen))
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Name:     in.Name,
		About:    in.About,
	}
	if err := s.userRepo.Create(ctx, user, string(digest)); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the username and password and returns the matching
// user. Unknown usernames and wrong passwords produce the same error so the
// response cannot be used to probe which usernames exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	cred, err := s.userRepo.GetCredentialByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return &cred.User, nil
}

func (s *UserService) ListUsers(ctx context.Context, cursor uint) ([]models.User, error) {
	return s.userRepo.List(ctx, pagination.Users(cursor))
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundByNameError("User", username)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		user.Name = *in.Name
	}
	if in.About != nil {
		if utf8.RuneCountInString(*in.About) > maxAboutLen {
			return nil, models.NewValidationError(
				fmt.Sprintf("About too long (max %d characters)", maxAboutLen))
		}
		user.About = *in.About
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListFollowers(ctx context.Context, userID, cursor uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.Followers(ctx, userID, pagination.Users(cursor))
}

func (s *UserService) ListFollows(ctx context.Context, userID, cursor uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.Follows(ctx, userID, pagination.Users(cursor))
}

// Follow connects followerID to userID and returns the first page of the
// target's followers. Following yourself is rejected; following someone you
// already follow changes nothing.
func (s *UserService) Follow(ctx context.Context, userID, followerID uint) ([]models.User, error) {
	if userID == followerID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Follow(ctx, userID, followerID); err != nil {
		return nil, err
	}
	return s.userRepo.Followers(ctx, userID, pagination.Users(0))
}

func (s *UserService) Unfollow(ctx context.Context, userID, followerID uint) ([]models.User, error) {
	if userID == followerID {
		return nil, models.NewValidationError("Cannot unfollow yourself")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Unfollow(ctx, userID, followerID); err != nil {
		return nil, err
	}
	return s.userRepo.Followers(ctx, userID, pagination.Users(0))
}

func (s *UserService) requireUser(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", id)
	}
	return nil
}
