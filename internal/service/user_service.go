package service

import (
	"context"
	"errors"
	"time"

	"questa/internal/models"
	"questa/internal/repository"
	"questa/internal/validation"

	"gorm.io/gorm"
)

const (
	maxBioLen        = 500
	defaultUserLimit = 9
)

type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

type ListUsersInput struct {
	IsAdmin    bool
	StartIndex int
	Limit      int
	Sort       string
}

type UpdateProfileInput struct {
	TargetID       uint
	UserID         uint
	Username       string
	Bio            string
	ProfilePicture string
}

type DeleteUserInput struct {
	TargetID uint
	UserID   uint
	IsAdmin  bool
}

// UserPage is the admin listing response with collection-level counters.
type UserPage struct {
	Users          []models.User `json:"users"`
	TotalUsers     int64         `json:"totalUsers"`
	LastMonthUsers int64         `json:"lastMonthUsers"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

// ListUsers is the admin-only account listing.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (*UserPage, error) {
	if !in.IsAdmin {
		return nil, models.NewForbiddenError("You are not allowed to see all users")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultUserLimit
	}
	offset := in.StartIndex
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(ctx, limit, offset, in.Sort)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.userRepo.CountCreatedSince(ctx, oneMonthAgo(s.now()))
	if err != nil {
		return nil, err
	}

	return &UserPage{Users: users, TotalUsers: total, LastMonthUsers: lastMonth}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets a user change their own username, bio, and picture.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.TargetID != in.UserID {
		return nil, models.NewForbiddenError("You are not allowed to update this user")
	}

	user, err := s.GetUserByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewConflictError("Username is already taken")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. A user may delete themselves; admins may
// delete anyone.
func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if in.TargetID != in.UserID && !in.IsAdmin {
		return models.NewForbiddenError("You are not allowed to delete this user")
	}
	if _, err := s.GetUserByID(ctx, in.TargetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, in.TargetID)
}
