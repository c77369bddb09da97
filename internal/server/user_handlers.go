package server

import (
	"questa/internal/cache"
	"questa/internal/middleware"
	"questa/internal/models"
	"questa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateUserRequest struct {
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}

// GetMyProfile returns the authenticated user's own account.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	user, err := s.userService.GetUserByID(c.UserContext(), identity.UserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetUserProfile returns a user's public profile, cache-aside through Redis.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var user models.User
	err = cache.Aside(c.UserContext(), cache.UserKey(userID), &user, cache.UserTTL, func() error {
		fetched, err := s.userService.GetUserByID(c.UserContext(), userID)
		if err != nil {
			return err
		}
		user = *fetched
		return nil
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetAllUsers is the admin-only account listing.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	params := parseListParams(c)
	page, err := s.userService.ListUsers(c.UserContext(), service.ListUsersInput{
		IsAdmin:    identity.IsAdmin,
		StartIndex: params.StartIndex,
		Limit:      params.Limit,
		Sort:       params.Sort,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// UpdateUser updates profile fields. Users may only update themselves.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	targetID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		TargetID:       targetID,
		UserID:         identity.UserID,
		Username:       req.Username,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateUser(c.UserContext(), targetID)
	return c.Status(fiber.StatusOK).JSON(user)
}

// DeleteUser removes an account. Self or admin only.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	targetID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	err = s.userService.DeleteUser(c.UserContext(), service.DeleteUserInput{
		TargetID: targetID,
		UserID:   identity.UserID,
		IsAdmin:  identity.IsAdmin,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateUser(c.UserContext(), targetID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User has been deleted",
	})
}
