package server

import (
	"strconv"

	"questa/internal/middleware"
	"questa/internal/models"
	"questa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

type updatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// CreatePost creates a post owned by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   identity.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts lists posts with optional filters, pagination, and sort order.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	params := parseListParams(c)

	in := service.ListPostsInput{
		Category:   c.Query("category"),
		Slug:       c.Query("slug"),
		SearchTerm: c.Query("searchTerm"),
		StartIndex: params.StartIndex,
		Limit:      params.Limit,
		Order:      c.Query("order"),
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithAppError(c, models.NewValidationError("Invalid user ID"))
		}
		in.UserID = uint(id)
	}
	if raw := c.Query("postId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithAppError(c, models.NewValidationError("Invalid post ID"))
		}
		in.PostID = uint(id)
	}

	page, err := s.postService.ListPosts(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// UpdatePost applies a partial update to a post. The route names the owner;
// the caller must be an admin whose id matches it.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	postID, err := parseID(c, "postId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	ownerID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:   postID,
		OwnerID:  ownerID,
		UserID:   identity.UserID,
		IsAdmin:  identity.IsAdmin,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post and all of its comments. Only the owner or an
// admin may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	postID, err := parseID(c, "postId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !identity.IsAdmin && identity.UserID != post.UserID {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You are not allowed to delete this post"))
	}

	if err := s.postService.DeletePost(c.UserContext(), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "The post has been deleted",
	})
}

// LikePost toggles the caller's like on a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	postID, err := parseID(c, "postId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.postService.ToggleLike(c.UserContext(), postID, identity.UserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}
