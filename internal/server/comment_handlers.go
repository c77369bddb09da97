package server

import (
	"questa/internal/middleware"
	"questa/internal/models"
	"questa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Content string `json:"content"`
	// UserID is optional; when present it must match the authenticated user.
	UserID uint `json:"userId"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment adds a comment to a post, authored by the authenticated user.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	postID, err := parseID(c, "postId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   identity.UserID,
		AuthorID: req.UserID,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetPostComments lists a post's comments, newest first.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// GetAllComments is the admin-only listing across all posts.
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	params := parseListParams(c)
	page, err := s.commentService.ListAllComments(c.UserContext(), service.ListAllCommentsInput{
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

// LikeComment toggles the caller's like on a comment.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comment, err := s.commentService.ToggleLike(c.UserContext(), commentID, identity.UserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

// UpdateComment edits a comment's content. Owner or admin only.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    identity.UserID,
		IsAdmin:   identity.IsAdmin,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

// DeleteComment removes a comment. Owner or admin only.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	err = s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    identity.UserID,
		IsAdmin:   identity.IsAdmin,
		CommentID: commentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment has been deleted",
	})
}
