// Package service implements the business rules of the Questa API.
package service

import (
	"context"
	"errors"
	"time"

	"questa/internal/models"
	"questa/internal/repository"

	"gorm.io/gorm"
)

const (
	maxCommentLen       = 10000
	defaultCommentLimit = 9
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

type CreateCommentInput struct {
	UserID uint
	// AuthorID is the client-supplied author, if any. It must match UserID;
	// impersonating another author is rejected.
	AuthorID uint
	PostID   uint
	Content  string
}

type ListAllCommentsInput struct {
	IsAdmin    bool
	StartIndex int
	Limit      int
	Sort       string
}

type UpdateCommentInput struct {
	UserID    uint
	IsAdmin   bool
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	IsAdmin   bool
	CommentID uint
}

// CommentPage is the admin listing response: one page of comments plus
// collection-level counters.
type CommentPage struct {
	Comments          []*models.Comment `json:"comments"`
	TotalComments     int64             `json:"totalComments"`
	LastMonthComments int64             `json:"lastMonthComments"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// CreateComment persists a new comment authored by the authenticated user and
// returns it denormalized with author and post projections.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.AuthorID != 0 && in.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You are not allowed to create this comment")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.getDecorated(ctx, comment.ID)
}

// ListComments returns all comments on a post, newest first. An unknown post
// id yields an empty list, not an error.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	if err := s.decorateAll(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListAllComments is the admin-only listing across all posts. The trailing
// month counter uses the same day-of-month in the previous month as its
// boundary, not a rolling 30 days.
func (s *CommentService) ListAllComments(ctx context.Context, in ListAllCommentsInput) (*CommentPage, error) {
	if !in.IsAdmin {
		return nil, models.NewForbiddenError("You are not allowed to get all comments")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultCommentLimit
	}
	offset := in.StartIndex
	if offset < 0 {
		offset = 0
	}

	comments, err := s.commentRepo.ListAll(ctx, limit, offset, in.Sort)
	if err != nil {
		return nil, err
	}
	if err := s.decorateAll(ctx, comments); err != nil {
		return nil, err
	}

	total, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.commentRepo.CountCreatedSince(ctx, oneMonthAgo(s.now()))
	if err != nil {
		return nil, err
	}

	return &CommentPage{
		Comments:          comments,
		TotalComments:     total,
		LastMonthComments: lastMonth,
	}, nil
}

// ToggleLike flips the caller's membership in the comment's like-set. The
// add/remove is a single atomic store operation, so concurrent toggles from
// distinct users both land.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.commentRepo.Unlike(ctx, userID, commentID)
	} else {
		err = s.commentRepo.Like(ctx, userID, commentID)
	}
	if err != nil {
		return nil, err
	}

	return s.getDecorated(ctx, commentID)
}

// UpdateComment changes the content of a comment. Only the author or an
// admin may edit.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	if comment.UserID != in.UserID && !in.IsAdmin {
		return nil, models.NewForbiddenError("You are not allowed to edit this comment")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.getDecorated(ctx, in.CommentID)
}

// DeleteComment permanently removes a comment. Only the author or an admin
// may delete.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", in.CommentID)
		}
		return err
	}

	if comment.UserID != in.UserID && !in.IsAdmin {
		return models.NewForbiddenError("You are not allowed to delete this comment")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

func (s *CommentService) getDecorated(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// decorate fills the read-side projections: author, parent post reference
// with its computed url, and the like-set.
func (s *CommentService) decorate(ctx context.Context, comment *models.Comment) error {
	author := comment.User.AsAuthor()
	comment.Author = &author
	ref := comment.Post.AsRef()
	comment.PostRef = &ref

	likes, err := s.commentRepo.LikeUserIDs(ctx, comment.ID)
	if err != nil {
		return err
	}
	if likes == nil {
		likes = []uint{}
	}
	comment.Likes = likes
	return nil
}

func (s *CommentService) decorateAll(ctx context.Context, comments []*models.Comment) error {
	for _, c := range comments {
		if err := s.decorate(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// oneMonthAgo returns midnight on the same day-of-month in the previous
// month, normalized the way calendar arithmetic normalizes overflow
// (e.g. March 31 -> March 3 in a non-leap year).
func oneMonthAgo(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, now.Location())
}
