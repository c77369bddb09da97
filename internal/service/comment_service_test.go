package service

import (
	"context"
	"testing"
	"time"

	"questa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingPostRepo() *stubPostRepo {
	return &stubPostRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Post, error) {
			return &models.Post{
				ID: id, UserID: 1, Title: "A Post", Slug: "a-post",
				User: models.User{ID: 1, Username: "owner"},
			}, nil
		},
	}
}

func TestCreateComment(t *testing.T) {
	t.Parallel()

	t.Run("creates with empty like-set and author populated", func(t *testing.T) {
		t.Parallel()
		var created *models.Comment
		commentRepo := &stubCommentRepo{
			createFn: func(ctx context.Context, comment *models.Comment) error {
				comment.ID = 11
				created = comment
				return nil
			},
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				created.User = models.User{ID: created.UserID, Username: "u1"}
				created.Post = models.Post{ID: created.PostID, Title: "A Post", Slug: "a-post"}
				return created, nil
			},
		}
		svc := NewCommentService(commentRepo, existingPostRepo())

		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, PostID: 1, Content: "hi",
		})
		require.NoError(t, err)
		assert.Equal(t, "hi", comment.Content)
		assert.Equal(t, 0, comment.NumberOfLikes)
		assert.Equal(t, []uint{}, comment.Likes)
		require.NotNil(t, comment.Author)
		assert.Equal(t, "u1", comment.Author.Username)
		require.NotNil(t, comment.PostRef)
		assert.Equal(t, "/posts/a-post", comment.PostRef.URL)
	})

	t.Run("impersonating another author is forbidden", func(t *testing.T) {
		t.Parallel()
		createCalled := false
		commentRepo := &stubCommentRepo{
			createFn: func(ctx context.Context, comment *models.Comment) error {
				createCalled = true
				return nil
			},
		}
		svc := NewCommentService(commentRepo, existingPostRepo())

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, AuthorID: 3, PostID: 1, Content: "hi",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
		assert.False(t, createCalled)
	})

	t.Run("matching author id is allowed", func(t *testing.T) {
		t.Parallel()
		commentRepo := &stubCommentRepo{
			createFn: func(ctx context.Context, comment *models.Comment) error {
				comment.ID = 12
				return nil
			},
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 2, PostID: 1, Content: "hi"}, nil
			},
		}
		svc := NewCommentService(commentRepo, existingPostRepo())

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, AuthorID: 2, PostID: 1, Content: "hi",
		})
		assert.NoError(t, err)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, existingPostRepo())

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, PostID: 1,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 2, PostID: 404, Content: "hi",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestListAllComments(t *testing.T) {
	t.Parallel()

	t.Run("non-admin is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.ListAllComments(context.Background(), ListAllCommentsInput{IsAdmin: false})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("returns one page of nine with full total", func(t *testing.T) {
		t.Parallel()
		seeded := make([]*models.Comment, 12)
		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := range seeded {
			seeded[i] = &models.Comment{
				ID:        uint(i + 1),
				Content:   "c",
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
		}

		commentRepo := &stubCommentRepo{
			listAllFn: func(ctx context.Context, limit, offset int, order string) ([]*models.Comment, error) {
				assert.Equal(t, 9, limit)
				assert.Equal(t, 0, offset)
				assert.Equal(t, "desc", order)
				// Newest first, one page.
				page := make([]*models.Comment, 0, limit)
				for i := len(seeded) - 1; i >= len(seeded)-limit; i-- {
					page = append(page, seeded[i])
				}
				return page, nil
			},
			countFn: func(ctx context.Context) (int64, error) {
				return int64(len(seeded)), nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		page, err := svc.ListAllComments(context.Background(), ListAllCommentsInput{
			IsAdmin: true, StartIndex: 0, Sort: "desc",
		})
		require.NoError(t, err)
		assert.Len(t, page.Comments, 9)
		assert.Equal(t, int64(12), page.TotalComments)
		for i := 1; i < len(page.Comments); i++ {
			assert.True(t, page.Comments[i].CreatedAt.Before(page.Comments[i-1].CreatedAt))
		}
	})

	t.Run("last month counter uses the calendar boundary", func(t *testing.T) {
		t.Parallel()
		var gotSince time.Time
		commentRepo := &stubCommentRepo{
			countCreatedSinceFn: func(ctx context.Context, since time.Time) (int64, error) {
				gotSince = since
				return 3, nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})
		svc.now = func() time.Time {
			return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
		}

		page, err := svc.ListAllComments(context.Background(), ListAllCommentsInput{IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.LastMonthComments)
		assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), gotSince)
	})
}

func TestOneMonthAgo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"mid-month",
			time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
			time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"january wraps to previous year",
			time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
			time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"day overflow normalizes forward",
			time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, oneMonthAgo(tt.now))
		})
	}
}

func TestCommentToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("missing comment is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.ToggleLike(context.Background(), 404, 1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("toggle round trip restores the like-set", func(t *testing.T) {
		t.Parallel()
		likes := newLikeSet()
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 1}, nil
			},
			isLikedFn: func(ctx context.Context, userID, commentID uint) (bool, error) {
				return likes.isLiked(userID), nil
			},
			likeFn: func(ctx context.Context, userID, commentID uint) error {
				likes.like(userID)
				return nil
			},
			unlikeFn: func(ctx context.Context, userID, commentID uint) error {
				likes.unlike(userID)
				return nil
			},
			likeUserIDsFn: func(ctx context.Context, commentID uint) ([]uint, error) {
				return likes.members(), nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		comment, err := svc.ToggleLike(context.Background(), 5, 9)
		require.NoError(t, err)
		assert.Equal(t, []uint{9}, comment.Likes)

		comment, err = svc.ToggleLike(context.Background(), 5, 9)
		require.NoError(t, err)
		assert.Empty(t, comment.Likes)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Parallel()

	existing := func() *models.Comment {
		return &models.Comment{ID: 5, UserID: 2, PostID: 1, Content: "original"}
	}

	t.Run("non-owner non-admin is forbidden and comment unchanged", func(t *testing.T) {
		t.Parallel()
		comment := existing()
		updated := false
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return comment, nil
			},
			updateFn: func(ctx context.Context, c *models.Comment) error {
				updated = true
				return nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 99, IsAdmin: false, CommentID: 5, Content: "hijacked",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
		assert.False(t, updated)
		assert.Equal(t, "original", comment.Content)
	})

	t.Run("owner updates content only", func(t *testing.T) {
		t.Parallel()
		comment := existing()
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return comment, nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		got, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 2, CommentID: 5, Content: "edited",
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
		assert.Equal(t, uint(2), got.UserID)
	})

	t.Run("admin may edit another user's comment", func(t *testing.T) {
		t.Parallel()
		comment := existing()
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return comment, nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		got, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 99, IsAdmin: true, CommentID: 5, Content: "moderated",
		})
		require.NoError(t, err)
		assert.Equal(t, "moderated", got.Content)
	})

	t.Run("missing comment is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
			UserID: 2, CommentID: 404, Content: "x",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("non-owner non-admin is forbidden", func(t *testing.T) {
		t.Parallel()
		deleted := false
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 2}, nil
			},
			deleteFn: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		err := svc.DeleteComment(context.Background(), DeleteCommentInput{
			UserID: 99, IsAdmin: false, CommentID: 5,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
		assert.False(t, deleted)
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		deleted := false
		commentRepo := &stubCommentRepo{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, UserID: 2}, nil
			},
			deleteFn: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		err := svc.DeleteComment(context.Background(), DeleteCommentInput{
			UserID: 2, CommentID: 5,
		})
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("missing comment is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		err := svc.DeleteComment(context.Background(), DeleteCommentInput{
			UserID: 2, CommentID: 404,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestListComments(t *testing.T) {
	t.Parallel()

	t.Run("unknown post yields an empty list", func(t *testing.T) {
		t.Parallel()
		commentRepo := &stubCommentRepo{
			listByPostFn: func(ctx context.Context, postID uint) ([]*models.Comment, error) {
				return nil, nil
			},
		}
		svc := NewCommentService(commentRepo, &stubPostRepo{})

		comments, err := svc.ListComments(context.Background(), 404)
		require.NoError(t, err)
		require.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("decorates every comment", func(t *testing.T) {
		t.Parallel()
		commentRepo := &stubCommentRepo{
			listByPostFn: func(ctx context.Context, postID uint) ([]*models.Comment, error) {
				return []*models.Comment{
					{ID: 1, UserID: 2, User: models.User{ID: 2, Username: "a"}},
					{ID: 2, UserID: 3, User: models.User{ID: 3, Username: "b"}},
				}, nil
			},
		}
		svc := NewCommentService(commentRepo, existingPostRepo())

		comments, err := svc.ListComments(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.NotNil(t, c.Author)
			assert.NotNil(t, c.Likes)
		}
	})
}
