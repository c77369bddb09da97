// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"questa/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostQuery holds the AND-combinable filters, pagination, and sort order
// accepted by List.
type PostQuery struct {
	UserID     uint
	Category   string
	Slug       string
	PostID     uint
	SearchTerm string
	Limit      int
	Offset     int
	Order      string // "asc" sorts oldest-updated first; anything else newest first
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q PostQuery) ([]*models.Post, int64, error)
	TitleOrSlugTaken(ctx context.Context, title, slug string) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeUserIDs(ctx context.Context, postID uint) ([]uint, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of matching posts plus the total match count
// ignoring pagination.
func (r *postRepository) List(ctx context.Context, q PostQuery) ([]*models.Post, int64, error) {
	filtered := r.applyFilters(r.db.WithContext(ctx).Model(&models.Post{}), q)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.applyPostDetails(r.applyFilters(r.db.WithContext(ctx), q)).
		Preload("User").
		Order("updated_at " + postSortDirection(q.Order)).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// postSortDirection defaults to newest-updated first; the admin listings
// default the other way (see sortDirection).
func postSortDirection(order string) string {
	if order == "asc" {
		return "asc"
	}
	return "desc"
}

func (r *postRepository) applyFilters(db *gorm.DB, q PostQuery) *gorm.DB {
	if q.UserID != 0 {
		db = db.Where("posts.user_id = ?", q.UserID)
	}
	if q.Category != "" {
		db = db.Where("posts.category = ?", q.Category)
	}
	if q.Slug != "" {
		db = db.Where("posts.slug = ?", q.Slug)
	}
	if q.PostID != 0 {
		db = db.Where("posts.id = ?", q.PostID)
	}
	if q.SearchTerm != "" {
		pattern := "%" + strings.ToLower(q.SearchTerm) + "%"
		db = db.Where("LOWER(posts.title) LIKE ?", pattern)
	}
	return db
}

// applyPostDetails adds a subquery computing the like count in the same query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) as number_of_likes")
}

func (r *postRepository) TitleOrSlugTaken(ctx context.Context, title, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("title = ? OR slug = ?", title, slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes the post together with its comments and every like row
// referencing either, all inside one transaction so a failure in any step
// leaves no orphaned comments behind.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like inserts the like-set element atomically; a concurrent duplicate insert
// is a no-op rather than an error, so two racing likers cannot lose an update.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	like := models.PostLike{UserID: userID, PostID: postID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{}).Error
}

func (r *postRepository) LikeUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}
