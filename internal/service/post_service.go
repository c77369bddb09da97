package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"questa/internal/cache"
	"questa/internal/models"
	"questa/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLen      = 300
	maxPostContent   = 50000
	defaultPostLimit = 9
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Image    string
	Category string
}

type ListPostsInput struct {
	UserID     uint
	Category   string
	Slug       string
	PostID     uint
	SearchTerm string
	StartIndex int
	Limit      int
	Order      string
}

type UpdatePostInput struct {
	PostID uint
	// OwnerID is the owner id named in the route. The caller must be an
	// admin AND match it; this is deliberately stricter than owner-or-admin.
	OwnerID  uint
	UserID   uint
	IsAdmin  bool
	Title    string
	Content  string
	Category string
	Image    string
}

// PostPage is one page of posts plus the total match count ignoring
// pagination.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	TotalPosts int64          `json:"totalPosts"`
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// slugChars strips everything a URL-safe slug cannot carry. Applied after
// lowercasing and space-to-hyphen replacement.
var slugChars = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify derives the URL slug for a post title: spaces become hyphens, the
// result is lowercased, and every remaining character outside [a-z0-9-] is
// stripped. The transform is deterministic.
func Slugify(title string) string {
	slug := strings.ReplaceAll(title, " ", "-")
	slug = strings.ToLower(slug)
	return slugChars.ReplaceAllString(slug, "")
}

// CreatePost validates and persists a new post, deriving its slug from the
// title. A title or slug collision is a conflict.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Please provide all required fields")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxPostContent {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	slug := Slugify(in.Title)
	taken, err := s.postRepo.TitleOrSlugTaken(ctx, in.Title, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A post with this title already exists")
	}

	image := in.Image
	if image == "" {
		image = models.DefaultPostImage
	}
	category := in.Category
	if category == "" {
		category = models.DefaultPostCategory
	}

	post := &models.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Slug:     slug,
		Content:  in.Content,
		Image:    image,
		Category: category,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewConflictError("A post with this title already exists")
		}
		return nil, err
	}

	cache.InvalidatePostsList(ctx)
	return s.getDecorated(ctx, post.ID)
}

// ListPosts returns a filtered, paginated page of posts with owner
// projections, sorted by last update. The default anonymous first page is
// served through the cache.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	q := repository.PostQuery{
		UserID:     in.UserID,
		Category:   in.Category,
		Slug:       in.Slug,
		PostID:     in.PostID,
		SearchTerm: in.SearchTerm,
		Limit:      in.Limit,
		Offset:     in.StartIndex,
		Order:      in.Order,
	}
	if q.Limit <= 0 {
		q.Limit = defaultPostLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	if s.isDefaultQuery(q) {
		var page PostPage
		err := cache.Aside(ctx, cache.PostsListKey(), &page, cache.ListTTL, func() error {
			fresh, fetchErr := s.fetchPage(ctx, q)
			if fetchErr != nil {
				return fetchErr
			}
			page = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	return s.fetchPage(ctx, q)
}

func (s *PostService) isDefaultQuery(q repository.PostQuery) bool {
	return q.UserID == 0 && q.Category == "" && q.Slug == "" && q.PostID == 0 &&
		q.SearchTerm == "" && q.Offset == 0 && q.Limit == defaultPostLimit && q.Order != "asc"
}

func (s *PostService) fetchPage(ctx context.Context, q repository.PostQuery) (*PostPage, error) {
	posts, total, err := s.postRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := s.decorate(ctx, p); err != nil {
			return nil, err
		}
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &PostPage{Posts: posts, TotalPosts: total}, nil
}

// GetPost returns a single decorated post.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.getDecorated(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial update of the four mutable fields. The caller
// must be an admin AND the owner named in the route; both conditions are
// required.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if !in.IsAdmin || in.UserID != in.OwnerID {
		return nil, models.NewForbiddenError("You are not allowed to update this post")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Image != "" {
		post.Image = in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewConflictError("A post with this title already exists")
		}
		return nil, err
	}

	cache.InvalidatePostsList(ctx)
	return s.getDecorated(ctx, in.PostID)
}

// DeletePost removes the post and cascades to its comments. The repository
// runs the cascade in a transaction; any failure surfaces as an error rather
// than a partial success.
func (s *PostService) DeletePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

// ToggleLike flips the caller's membership in the post's like-set and
// returns the updated post.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	cache.InvalidatePostsList(ctx)
	return s.getDecorated(ctx, postID)
}

func (s *PostService) getDecorated(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// decorate fills the read-side projections: owner and like-set.
func (s *PostService) decorate(ctx context.Context, post *models.Post) error {
	author := post.User.AsAuthor()
	post.Author = &author

	likes, err := s.postRepo.LikeUserIDs(ctx, post.ID)
	if err != nil {
		return err
	}
	if likes == nil {
		likes = []uint{}
	}
	post.Likes = likes
	return nil
}
