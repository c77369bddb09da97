package service

import (
	"context"
	"sync"
	"time"

	"questa/internal/models"
	"questa/internal/repository"

	"gorm.io/gorm"
)

// stubPostRepo is a function-field stub for repository.PostRepository.
// Unset lookups report gorm.ErrRecordNotFound; unset mutations succeed.
type stubPostRepo struct {
	createFn           func(ctx context.Context, post *models.Post) error
	getByIDFn          func(ctx context.Context, id uint) (*models.Post, error)
	listFn             func(ctx context.Context, q repository.PostQuery) ([]*models.Post, int64, error)
	titleOrSlugTakenFn func(ctx context.Context, title, slug string) (bool, error)
	updateFn           func(ctx context.Context, post *models.Post) error
	deleteFn           func(ctx context.Context, id uint) error
	isLikedFn          func(ctx context.Context, userID, postID uint) (bool, error)
	likeFn             func(ctx context.Context, userID, postID uint) error
	unlikeFn           func(ctx context.Context, userID, postID uint) error
	likeUserIDsFn      func(ctx context.Context, postID uint) ([]uint, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPostRepo) List(ctx context.Context, q repository.PostQuery) ([]*models.Post, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (s *stubPostRepo) TitleOrSlugTaken(ctx context.Context, title, slug string) (bool, error) {
	if s.titleOrSlugTakenFn != nil {
		return s.titleOrSlugTakenFn(ctx, title, slug)
	}
	return false, nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubPostRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *stubPostRepo) Like(ctx context.Context, userID, postID uint) error {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubPostRepo) Unlike(ctx context.Context, userID, postID uint) error {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubPostRepo) LikeUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	if s.likeUserIDsFn != nil {
		return s.likeUserIDsFn(ctx, postID)
	}
	return nil, nil
}

// stubCommentRepo is a function-field stub for repository.CommentRepository.
type stubCommentRepo struct {
	createFn            func(ctx context.Context, comment *models.Comment) error
	getByIDFn           func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn        func(ctx context.Context, postID uint) ([]*models.Comment, error)
	listAllFn           func(ctx context.Context, limit, offset int, order string) ([]*models.Comment, error)
	countFn             func(ctx context.Context) (int64, error)
	countCreatedSinceFn func(ctx context.Context, since time.Time) (int64, error)
	updateFn            func(ctx context.Context, comment *models.Comment) error
	deleteFn            func(ctx context.Context, id uint) error
	isLikedFn           func(ctx context.Context, userID, commentID uint) (bool, error)
	likeFn              func(ctx context.Context, userID, commentID uint) error
	unlikeFn            func(ctx context.Context, userID, commentID uint) error
	likeUserIDsFn       func(ctx context.Context, commentID uint) ([]uint, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (s *stubCommentRepo) ListAll(ctx context.Context, limit, offset int, order string) ([]*models.Comment, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, limit, offset, order)
	}
	return nil, nil
}

func (s *stubCommentRepo) Count(ctx context.Context) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx)
	}
	return 0, nil
}

func (s *stubCommentRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if s.countCreatedSinceFn != nil {
		return s.countCreatedSinceFn(ctx, since)
	}
	return 0, nil
}

func (s *stubCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubCommentRepo) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, commentID)
	}
	return false, nil
}

func (s *stubCommentRepo) Like(ctx context.Context, userID, commentID uint) error {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, commentID)
	}
	return nil
}

func (s *stubCommentRepo) Unlike(ctx context.Context, userID, commentID uint) error {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, commentID)
	}
	return nil
}

func (s *stubCommentRepo) LikeUserIDs(ctx context.Context, commentID uint) ([]uint, error) {
	if s.likeUserIDsFn != nil {
		return s.likeUserIDsFn(ctx, commentID)
	}
	return nil, nil
}

// stubUserRepo is a function-field stub for repository.UserRepository.
type stubUserRepo struct {
	createFn            func(ctx context.Context, user *models.User) error
	getByIDFn           func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn        func(ctx context.Context, email string) (*models.User, error)
	listFn              func(ctx context.Context, limit, offset int, order string) ([]models.User, error)
	countFn             func(ctx context.Context) (int64, error)
	countCreatedSinceFn func(ctx context.Context, since time.Time) (int64, error)
	updateFn            func(ctx context.Context, user *models.User) error
	deleteFn            func(ctx context.Context, id uint) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int, order string) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset, order)
	}
	return nil, nil
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx)
	}
	return 0, nil
}

func (s *stubUserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if s.countCreatedSinceFn != nil {
		return s.countCreatedSinceFn(ctx, since)
	}
	return 0, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

// likeSet is a mutex-guarded in-memory like store for toggle tests. It backs
// the IsLiked/Like/Unlike/LikeUserIDs stub fields with real set semantics.
type likeSet struct {
	mu    sync.Mutex
	users map[uint]bool
}

func newLikeSet() *likeSet {
	return &likeSet{users: make(map[uint]bool)}
}

func (l *likeSet) isLiked(userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.users[userID]
}

func (l *likeSet) like(userID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users[userID] = true
}

func (l *likeSet) unlike(userID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.users, userID)
}

func (l *likeSet) members() []uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]uint, 0, len(l.users))
	for id := range l.users {
		out = append(out, id)
	}
	return out
}
