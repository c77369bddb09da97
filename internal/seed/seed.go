// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"questa/internal/models"
	"questa/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"uncategorized", "javascript", "reactjs", "nextjs", "golang",
	"databases", "devops", "career", "opinion",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	if err := createLikes(db, users, posts, comments); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("✓ likes created")

	log.Println("🌱 Seeding complete")
	return nil
}

// clearData removes seeded rows, children first so foreign keys hold.
func clearData(db *gorm.DB) error {
	tables := []string{"comment_likes", "post_likes", "comments", "posts", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:          gofakeit.Email(),
			Password:       string(hash),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Bio:            gofakeit.Sentence(10),
			IsAdmin:        i == 0, // first seeded user is the admin
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		// Suffix keeps titles (and therefore slugs) unique.
		title := fmt.Sprintf("%s %d", strings.TrimSuffix(gofakeit.Sentence(5), "."), gofakeit.Number(1000, 9999))
		post := &models.Post{
			UserID:    owner.ID,
			Title:     title,
			Slug:      service.Slugify(title),
			Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Image:     fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
			Category:  categories[rand.Intn(len(categories))],
			CreatedAt: pastTimestamp(90),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < rand.Intn(6); i++ {
			author := users[rand.Intn(len(users))]
			comment := &models.Comment{
				PostID:    post.ID,
				UserID:    author.ID,
				Content:   gofakeit.Sentence(12),
				CreatedAt: pastTimestamp(30),
			}
			if err := db.Create(comment).Error; err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for _, post := range posts {
		for _, user := range sample(users, rand.Intn(len(users)+1)) {
			like := &models.PostLike{UserID: user.ID, PostID: post.ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
		}
	}
	for _, comment := range comments {
		for _, user := range sample(users, rand.Intn(4)) {
			like := &models.CommentLike{UserID: user.ID, CommentID: comment.ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// sample returns n distinct users chosen at random.
func sample(users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

func pastTimestamp(maxDays int) time.Time {
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
