// Package seed provides helpers to create demo data for the application
// database. Intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"mirador/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Seed generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	LikeChance      float64 // 0..1 probability a user likes any given post
	ReportChance    float64 // 0..1 probability a user reports any given post
}

// DefaultOptions returns a small but lively dataset.
func DefaultOptions() Options {
	return Options{
		Users:           12,
		PostsPerUser:    4,
		CommentsPerPost: 3,
		LikeChance:      0.3,
		ReportChance:    0.05,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Phone:    gofakeit.Phone(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleUser,
		IsActive: true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the user, with a
// realistic created_at spread over the last 30 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	name := gofakeit.UUID()
	post := &models.Post{
		UserID:   user.ID,
		Content:  gofakeit.Sentence(12),
		Image:    name + ".jpg",
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", name),
		IsActive: true,
	}

	daysBack := f.r.Intn(30)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(8),
		UserID: user.ID,
		PostID: post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Seed fills the database with demo users, posts, comments, likes and reports.
func Seed(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[f.r.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}

		for _, user := range users {
			if f.r.Float64() < opts.LikeChance {
				like := &models.Like{UserID: user.ID, PostID: post.ID}
				if err := db.Create(like).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
			if user.ID != post.UserID && f.r.Float64() < opts.ReportChance {
				report := &models.Report{
					UserID: user.ID,
					PostID: post.ID,
					Reason: gofakeit.RandomString([]string{"spam", "offensive content", "misleading"}),
				}
				if err := db.Create(report).Error; err != nil {
					return fmt.Errorf("seed report: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}
