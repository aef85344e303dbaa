package service

import (
	"context"
	"log/slog"
	"strings"

	"mirador/internal/middleware"
	"mirador/internal/models"
	"mirador/internal/repository"
	"mirador/internal/validation"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	reportRepo  repository.ReportRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	Image    string
	ImageURL string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reportRepo repository.ReportRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		isAdmin:     isAdmin,
	}
}

// CreatePost stores a new image post. The image is required; the caption is not.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Image) == "" {
		return nil, models.NewValidationError("Image is required")
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:   in.UserID,
		Content:  in.Content,
		Image:    in.Image,
		ImageURL: in.ImageURL,
		IsActive: true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// ListPosts returns the public feed page and the total visible post count.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, int64, error) {
	return s.postRepo.ListVisible(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

// GetPost returns a single post. Hidden posts are only visible to their
// owner and to admins.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if !post.Visible() {
		if currentUserID == 0 {
			return nil, models.NewNotFoundError("Post", id)
		}
		if post.UserID != currentUserID {
			admin, err := s.checkAdmin(ctx, currentUserID)
			if err != nil {
				return nil, err
			}
			if !admin {
				return nil, models.NewNotFoundError("Post", id)
			}
		}
	}

	return post, nil
}

// GetUserPosts returns the visible posts of one user.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// ToggleLike flips the caller's like on the post and returns the fresh post.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	// Confirm the post exists and is visible before touching likes.
	if _, err := s.GetPost(ctx, postID, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

// CreateComment adds a comment to a visible post.
func (s *PostService) CreateComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateComment(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.GetPost(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   strings.TrimSpace(text),
		UserID: userID,
		PostID: postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns a page of comments for a post with the total count.
func (s *PostService) GetComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}

// ReportPost files a moderation report. Each user may report a post once.
func (s *PostService) ReportPost(ctx context.Context, userID, postID uint, reason string) (*models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, models.NewValidationError("Report reason is required")
	}

	if _, err := s.GetPost(ctx, postID, userID); err != nil {
		return nil, err
	}

	reported, err := s.reportRepo.HasReported(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if reported {
		return nil, models.NewConflictError("You have already reported this post")
	}

	report := &models.Report{
		UserID: userID,
		PostID: postID,
		Reason: strings.TrimSpace(reason),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "post reported",
		slog.Uint64("post_id", uint64(postID)),
		slog.Uint64("reporter_id", uint64(userID)))
	return report, nil
}

// DeletePost removes a post. Only the owner or an admin may delete it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		admin, err := s.checkAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) checkAdmin(ctx context.Context, userID uint) (bool, error) {
	if s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}
