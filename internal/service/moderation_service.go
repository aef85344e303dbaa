package service

import (
	"context"
	"log/slog"
	"time"

	"mirador/internal/cache"
	"mirador/internal/middleware"
	"mirador/internal/models"
	"mirador/internal/repository"
)

// DefaultPostBlockReason is recorded when an admin hides a post without a reason.
const DefaultPostBlockReason = "Hidden by the administrator"

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalComments int64 `json:"total_comments"`
	TotalReports  int64 `json:"total_reports"`
	BlockedUsers  int64 `json:"blocked_users"`
	BlockedPosts  int64 `json:"blocked_posts"`
	NewUsers7d    int64 `json:"new_users_7d"`
	NewPosts7d    int64 `json:"new_posts_7d"`
}

// ModerationService provides the admin panel's listings, stats and post
// moderation actions. User moderation lives on AccountService.
type ModerationService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	reportRepo  repository.ReportRepository
}

// NewModerationService returns a new ModerationService.
func NewModerationService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reportRepo repository.ReportRepository,
) *ModerationService {
	return &ModerationService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
	}
}

// GetStats returns the dashboard counters, cached briefly to keep the admin
// panel cheap under refresh.
func (s *ModerationService) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := cache.Aside(ctx, cache.StatsKey(), &stats, cache.StatsTTL, func() error {
		weekAgo := time.Now().AddDate(0, 0, -7)

		var err error
		if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
			return err
		}
		if stats.TotalPosts, err = s.postRepo.Count(ctx); err != nil {
			return err
		}
		if stats.TotalComments, err = s.commentRepo.Count(ctx); err != nil {
			return err
		}
		if stats.TotalReports, err = s.reportRepo.Count(ctx); err != nil {
			return err
		}
		if stats.BlockedUsers, err = s.userRepo.CountBlocked(ctx); err != nil {
			return err
		}
		if stats.BlockedPosts, err = s.postRepo.CountBlocked(ctx); err != nil {
			return err
		}
		if stats.NewUsers7d, err = s.userRepo.CountSince(ctx, weekAgo); err != nil {
			return err
		}
		if stats.NewPosts7d, err = s.postRepo.CountSince(ctx, weekAgo); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns a page of accounts, optionally filtered by a name or
// email search term.
func (s *ModerationService) ListUsers(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, limit, offset)
}

// ListPosts returns every post, including hidden and blocked ones.
func (s *ModerationService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

// ListReportedPosts returns posts with open reports, most reported first.
func (s *ModerationService) ListReportedPosts(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.postRepo.ListReported(ctx, limit, offset)
}

// GetPostReports returns the individual reports filed against a post.
func (s *ModerationService) GetPostReports(ctx context.Context, postID uint) ([]models.Report, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByPostID(ctx, postID)
}

// TogglePostBlock flips a post's blocked state. Blocking records the reason;
// unblocking clears it and resolves the post's open reports.
func (s *ModerationService) TogglePostBlock(ctx context.Context, adminID, postID uint, reason string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	if post.IsBlocked {
		post.IsBlocked = false
		post.BlockReason = ""
		if err := s.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
		if err := s.reportRepo.DeleteByPostID(ctx, postID); err != nil {
			return nil, err
		}
		middleware.ModerationActions.WithLabelValues("unblock_post").Inc()
	} else {
		if reason == "" {
			reason = DefaultPostBlockReason
		}
		post.IsBlocked = true
		post.BlockReason = reason
		if err := s.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
		middleware.ModerationActions.WithLabelValues("block_post").Inc()
	}

	middleware.Logger.InfoContext(ctx, "post moderation toggled",
		slog.Uint64("post_id", uint64(postID)),
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Bool("blocked", post.IsBlocked))
	return post, nil
}

// DeletePost removes a post as an admin action.
func (s *ModerationService) DeletePost(ctx context.Context, adminID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	middleware.ModerationActions.WithLabelValues("delete_post").Inc()
	middleware.Logger.InfoContext(ctx, "post deleted by admin",
		slog.Uint64("post_id", uint64(postID)),
		slog.Uint64("admin_id", uint64(adminID)))
	return nil
}
