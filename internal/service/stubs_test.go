package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mirador/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub implements repository.UserRepository with overridable funcs.
type userRepoStub struct {
	getByIDFn      func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn   func(ctx context.Context, email string) (*models.User, error)
	createFn       func(ctx context.Context, user *models.User) error
	updateFn       func(ctx context.Context, user *models.User) error
	recordLoginFn  func(ctx context.Context, id uint, at time.Time) error
	deleteFn       func(ctx context.Context, id uint) error
	listFn         func(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error)
	countFn        func(ctx context.Context) (int64, error)
	countSinceFn   func(ctx context.Context, since time.Time) (int64, error)
	countBlockedFn func(ctx context.Context) (int64, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:      func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:       func(_ context.Context, _ *models.User) error { return nil },
		updateFn:       func(_ context.Context, _ *models.User) error { return nil },
		recordLoginFn:  func(_ context.Context, _ uint, _ time.Time) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listFn:         func(_ context.Context, _ string, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
		countFn:        func(_ context.Context) (int64, error) { return 0, nil },
		countSinceFn:   func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		countBlockedFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return s.recordLoginFn(ctx, id, at)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}
func (s *userRepoStub) CountBlocked(ctx context.Context) (int64, error) {
	return s.countBlockedFn(ctx)
}

// postRepoStub implements repository.PostRepository with overridable funcs.
type postRepoStub struct {
	createFn       func(ctx context.Context, post *models.Post) error
	getByIDFn      func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	getByUserIDFn  func(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	listVisibleFn  func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	listAllFn      func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	listReportedFn func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	updateFn       func(ctx context.Context, post *models.Post) error
	deleteFn       func(ctx context.Context, id uint) error
	isLikedFn      func(ctx context.Context, userID, postID uint) (bool, error)
	likeFn         func(ctx context.Context, userID, postID uint) error
	unlikeFn       func(ctx context.Context, userID, postID uint) error
	countFn        func(ctx context.Context) (int64, error)
	countSinceFn   func(ctx context.Context, since time.Time) (int64, error)
	countBlockedFn func(ctx context.Context) (int64, error)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, IsActive: true}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		listVisibleFn:  func(_ context.Context, _, _ int, _ uint) ([]*models.Post, int64, error) { return nil, 0, nil },
		listAllFn:      func(_ context.Context, _, _ int) ([]*models.Post, int64, error) { return nil, 0, nil },
		listReportedFn: func(_ context.Context, _, _ int) ([]*models.Post, int64, error) { return nil, 0, nil },
		updateFn:       func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		isLikedFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:         func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:       func(_ context.Context, _, _ uint) error { return nil },
		countFn:        func(_ context.Context) (int64, error) { return 0, nil },
		countSinceFn:   func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		countBlockedFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListVisible(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.listVisibleFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) ListReported(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.listReportedFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}
func (s *postRepoStub) CountBlocked(ctx context.Context) (int64, error) {
	return s.countBlockedFn(ctx)
}

// commentRepoStub implements repository.CommentRepository with overridable funcs.
type commentRepoStub struct {
	createFn      func(ctx context.Context, comment *models.Comment) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Comment, error)
	getByPostIDFn func(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error)
	deleteFn      func(ctx context.Context, id uint) error
	countFn       func(ctx context.Context) (int64, error)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getByPostIDFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

// reportRepoStub implements repository.ReportRepository with overridable funcs.
type reportRepoStub struct {
	createFn         func(ctx context.Context, report *models.Report) error
	hasReportedFn    func(ctx context.Context, userID, postID uint) (bool, error)
	getByPostIDFn    func(ctx context.Context, postID uint) ([]models.Report, error)
	countFn          func(ctx context.Context) (int64, error)
	deleteByPostIDFn func(ctx context.Context, postID uint) error
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn:         func(_ context.Context, _ *models.Report) error { return nil },
		hasReportedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getByPostIDFn:    func(_ context.Context, _ uint) ([]models.Report, error) { return nil, nil },
		countFn:          func(_ context.Context) (int64, error) { return 0, nil },
		deleteByPostIDFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) HasReported(ctx context.Context, userID, postID uint) (bool, error) {
	return s.hasReportedFn(ctx, userID, postID)
}
func (s *reportRepoStub) GetByPostID(ctx context.Context, postID uint) ([]models.Report, error) {
	return s.getByPostIDFn(ctx, postID)
}
func (s *reportRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *reportRepoStub) DeleteByPostID(ctx context.Context, postID uint) error {
	return s.deleteByPostIDFn(ctx, postID)
}

// assertValidationError fails unless err is an AppError with the validation code.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertErrorCode fails unless err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
