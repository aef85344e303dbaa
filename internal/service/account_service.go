// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"
	"time"

	"mirador/internal/middleware"
	"mirador/internal/models"
	"mirador/internal/repository"
	"mirador/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBlockReason is recorded when an admin blocks an account without
// giving a reason.
const DefaultBlockReason = "Blocked by the administrator"

// AccountService owns registration, authentication and account state changes.
type AccountService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type UpdateProfileInput struct {
	UserID uint
	Name   string
	Bio    string
	Phone  string
	Avatar string
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Register creates a new account. The login counter starts at zero and only
// moves on Authenticate.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Phone:    in.Phone,
		Role:     models.RoleUser,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "account registered", slog.Uint64("account_id", uint64(user.ID)))
	return user, nil
}

// Authenticate verifies credentials and returns the account. A blocked or
// deactivated account is rejected before the password is checked so the
// caller learns the block reason only with the right email. Unknown email
// and wrong password produce the identical credentials error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		middleware.LoginFailures.WithLabelValues("unknown_email").Inc()
		return nil, models.NewAuthError()
	}

	if !user.CanAct() {
		middleware.LoginFailures.WithLabelValues("blocked").Inc()
		return nil, models.NewBlockedError(user.BlockReason)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		middleware.LoginFailures.WithLabelValues("bad_password").Inc()
		return nil, models.NewAuthError()
	}

	now := time.Now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	user.LoginCount++

	return user, nil
}

// GetAccount loads an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies partial profile changes. Empty fields are left as-is.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = in.Bio
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Block marks the target account blocked with the given reason. Admins cannot
// block themselves. Blocking an already-blocked account just updates the reason.
func (s *AccountService) Block(ctx context.Context, adminID, targetID uint, reason string) (*models.User, error) {
	if adminID == targetID {
		return nil, models.NewValidationError("You cannot block your own account")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = DefaultBlockReason
	}
	user.IsBlocked = true
	user.BlockReason = reason

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	middleware.ModerationActions.WithLabelValues("block_user").Inc()
	middleware.Logger.InfoContext(ctx, "account blocked",
		slog.Uint64("account_id", uint64(targetID)),
		slog.Uint64("admin_id", uint64(adminID)),
		slog.String("reason", reason))
	return user, nil
}

// Unblock clears the blocked state. Unblocking an unblocked account is a no-op.
func (s *AccountService) Unblock(ctx context.Context, adminID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !user.IsBlocked {
		return user, nil
	}

	user.IsBlocked = false
	user.BlockReason = ""

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	middleware.ModerationActions.WithLabelValues("unblock_user").Inc()
	middleware.Logger.InfoContext(ctx, "account unblocked",
		slog.Uint64("account_id", uint64(targetID)),
		slog.Uint64("admin_id", uint64(adminID)))
	return user, nil
}

// ToggleBlock flips the blocked state of the target account.
func (s *AccountService) ToggleBlock(ctx context.Context, adminID, targetID uint, reason string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return s.Unblock(ctx, adminID, targetID)
	}
	return s.Block(ctx, adminID, targetID, reason)
}

// Delete removes the target account and all of its posts. Admins cannot
// delete themselves.
func (s *AccountService) Delete(ctx context.Context, adminID, targetID uint) error {
	if adminID == targetID {
		return models.NewValidationError("You cannot delete your own account")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	middleware.ModerationActions.WithLabelValues("delete_user").Inc()
	middleware.Logger.InfoContext(ctx, "account deleted",
		slog.Uint64("account_id", uint64(targetID)),
		slog.Uint64("admin_id", uint64(adminID)))
	return nil
}

// EnsureAdmin creates the bootstrap admin account if no account exists with
// the given email, and promotes it to admin if it exists without the role.
// Safe to call on every startup.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role == models.RoleAdmin {
			return nil
		}
		existing.Role = models.RoleAdmin
		return s.userRepo.Update(ctx, existing)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	if name == "" {
		name = "Administrator"
	}
	admin := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "bootstrap admin created", slog.String("email", email))
	return nil
}
