package service

import (
	"context"
	"testing"
	"time"

	"mirador/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password and counts the first login", func(t *testing.T) {
		t.Parallel()

		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		}

		svc := NewAccountService(repo)
		user, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Email:    "Alice@Example.COM",
			Password: "secret1",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "alice@example.com", user.Email, "email should be normalized")
		assert.NotEqual(t, "secret1", user.Password, "password must not be stored in plaintext")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
		assert.Equal(t, models.RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.Zero(t, user.LoginCount, "the counter only moves on login")
		assert.Nil(t, user.LastLogin)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
		})
		assertValidationError(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Email:    "not-an-email",
			Password: "secret1",
		})
		assertValidationError(t, err)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 7, Email: email}, nil
		}

		svc := NewAccountService(repo)
		_, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "secret1",
		})
		assertErrorCode(t, err, models.CodeConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := func() *models.User {
		return &models.User{
			ID:         1,
			Email:      "alice@example.com",
			Password:   string(hashed),
			IsActive:   true,
			LoginCount: 3,
		}
	}

	t.Run("returns the account and records the login", func(t *testing.T) {
		t.Parallel()

		var recordedID uint
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return activeUser(), nil
		}
		repo.recordLoginFn = func(_ context.Context, id uint, _ time.Time) error {
			recordedID = id
			return nil
		}

		svc := NewAccountService(repo)
		user, err := svc.Authenticate(context.Background(), "Alice@Example.com", "secret1")
		require.NoError(t, err)

		assert.Equal(t, uint(1), recordedID)
		assert.Equal(t, 4, user.LoginCount)
		assert.NotNil(t, user.LastLogin)
	})

	t.Run("unknown email and wrong password give the same message", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		svc := NewAccountService(repo)
		_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "secret1")
		require.Error(t, unknownErr)

		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return activeUser(), nil
		}
		_, wrongErr := svc.Authenticate(context.Background(), "alice@example.com", "wrong-password")
		require.Error(t, wrongErr)

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
		assertErrorCode(t, unknownErr, models.CodeAuth)
		assertErrorCode(t, wrongErr, models.CodeAuth)
	})

	t.Run("blocked account is rejected before the password check", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			user := activeUser()
			user.IsBlocked = true
			user.BlockReason = "spam"
			return user, nil
		}

		svc := NewAccountService(repo)
		// Even the correct password must not get past the block.
		_, err := svc.Authenticate(context.Background(), "alice@example.com", "secret1")
		assertErrorCode(t, err, models.CodeBlocked)
		assert.Contains(t, err.Error(), "spam")
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			user := activeUser()
			user.IsActive = false
			return user, nil
		}

		svc := NewAccountService(repo)
		_, err := svc.Authenticate(context.Background(), "alice@example.com", "secret1")
		assertErrorCode(t, err, models.CodeBlocked)
	})

	t.Run("requires email and password", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		_, err := svc.Authenticate(context.Background(), "", "secret1")
		assertValidationError(t, err)
		_, err = svc.Authenticate(context.Background(), "alice@example.com", "")
		assertValidationError(t, err)
	})
}

func TestBlockAndUnblock(t *testing.T) {
	t.Parallel()

	t.Run("block records the reason", func(t *testing.T) {
		t.Parallel()

		var updated *models.User
		repo := noopUserRepo()
		repo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}

		svc := NewAccountService(repo)
		user, err := svc.Block(context.Background(), 1, 2, "spam")
		require.NoError(t, err)

		assert.True(t, user.IsBlocked)
		assert.Equal(t, "spam", user.BlockReason)
		require.NotNil(t, updated)
	})

	t.Run("block without a reason uses the default", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		user, err := svc.Block(context.Background(), 1, 2, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultBlockReason, user.BlockReason)
	})

	t.Run("admins cannot block themselves", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		_, err := svc.Block(context.Background(), 1, 1, "spam")
		assertValidationError(t, err)
	})

	t.Run("unblock clears the reason", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsBlocked: true, BlockReason: "spam"}, nil
		}

		svc := NewAccountService(repo)
		user, err := svc.Unblock(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.False(t, user.IsBlocked)
		assert.Empty(t, user.BlockReason)
	})

	t.Run("unblocking an unblocked account is a no-op", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.updateFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("update should not be called")
			return nil
		}

		svc := NewAccountService(repo)
		user, err := svc.Unblock(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.False(t, user.IsBlocked)
	})

	t.Run("toggle flips the state both ways", func(t *testing.T) {
		t.Parallel()

		blocked := false
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsBlocked: blocked}, nil
		}
		repo.updateFn = func(_ context.Context, user *models.User) error {
			blocked = user.IsBlocked
			return nil
		}

		svc := NewAccountService(repo)

		user, err := svc.ToggleBlock(context.Background(), 1, 2, "")
		require.NoError(t, err)
		assert.True(t, user.IsBlocked)

		user, err = svc.ToggleBlock(context.Background(), 1, 2, "")
		require.NoError(t, err)
		assert.False(t, user.IsBlocked)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("deletes the target account", func(t *testing.T) {
		t.Parallel()

		var deletedID uint
		repo := noopUserRepo()
		repo.deleteFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}

		svc := NewAccountService(repo)
		require.NoError(t, svc.Delete(context.Background(), 1, 2))
		assert.Equal(t, uint(2), deletedID)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		err := svc.Delete(context.Background(), 1, 1)
		assertValidationError(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Alice", Bio: "old bio"}, nil
		}

		svc := NewAccountService(repo)
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Bio:    "new bio",
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "new bio", user.Bio)
	})

	t.Run("rejects an over-long bio", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'a'
		}
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Bio:    string(long),
		})
		assertValidationError(t, err)
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()

	t.Run("creates the admin when missing", func(t *testing.T) {
		t.Parallel()

		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, user *models.User) error {
			created = user
			return nil
		}

		svc := NewAccountService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "secret1", ""))
		require.NotNil(t, created)
		assert.Equal(t, models.RoleAdmin, created.Role)
		assert.Equal(t, "Administrator", created.Name)
	})

	t.Run("promotes an existing account", func(t *testing.T) {
		t.Parallel()

		var updated *models.User
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Role: models.RoleUser}, nil
		}
		repo.updateFn = func(_ context.Context, user *models.User) error {
			updated = user
			return nil
		}

		svc := NewAccountService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "secret1", ""))
		require.NotNil(t, updated)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("does nothing when already an admin", func(t *testing.T) {
		t.Parallel()

		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Role: models.RoleAdmin}, nil
		}
		repo.updateFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("update should not be called")
			return nil
		}

		svc := NewAccountService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "secret1", ""))
	})

	t.Run("does nothing without an email", func(t *testing.T) {
		t.Parallel()

		svc := NewAccountService(noopUserRepo())
		require.NoError(t, svc.EnsureAdmin(context.Background(), "", "", ""))
	})
}
