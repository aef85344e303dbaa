package server

import (
	"encoding/json"
	"testing"

	"mirador/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	_, app := newTestServer(t)

	t.Run("creates an account", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "Alice",
			"email":    "Alice@Example.COM",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.True(t, env.Success)

		var data struct {
			models.User
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "alice@example.com", data.Email, "email is stored lowercase")
		assert.Equal(t, models.RoleUser, data.Role)
		assert.Zero(t, data.LoginCount)
		assert.NotContains(t, string(env.Data), `"user":`, "account fields sit next to the token")
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "Alice Again",
			"email":    "alice@example.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "Bob",
			"email":    "bob@example.com",
			"password": "short",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("never serializes the password", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "Eve",
			"email":    "eve@example.com",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.NotContains(t, string(env.Data), "secret1")
		assert.NotContains(t, string(env.Data), `"password"`)
	})
}

func TestLoginEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	registerUser(t, app, "Alice", "alice@example.com")

	t.Run("succeeds with the right credentials", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "ALICE@example.com",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		var data struct {
			models.User
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, 1, data.LoginCount, "first login moves the counter to one")
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrong := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		unknown := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "nobody@example.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, wrong.StatusCode)
		assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)

		wrongEnv := decodeEnvelope(t, wrong)
		unknownEnv := decodeEnvelope(t, unknown)
		assert.Equal(t, wrongEnv.Message, unknownEnv.Message)
		assert.Equal(t, wrongEnv.Code, unknownEnv.Code)
	})

	t.Run("a blocked account cannot log in even with the right password", func(t *testing.T) {
		_, id := registerUser(t, app, "Mallory", "mallory@example.com")
		require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", id).
			Updates(map[string]any{"is_blocked": true, "block_reason": "spam"}).Error)

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "mallory@example.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, models.CodeBlocked, env.Code)
		assert.Contains(t, env.Message, "spam")
	})
}

func TestGetMeEndpoint(t *testing.T) {
	_, app := newTestServer(t)
	token, id := registerUser(t, app, "Alice", "alice@example.com")

	resp := doJSON(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUpdateMyProfileEndpoint(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := registerUser(t, app, "Alice", "alice@example.com")

	t.Run("updates the provided fields only", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, "/api/users/me", token, fiber.Map{
			"bio": "street photographer",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		var user models.User
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "street photographer", user.Bio)
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, "/api/users/me", "", fiber.Map{"bio": "x"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
