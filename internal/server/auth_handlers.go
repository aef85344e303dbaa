package server

import (
	"github.com/gofiber/fiber/v2"

	"mirador/internal/models"
	"mirador/internal/service"
)

// authPayload flattens the account fields and the issued token into a single
// object, so clients read data.id and data.token side by side.
type authPayload struct {
	*models.User
	Token string `json:"token"`
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusCreated, "Registration successful",
		authPayload{User: user, Token: token})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondError(c, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, "Login successful",
		authPayload{User: user, Token: token})
}

// GetMe handles GET /api/auth/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.accounts.GetAccount(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "", user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Phone  string `json:"phone"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Profile updated", user)
}
