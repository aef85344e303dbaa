package server

import (
	"github.com/gofiber/fiber/v2"

	"mirador/internal/models"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.moderation.GetStats(c.Context())
	if err != nil {
		return models.RespondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", stats)
}

// GetAdminUsers handles GET /api/admin/users
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	search := c.Query("search")

	users, total, err := s.moderation.ListUsers(c.Context(), search, page.Limit, page.Offset())
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, users, page.Page, page.Limit, total)
}

// ToggleUserBlock handles PUT /api/admin/users/:id/block
func (s *Server) ToggleUserBlock(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a bare toggle uses the default reason.
	_ = c.BodyParser(&req)

	user, err := s.accounts.ToggleBlock(c.Context(), adminID, targetID, req.Reason)
	if err != nil {
		return models.RespondError(c, err)
	}

	message := "User unblocked"
	if user.IsBlocked {
		message = "User blocked"
	}
	return models.Respond(c, fiber.StatusOK, message, user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.accounts.Delete(c.Context(), adminID, targetID); err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "User deleted", nil)
}

// GetAdminPosts handles GET /api/admin/posts
func (s *Server) GetAdminPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, total, err := s.moderation.ListPosts(c.Context(), page.Limit, page.Offset())
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, posts, page.Page, page.Limit, total)
}

// GetReportedPosts handles GET /api/admin/posts/reported
func (s *Server) GetReportedPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, total, err := s.moderation.ListReportedPosts(c.Context(), page.Limit, page.Offset())
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, posts, page.Page, page.Limit, total)
}

// GetPostReports handles GET /api/admin/posts/:id/reports
func (s *Server) GetPostReports(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reports, err := s.moderation.GetPostReports(c.Context(), postID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "", reports)
}

// TogglePostBlock handles PUT /api/admin/posts/:id/block
func (s *Server) TogglePostBlock(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&req)

	post, err := s.moderation.TogglePostBlock(c.Context(), adminID, postID, req.Reason)
	if err != nil {
		return models.RespondError(c, err)
	}

	message := "Post unblocked"
	if post.IsBlocked {
		message = "Post blocked"
	}
	return models.Respond(c, fiber.StatusOK, message, post)
}

// DeleteAdminPost handles DELETE /api/admin/posts/:id
func (s *Server) DeleteAdminPost(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderation.DeletePost(c.Context(), adminID, postID); err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post deleted", nil)
}
