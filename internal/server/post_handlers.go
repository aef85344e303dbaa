package server

import (
	"fmt"
	"image"
	"mime/multipart"
	"os"
	"path/filepath"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mirador/internal/models"
	"mirador/internal/service"
)

const maxUploadBytes = 10 * 1024 * 1024

var extByFormat = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// CreatePost handles POST /api/posts (multipart form with an image file).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondError(c, models.NewValidationError("Image is required"))
	}
	if file.Size > maxUploadBytes {
		return models.RespondError(c, models.NewValidationError("Image exceeds the 10MB limit"))
	}

	filename, err := s.saveUpload(file)
	if err != nil {
		return models.RespondError(c, err)
	}

	post, err := s.posts.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Content:  c.FormValue("content"),
		Image:    filename,
		ImageURL: "/uploads/" + filename,
	})
	if err != nil {
		// Don't keep the file around when the post was rejected.
		_ = os.Remove(filepath.Join(s.config.UploadDir, filename))
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Post created", post)
}

// saveUpload validates the upload is a decodable image and writes it to the
// upload directory under a random name. Validation decodes the image header,
// not the file extension, so a renamed binary is rejected.
func (s *Server) saveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer src.Close()

	_, format, err := image.DecodeConfig(src)
	if err != nil {
		return "", models.NewValidationError("File must be a JPEG, PNG, GIF or WebP image")
	}
	ext, ok := extByFormat[format]
	if !ok {
		return "", models.NewValidationError("File must be a JPEG, PNG, GIF or WebP image")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.config.UploadDir, filename))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := src.Seek(0, 0); err != nil {
		return "", models.NewInternalError(err)
	}
	if _, err := dst.ReadFrom(src); err != nil {
		return "", models.NewInternalError(err)
	}

	return filename, nil
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 10)
	currentUserID := s.optionalUserID(c)

	posts, total, err := s.posts.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset(),
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, posts, page.Page, page.Limit, total)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID := s.optionalUserID(c)

	post, err := s.posts.GetPost(c.Context(), id, currentUserID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "", post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 10)
	currentUserID := s.optionalUserID(c)

	posts, total, err := s.posts.GetUserPosts(c.Context(), userID, page.Limit, page.Offset(), currentUserID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, posts, page.Page, page.Limit, total)
}

// ToggleLike handles PUT /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.posts.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return models.RespondError(c, err)
	}

	message := "Post liked"
	if !post.Liked {
		message = "Like removed"
	}
	return models.Respond(c, fiber.StatusOK, message, post)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.posts.CreateComment(c.Context(), userID, postID, req.Text)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Comment added", comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, total, err := s.posts.GetComments(c.Context(), postID, page.Limit, page.Offset())
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.RespondPage(c, comments, page.Page, page.Limit, total)
}

// ReportPost handles POST /api/posts/:id/report
func (s *Server) ReportPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	report, err := s.posts.ReportPost(c.Context(), userID, postID, req.Reason)
	if err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Report submitted", report)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.posts.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fmt.Sprintf("Post %d deleted", postID), nil)
}
