package models

import "github.com/gofiber/fiber/v2"

// Pagination describes the page slice returned by list endpoints.
type Pagination struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
}

// SuccessResponse is the uniform JSON envelope for successful requests.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Respond writes the success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondPage writes the success envelope with pagination metadata.
func RespondPage(c *fiber.Ctx, data interface{}, page, limit int, total int64) error {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Pages: pages,
			Total: total,
			Limit: limit,
		},
	})
}
