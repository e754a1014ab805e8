package models

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the uniform success envelope: a status code, a payload,
// and a human-readable message.
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// Respond writes the uniform success envelope with the given status.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

// Page wraps one page of results together with pagination bookkeeping.
type Page struct {
	Items       interface{} `json:"items"`
	Total       int64       `json:"total"`
	TotalPages  int64       `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
}

// NewPage computes total page count from the total row count and page size.
func NewPage(items interface{}, total int64, page, limit int) Page {
	var pages int64
	if limit > 0 {
		pages = int64(math.Ceil(float64(total) / float64(limit)))
	}
	return Page{
		Items:       items,
		Total:       total,
		TotalPages:  pages,
		CurrentPage: page,
	}
}
