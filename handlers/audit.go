package handlers

import (
	"github.com/gofiber/fiber/v2"

	"keeper/middleware"
)

// ListAuditLogs returns the current user's audit trail, newest first.
func (h *Handler) ListAuditLogs(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	entries, err := h.Audit.Fetch(userID, offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(entries)
}
