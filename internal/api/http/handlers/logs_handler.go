package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ms1708/academy-portal/internal/errorlog"
	apperrors "github.com/ms1708/academy-portal/pkg/util"
)

// LogsHandler exposes the locally persisted error log for admin inspection.
type LogsHandler struct {
	logs *errorlog.Log
}

// NewLogsHandler constructs handler.
func NewLogsHandler(logs *errorlog.Log) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// Dates handles GET /logs/dates.
func (h *LogsHandler) Dates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.logs.Dates()})
}

// ForDate handles GET /logs/:date.
func (h *LogsHandler) ForDate(c *fiber.Ctx) error {
	date := c.Params("date")
	day, ok := h.logs.ForDate(date)
	if !ok {
		return apperrors.NewNotFound("log bucket", map[string]any{"date": date})
	}
	return c.JSON(fiber.Map{"data": day})
}

// Export handles GET /logs/:date/export as plain text.
func (h *LogsHandler) Export(c *fiber.Ctx) error {
	date := c.Params("date")
	content, ok := h.logs.Export(date)
	if !ok {
		return apperrors.NewNotFound("log bucket", map[string]any{"date": date})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(content)
}

// Clear handles DELETE /logs/:date.
func (h *LogsHandler) Clear(c *fiber.Ctx) error {
	h.logs.ClearDate(c.Params("date"))
	return c.JSON(fiber.Map{"data": fiber.Map{"cleared": true}})
}
