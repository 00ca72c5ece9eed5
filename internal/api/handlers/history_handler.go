package handlers

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/api/presenters"
	"Product-Scanner/pkg/history"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	HistoryHandler interface {
		GetScanHistory(c *fiber.Ctx) error
	}

	historyHandler struct {
		historyService history.HistoryService
	}
)

func NewHistoryHandler(historyService history.HistoryService) HistoryHandler {
	return &historyHandler{
		historyService: historyService,
	}
}

func (h *historyHandler) GetScanHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	method := c.Query("method", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.historyService.GetScanHistory(c.Context(), userID, method, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items":      items,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
