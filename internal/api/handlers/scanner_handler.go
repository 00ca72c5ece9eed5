package handlers

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/api/presenters"
	"Product-Scanner/pkg/scanner"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScannerHandler interface {
		GetScanners(c *fiber.Ctx) error
		SearchScanners(c *fiber.Ctx) error
		UpsertScanner(c *fiber.Ctx) error
		DeleteScanner(c *fiber.Ctx) error
	}

	scannerHandler struct {
		scannerService scanner.ScannerService
		validator      *validator.Validate
	}
)

func NewScannerHandler(scannerService scanner.ScannerService, validator *validator.Validate) ScannerHandler {
	return &scannerHandler{
		scannerService: scannerService,
		validator:      validator,
	}
}

func (h *scannerHandler) GetScanners(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.scannerService.GetActiveScanners(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScannerAction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScanners)
}

// SearchScanners answers a miss with 200 and the transient message in the body.
func (h *scannerHandler) SearchScanners(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.scannerService.SearchScanners(c.Context(), userID, c.Query("q"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScannerAction, err)
	}

	message := domain.MessageSuccessSearchScanners
	if res.Message != "" {
		message = res.Message
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, message)
}

func (h *scannerHandler) UpsertScanner(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpsertScannerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScannerAction, err)
	}

	res, err := h.scannerService.UpsertScanner(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScannerAction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveScanner)
}

func (h *scannerHandler) DeleteScanner(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	confirmed, _ := strconv.ParseBool(c.Query("confirm", "false"))

	err := h.scannerService.DeleteScanner(c.Context(), userID, c.Params("id"), confirmed)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeleteNotConfirmed):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageConfirmDelete, err)
		case errors.Is(err, domain.ErrScannerNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageScannerNotFound, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScannerAction, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteScanner)
}
