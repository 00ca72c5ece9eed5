package handlers

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/api/presenters"
	"Product-Scanner/pkg/excel"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ExcelHandler interface {
		VerifySpreadsheet(c *fiber.Ctx) error
	}

	excelHandler struct {
		excelService excel.ExcelService
		validator    *validator.Validate
	}
)

func NewExcelHandler(excelService excel.ExcelService, validator *validator.Validate) ExcelHandler {
	return &excelHandler{
		excelService: excelService,
		validator:    validator,
	}
}

func (h *excelHandler) VerifySpreadsheet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := domain.VerifySpreadsheetRequest{
		File:        file,
		NotifyEmail: c.FormValue("notify_email"),
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifySpreadsheet, err)
	}

	res, err := h.excelService.VerifySpreadsheet(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSpreadsheet) || errors.Is(err, domain.ErrEmptySpreadsheet) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifySpreadsheet, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedVerifySpreadsheet, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifySpreadsheet)
}
