package handlers

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/api/presenters"
	"Product-Scanner/pkg/product"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		GetProduct(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
	}
)

func NewProductHandler(productService product.ProductService) ProductHandler {
	return &productHandler{
		productService: productService,
	}
}

func (h *productHandler) GetProduct(c *fiber.Ctx) error {
	res, err := h.productService.FindBySerial(c.Context(), c.Params("serial"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrEmptySerial):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageProductNotFound, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageLookupFailed, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProduct)
}
