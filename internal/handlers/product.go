package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/repository"
)

// ProductHandler serves catalog reads.
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts returns the full catalog.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.FindAll(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(products)
}
