package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAll()
	if err != nil {
		return respondError(c, "GetSales", err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "sale")
	}
	sale, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "GetSale", err)
	}
	return c.JSON(fiber.Map{"data": sale, "total_quantity": sale.TotalQuantity()})
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	sale, err := h.service.Create(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateSale", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "sale")
	}
	if err := h.service.Delete(id, actorFrom(c)); err != nil {
		return respondError(c, "DeleteSale", err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}
