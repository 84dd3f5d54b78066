package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetAll()
	if err != nil {
		return respondError(c, "GetPurchases", err)
	}
	return c.JSON(purchases)
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "purchase")
	}
	p, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "GetPurchase", err)
	}
	return c.JSON(p)
}

func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.PurchaseInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	p, err := h.service.Create(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreatePurchase", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": p})
}

func (h *PurchaseHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "purchase")
	}
	var req service.PurchaseInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	p, err := h.service.Update(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdatePurchase", err)
	}
	return c.JSON(fiber.Map{"message": "Purchase updated", "data": p})
}

func (h *PurchaseHandler) MarkDelivered(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "purchase")
	}
	p, err := h.service.MarkDelivered(id, actorFrom(c))
	if err != nil {
		return respondError(c, "MarkDelivered", err)
	}
	return c.JSON(fiber.Map{"message": "Purchase delivered", "data": p})
}

// DeletePurchase answers 409 when the item no longer holds the purchased
// quantity.
func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "purchase")
	}
	if err := h.service.Delete(id, actorFrom(c)); err != nil {
		return respondError(c, "DeletePurchase", err)
	}
	return c.JSON(fiber.Map{"message": "Purchase deleted"})
}
