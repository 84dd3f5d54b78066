package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DeliveryHandler struct {
	service service.DeliveryService
}

func NewDeliveryHandler(s service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: s}
}

func (h *DeliveryHandler) GetDeliveries(c *fiber.Ctx) error {
	deliveries, err := h.service.GetAll()
	if err != nil {
		return respondError(c, "GetDeliveries", err)
	}
	return c.JSON(deliveries)
}

func (h *DeliveryHandler) SearchDeliveries(c *fiber.Ctx) error {
	deliveries, err := h.service.Search(c.Query("q"))
	if err != nil {
		return respondError(c, "SearchDeliveries", err)
	}
	return c.JSON(deliveries)
}

func (h *DeliveryHandler) GetDelivery(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "delivery")
	}
	d, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "GetDelivery", err)
	}
	return c.JSON(d)
}

func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var req service.DeliveryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	d, err := h.service.Create(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateDelivery", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Delivery created", "data": d})
}

func (h *DeliveryHandler) UpdateDelivery(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "delivery")
	}
	var req service.DeliveryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	d, err := h.service.Update(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdateDelivery", err)
	}
	return c.JSON(fiber.Map{"message": "Delivery updated", "data": d})
}

func (h *DeliveryHandler) DeleteDelivery(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "delivery")
	}
	if err := h.service.Delete(id, actorFrom(c)); err != nil {
		return respondError(c, "DeleteDelivery", err)
	}
	return c.JSON(fiber.Map{"message": "Delivery deleted"})
}
