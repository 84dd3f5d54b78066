package handler

import (
	"io"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{service: s}
}

func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAll()
	if err != nil {
		return respondError(c, "GetItems", err)
	}
	return c.JSON(items)
}

// SearchItems lists items whose name matches every term of ?q=.
func (h *ItemHandler) SearchItems(c *fiber.Ctx) error {
	items, err := h.service.Search(c.Query("q"))
	if err != nil {
		return respondError(c, "SearchItems", err)
	}
	return c.JSON(items)
}

// SelectItems feeds the item picker. ?term= is free text.
func (h *ItemHandler) SelectItems(c *fiber.Ctx) error {
	options, err := h.service.Select(c.Query("term"), c.BaseURL())
	if err != nil {
		return respondError(c, "SelectItems", err)
	}
	return c.JSON(fiber.Map{"results": options})
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "item")
	}
	item, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "GetItem", err)
	}
	return c.JSON(item)
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req service.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	item, err := h.service.Create(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateItem", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "item")
	}
	var req service.ItemInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	item, err := h.service.Update(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdateItem", err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "item")
	}
	result, err := h.service.Delete(id, actorFrom(c))
	if err != nil {
		return respondError(c, "DeleteItem", err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted", "data": result})
}

// UploadImage accepts multipart field "image".
func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "item")
	}
	header, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "image file is required"})
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, "UploadImage", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, "UploadImage", err)
	}
	item, err := h.service.UploadImage(id, data, actorFrom(c))
	if err != nil {
		return respondError(c, "UploadImage", err)
	}
	return c.JSON(fiber.Map{"message": "Image uploaded", "data": item})
}
