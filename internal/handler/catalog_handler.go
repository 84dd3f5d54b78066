package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves categories, vendors and customers.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	list, err := h.service.GetCategories()
	if err != nil {
		return respondError(c, "GetCategories", err)
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "category")
	}
	cat, err := h.service.GetCategory(id)
	if err != nil {
		return respondError(c, "GetCategory", err)
	}
	return c.JSON(cat)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	cat, err := h.service.CreateCategory(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateCategory", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": cat})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "category")
	}
	var req service.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	cat, err := h.service.UpdateCategory(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdateCategory", err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": cat})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "category")
	}
	if err := h.service.DeleteCategory(id, actorFrom(c)); err != nil {
		return respondError(c, "DeleteCategory", err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *CatalogHandler) GetVendors(c *fiber.Ctx) error {
	list, err := h.service.GetVendors()
	if err != nil {
		return respondError(c, "GetVendors", err)
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetVendor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "vendor")
	}
	v, err := h.service.GetVendor(id)
	if err != nil {
		return respondError(c, "GetVendor", err)
	}
	return c.JSON(v)
}

func (h *CatalogHandler) CreateVendor(c *fiber.Ctx) error {
	var req service.VendorInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	v, err := h.service.CreateVendor(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateVendor", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Vendor created", "data": v})
}

func (h *CatalogHandler) UpdateVendor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "vendor")
	}
	var req service.VendorInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	v, err := h.service.UpdateVendor(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdateVendor", err)
	}
	return c.JSON(fiber.Map{"message": "Vendor updated", "data": v})
}

func (h *CatalogHandler) DeleteVendor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "vendor")
	}
	if err := h.service.DeleteVendor(id, actorFrom(c)); err != nil {
		return respondError(c, "DeleteVendor", err)
	}
	return c.JSON(fiber.Map{"message": "Vendor deleted"})
}

func (h *CatalogHandler) GetCustomers(c *fiber.Ctx) error {
	list, err := h.service.GetCustomers()
	if err != nil {
		return respondError(c, "GetCustomers", err)
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "customer")
	}
	cu, err := h.service.GetCustomer(id)
	if err != nil {
		return respondError(c, "GetCustomer", err)
	}
	return c.JSON(cu)
}

func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	cu, err := h.service.CreateCustomer(&req, actorFrom(c))
	if err != nil {
		return respondError(c, "CreateCustomer", err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": cu})
}

func (h *CatalogHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "customer")
	}
	var req service.CustomerInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	cu, err := h.service.UpdateCustomer(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "UpdateCustomer", err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": cu})
}

func (h *CatalogHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "customer")
	}
	if err := h.service.DeleteCustomer(id, actorFrom(c)); err != nil {
		return respondError(c, "DeleteCustomer", err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
