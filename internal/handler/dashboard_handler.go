package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboard always answers 200; aggregates that failed are zero.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(h.service.GetSummary())
}
