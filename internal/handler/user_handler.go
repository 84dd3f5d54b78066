package handler

import (
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles user creation
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.CreateUser(&req, actorFrom(c).ID)
	if err != nil {
		return respondError(c, "CreateUser", err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns all users
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, "GetUsers", err)
	}
	return c.JSON(users)
}

// GetUser returns a single user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "user")
	}
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		return respondError(c, "GetUser", err)
	}
	return c.JSON(user)
}

// UpdateUser handles user update
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "user")
	}
	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpdateUser(id, &req, actorFrom(c).ID)
	if err != nil {
		return respondError(c, "UpdateUser", err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

type UpdatePrivilegesRequest struct {
	Privileges []string `json:"privileges"`
}

// UpdatePrivileges replaces a user's privilege codes
// PUT /api/v1/users/:id/privileges
func (h *UserHandler) UpdatePrivileges(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c, "user")
	}
	var req UpdatePrivilegesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpdateUserPrivileges(id, req.Privileges, actorFrom(c).ID)
	if err != nil {
		return respondError(c, "UpdatePrivileges", err)
	}
	return c.JSON(fiber.Map{
		"message": "Privileges updated successfully",
		"data":    user.ToResponse(),
	})
}

// Me returns the authenticated caller.
// GET /api/v1/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actor := actorFrom(c)
	return c.JSON(fiber.Map{"id": actor.ID, "name": actor.Name, "email": actor.Email})
}
