package middleware

import (
	"strings"

	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID     = "user_id"
	LocalUserEmail  = "user_email"
	LocalUserName   = "user_name"
	LocalRoleCode   = "user_role"
	LocalPrivileges = "user_privileges"
)

// bearerToken reads "Authorization: Bearer <token>". Websocket upgrades may
// pass the token as ?token= instead since browsers cannot set the header.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if t := c.Query("token"); t != "" {
			return t, ""
		}
		return "", "Missing authorization token"
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "Invalid authorization format. Use: Bearer <token>"
	}
	return parts[1], ""
}

// RequireAuth validates the JWT, checks the session against the database
// and stores the caller in Locals. Privileges are taken from the stored
// user so revocations apply to tokens already issued.
func RequireAuth(userRepo repository.UserRepository, tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, problem := bearerToken(c)
		if problem != "" {
			return c.Status(401).JSON(fiber.Map{"error": problem})
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals(LocalUserID, user.ID.String())
		c.Locals(LocalUserEmail, user.Email)
		c.Locals(LocalUserName, user.FullName)
		c.Locals(LocalRoleCode, user.RoleCode())
		c.Locals(LocalPrivileges, user.GetPrivilegeCodes())

		return c.Next()
	}
}

func hasAny(c *fiber.Ctx, required ...string) (bool, bool) {
	privileges, ok := c.Locals(LocalPrivileges).([]string)
	if !ok {
		return false, false
	}
	for _, p := range privileges {
		for _, r := range required {
			if p == r {
				return true, true
			}
		}
	}
	return false, true
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, known := hasAny(c, requiredPrivilege)
		if !known {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		if !allowed {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
			})
		}
		return c.Next()
	}
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, known := hasAny(c, requiredPrivileges...)
		if !known {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		if !allowed {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
			})
		}
		return c.Next()
	}
}
