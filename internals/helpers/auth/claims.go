package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Chaves usadas em c.Locals pelos middlewares de autenticação.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocUserName = "user_name"
)

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Sessão inválida")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Sessão inválida")
	}
	return id, nil
}

func GetUserRole(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocUserRole).(string); ok {
		return s
	}
	return ""
}

func HasRole(c *fiber.Ctx, roles []string) bool {
	role := GetUserRole(c)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
