package middleware

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "portalescolar_backend/internals/helpers/auth"
)

// OnlyRolesSlice bloqueia a requisição quando o papel do token não está
// na lista permitida.
func OnlyRolesSlice(errMsg string, allowed []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.HasRole(c, allowed) {
			return fiber.NewError(fiber.StatusForbidden, errMsg)
		}
		return c.Next()
	}
}
