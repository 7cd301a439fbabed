package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portalescolar_backend/internals/configs"
	authRoute "portalescolar_backend/internals/features/users/auth/route"
	authMiddleware "portalescolar_backend/internals/middlewares/auth"
	details "portalescolar_backend/internals/route/details"
)

// SetupRoutes monta os três andares do portal:
//
//	/api    — público (login, refresh)
//	/api/u  — qualquer usuário autenticado (avisos próprios)
//	/api/a  — equipe da escola, com guarda de papel por grupo
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")
	authRoute.AuthRoutes(api, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	user := app.Group("/api/u", jwt)
	details.UserRoutes(user, db)

	admin := app.Group("/api/a", jwt)
	authRoute.AuthAdminRoutes(admin, db)
	details.SchoolRoutes(admin, db)
	details.AIRoutes(admin, db)
}
