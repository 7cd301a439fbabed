package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
	authCtl "portalescolar_backend/internals/features/users/auth/controller"
	middlewares "portalescolar_backend/internals/middlewares"
	authMiddleware "portalescolar_backend/internals/middlewares/auth"
)

// Rotas públicas de autenticação
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authCtl.NewAuthController(db, nil)

	api.Post("/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
	api.Post("/auth/refresh", ctl.Refresh)
	api.Post("/auth/logout", ctl.Logout)
}

// Rotas administrativas (criação de contas da equipe)
func AuthAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authCtl.NewAuthController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("gestão de usuários"),
			constants.AdminOnly,
		),
	)
	base.Post("/auth/register", ctl.Register)
}
