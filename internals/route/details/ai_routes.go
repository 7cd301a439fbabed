package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portalescolar_backend/internals/configs"
	"portalescolar_backend/internals/constants"
	aiCtl "portalescolar_backend/internals/features/ai/controller"
	aiSvc "portalescolar_backend/internals/features/ai/service"
	middlewares "portalescolar_backend/internals/middlewares"
	authMiddleware "portalescolar_backend/internals/middlewares/auth"
)

// AIRoutes registra os assistentes de IA em /api/a/ai, com limite de taxa
// próprio (as chamadas ao Gemini custam cota).
func AIRoutes(api fiber.Router, db *gorm.DB) {
	gemini := aiSvc.NewGeminiClient(configs.GeminiAPIKey)
	ctl := aiCtl.NewAIController(db, gemini, nil)

	base := api.Group("/ai",
		middlewares.AIRateLimiter(),
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("os assistentes de IA"),
			constants.SecretariaAndAbove,
		),
	)

	base.Post("/extract-document", ctl.ExtractDocument)
	base.Post("/suggest-schedule", ctl.SuggestSchedule)
	base.Post("/draft-comment/:student_id", ctl.DraftComment)
}
