package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "portalescolar_backend/internals/features/school/notifications/model"
	service "portalescolar_backend/internals/features/school/notifications/service"
	helper "portalescolar_backend/internals/helpers"
	helperAuth "portalescolar_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type NotificationController struct {
	Store     service.Store
	Validator *validator.Validate
}

func NewNotificationController(store service.Store, v *validator.Validate) *NotificationController {
	if v == nil {
		v = validator.New()
	}
	return &NotificationController{Store: store, Validator: v}
}

type notifyRequest struct {
	RecipientIDs []uuid.UUID `json:"recipient_ids" validate:"required,min=1"`
	Title        string      `json:"title"         validate:"required,min=2"`
	Body         string      `json:"body"          validate:"required,min=2"`
}

/* ============================================
   SEND (admin/coordenação)
   POST /api/a/notifications
============================================ */

func (ctl *NotificationController) Send(c *fiber.Ctx) error {
	var p notifyRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	rows := make([]model.NotificationModel, 0, len(p.RecipientIDs))
	for _, rid := range p.RecipientIDs {
		rows = append(rows, model.NotificationModel{
			NotificationRecipientID: rid,
			NotificationTitle:       strings.TrimSpace(p.Title),
			NotificationBody:        strings.TrimSpace(p.Body),
		})
	}
	if err := ctl.Store.CreateMany(c.UserContext(), rows); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao enviar avisos")
	}
	return helper.JsonCreated(c, "Avisos enviados", fiber.Map{"count": len(rows)})
}

/* ============================================
   MINE
   GET /api/u/notifications?unread=1
============================================ */

func (ctl *NotificationController) Mine(c *fiber.Ctx) error {
	uid, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão inválida")
	}

	onlyUnread := c.Query("unread") == "1" || strings.EqualFold(c.Query("unread"), "true")
	rows, err := ctl.Store.ListByRecipient(c.UserContext(), uid, onlyUnread)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar avisos")
	}
	return helper.JsonOK(c, "Meus avisos", rows)
}

/* ============================================
   MARK READ
   PATCH /api/u/notifications/:id/read
============================================ */

func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	uid, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão inválida")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	ok, err := ctl.Store.MarkRead(c.UserContext(), uid, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao marcar aviso")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Aviso não encontrado")
	}
	return helper.JsonOK(c, "Aviso lido", nil)
}
