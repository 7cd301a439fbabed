package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "portalescolar_backend/internals/features/school/discipline/dto"
	model "portalescolar_backend/internals/features/school/discipline/model"
	helper "portalescolar_backend/internals/helpers"
	helperAuth "portalescolar_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type OccurrenceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewOccurrenceController(db *gorm.DB, v *validator.Validate) *OccurrenceController {
	if v == nil {
		v = validator.New()
	}
	return &OccurrenceController{DB: db, Validator: v}
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload inválido")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

/* ============================================
   CREATE
   POST /api/a/discipline/occurrences
============================================ */

func (ctl *OccurrenceController) Create(c *fiber.Ctx) error {
	reporterID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão inválida")
	}

	var p dto.OccurrenceCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if !model.IsValidSeverity(p.OccurrenceSeverity) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Gravidade inválida (LEVE, MÉDIA ou GRAVE)")
	}

	ent := p.ToModel(reporterID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar ocorrência")
	}
	return helper.JsonCreated(c, "Ocorrência registrada", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /api/a/discipline/occurrences?student_id=&severity=
============================================ */

func (ctl *OccurrenceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.OccurrenceModel{})
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id inválido")
		}
		q = q.Where("occurrence_student_id = ?", id)
	}
	if sev := strings.TrimSpace(c.Query("severity")); sev != "" {
		q = q.Where("occurrence_severity = ?", strings.ToUpper(sev))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar ocorrências")
	}

	var rows []model.OccurrenceModel
	if err := q.Order("occurrence_date DESC, occurrence_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar ocorrências")
	}

	return helper.JsonList(c, "Ocorrências", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

/* ============================================
   PATCH
   PATCH /api/a/discipline/occurrences/:id
============================================ */

func (ctl *OccurrenceController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.OccurrenceUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	if p.OccurrenceSeverity != nil && !model.IsValidSeverity(strings.ToUpper(strings.TrimSpace(*p.OccurrenceSeverity))) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Gravidade inválida (LEVE, MÉDIA ou GRAVE)")
	}

	var ent model.OccurrenceModel
	if err := ctl.DB.Where("occurrence_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Ocorrência não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar ocorrência")
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar ocorrência")
	}
	return helper.JsonOK(c, "Ocorrência atualizada", dto.FromModel(ent))
}

/* ============================================
   DELETE (soft)
   DELETE /api/a/discipline/occurrences/:id
============================================ */

func (ctl *OccurrenceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("occurrence_id = ?", id).Delete(&model.OccurrenceModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover ocorrência")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Ocorrência não encontrada")
	}
	return helper.JsonOK(c, "Ocorrência removida", nil)
}
