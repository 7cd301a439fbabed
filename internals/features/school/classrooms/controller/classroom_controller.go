package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "portalescolar_backend/internals/features/school/classrooms/dto"
	model "portalescolar_backend/internals/features/school/classrooms/model"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type ClassroomController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassroomController(db *gorm.DB, v *validator.Validate) *ClassroomController {
	if v == nil {
		v = validator.New()
	}
	return &ClassroomController{DB: db, Validator: v}
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
   POST /api/a/classrooms
============================================ */

func (ctl *ClassroomController) Create(c *fiber.Ctx) error {
	var p dto.ClassroomCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	// unicidade por (nome, ano letivo)
	var cnt int64
	if err := ctl.DB.Model(&model.ClassroomModel{}).
		Where("classroom_name = ? AND classroom_year = ?", p.ClassroomName, p.ClassroomYear).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar turma")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Turma já cadastrada neste ano letivo")
	}

	ent := p.ToModel()
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar turma")
	}
	return helper.JsonCreated(c, "Turma criada", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /api/a/classrooms?shift=&year=&active=
============================================ */

func (ctl *ClassroomController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassroomModel{})
	if shift := strings.TrimSpace(c.Query("shift")); shift != "" {
		q = q.Where("classroom_shift = ?", strings.ToUpper(shift))
	}
	if year := strings.TrimSpace(c.Query("year")); year != "" {
		q = q.Where("classroom_year = ?", year)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("classroom_is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar turmas")
	}

	var rows []model.ClassroomModel
	if err := q.Order("classroom_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar turmas")
	}

	return helper.JsonList(c, "Turmas", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

/* ============================================
   GET BY ID
   GET /api/a/classrooms/:id
============================================ */

func (ctl *ClassroomController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var ent model.ClassroomModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("classroom_id = ?", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar turma")
	}
	return helper.JsonOK(c, "Turma", dto.FromModel(ent))
}

/* ============================================
   PATCH
   PATCH /api/a/classrooms/:id
============================================ */

func (ctl *ClassroomController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.ClassroomUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var ent model.ClassroomModel
	if err := ctl.DB.Where("classroom_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar turma")
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar turma")
	}
	return helper.JsonOK(c, "Turma atualizada", dto.FromModel(ent))
}

/* ============================================
   DELETE (soft)
   DELETE /api/a/classrooms/:id
============================================ */

func (ctl *ClassroomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("classroom_id = ?", id).Delete(&model.ClassroomModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover turma")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
	}
	return helper.JsonOK(c, "Turma removida", nil)
}
