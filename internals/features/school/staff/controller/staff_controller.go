package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "portalescolar_backend/internals/features/school/staff/dto"
	model "portalescolar_backend/internals/features/school/staff/model"
	helper "portalescolar_backend/internals/helpers"
)

type StaffController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStaffController(db *gorm.DB, v *validator.Validate) *StaffController {
	if v == nil {
		v = validator.New()
	}
	return &StaffController{DB: db, Validator: v}
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

// POST /api/a/staff
func (ctl *StaffController) Create(c *fiber.Ctx) error {
	var p dto.StaffCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if p.StaffCPF != nil && strings.TrimSpace(*p.StaffCPF) != "" {
		var cnt int64
		if err := ctl.DB.Model(&model.StaffModel{}).
			Where("staff_cpf = ?", *p.StaffCPF).
			Count(&cnt).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar CPF")
		}
		if cnt > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "CPF já cadastrado")
		}
	}

	ent := p.ToModel()
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar funcionário")
	}
	return helper.JsonCreated(c, "Funcionário cadastrado", dto.FromModel(ent))
}

// GET /api/a/staff?position=&active=&q=
func (ctl *StaffController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.StaffModel{})
	if pos := strings.TrimSpace(c.Query("position")); pos != "" {
		q = q.Where("staff_position = ?", strings.ToUpper(pos))
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("staff_is_active = ?", active == "true")
	}
	if name := strings.TrimSpace(c.Query("q")); name != "" {
		q = q.Where("staff_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar funcionários")
	}

	var rows []model.StaffModel
	if err := q.Order("staff_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar funcionários")
	}

	return helper.JsonList(c, "Funcionários", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

// GET /api/a/staff/:id
func (ctl *StaffController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var ent model.StaffModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("staff_id = ?", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar funcionário")
	}
	return helper.JsonOK(c, "Funcionário", dto.FromModel(ent))
}

// PATCH /api/a/staff/:id
func (ctl *StaffController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.StaffUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var ent model.StaffModel
	if err := ctl.DB.Where("staff_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar funcionário")
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar funcionário")
	}
	return helper.JsonOK(c, "Funcionário atualizado", dto.FromModel(ent))
}

// DELETE /api/a/staff/:id (soft)
func (ctl *StaffController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("staff_id = ?", id).Delete(&model.StaffModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover funcionário")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
	}
	return helper.JsonOK(c, "Funcionário removido", nil)
}
