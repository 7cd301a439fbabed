package controller

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
	dto "portalescolar_backend/internals/features/school/schedules/dto"
	model "portalescolar_backend/internals/features/school/schedules/model"
	service "portalescolar_backend/internals/features/school/schedules/service"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type ScheduleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewScheduleController(db *gorm.DB, v *validator.Validate) *ScheduleController {
	if v == nil {
		v = validator.New()
	}
	return &ScheduleController{DB: db, Validator: v}
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

var timeRx = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validSlotTimes(start, end string) bool {
	return timeRx.MatchString(start) && timeRx.MatchString(end) && start < end
}

// existentes que podem chocar com o candidato (mesmo professor ou mesma turma)
func (ctl *ScheduleController) loadNeighbors(c *fiber.Ctx, cand model.ScheduleSlotModel) ([]model.ScheduleSlotModel, error) {
	var rows []model.ScheduleSlotModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("slot_weekday = ? AND (slot_teacher_id = ? OR slot_classroom_id = ?)",
			cand.SlotWeekday, cand.SlotTeacherID, cand.SlotClassroomID).
		Find(&rows).Error
	return rows, err
}

/* ============================================
   CREATE
   POST /api/a/schedules
============================================ */

func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	var p dto.SlotCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if !constants.IsValidWeekday(p.SlotWeekday) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Dia da semana inválido")
	}
	if !validSlotTimes(p.SlotStartTime, p.SlotEndTime) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Horário inválido (use HH:MM, início antes do fim)")
	}

	ent := p.ToModel()

	neighbors, err := ctl.loadNeighbors(c, ent)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar choques de horário")
	}
	if conflicts := service.ConflictsWith(ent, neighbors); len(conflicts) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusConflict, "Choque de horário", conflicts)
	}

	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar horário")
	}
	return helper.JsonCreated(c, "Horário criado", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /api/a/schedules?classroom_id=&teacher_id=&weekday=
============================================ */

func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ScheduleSlotModel{})
	if cid := strings.TrimSpace(c.Query("classroom_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id inválido")
		}
		q = q.Where("slot_classroom_id = ?", id)
	}
	if tid := strings.TrimSpace(c.Query("teacher_id")); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id inválido")
		}
		q = q.Where("slot_teacher_id = ?", id)
	}
	if d := strings.TrimSpace(c.Query("weekday")); d != "" {
		q = q.Where("slot_weekday = ?", strings.ToUpper(d))
	}

	var rows []model.ScheduleSlotModel
	if err := q.Order("slot_weekday ASC, slot_start_time ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar horários")
	}
	return helper.JsonOK(c, "Grade de horários", dto.FromModels(rows))
}

/* ============================================
   PATCH
   PATCH /api/a/schedules/:id
============================================ */

func (ctl *ScheduleController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.SlotUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var ent model.ScheduleSlotModel
	if err := ctl.DB.Where("slot_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Horário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar horário")
	}

	p.ApplyUpdates(&ent)

	if !constants.IsValidWeekday(ent.SlotWeekday) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Dia da semana inválido")
	}
	if !validSlotTimes(ent.SlotStartTime, ent.SlotEndTime) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Horário inválido (use HH:MM, início antes do fim)")
	}

	neighbors, err := ctl.loadNeighbors(c, ent)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar choques de horário")
	}
	if conflicts := service.ConflictsWith(ent, neighbors); len(conflicts) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusConflict, "Choque de horário", conflicts)
	}

	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar horário")
	}
	return helper.JsonOK(c, "Horário atualizado", dto.FromModel(ent))
}

/* ============================================
   DELETE (soft)
   DELETE /api/a/schedules/:id
============================================ */

func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("slot_id = ?", id).Delete(&model.ScheduleSlotModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover horário")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Horário não encontrado")
	}
	return helper.JsonOK(c, "Horário removido", nil)
}

/* ============================================
   CONFLICTS (auditoria da grade inteira)
   GET /api/a/schedules/conflicts
============================================ */

func (ctl *ScheduleController) Conflicts(c *fiber.Ctx) error {
	var rows []model.ScheduleSlotModel
	if err := ctl.DB.WithContext(c.UserContext()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar grade")
	}
	conflicts := service.FindConflicts(rows)
	if conflicts == nil {
		conflicts = []service.Conflict{}
	}
	return helper.JsonOK(c, "Choques de horário", conflicts)
}
