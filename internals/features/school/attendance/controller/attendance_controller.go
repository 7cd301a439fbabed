package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "portalescolar_backend/internals/features/school/attendance/dto"
	model "portalescolar_backend/internals/features/school/attendance/model"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB, v *validator.Validate) *AttendanceController {
	if v == nil {
		v = validator.New()
	}
	return &AttendanceController{DB: db, Validator: v}
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
   CREATE SESSION
   POST /api/a/attendance/sessions
============================================ */

func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	var p dto.SessionCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	ent := p.ToModel()
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao abrir chamada")
	}
	return helper.JsonCreated(c, "Chamada aberta", dto.FromModel(ent))
}

/* ============================================
   LIST SESSIONS
   GET /api/a/attendance/sessions?classroom_id=&from=&to=
============================================ */

func (ctl *AttendanceController) ListSessions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.AttendanceSessionModel{})
	if cid := strings.TrimSpace(c.Query("classroom_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id inválido")
		}
		q = q.Where("session_classroom_id = ?", id)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from inválido (use AAAA-MM-DD)")
		}
		q = q.Where("session_date >= ?", t)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to inválido (use AAAA-MM-DD)")
		}
		q = q.Where("session_date <= ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar chamadas")
	}

	var rows []model.AttendanceSessionModel
	if err := q.Order("session_date DESC, session_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar chamadas")
	}

	return helper.JsonList(c, "Chamadas", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

/* ============================================
   MARKS (registro em lote por chamada)
   PUT /api/a/attendance/sessions/:id/marks
============================================ */

func (ctl *AttendanceController) UpsertMarks(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var session model.AttendanceSessionModel
	if err := ctl.DB.Where("session_id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Chamada não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar chamada")
	}

	var p dto.MarkBulkUpsertDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	rows := make([]model.AttendanceMarkModel, 0, len(p.Marks))
	for _, m := range p.Marks {
		rows = append(rows, model.AttendanceMarkModel{
			MarkSessionID: id,
			MarkStudentID: m.StudentID,
			MarkIsPresent: m.IsPresent,
			MarkNote:      m.Note,
		})
	}

	// upsert por (chamada, aluno) — reenvio corrige a chamada inteira
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mark_session_id"}, {Name: "mark_student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mark_is_present", "mark_note", "mark_updated_at"}),
	}).Create(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar presenças")
	}

	out := make([]dto.MarkResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MarkFromModel(r))
	}
	return helper.JsonOK(c, "Presenças registradas", out)
}

/* ============================================
   MARKS (consulta por chamada)
   GET /api/a/attendance/sessions/:id/marks
============================================ */

func (ctl *AttendanceController) ListMarks(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var rows []model.AttendanceMarkModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("mark_session_id = ?", id).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar presenças")
	}

	out := make([]dto.MarkResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MarkFromModel(r))
	}
	return helper.JsonOK(c, "Presenças da chamada", out)
}

/* ============================================
   DELETE SESSION (soft)
   DELETE /api/a/attendance/sessions/:id
============================================ */

func (ctl *AttendanceController) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("session_id = ?", id).Delete(&model.AttendanceSessionModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover chamada")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Chamada não encontrada")
	}
	return helper.JsonOK(c, "Chamada removida", nil)
}
