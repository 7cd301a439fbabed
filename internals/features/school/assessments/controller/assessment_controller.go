package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portalescolar_backend/internals/constants"
	dto "portalescolar_backend/internals/features/school/assessments/dto"
	model "portalescolar_backend/internals/features/school/assessments/model"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type AssessmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAssessmentController(db *gorm.DB, v *validator.Validate) *AssessmentController {
	if v == nil {
		v = validator.New()
	}
	return &AssessmentController{DB: db, Validator: v}
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
   POST /api/a/assessments
============================================ */

func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	var p dto.AssessmentCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if !constants.IsValidBimester(p.AssessmentPeriod) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Bimestre inválido")
	}

	ent := p.ToModel()
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar avaliação")
	}
	return helper.JsonCreated(c, "Avaliação criada", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /api/a/assessments?classroom_id=&subject=&period=&type=
============================================ */

func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.AssessmentModel{})
	if cid := strings.TrimSpace(c.Query("classroom_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id inválido")
		}
		q = q.Where("assessment_classroom_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("subject")); s != "" {
		q = q.Where("assessment_subject = ?", strings.ToUpper(s))
	}
	if p := strings.TrimSpace(c.Query("period")); p != "" {
		q = q.Where("assessment_period = ?", strings.ToUpper(p))
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("assessment_type = ?", strings.ToUpper(t))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar avaliações")
	}

	var rows []model.AssessmentModel
	if err := q.Order("assessment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar avaliações")
	}

	return helper.JsonList(c, "Avaliações", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

/* ============================================
   PATCH
   PATCH /api/a/assessments/:id
============================================ */

func (ctl *AssessmentController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.AssessmentUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	if p.AssessmentPeriod != nil && !constants.IsValidBimester(strings.ToUpper(strings.TrimSpace(*p.AssessmentPeriod))) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Bimestre inválido")
	}

	var ent model.AssessmentModel
	if err := ctl.DB.Where("assessment_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Avaliação não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar avaliação")
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar avaliação")
	}
	return helper.JsonOK(c, "Avaliação atualizada", dto.FromModel(ent))
}

/* ============================================
   DELETE (soft; as notas ficam para histórico)
   DELETE /api/a/assessments/:id
============================================ */

func (ctl *AssessmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.Where("assessment_id = ?", id).Delete(&model.AssessmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover avaliação")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Avaliação não encontrada")
	}
	return helper.JsonOK(c, "Avaliação removida", nil)
}

/* ============================================
   GRADES (lançamento em lote por avaliação)
   PUT /api/a/assessments/:id/grades
============================================ */

func (ctl *AssessmentController) UpsertGrades(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var assessment model.AssessmentModel
	if err := ctl.DB.Where("assessment_id = ?", id).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Avaliação não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar avaliação")
	}

	var p dto.GradeBulkUpsertDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	for _, g := range p.Grades {
		if g.Score > assessment.AssessmentMaxScore {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Nota acima da pontuação máxima da avaliação")
		}
	}

	rows := make([]model.GradeModel, 0, len(p.Grades))
	for _, g := range p.Grades {
		rows = append(rows, model.GradeModel{
			GradeAssessmentID: id,
			GradeStudentID:    g.StudentID,
			GradeScore:        g.Score,
		})
	}

	// upsert por (avaliação, aluno)
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grade_assessment_id"}, {Name: "grade_student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade_score", "grade_updated_at"}),
	}).Create(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao lançar notas")
	}

	out := make([]dto.GradeResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GradeFromModel(r))
	}
	return helper.JsonOK(c, "Notas lançadas", out)
}

/* ============================================
   GRADES (consulta por avaliação)
   GET /api/a/assessments/:id/grades
============================================ */

func (ctl *AssessmentController) ListGrades(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var rows []model.GradeModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("grade_assessment_id = ?", id).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar notas")
	}

	out := make([]dto.GradeResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GradeFromModel(r))
	}
	return helper.JsonOK(c, "Notas da avaliação", out)
}
