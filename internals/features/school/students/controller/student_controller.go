package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classroomModel "portalescolar_backend/internals/features/school/classrooms/model"
	dto "portalescolar_backend/internals/features/school/students/dto"
	model "portalescolar_backend/internals/features/school/students/model"
	service "portalescolar_backend/internals/features/school/students/service"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	if v == nil {
		v = validator.New()
	}
	return &StudentController{DB: db, Validator: v}
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

func classroomExists(db *gorm.DB, id uuid.UUID) (bool, error) {
	var cnt int64
	err := db.Model(&classroomModel.ClassroomModel{}).
		Where("classroom_id = ?", id).
		Count(&cnt).Error
	return cnt > 0, err
}

/* ============================================
   CREATE (matricula o aluno e renumera a turma)
   POST /api/a/students
============================================ */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var p dto.StudentCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	ok, err := classroomExists(ctl.DB, p.StudentClassroomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar turma")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Turma de destino não existe")
	}

	ent := p.ToModel()
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ent).Error; err != nil {
			return err
		}
		if err := service.RenumberClassroom(tx, ent.StudentClassroomID); err != nil {
			return err
		}
		return service.SyncClassroomStudentCount(tx, ent.StudentClassroomID)
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao matricular aluno")
	}

	// relê para devolver o número de chamada atribuído
	_ = ctl.DB.Where("student_id = ?", ent.StudentID).First(&ent).Error
	return helper.JsonCreated(c, "Aluno matriculado", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /api/a/students?classroom_id=&q=
============================================ */

func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if cid := strings.TrimSpace(c.Query("classroom_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classroom_id inválido")
		}
		q = q.Where("student_classroom_id = ?", id)
	}
	if name := strings.TrimSpace(c.Query("q")); name != "" {
		q = q.Where("student_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar alunos")
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar alunos")
	}

	return helper.JsonList(c, "Alunos", dto.FromModels(rows), helper.BuildPagination(total, paging, len(rows)))
}

/* ============================================
   GET BY ID
   GET /api/a/students/:id
============================================ */

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var ent model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}
	return helper.JsonOK(c, "Aluno", dto.FromModel(ent))
}

/* ============================================
   PATCH
   PATCH /api/a/students/:id
============================================ */

func (ctl *StudentController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.StudentUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var ent model.StudentModel
	if err := ctl.DB.Where("student_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}

	renamed := p.StudentName != nil && strings.TrimSpace(*p.StudentName) != ent.StudentName
	p.ApplyUpdates(&ent)

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ent).Error; err != nil {
			return err
		}
		// renomear muda a posição alfabética, logo o número de chamada
		if renamed {
			return service.RenumberClassroom(tx, ent.StudentClassroomID)
		}
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar aluno")
	}

	_ = ctl.DB.Where("student_id = ?", ent.StudentID).First(&ent).Error
	return helper.JsonOK(c, "Aluno atualizado", dto.FromModel(ent))
}

/* ============================================
   MOVE (troca de turma, renumera origem e destino)
   POST /api/a/students/:id/move
============================================ */

func (ctl *StudentController) Move(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var p dto.StudentMoveDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var ent model.StudentModel
	if err := ctl.DB.Where("student_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}

	if ent.StudentClassroomID == p.TargetClassroomID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Aluno já está nessa turma")
	}

	ok, err := classroomExists(ctl.DB, p.TargetClassroomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar turma")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Turma de destino não existe")
	}

	origin := ent.StudentClassroomID
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.StudentModel{}).
			Where("student_id = ?", ent.StudentID).
			Update("student_classroom_id", p.TargetClassroomID).Error; err != nil {
			return err
		}
		if err := service.RenumberClassroom(tx, origin); err != nil {
			return err
		}
		if err := service.RenumberClassroom(tx, p.TargetClassroomID); err != nil {
			return err
		}
		if err := service.SyncClassroomStudentCount(tx, origin); err != nil {
			return err
		}
		return service.SyncClassroomStudentCount(tx, p.TargetClassroomID)
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao mover aluno")
	}

	_ = ctl.DB.Where("student_id = ?", ent.StudentID).First(&ent).Error
	return helper.JsonOK(c, "Aluno movido de turma", dto.FromModel(ent))
}

/* ============================================
   DELETE (soft; renumera a turma)
   DELETE /api/a/students/:id
============================================ */

func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var ent model.StudentModel
	if err := ctl.DB.Where("student_id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.StudentModel{}).Error; err != nil {
			return err
		}
		if err := service.RenumberClassroom(tx, ent.StudentClassroomID); err != nil {
			return err
		}
		return service.SyncClassroomStudentCount(tx, ent.StudentClassroomID)
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover aluno")
	}
	return helper.JsonOK(c, "Aluno removido", nil)
}
