package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
	classroomModel "portalescolar_backend/internals/features/school/classrooms/model"
	"portalescolar_backend/internals/features/school/reports/aggregate"
	service "portalescolar_backend/internals/features/school/reports/service"
	staffModel "portalescolar_backend/internals/features/school/staff/model"
	studentModel "portalescolar_backend/internals/features/school/students/model"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type ReportController struct {
	DB    *gorm.DB
	Feeds *service.FeedBuilder
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Feeds: service.NewFeedBuilder(db)}
}

// janela cumulativa a partir do query param ?period= (default: ano inteiro)
func resolveWindow(c *fiber.Ctx) ([]string, error) {
	p := strings.ToUpper(strings.TrimSpace(c.Query("period")))
	if p == "" {
		return constants.Bimesters, nil
	}
	if !constants.IsValidBimester(p) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Bimestre inválido")
	}
	return constants.BimestersUpTo(p), nil
}

/* ============================================
   BOLETIM (por aluno)
   GET /api/a/reports/students/:id/bulletin?period=
============================================ */

type bulletinSubject struct {
	Subject   string               `json:"subject"`
	PerPeriod map[string]float64   `json:"per_period"`
	Overall   float64              `json:"overall"`
	Status    aggregate.PassStatus `json:"status"`
}

type bulletinResponse struct {
	StudentID            uuid.UUID         `json:"student_id"`
	StudentName          string            `json:"student_name"`
	ClassroomName        string            `json:"classroom_name"`
	Periods              []string          `json:"periods"`
	Subjects             []bulletinSubject `json:"subjects"`
	AttendancePresent    int               `json:"attendance_present"`
	AttendanceTotal      int               `json:"attendance_total"`
	AttendancePercentage int               `json:"attendance_percentage"`
}

func (ctl *ReportController) StudentBulletin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	periods, err := resolveWindow(c)
	if err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var student studentModel.StudentModel
	if err := ctl.DB.Where("student_id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}

	var classroom classroomModel.ClassroomModel
	classroomName := ""
	if err := ctl.DB.Where("classroom_id = ?", student.StudentClassroomID).First(&classroom).Error; err == nil {
		classroomName = classroom.ClassroomName
	}

	ctx := c.UserContext()
	grades, subjects, err := ctl.Feeds.GradeFeedForStudent(ctx, id, periods)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar boletim")
	}

	averages := aggregate.ComputeSubjectAverages(grades, subjects, periods)
	subjectRows := make([]bulletinSubject, 0, len(subjects))
	for _, s := range subjects {
		avg := averages[s]
		subjectRows = append(subjectRows, bulletinSubject{
			Subject:   s,
			PerPeriod: avg.PerPeriod,
			Overall:   avg.Overall,
			Status:    aggregate.ClassifyPass(avg.Overall),
		})
	}

	marks, err := ctl.Feeds.AttendanceFeedForStudent(ctx, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar frequência")
	}
	present, total := 0, 0
	for _, m := range marks {
		total++
		if m.IsPresent {
			present++
		}
	}

	return helper.JsonOK(c, "Boletim", bulletinResponse{
		StudentID:            student.StudentID,
		StudentName:          student.StudentName,
		ClassroomName:        classroomName,
		Periods:              periods,
		Subjects:             subjectRows,
		AttendancePresent:    present,
		AttendanceTotal:      total,
		AttendancePercentage: aggregate.ComputeAttendancePercentage(present, total),
	})
}

/* ============================================
   PAINEL DA TURMA
   GET /api/a/reports/classrooms/:id/dashboard?period=
============================================ */

type classroomDashboard struct {
	ClassroomID             uuid.UUID                         `json:"classroom_id"`
	ClassroomName           string                            `json:"classroom_name"`
	Periods                 []string                          `json:"periods"`
	StudentCount            int                               `json:"student_count"`
	AptoCount               int                               `json:"apto_count"`
	RecuperacaoCount        int                               `json:"recuperacao_count"`
	ProficiencyDistribution map[aggregate.ProficiencyLevel]int `json:"proficiency_distribution"`
	Attendance              []aggregate.StudentAttendance     `json:"attendance"`
}

func (ctl *ReportController) ClassroomDashboard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	periods, err := resolveWindow(c)
	if err != nil {
		return helper.JsonError(c, err.(*fiber.Error).Code, err.Error())
	}

	var classroom classroomModel.ClassroomModel
	if err := ctl.DB.Where("classroom_id = ?", id).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar turma")
	}

	ctx := c.UserContext()
	grades, err := ctl.Feeds.GradeFeedForClassroom(ctx, id, periods)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar painel")
	}

	// disciplinas e alunos na ordem de chegada do feed
	subjects := make([]string, 0)
	seenSubject := make(map[string]struct{})
	studentOrder := make([]string, 0)
	gradesByStudent := make(map[string][]aggregate.GradeRecord)
	for _, g := range grades {
		if _, ok := seenSubject[g.Subject]; !ok {
			seenSubject[g.Subject] = struct{}{}
			subjects = append(subjects, g.Subject)
		}
		if _, ok := gradesByStudent[g.StudentID]; !ok {
			studentOrder = append(studentOrder, g.StudentID)
		}
		gradesByStudent[g.StudentID] = append(gradesByStudent[g.StudentID], g)
	}

	// classificação por aluno: APTO só quem passou em todas as disciplinas
	apto, recuperacao := 0, 0
	dist := map[aggregate.ProficiencyLevel]int{
		aggregate.NivelMuitoBaixo: 0,
		aggregate.NivelBaixo:      0,
		aggregate.NivelMedio:      0,
		aggregate.NivelAlto:       0,
	}
	for _, sid := range studentOrder {
		averages := aggregate.ComputeSubjectAverages(gradesByStudent[sid], subjects, periods)
		passed := true
		sum := 0.0
		for _, s := range subjects {
			avg := averages[s]
			if aggregate.ClassifyPass(avg.Overall) == aggregate.StatusRecuperacao {
				passed = false
			}
			sum += avg.Overall
		}
		if passed {
			apto++
		} else {
			recuperacao++
		}
		if len(subjects) > 0 {
			dist[aggregate.ClassifyProficiencyLevel(sum/float64(len(subjects)))]++
		}
	}

	marks, err := ctl.Feeds.AttendanceFeedForClassroom(ctx, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar frequência")
	}

	return helper.JsonOK(c, "Painel da turma", classroomDashboard{
		ClassroomID:             classroom.ClassroomID,
		ClassroomName:           classroom.ClassroomName,
		Periods:                 periods,
		StudentCount:            classroom.ClassroomStudentCount,
		AptoCount:               apto,
		RecuperacaoCount:        recuperacao,
		ProficiencyDistribution: dist,
		Attendance:              aggregate.SummarizeAttendance(marks),
	})
}

/* ============================================
   PAINEL DA ESCOLA
   GET /api/a/reports/dashboard
============================================ */

type schoolDashboard struct {
	StudentCount   int64 `json:"student_count"`
	ClassroomCount int64 `json:"classroom_count"`
	StaffCount     int64 `json:"staff_count"`
	// Distribuição de proficiência das avaliações EXTERNAS (nota a nota,
	// normalizada), não das médias internas.
	ProficiencyDistribution map[aggregate.ProficiencyLevel]int `json:"proficiency_distribution"`
	RiskRanking             []aggregate.ClassroomRisk          `json:"risk_ranking"`
}

func (ctl *ReportController) SchoolDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var students, classrooms, staffCount int64
	if err := ctl.DB.WithContext(ctx).Model(&studentModel.StudentModel{}).Count(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar alunos")
	}
	if err := ctl.DB.WithContext(ctx).Model(&classroomModel.ClassroomModel{}).
		Where("classroom_is_active = TRUE").Count(&classrooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar turmas")
	}
	if err := ctl.DB.WithContext(ctx).Model(&staffModel.StaffModel{}).Count(&staffCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar equipe")
	}

	external, err := ctl.Feeds.GradeFeedByType(ctx, constants.AssessmentExternal)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar avaliações externas")
	}
	dist := map[aggregate.ProficiencyLevel]int{
		aggregate.NivelMuitoBaixo: 0,
		aggregate.NivelBaixo:      0,
		aggregate.NivelMedio:      0,
		aggregate.NivelAlto:       0,
	}
	for _, g := range external {
		dist[aggregate.ClassifyProficiencyLevel(aggregate.Normalize(g.Score, g.MaxScore))]++
	}

	grades, err := ctl.Feeds.GradeFeedAll(ctx)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar notas")
	}
	marks, err := ctl.Feeds.AttendanceFeedAll(ctx)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar frequência")
	}

	return helper.JsonOK(c, "Painel da escola", schoolDashboard{
		StudentCount:            students,
		ClassroomCount:          classrooms,
		StaffCount:              staffCount,
		ProficiencyDistribution: dist,
		RiskRanking:             aggregate.RankClassroomsByRisk(grades, marks),
	})
}

/* ============================================
   RANKING DE RISCO (escola inteira)
   GET /api/a/reports/risk
============================================ */

func (ctl *ReportController) RiskRanking(c *fiber.Ctx) error {
	ctx := c.UserContext()

	grades, err := ctl.Feeds.GradeFeedAll(ctx)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar notas")
	}
	marks, err := ctl.Feeds.AttendanceFeedAll(ctx)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar frequência")
	}

	ranking := aggregate.RankClassroomsByRisk(grades, marks)
	return helper.JsonOK(c, "Turmas por risco", ranking)
}
