package controller

import (
	"bytes"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
	aiService "portalescolar_backend/internals/features/ai/service"
	"portalescolar_backend/internals/features/school/reports/aggregate"
	reportService "portalescolar_backend/internals/features/school/reports/service"
	studentModel "portalescolar_backend/internals/features/school/students/model"
	helper "portalescolar_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type AIController struct {
	DB        *gorm.DB
	Gemini    *aiService.GeminiClient
	Feeds     *reportService.FeedBuilder
	Validator *validator.Validate
}

func NewAIController(db *gorm.DB, gemini *aiService.GeminiClient, v *validator.Validate) *AIController {
	if v == nil {
		v = validator.New()
	}
	return &AIController{
		DB:        db,
		Gemini:    gemini,
		Feeds:     reportService.NewFeedBuilder(db),
		Validator: v,
	}
}

/* ============================================
   EXTRAÇÃO DE DOCUMENTO (matrícula assistida)
   POST /api/a/ai/extract-document  (multipart: file)
============================================ */

func (ctl *AIController) ExtractDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Envie o documento no campo 'file'")
	}

	raw, err := helper.ReadMultipartFile(fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Falha ao ler o arquivo")
	}

	small, err := helper.DownscaleForAI(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Arquivo não é uma imagem válida")
	}

	extracted, err := ctl.Gemini.ExtractDocument(c.UserContext(), small, "image/jpeg")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Serviço de extração indisponível")
	}

	// arquiva a cópia webp no Storage; falha de arquivamento não derruba a
	// extração, só volta sem URL
	var documentURL string
	if webpBytes, werr := helper.EncodeWebp(raw); werr == nil {
		filename := helper.GenerateUniqueFilename("documentos", fh.Filename+".webp")
		if url, uerr := helper.UploadToSupabase("documents", filename, "image/webp", bytes.NewBuffer(webpBytes)); uerr == nil {
			documentURL = url
		}
	}

	return helper.JsonOK(c, "Documento processado", fiber.Map{
		"extracted":    extracted,
		"document_url": documentURL,
	})
}

/* ============================================
   SUGESTÃO DE GRADE
   POST /api/a/ai/suggest-schedule
============================================ */

type suggestScheduleRequest struct {
	ClassroomName string         `json:"classroom_name" validate:"required,min=2"`
	Subjects      map[string]int `json:"subjects"       validate:"required,min=1"`
}

func (ctl *AIController) SuggestSchedule(c *fiber.Ctx) error {
	var p suggestScheduleRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	slots, err := ctl.Gemini.SuggestSchedule(c.UserContext(), strings.TrimSpace(p.ClassroomName), p.Subjects)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Serviço de sugestão indisponível")
	}
	if slots == nil {
		slots = []aiService.SuggestedSlot{}
	}
	return helper.JsonOK(c, "Grade sugerida", slots)
}

/* ============================================
   RASCUNHO DE PARECER
   POST /api/a/ai/draft-comment/:student_id
============================================ */

func (ctl *AIController) DraftComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var student studentModel.StudentModel
	if err := ctl.DB.Where("student_id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao consultar aluno")
	}

	ctx := c.UserContext()
	grades, subjects, err := ctl.Feeds.GradeFeedForStudent(ctx, id, constants.Bimesters)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar notas")
	}
	averages := aggregate.ComputeSubjectAverages(grades, subjects, constants.Bimesters)
	flat := make(map[string]float64, len(averages))
	for subject, avg := range averages {
		flat[subject] = avg.Overall
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
	pct := aggregate.ComputeAttendancePercentage(present, total)

	text, err := ctl.Gemini.DraftReportComment(ctx, student.StudentName, flat, pct)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Serviço de parecer indisponível")
	}

	return helper.JsonOK(c, "Parecer sugerido", fiber.Map{
		"student_id":   student.StudentID,
		"student_name": student.StudentName,
		"draft":        strings.TrimSpace(text),
	})
}
