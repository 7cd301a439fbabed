package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/school/assessments/model"
)

// =======================
// Request DTO
// =======================

type AssessmentCreateDTO struct {
	AssessmentClassroomID uuid.UUID `json:"assessment_classroom_id" validate:"required"`
	AssessmentSubject     string    `json:"assessment_subject"      validate:"required,min=2"`
	// validado contra constants.Bimesters no Normalize/controller
	AssessmentPeriod      string    `json:"assessment_period"       validate:"required,min=2"`
	AssessmentTitle       string    `json:"assessment_title"        validate:"required,min=2"`
	AssessmentMaxScore    float64   `json:"assessment_max_score"    validate:"omitempty,gt=0"`
	AssessmentType        string    `json:"assessment_type"         validate:"omitempty,oneof=INTERNA EXTERNA"`
}

func (p *AssessmentCreateDTO) Normalize() {
	p.AssessmentSubject = strings.ToUpper(strings.TrimSpace(p.AssessmentSubject))
	p.AssessmentPeriod = strings.ToUpper(strings.TrimSpace(p.AssessmentPeriod))
	p.AssessmentTitle = strings.TrimSpace(p.AssessmentTitle)
	p.AssessmentType = strings.ToUpper(strings.TrimSpace(p.AssessmentType))
	if p.AssessmentType == "" {
		p.AssessmentType = "INTERNA"
	}
	if p.AssessmentMaxScore <= 0 {
		p.AssessmentMaxScore = 100
	}
}

func (p *AssessmentCreateDTO) ToModel() model.AssessmentModel {
	return model.AssessmentModel{
		AssessmentClassroomID: p.AssessmentClassroomID,
		AssessmentSubject:     p.AssessmentSubject,
		AssessmentPeriod:      p.AssessmentPeriod,
		AssessmentTitle:       p.AssessmentTitle,
		AssessmentMaxScore:    p.AssessmentMaxScore,
		AssessmentType:        p.AssessmentType,
	}
}

type AssessmentUpdateDTO struct {
	AssessmentSubject  *string  `json:"assessment_subject,omitempty"   validate:"omitempty,min=2"`
	AssessmentPeriod   *string  `json:"assessment_period,omitempty"`
	AssessmentTitle    *string  `json:"assessment_title,omitempty"     validate:"omitempty,min=2"`
	AssessmentMaxScore *float64 `json:"assessment_max_score,omitempty" validate:"omitempty,gt=0"`
	AssessmentType     *string  `json:"assessment_type,omitempty"      validate:"omitempty,oneof=INTERNA EXTERNA"`
}

func (u *AssessmentUpdateDTO) ApplyUpdates(ent *model.AssessmentModel) {
	if u.AssessmentSubject != nil {
		ent.AssessmentSubject = strings.ToUpper(strings.TrimSpace(*u.AssessmentSubject))
	}
	if u.AssessmentPeriod != nil {
		ent.AssessmentPeriod = strings.ToUpper(strings.TrimSpace(*u.AssessmentPeriod))
	}
	if u.AssessmentTitle != nil {
		ent.AssessmentTitle = strings.TrimSpace(*u.AssessmentTitle)
	}
	if u.AssessmentMaxScore != nil {
		ent.AssessmentMaxScore = *u.AssessmentMaxScore
	}
	if u.AssessmentType != nil {
		ent.AssessmentType = strings.ToUpper(strings.TrimSpace(*u.AssessmentType))
	}
}

// Lançamento de notas em lote: uma entrada por aluno.
type GradeBulkEntryDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Score     float64   `json:"score"      validate:"gte=0"`
}

type GradeBulkUpsertDTO struct {
	Grades []GradeBulkEntryDTO `json:"grades" validate:"required,min=1,dive"`
}

// =======================
// Response DTO
// =======================

type AssessmentResponseDTO struct {
	AssessmentID          uuid.UUID `json:"assessment_id"`
	AssessmentClassroomID uuid.UUID `json:"assessment_classroom_id"`
	AssessmentSubject     string    `json:"assessment_subject"`
	AssessmentPeriod      string    `json:"assessment_period"`
	AssessmentTitle       string    `json:"assessment_title"`
	AssessmentMaxScore    float64   `json:"assessment_max_score"`
	AssessmentType        string    `json:"assessment_type"`
	AssessmentCreatedAt   time.Time `json:"assessment_created_at"`
}

func FromModel(m model.AssessmentModel) AssessmentResponseDTO {
	return AssessmentResponseDTO{
		AssessmentID:          m.AssessmentID,
		AssessmentClassroomID: m.AssessmentClassroomID,
		AssessmentSubject:     m.AssessmentSubject,
		AssessmentPeriod:      m.AssessmentPeriod,
		AssessmentTitle:       m.AssessmentTitle,
		AssessmentMaxScore:    m.AssessmentMaxScore,
		AssessmentType:        m.AssessmentType,
		AssessmentCreatedAt:   m.AssessmentCreatedAt,
	}
}

func FromModels(ms []model.AssessmentModel) []AssessmentResponseDTO {
	out := make([]AssessmentResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

type GradeResponseDTO struct {
	GradeID           uuid.UUID `json:"grade_id"`
	GradeAssessmentID uuid.UUID `json:"grade_assessment_id"`
	GradeStudentID    uuid.UUID `json:"grade_student_id"`
	GradeScore        float64   `json:"grade_score"`
}

func GradeFromModel(m model.GradeModel) GradeResponseDTO {
	return GradeResponseDTO{
		GradeID:           m.GradeID,
		GradeAssessmentID: m.GradeAssessmentID,
		GradeStudentID:    m.GradeStudentID,
		GradeScore:        m.GradeScore,
	}
}
