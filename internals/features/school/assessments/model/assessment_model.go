package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
)

type AssessmentModel struct {
	// ============ PK ============
	AssessmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assessment_id" json:"assessment_id"`

	// ============ Alvo ============
	AssessmentClassroomID uuid.UUID `gorm:"type:uuid;not null;index;column:assessment_classroom_id" json:"assessment_classroom_id"`
	// Disciplina em caixa alta, ex.: "MATEMÁTICA"
	AssessmentSubject string `gorm:"type:text;not null;column:assessment_subject" json:"assessment_subject"`
	// "1º BIMESTRE".."4º BIMESTRE"
	AssessmentPeriod string `gorm:"type:varchar(16);not null;column:assessment_period" json:"assessment_period"`

	// ============ Configuração ============
	AssessmentTitle    string  `gorm:"type:text;not null;column:assessment_title" json:"assessment_title"`
	AssessmentMaxScore float64 `gorm:"type:numeric;not null;default:100;column:assessment_max_score" json:"assessment_max_score"`
	// INTERNA (elaborada pela escola) | EXTERNA (sistema/avaliação padronizada)
	AssessmentType string `gorm:"type:varchar(16);not null;default:'INTERNA';column:assessment_type" json:"assessment_type"`

	// ============ Audit / Soft delete ============
	AssessmentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:assessment_created_at" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:assessment_updated_at" json:"assessment_updated_at"`
	AssessmentDeletedAt gorm.DeletedAt `gorm:"column:assessment_deleted_at;index" json:"assessment_deleted_at,omitempty"`
}

func (AssessmentModel) TableName() string { return "assessments" }

func (m *AssessmentModel) BeforeSave(tx *gorm.DB) error {
	m.AssessmentSubject = strings.ToUpper(strings.TrimSpace(m.AssessmentSubject))
	m.AssessmentTitle = strings.TrimSpace(m.AssessmentTitle)
	m.AssessmentPeriod = strings.ToUpper(strings.TrimSpace(m.AssessmentPeriod))
	m.AssessmentType = strings.ToUpper(strings.TrimSpace(m.AssessmentType))

	if !constants.IsValidBimester(m.AssessmentPeriod) {
		return errors.New("assessment_period deve ser um bimestre válido")
	}
	if m.AssessmentType != constants.AssessmentInternal && m.AssessmentType != constants.AssessmentExternal {
		return errors.New("assessment_type deve ser INTERNA ou EXTERNA")
	}
	if m.AssessmentMaxScore <= 0 {
		m.AssessmentMaxScore = 100
	}
	return nil
}
