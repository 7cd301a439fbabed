package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	// ============ PK ============
	GradeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_id" json:"grade_id"`

	// Um aluno tem no máximo uma nota por avaliação.
	GradeAssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_assessment_student;column:grade_assessment_id" json:"grade_assessment_id"`
	GradeStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_assessment_student;index;column:grade_student_id" json:"grade_student_id"`

	// Nota na escala da avaliação (0..max_score).
	GradeScore float64 `gorm:"type:numeric;not null;column:grade_score" json:"grade_score"`

	// ============ Audit ============
	GradeCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:grade_created_at" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:grade_updated_at" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"grade_deleted_at,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }
