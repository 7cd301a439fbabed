package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
)

type ClassroomModel struct {
	// ============ PK ============
	ClassroomID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:classroom_id" json:"classroom_id"`

	// ============ Identidade ============
	// Ex.: "6º ANO A"
	ClassroomName string `gorm:"type:text;not null;column:classroom_name" json:"classroom_name"`
	// MANHÃ | TARDE | INTEGRAL | NOITE
	ClassroomShift string `gorm:"type:varchar(16);not null;column:classroom_shift" json:"classroom_shift"`
	// Ano letivo, ex.: "2026"
	ClassroomYear     string `gorm:"type:varchar(8);not null;column:classroom_year" json:"classroom_year"`
	ClassroomIsActive bool   `gorm:"not null;default:true;column:classroom_is_active" json:"classroom_is_active"`

	// Contadores denormalizados para o dashboard
	ClassroomStudentCount int `gorm:"type:integer;not null;default:0;column:classroom_student_count" json:"classroom_student_count"`

	// JSONB extra (flexível — sala, capacidade, observações)
	ClassroomStats datatypes.JSON `gorm:"type:jsonb;column:classroom_stats" json:"classroom_stats,omitempty"`

	// ============ Audit / Soft delete ============
	ClassroomCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:classroom_created_at" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:classroom_updated_at" json:"classroom_updated_at"`
	ClassroomDeletedAt gorm.DeletedAt `gorm:"column:classroom_deleted_at;index" json:"classroom_deleted_at,omitempty"`
}

func (ClassroomModel) TableName() string { return "classrooms" }

func (m *ClassroomModel) BeforeSave(tx *gorm.DB) error {
	m.ClassroomName = strings.ToUpper(strings.TrimSpace(m.ClassroomName))
	m.ClassroomShift = strings.ToUpper(strings.TrimSpace(m.ClassroomShift))

	valid := false
	for _, s := range constants.Shifts {
		if m.ClassroomShift == s {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("classroom_shift deve ser MANHÃ, TARDE, INTEGRAL ou NOITE")
	}
	return nil
}
