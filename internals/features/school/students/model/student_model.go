package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	// ============ PK ============
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// ============ Identidade ============
	StudentName      string     `gorm:"type:text;not null;column:student_name" json:"student_name"`
	StudentBirthDate *time.Time `gorm:"type:date;column:student_birth_date" json:"student_birth_date,omitempty"`
	StudentCPF       *string    `gorm:"type:varchar(14);column:student_cpf" json:"student_cpf,omitempty"`

	// ============ Matrícula ============
	// Vínculo com exatamente uma turma por vez; trocas passam pelo Move.
	StudentClassroomID uuid.UUID `gorm:"type:uuid;not null;index;column:student_classroom_id" json:"student_classroom_id"`
	// Número de chamada: posição sequencial (alfabética) dentro da turma.
	StudentCallNumber int `gorm:"type:integer;not null;default:0;column:student_call_number" json:"student_call_number"`

	// ============ Responsável ============
	StudentGuardianName  *string `gorm:"type:text;column:student_guardian_name" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string `gorm:"type:varchar(20);column:student_guardian_phone" json:"student_guardian_phone,omitempty"`

	// Documento digitalizado no Storage (quando importado via IA)
	StudentDocumentURL *string `gorm:"type:text;column:student_document_url" json:"student_document_url,omitempty"`

	// ============ Audit / Soft delete ============
	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentName = strings.TrimSpace(m.StudentName)
	if m.StudentCPF != nil {
		cpf := strings.TrimSpace(*m.StudentCPF)
		if cpf == "" {
			m.StudentCPF = nil
		} else {
			m.StudentCPF = &cpf
		}
	}
	return nil
}
