package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StaffModel struct {
	// ============ PK ============
	StaffID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:staff_id" json:"staff_id"`

	// ============ Identidade ============
	StaffName  string  `gorm:"type:text;not null;column:staff_name" json:"staff_name"`
	StaffEmail *string `gorm:"type:text;column:staff_email" json:"staff_email,omitempty"`
	StaffPhone *string `gorm:"type:varchar(20);column:staff_phone" json:"staff_phone,omitempty"`
	StaffCPF   *string `gorm:"type:varchar(14);column:staff_cpf" json:"staff_cpf,omitempty"`

	// ============ RH ============
	// Cargo: PROFESSOR, COORDENADOR, SECRETARIO, DIRETOR, AUXILIAR...
	StaffPosition      string     `gorm:"type:varchar(32);not null;column:staff_position" json:"staff_position"`
	StaffAdmissionDate *time.Time `gorm:"type:date;column:staff_admission_date" json:"staff_admission_date,omitempty"`
	// Disciplinas que leciona (quando professor)
	StaffSubjects datatypes.JSON `gorm:"type:jsonb;column:staff_subjects" json:"staff_subjects,omitempty"`
	StaffIsActive bool           `gorm:"not null;default:true;column:staff_is_active" json:"staff_is_active"`

	// Documento digitalizado no Storage (quando importado via IA)
	StaffDocumentURL *string `gorm:"type:text;column:staff_document_url" json:"staff_document_url,omitempty"`

	// ============ Audit / Soft delete ============
	StaffCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:staff_created_at" json:"staff_created_at"`
	StaffUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:staff_updated_at" json:"staff_updated_at"`
	StaffDeletedAt gorm.DeletedAt `gorm:"column:staff_deleted_at;index" json:"staff_deleted_at,omitempty"`
}

func (StaffModel) TableName() string { return "staff" }

func (m *StaffModel) BeforeSave(tx *gorm.DB) error {
	m.StaffName = strings.TrimSpace(m.StaffName)
	m.StaffPosition = strings.ToUpper(strings.TrimSpace(m.StaffPosition))
	return nil
}
