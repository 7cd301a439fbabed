package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Gravidade da ocorrência disciplinar
const (
	SeverityLeve  = "LEVE"
	SeverityMedia = "MÉDIA"
	SeverityGrave = "GRAVE"
)

var Severities = []string{SeverityLeve, SeverityMedia, SeverityGrave}

func IsValidSeverity(s string) bool {
	for _, v := range Severities {
		if v == s {
			return true
		}
	}
	return false
}

type OccurrenceModel struct {
	// ============ PK ============
	OccurrenceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:occurrence_id" json:"occurrence_id"`

	OccurrenceStudentID  uuid.UUID `gorm:"type:uuid;not null;index;column:occurrence_student_id" json:"occurrence_student_id"`
	OccurrenceReporterID uuid.UUID `gorm:"type:uuid;not null;column:occurrence_reporter_id" json:"occurrence_reporter_id"`

	OccurrenceDate        time.Time `gorm:"type:date;not null;column:occurrence_date" json:"occurrence_date"`
	OccurrenceSeverity    string    `gorm:"type:text;not null;column:occurrence_severity" json:"occurrence_severity"`
	OccurrenceDescription string    `gorm:"type:text;not null;column:occurrence_description" json:"occurrence_description"`

	// Medidas aplicadas (ex.: ADVERTÊNCIA VERBAL, COMUNICADO AOS RESPONSÁVEIS)
	OccurrenceMeasures pq.StringArray `gorm:"type:text[];column:occurrence_measures" json:"occurrence_measures"`

	// Responsáveis cientes?
	OccurrenceGuardianNotified bool `gorm:"not null;default:false;column:occurrence_guardian_notified" json:"occurrence_guardian_notified"`

	// ============ Audit ============
	OccurrenceCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:occurrence_created_at" json:"occurrence_created_at"`
	OccurrenceUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:occurrence_updated_at" json:"occurrence_updated_at"`
	OccurrenceDeletedAt gorm.DeletedAt `gorm:"column:occurrence_deleted_at;index" json:"occurrence_deleted_at,omitempty"`
}

func (OccurrenceModel) TableName() string { return "discipline_occurrences" }

func (m *OccurrenceModel) BeforeSave(tx *gorm.DB) error {
	if !IsValidSeverity(m.OccurrenceSeverity) {
		return gorm.ErrInvalidData
	}
	return nil
}
