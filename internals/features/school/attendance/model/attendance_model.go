package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Uma aula com chamada registrada.
type AttendanceSessionModel struct {
	// ============ PK ============
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	SessionClassroomID uuid.UUID `gorm:"type:uuid;not null;index;column:session_classroom_id" json:"session_classroom_id"`
	SessionDate        time.Time `gorm:"type:date;not null;column:session_date" json:"session_date"`
	// Disciplina da aula (opcional — chamada geral do dia quando vazio)
	SessionSubject *string `gorm:"type:text;column:session_subject" json:"session_subject,omitempty"`

	// ============ Audit ============
	SessionCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:session_created_at" json:"session_created_at"`
	SessionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:session_updated_at" json:"session_updated_at"`
	SessionDeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index" json:"session_deleted_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

// Presença/ausência de um aluno em uma aula.
type AttendanceMarkModel struct {
	// ============ PK ============
	MarkID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:mark_id" json:"mark_id"`

	MarkSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_mark_session_student;column:mark_session_id" json:"mark_session_id"`
	MarkStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_mark_session_student;index;column:mark_student_id" json:"mark_student_id"`
	MarkIsPresent bool      `gorm:"not null;default:true;column:mark_is_present" json:"mark_is_present"`
	MarkNote      *string   `gorm:"type:text;column:mark_note" json:"mark_note,omitempty"`

	// ============ Audit ============
	MarkCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:mark_created_at" json:"mark_created_at"`
	MarkUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:mark_updated_at" json:"mark_updated_at"`
}

func (AttendanceMarkModel) TableName() string { return "attendance_marks" }
