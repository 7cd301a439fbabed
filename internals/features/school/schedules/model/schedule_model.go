package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Um horário semanal fixo: turma + disciplina + professor em um dia/faixa.
type ScheduleSlotModel struct {
	// ============ PK ============
	SlotID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:slot_id" json:"slot_id"`

	SlotClassroomID uuid.UUID `gorm:"type:uuid;not null;index;column:slot_classroom_id" json:"slot_classroom_id"`
	SlotTeacherID   uuid.UUID `gorm:"type:uuid;not null;index;column:slot_teacher_id" json:"slot_teacher_id"`
	SlotSubject     string    `gorm:"type:text;not null;column:slot_subject" json:"slot_subject"`

	// Dia da semana em MAIÚSCULAS (SEGUNDA..SÁBADO).
	SlotWeekday string `gorm:"type:text;not null;column:slot_weekday" json:"slot_weekday"`
	// Horários no formato HH:MM (24h).
	SlotStartTime string `gorm:"type:text;not null;column:slot_start_time" json:"slot_start_time"`
	SlotEndTime   string `gorm:"type:text;not null;column:slot_end_time" json:"slot_end_time"`

	// ============ Audit ============
	SlotCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:slot_created_at" json:"slot_created_at"`
	SlotUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:slot_updated_at" json:"slot_updated_at"`
	SlotDeletedAt gorm.DeletedAt `gorm:"column:slot_deleted_at;index" json:"slot_deleted_at,omitempty"`
}

func (ScheduleSlotModel) TableName() string { return "schedule_slots" }
