package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/school/schedules/model"
)

// =======================
// Request DTO
// =======================

type SlotCreateDTO struct {
	SlotClassroomID uuid.UUID `json:"slot_classroom_id" validate:"required"`
	SlotTeacherID   uuid.UUID `json:"slot_teacher_id"   validate:"required"`
	SlotSubject     string    `json:"slot_subject"      validate:"required,min=2"`
	// validado contra constants.Weekdays no controller
	SlotWeekday   string `json:"slot_weekday"    validate:"required,min=2"`
	SlotStartTime string `json:"slot_start_time" validate:"required,len=5"`
	SlotEndTime   string `json:"slot_end_time"   validate:"required,len=5"`
}

func (p *SlotCreateDTO) Normalize() {
	p.SlotSubject = strings.ToUpper(strings.TrimSpace(p.SlotSubject))
	p.SlotWeekday = strings.ToUpper(strings.TrimSpace(p.SlotWeekday))
	p.SlotStartTime = strings.TrimSpace(p.SlotStartTime)
	p.SlotEndTime = strings.TrimSpace(p.SlotEndTime)
}

func (p *SlotCreateDTO) ToModel() model.ScheduleSlotModel {
	return model.ScheduleSlotModel{
		SlotClassroomID: p.SlotClassroomID,
		SlotTeacherID:   p.SlotTeacherID,
		SlotSubject:     p.SlotSubject,
		SlotWeekday:     p.SlotWeekday,
		SlotStartTime:   p.SlotStartTime,
		SlotEndTime:     p.SlotEndTime,
	}
}

type SlotUpdateDTO struct {
	SlotTeacherID *uuid.UUID `json:"slot_teacher_id,omitempty"`
	SlotSubject   *string    `json:"slot_subject,omitempty"    validate:"omitempty,min=2"`
	SlotWeekday   *string    `json:"slot_weekday,omitempty"`
	SlotStartTime *string    `json:"slot_start_time,omitempty" validate:"omitempty,len=5"`
	SlotEndTime   *string    `json:"slot_end_time,omitempty"   validate:"omitempty,len=5"`
}

func (u *SlotUpdateDTO) ApplyUpdates(ent *model.ScheduleSlotModel) {
	if u.SlotTeacherID != nil {
		ent.SlotTeacherID = *u.SlotTeacherID
	}
	if u.SlotSubject != nil {
		ent.SlotSubject = strings.ToUpper(strings.TrimSpace(*u.SlotSubject))
	}
	if u.SlotWeekday != nil {
		ent.SlotWeekday = strings.ToUpper(strings.TrimSpace(*u.SlotWeekday))
	}
	if u.SlotStartTime != nil {
		ent.SlotStartTime = strings.TrimSpace(*u.SlotStartTime)
	}
	if u.SlotEndTime != nil {
		ent.SlotEndTime = strings.TrimSpace(*u.SlotEndTime)
	}
}

// =======================
// Response DTO
// =======================

type SlotResponseDTO struct {
	SlotID          uuid.UUID `json:"slot_id"`
	SlotClassroomID uuid.UUID `json:"slot_classroom_id"`
	SlotTeacherID   uuid.UUID `json:"slot_teacher_id"`
	SlotSubject     string    `json:"slot_subject"`
	SlotWeekday     string    `json:"slot_weekday"`
	SlotStartTime   string    `json:"slot_start_time"`
	SlotEndTime     string    `json:"slot_end_time"`
	SlotCreatedAt   time.Time `json:"slot_created_at"`
}

func FromModel(m model.ScheduleSlotModel) SlotResponseDTO {
	return SlotResponseDTO{
		SlotID:          m.SlotID,
		SlotClassroomID: m.SlotClassroomID,
		SlotTeacherID:   m.SlotTeacherID,
		SlotSubject:     m.SlotSubject,
		SlotWeekday:     m.SlotWeekday,
		SlotStartTime:   m.SlotStartTime,
		SlotEndTime:     m.SlotEndTime,
		SlotCreatedAt:   m.SlotCreatedAt,
	}
}

func FromModels(ms []model.ScheduleSlotModel) []SlotResponseDTO {
	out := make([]SlotResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
