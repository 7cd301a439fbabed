package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/school/attendance/model"
)

// =======================
// Request DTO
// =======================

type SessionCreateDTO struct {
	SessionClassroomID uuid.UUID `json:"session_classroom_id" validate:"required"`
	SessionDate        time.Time `json:"session_date"         validate:"required"`
	SessionSubject     *string   `json:"session_subject,omitempty"`
}

func (p *SessionCreateDTO) Normalize() {
	if p.SessionSubject != nil {
		s := strings.ToUpper(strings.TrimSpace(*p.SessionSubject))
		if s == "" {
			p.SessionSubject = nil
		} else {
			p.SessionSubject = &s
		}
	}
}

func (p *SessionCreateDTO) ToModel() model.AttendanceSessionModel {
	return model.AttendanceSessionModel{
		SessionClassroomID: p.SessionClassroomID,
		SessionDate:        p.SessionDate,
		SessionSubject:     p.SessionSubject,
	}
}

// Chamada em lote: um item por aluno da turma.
type MarkBulkEntryDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	IsPresent bool      `json:"is_present"`
	Note      *string   `json:"note,omitempty"`
}

type MarkBulkUpsertDTO struct {
	Marks []MarkBulkEntryDTO `json:"marks" validate:"required,min=1,dive"`
}

// =======================
// Response DTO
// =======================

type SessionResponseDTO struct {
	SessionID          uuid.UUID `json:"session_id"`
	SessionClassroomID uuid.UUID `json:"session_classroom_id"`
	SessionDate        time.Time `json:"session_date"`
	SessionSubject     *string   `json:"session_subject,omitempty"`
	SessionCreatedAt   time.Time `json:"session_created_at"`
}

func FromModel(m model.AttendanceSessionModel) SessionResponseDTO {
	return SessionResponseDTO{
		SessionID:          m.SessionID,
		SessionClassroomID: m.SessionClassroomID,
		SessionDate:        m.SessionDate,
		SessionSubject:     m.SessionSubject,
		SessionCreatedAt:   m.SessionCreatedAt,
	}
}

func FromModels(ms []model.AttendanceSessionModel) []SessionResponseDTO {
	out := make([]SessionResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

type MarkResponseDTO struct {
	MarkID        uuid.UUID `json:"mark_id"`
	MarkSessionID uuid.UUID `json:"mark_session_id"`
	MarkStudentID uuid.UUID `json:"mark_student_id"`
	MarkIsPresent bool      `json:"mark_is_present"`
	MarkNote      *string   `json:"mark_note,omitempty"`
}

func MarkFromModel(m model.AttendanceMarkModel) MarkResponseDTO {
	return MarkResponseDTO{
		MarkID:        m.MarkID,
		MarkSessionID: m.MarkSessionID,
		MarkStudentID: m.MarkStudentID,
		MarkIsPresent: m.MarkIsPresent,
		MarkNote:      m.MarkNote,
	}
}
