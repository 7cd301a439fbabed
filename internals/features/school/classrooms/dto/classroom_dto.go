package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"portalescolar_backend/internals/features/school/classrooms/model"
)

// =======================
// Request DTO
// =======================

type ClassroomCreateDTO struct {
	ClassroomName  string         `json:"classroom_name"  validate:"required,min=2"`
	ClassroomShift string         `json:"classroom_shift" validate:"required,oneof=MANHÃ TARDE INTEGRAL NOITE"`
	ClassroomYear  string         `json:"classroom_year"  validate:"required,len=4"`
	ClassroomStats datatypes.JSON `json:"classroom_stats,omitempty"`
}

func (p *ClassroomCreateDTO) Normalize() {
	p.ClassroomName = strings.ToUpper(strings.TrimSpace(p.ClassroomName))
	p.ClassroomShift = strings.ToUpper(strings.TrimSpace(p.ClassroomShift))
	p.ClassroomYear = strings.TrimSpace(p.ClassroomYear)
}

func (p *ClassroomCreateDTO) ToModel() model.ClassroomModel {
	return model.ClassroomModel{
		ClassroomName:  p.ClassroomName,
		ClassroomShift: p.ClassroomShift,
		ClassroomYear:  p.ClassroomYear,
		ClassroomStats: p.ClassroomStats,
	}
}

type ClassroomUpdateDTO struct {
	ClassroomName     *string         `json:"classroom_name,omitempty"  validate:"omitempty,min=2"`
	ClassroomShift    *string         `json:"classroom_shift,omitempty" validate:"omitempty,oneof=MANHÃ TARDE INTEGRAL NOITE"`
	ClassroomYear     *string         `json:"classroom_year,omitempty"  validate:"omitempty,len=4"`
	ClassroomIsActive *bool           `json:"classroom_is_active,omitempty"`
	ClassroomStats    *datatypes.JSON `json:"classroom_stats,omitempty"`
}

func (u *ClassroomUpdateDTO) ApplyUpdates(ent *model.ClassroomModel) {
	if u.ClassroomName != nil {
		ent.ClassroomName = strings.ToUpper(strings.TrimSpace(*u.ClassroomName))
	}
	if u.ClassroomShift != nil {
		ent.ClassroomShift = strings.ToUpper(strings.TrimSpace(*u.ClassroomShift))
	}
	if u.ClassroomYear != nil {
		ent.ClassroomYear = strings.TrimSpace(*u.ClassroomYear)
	}
	if u.ClassroomIsActive != nil {
		ent.ClassroomIsActive = *u.ClassroomIsActive
	}
	if u.ClassroomStats != nil {
		ent.ClassroomStats = *u.ClassroomStats
	}
}

// =======================
// Response DTO
// =======================

type ClassroomResponseDTO struct {
	ClassroomID           uuid.UUID      `json:"classroom_id"`
	ClassroomName         string         `json:"classroom_name"`
	ClassroomShift        string         `json:"classroom_shift"`
	ClassroomYear         string         `json:"classroom_year"`
	ClassroomIsActive     bool           `json:"classroom_is_active"`
	ClassroomStudentCount int            `json:"classroom_student_count"`
	ClassroomStats        datatypes.JSON `json:"classroom_stats,omitempty"`
	ClassroomCreatedAt    time.Time      `json:"classroom_created_at"`
}

func FromModel(m model.ClassroomModel) ClassroomResponseDTO {
	return ClassroomResponseDTO{
		ClassroomID:           m.ClassroomID,
		ClassroomName:         m.ClassroomName,
		ClassroomShift:        m.ClassroomShift,
		ClassroomYear:         m.ClassroomYear,
		ClassroomIsActive:     m.ClassroomIsActive,
		ClassroomStudentCount: m.ClassroomStudentCount,
		ClassroomStats:        m.ClassroomStats,
		ClassroomCreatedAt:    m.ClassroomCreatedAt,
	}
}

func FromModels(ms []model.ClassroomModel) []ClassroomResponseDTO {
	out := make([]ClassroomResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
