package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/school/students/model"
)

// =======================
// Request DTO
// =======================

type StudentCreateDTO struct {
	StudentName          string     `json:"student_name"           validate:"required,min=3"`
	StudentBirthDate     *time.Time `json:"student_birth_date,omitempty"`
	StudentCPF           *string    `json:"student_cpf,omitempty"  validate:"omitempty,min=11,max=14"`
	StudentClassroomID   uuid.UUID  `json:"student_classroom_id"   validate:"required"`
	StudentGuardianName  *string    `json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `json:"student_guardian_phone,omitempty"`
	StudentDocumentURL   *string    `json:"student_document_url,omitempty" validate:"omitempty,url"`
}

func (p *StudentCreateDTO) Normalize() {
	p.StudentName = strings.TrimSpace(p.StudentName)
}

func (p *StudentCreateDTO) ToModel() model.StudentModel {
	return model.StudentModel{
		StudentName:          p.StudentName,
		StudentBirthDate:     p.StudentBirthDate,
		StudentCPF:           p.StudentCPF,
		StudentClassroomID:   p.StudentClassroomID,
		StudentGuardianName:  p.StudentGuardianName,
		StudentGuardianPhone: p.StudentGuardianPhone,
		StudentDocumentURL:   p.StudentDocumentURL,
	}
}

type StudentUpdateDTO struct {
	StudentName          *string    `json:"student_name,omitempty" validate:"omitempty,min=3"`
	StudentBirthDate     *time.Time `json:"student_birth_date,omitempty"`
	StudentCPF           *string    `json:"student_cpf,omitempty"  validate:"omitempty,min=11,max=14"`
	StudentGuardianName  *string    `json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `json:"student_guardian_phone,omitempty"`
	StudentDocumentURL   *string    `json:"student_document_url,omitempty" validate:"omitempty,url"`
}

func (u *StudentUpdateDTO) ApplyUpdates(ent *model.StudentModel) {
	if u.StudentName != nil {
		ent.StudentName = strings.TrimSpace(*u.StudentName)
	}
	if u.StudentBirthDate != nil {
		ent.StudentBirthDate = u.StudentBirthDate
	}
	if u.StudentCPF != nil {
		ent.StudentCPF = u.StudentCPF
	}
	if u.StudentGuardianName != nil {
		ent.StudentGuardianName = u.StudentGuardianName
	}
	if u.StudentGuardianPhone != nil {
		ent.StudentGuardianPhone = u.StudentGuardianPhone
	}
	if u.StudentDocumentURL != nil {
		ent.StudentDocumentURL = u.StudentDocumentURL
	}
}

type StudentMoveDTO struct {
	TargetClassroomID uuid.UUID `json:"target_classroom_id" validate:"required"`
}

// =======================
// Response DTO
// =======================

type StudentResponseDTO struct {
	StudentID            uuid.UUID  `json:"student_id"`
	StudentName          string     `json:"student_name"`
	StudentBirthDate     *time.Time `json:"student_birth_date,omitempty"`
	StudentCPF           *string    `json:"student_cpf,omitempty"`
	StudentClassroomID   uuid.UUID  `json:"student_classroom_id"`
	StudentCallNumber    int        `json:"student_call_number"`
	StudentGuardianName  *string    `json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `json:"student_guardian_phone,omitempty"`
	StudentDocumentURL   *string    `json:"student_document_url,omitempty"`
	StudentCreatedAt     time.Time  `json:"student_created_at"`
}

func FromModel(m model.StudentModel) StudentResponseDTO {
	return StudentResponseDTO{
		StudentID:            m.StudentID,
		StudentName:          m.StudentName,
		StudentBirthDate:     m.StudentBirthDate,
		StudentCPF:           m.StudentCPF,
		StudentClassroomID:   m.StudentClassroomID,
		StudentCallNumber:    m.StudentCallNumber,
		StudentGuardianName:  m.StudentGuardianName,
		StudentGuardianPhone: m.StudentGuardianPhone,
		StudentDocumentURL:   m.StudentDocumentURL,
		StudentCreatedAt:     m.StudentCreatedAt,
	}
}

func FromModels(ms []model.StudentModel) []StudentResponseDTO {
	out := make([]StudentResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
