package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"portalescolar_backend/internals/features/school/staff/model"
)

// =======================
// Request DTO
// =======================

type StaffCreateDTO struct {
	StaffName          string         `json:"staff_name"          validate:"required,min=3"`
	StaffEmail         *string        `json:"staff_email,omitempty" validate:"omitempty,email"`
	StaffPhone         *string        `json:"staff_phone,omitempty"`
	StaffCPF           *string        `json:"staff_cpf,omitempty" validate:"omitempty,min=11,max=14"`
	StaffPosition      string         `json:"staff_position"      validate:"required,min=3"`
	StaffAdmissionDate *time.Time     `json:"staff_admission_date,omitempty"`
	StaffSubjects      datatypes.JSON `json:"staff_subjects,omitempty"`
	StaffDocumentURL   *string        `json:"staff_document_url,omitempty" validate:"omitempty,url"`
}

func (p *StaffCreateDTO) Normalize() {
	p.StaffName = strings.TrimSpace(p.StaffName)
	p.StaffPosition = strings.ToUpper(strings.TrimSpace(p.StaffPosition))
}

func (p *StaffCreateDTO) ToModel() model.StaffModel {
	return model.StaffModel{
		StaffName:          p.StaffName,
		StaffEmail:         p.StaffEmail,
		StaffPhone:         p.StaffPhone,
		StaffCPF:           p.StaffCPF,
		StaffPosition:      p.StaffPosition,
		StaffAdmissionDate: p.StaffAdmissionDate,
		StaffSubjects:      p.StaffSubjects,
		StaffDocumentURL:   p.StaffDocumentURL,
	}
}

type StaffUpdateDTO struct {
	StaffName          *string         `json:"staff_name,omitempty" validate:"omitempty,min=3"`
	StaffEmail         *string         `json:"staff_email,omitempty" validate:"omitempty,email"`
	StaffPhone         *string         `json:"staff_phone,omitempty"`
	StaffCPF           *string         `json:"staff_cpf,omitempty" validate:"omitempty,min=11,max=14"`
	StaffPosition      *string         `json:"staff_position,omitempty" validate:"omitempty,min=3"`
	StaffAdmissionDate *time.Time      `json:"staff_admission_date,omitempty"`
	StaffSubjects      *datatypes.JSON `json:"staff_subjects,omitempty"`
	StaffIsActive      *bool           `json:"staff_is_active,omitempty"`
	StaffDocumentURL   *string         `json:"staff_document_url,omitempty" validate:"omitempty,url"`
}

func (u *StaffUpdateDTO) ApplyUpdates(ent *model.StaffModel) {
	if u.StaffName != nil {
		ent.StaffName = strings.TrimSpace(*u.StaffName)
	}
	if u.StaffEmail != nil {
		ent.StaffEmail = u.StaffEmail
	}
	if u.StaffPhone != nil {
		ent.StaffPhone = u.StaffPhone
	}
	if u.StaffCPF != nil {
		ent.StaffCPF = u.StaffCPF
	}
	if u.StaffPosition != nil {
		ent.StaffPosition = strings.ToUpper(strings.TrimSpace(*u.StaffPosition))
	}
	if u.StaffAdmissionDate != nil {
		ent.StaffAdmissionDate = u.StaffAdmissionDate
	}
	if u.StaffSubjects != nil {
		ent.StaffSubjects = *u.StaffSubjects
	}
	if u.StaffIsActive != nil {
		ent.StaffIsActive = *u.StaffIsActive
	}
	if u.StaffDocumentURL != nil {
		ent.StaffDocumentURL = u.StaffDocumentURL
	}
}

// =======================
// Response DTO
// =======================

type StaffResponseDTO struct {
	StaffID            uuid.UUID      `json:"staff_id"`
	StaffName          string         `json:"staff_name"`
	StaffEmail         *string        `json:"staff_email,omitempty"`
	StaffPhone         *string        `json:"staff_phone,omitempty"`
	StaffCPF           *string        `json:"staff_cpf,omitempty"`
	StaffPosition      string         `json:"staff_position"`
	StaffAdmissionDate *time.Time     `json:"staff_admission_date,omitempty"`
	StaffSubjects      datatypes.JSON `json:"staff_subjects,omitempty"`
	StaffIsActive      bool           `json:"staff_is_active"`
	StaffDocumentURL   *string        `json:"staff_document_url,omitempty"`
	StaffCreatedAt     time.Time      `json:"staff_created_at"`
}

func FromModel(m model.StaffModel) StaffResponseDTO {
	return StaffResponseDTO{
		StaffID:            m.StaffID,
		StaffName:          m.StaffName,
		StaffEmail:         m.StaffEmail,
		StaffPhone:         m.StaffPhone,
		StaffCPF:           m.StaffCPF,
		StaffPosition:      m.StaffPosition,
		StaffAdmissionDate: m.StaffAdmissionDate,
		StaffSubjects:      m.StaffSubjects,
		StaffIsActive:      m.StaffIsActive,
		StaffDocumentURL:   m.StaffDocumentURL,
		StaffCreatedAt:     m.StaffCreatedAt,
	}
}

func FromModels(ms []model.StaffModel) []StaffResponseDTO {
	out := make([]StaffResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
