package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portalescolar_backend/internals/features/school/discipline/model"
)

// =======================
// Request DTO
// =======================

type OccurrenceCreateDTO struct {
	OccurrenceStudentID uuid.UUID `json:"occurrence_student_id" validate:"required"`
	OccurrenceDate      time.Time `json:"occurrence_date"       validate:"required"`
	// validado contra model.Severities no controller
	OccurrenceSeverity         string   `json:"occurrence_severity"    validate:"required,min=4"`
	OccurrenceDescription      string   `json:"occurrence_description" validate:"required,min=5"`
	OccurrenceMeasures         []string `json:"occurrence_measures,omitempty"`
	OccurrenceGuardianNotified bool     `json:"occurrence_guardian_notified"`
}

func (p *OccurrenceCreateDTO) Normalize() {
	p.OccurrenceSeverity = strings.ToUpper(strings.TrimSpace(p.OccurrenceSeverity))
	p.OccurrenceDescription = strings.TrimSpace(p.OccurrenceDescription)
	cleaned := make([]string, 0, len(p.OccurrenceMeasures))
	for _, m := range p.OccurrenceMeasures {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			cleaned = append(cleaned, m)
		}
	}
	p.OccurrenceMeasures = cleaned
}

func (p *OccurrenceCreateDTO) ToModel(reporterID uuid.UUID) model.OccurrenceModel {
	return model.OccurrenceModel{
		OccurrenceStudentID:        p.OccurrenceStudentID,
		OccurrenceReporterID:       reporterID,
		OccurrenceDate:             p.OccurrenceDate,
		OccurrenceSeverity:         p.OccurrenceSeverity,
		OccurrenceDescription:      p.OccurrenceDescription,
		OccurrenceMeasures:         pq.StringArray(p.OccurrenceMeasures),
		OccurrenceGuardianNotified: p.OccurrenceGuardianNotified,
	}
}

type OccurrenceUpdateDTO struct {
	OccurrenceSeverity         *string   `json:"occurrence_severity,omitempty"`
	OccurrenceDescription      *string   `json:"occurrence_description,omitempty" validate:"omitempty,min=5"`
	OccurrenceMeasures         *[]string `json:"occurrence_measures,omitempty"`
	OccurrenceGuardianNotified *bool     `json:"occurrence_guardian_notified,omitempty"`
}

func (u *OccurrenceUpdateDTO) ApplyUpdates(ent *model.OccurrenceModel) {
	if u.OccurrenceSeverity != nil {
		ent.OccurrenceSeverity = strings.ToUpper(strings.TrimSpace(*u.OccurrenceSeverity))
	}
	if u.OccurrenceDescription != nil {
		ent.OccurrenceDescription = strings.TrimSpace(*u.OccurrenceDescription)
	}
	if u.OccurrenceMeasures != nil {
		cleaned := make([]string, 0, len(*u.OccurrenceMeasures))
		for _, m := range *u.OccurrenceMeasures {
			m = strings.ToUpper(strings.TrimSpace(m))
			if m != "" {
				cleaned = append(cleaned, m)
			}
		}
		ent.OccurrenceMeasures = pq.StringArray(cleaned)
	}
	if u.OccurrenceGuardianNotified != nil {
		ent.OccurrenceGuardianNotified = *u.OccurrenceGuardianNotified
	}
}

// =======================
// Response DTO
// =======================

type OccurrenceResponseDTO struct {
	OccurrenceID               uuid.UUID `json:"occurrence_id"`
	OccurrenceStudentID        uuid.UUID `json:"occurrence_student_id"`
	OccurrenceReporterID       uuid.UUID `json:"occurrence_reporter_id"`
	OccurrenceDate             time.Time `json:"occurrence_date"`
	OccurrenceSeverity         string    `json:"occurrence_severity"`
	OccurrenceDescription      string    `json:"occurrence_description"`
	OccurrenceMeasures         []string  `json:"occurrence_measures"`
	OccurrenceGuardianNotified bool      `json:"occurrence_guardian_notified"`
	OccurrenceCreatedAt        time.Time `json:"occurrence_created_at"`
}

func FromModel(m model.OccurrenceModel) OccurrenceResponseDTO {
	measures := []string(m.OccurrenceMeasures)
	if measures == nil {
		measures = []string{}
	}
	return OccurrenceResponseDTO{
		OccurrenceID:               m.OccurrenceID,
		OccurrenceStudentID:        m.OccurrenceStudentID,
		OccurrenceReporterID:       m.OccurrenceReporterID,
		OccurrenceDate:             m.OccurrenceDate,
		OccurrenceSeverity:         m.OccurrenceSeverity,
		OccurrenceDescription:      m.OccurrenceDescription,
		OccurrenceMeasures:         measures,
		OccurrenceGuardianNotified: m.OccurrenceGuardianNotified,
		OccurrenceCreatedAt:        m.OccurrenceCreatedAt,
	}
}

func FromModels(ms []model.OccurrenceModel) []OccurrenceResponseDTO {
	out := make([]OccurrenceResponseDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
