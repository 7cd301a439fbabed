package service

import (
	"fmt"

	"github.com/google/uuid"

	"portalescolar_backend/internals/features/school/schedules/model"
)

// Motivo do choque de horário.
const (
	ConflictTeacher   = "PROFESSOR"
	ConflictClassroom = "TURMA"
)

type Conflict struct {
	Kind    string    `json:"kind"` // PROFESSOR | TURMA
	SlotA   uuid.UUID `json:"slot_a"`
	SlotB   uuid.UUID `json:"slot_b"`
	Weekday string    `json:"weekday"`
	Detail  string    `json:"detail"`
}

// timesOverlap compara faixas HH:MM. Fim exclusivo: 08:00-09:00 e
// 09:00-10:00 não chocam.
func timesOverlap(startA, endA, startB, endB string) bool {
	return startA < endB && startB < endA
}

// FindConflicts varre os horários e aponta pares que chocam no mesmo dia:
// mesmo professor em duas turmas, ou duas aulas na mesma turma.
func FindConflicts(slots []model.ScheduleSlotModel) []Conflict {
	var out []Conflict
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.SlotWeekday != b.SlotWeekday {
				continue
			}
			if !timesOverlap(a.SlotStartTime, a.SlotEndTime, b.SlotStartTime, b.SlotEndTime) {
				continue
			}
			if a.SlotTeacherID == b.SlotTeacherID {
				out = append(out, Conflict{
					Kind:    ConflictTeacher,
					SlotA:   a.SlotID,
					SlotB:   b.SlotID,
					Weekday: a.SlotWeekday,
					Detail:  fmt.Sprintf("Professor em duas aulas: %s %s-%s x %s-%s", a.SlotWeekday, a.SlotStartTime, a.SlotEndTime, b.SlotStartTime, b.SlotEndTime),
				})
			}
			if a.SlotClassroomID == b.SlotClassroomID {
				out = append(out, Conflict{
					Kind:    ConflictClassroom,
					SlotA:   a.SlotID,
					SlotB:   b.SlotID,
					Weekday: a.SlotWeekday,
					Detail:  fmt.Sprintf("Turma com duas aulas: %s %s-%s x %s-%s", a.SlotWeekday, a.SlotStartTime, a.SlotEndTime, b.SlotStartTime, b.SlotEndTime),
				})
			}
		}
	}
	return out
}

// ConflictsWith testa um horário candidato contra os já existentes,
// ignorando o próprio registro em caso de edição.
func ConflictsWith(candidate model.ScheduleSlotModel, existing []model.ScheduleSlotModel) []Conflict {
	var out []Conflict
	for _, e := range existing {
		if e.SlotID == candidate.SlotID {
			continue
		}
		if e.SlotWeekday != candidate.SlotWeekday {
			continue
		}
		if !timesOverlap(candidate.SlotStartTime, candidate.SlotEndTime, e.SlotStartTime, e.SlotEndTime) {
			continue
		}
		if e.SlotTeacherID == candidate.SlotTeacherID {
			out = append(out, Conflict{
				Kind:    ConflictTeacher,
				SlotA:   candidate.SlotID,
				SlotB:   e.SlotID,
				Weekday: e.SlotWeekday,
				Detail:  fmt.Sprintf("Professor já ocupado %s %s-%s", e.SlotWeekday, e.SlotStartTime, e.SlotEndTime),
			})
		}
		if e.SlotClassroomID == candidate.SlotClassroomID {
			out = append(out, Conflict{
				Kind:    ConflictClassroom,
				SlotA:   candidate.SlotID,
				SlotB:   e.SlotID,
				Weekday: e.SlotWeekday,
				Detail:  fmt.Sprintf("Turma já em aula %s %s-%s", e.SlotWeekday, e.SlotStartTime, e.SlotEndTime),
			})
		}
	}
	return out
}
