package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalescolar_backend/internals/features/school/schedules/model"
)

func slot(classroom, teacher uuid.UUID, weekday, start, end string) model.ScheduleSlotModel {
	return model.ScheduleSlotModel{
		SlotID:          uuid.New(),
		SlotClassroomID: classroom,
		SlotTeacherID:   teacher,
		SlotWeekday:     weekday,
		SlotStartTime:   start,
		SlotEndTime:     end,
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"faixas separadas", "07:00", "08:00", "09:00", "10:00", false},
		{"encostadas (fim exclusivo)", "07:00", "08:00", "08:00", "09:00", false},
		{"sobreposição parcial", "07:00", "08:30", "08:00", "09:00", true},
		{"contida", "07:00", "10:00", "08:00", "09:00", true},
		{"idênticas", "07:00", "08:00", "07:00", "08:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, timesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestFindConflicts_Teacher(t *testing.T) {
	teacher := uuid.New()
	turmaA := uuid.New()
	turmaB := uuid.New()

	slots := []model.ScheduleSlotModel{
		slot(turmaA, teacher, "SEGUNDA", "07:00", "08:00"),
		slot(turmaB, teacher, "SEGUNDA", "07:30", "08:30"),
	}

	conflicts := FindConflicts(slots)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictTeacher, conflicts[0].Kind)
	assert.Equal(t, "SEGUNDA", conflicts[0].Weekday)
}

func TestFindConflicts_Classroom(t *testing.T) {
	turma := uuid.New()

	slots := []model.ScheduleSlotModel{
		slot(turma, uuid.New(), "TERÇA", "07:00", "08:00"),
		slot(turma, uuid.New(), "TERÇA", "07:00", "08:00"),
	}

	conflicts := FindConflicts(slots)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictClassroom, conflicts[0].Kind)
}

func TestFindConflicts_DifferentDaysDoNotConflict(t *testing.T) {
	teacher := uuid.New()
	turma := uuid.New()

	slots := []model.ScheduleSlotModel{
		slot(turma, teacher, "SEGUNDA", "07:00", "08:00"),
		slot(turma, teacher, "TERÇA", "07:00", "08:00"),
	}

	assert.Empty(t, FindConflicts(slots))
}

func TestFindConflicts_SameTeacherSameClassroomReportsBoth(t *testing.T) {
	teacher := uuid.New()
	turma := uuid.New()

	slots := []model.ScheduleSlotModel{
		slot(turma, teacher, "QUARTA", "10:00", "11:00"),
		slot(turma, teacher, "QUARTA", "10:30", "11:30"),
	}

	conflicts := FindConflicts(slots)
	require.Len(t, conflicts, 2)
	kinds := []string{conflicts[0].Kind, conflicts[1].Kind}
	assert.Contains(t, kinds, ConflictTeacher)
	assert.Contains(t, kinds, ConflictClassroom)
}

func TestConflictsWith_IgnoresSelfOnEdit(t *testing.T) {
	teacher := uuid.New()
	turma := uuid.New()

	existing := slot(turma, teacher, "SEXTA", "07:00", "08:00")

	// edição do próprio registro não choca consigo mesma
	edited := existing
	edited.SlotEndTime = "08:30"
	assert.Empty(t, ConflictsWith(edited, []model.ScheduleSlotModel{existing}))

	// mas um registro novo na mesma faixa choca
	fresh := slot(turma, teacher, "SEXTA", "07:30", "08:30")
	conflicts := ConflictsWith(fresh, []model.ScheduleSlotModel{existing})
	require.Len(t, conflicts, 2)
}
