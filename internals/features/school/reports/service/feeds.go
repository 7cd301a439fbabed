package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessmentModel "portalescolar_backend/internals/features/school/assessments/model"
	attendanceModel "portalescolar_backend/internals/features/school/attendance/model"
	classroomModel "portalescolar_backend/internals/features/school/classrooms/model"
	"portalescolar_backend/internals/features/school/reports/aggregate"
	studentModel "portalescolar_backend/internals/features/school/students/model"
)

// FeedBuilder materializa os feeds que o pacote aggregate consome. Os joins
// são feitos no aplicativo (consultas separadas + mapas em memória) porque o
// pooler do Supabase trabalha melhor com statements simples.
type FeedBuilder struct {
	DB *gorm.DB
}

func NewFeedBuilder(db *gorm.DB) *FeedBuilder {
	return &FeedBuilder{DB: db}
}

func (f *FeedBuilder) classroomNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []classroomModel.ClassroomModel
	if err := f.DB.WithContext(ctx).
		Select("classroom_id", "classroom_name").
		Where("classroom_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ClassroomID] = r.ClassroomName
	}
	return out, nil
}

func (f *FeedBuilder) studentsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]studentModel.StudentModel, error) {
	out := make(map[uuid.UUID]studentModel.StudentModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []studentModel.StudentModel
	if err := f.DB.WithContext(ctx).
		Where("student_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.StudentID] = r
	}
	return out, nil
}

func uniqueIDs(in []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(in))
	out := make([]uuid.UUID, 0, len(in))
	for _, id := range in {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// gradeFeed achata notas + avaliações + turmas + alunos em GradeRecord.
func (f *FeedBuilder) gradeFeed(ctx context.Context, assessments []assessmentModel.AssessmentModel, grades []assessmentModel.GradeModel) ([]aggregate.GradeRecord, error) {
	byAssessment := make(map[uuid.UUID]assessmentModel.AssessmentModel, len(assessments))
	classroomIDs := make([]uuid.UUID, 0, len(assessments))
	for _, a := range assessments {
		byAssessment[a.AssessmentID] = a
		classroomIDs = append(classroomIDs, a.AssessmentClassroomID)
	}

	names, err := f.classroomNames(ctx, uniqueIDs(classroomIDs))
	if err != nil {
		return nil, err
	}

	studentIDs := make([]uuid.UUID, 0, len(grades))
	for _, g := range grades {
		studentIDs = append(studentIDs, g.GradeStudentID)
	}
	students, err := f.studentsByID(ctx, uniqueIDs(studentIDs))
	if err != nil {
		return nil, err
	}

	out := make([]aggregate.GradeRecord, 0, len(grades))
	for _, g := range grades {
		a, ok := byAssessment[g.GradeAssessmentID]
		if !ok {
			continue
		}
		out = append(out, aggregate.GradeRecord{
			AssessmentID:  a.AssessmentID.String(),
			ClassroomName: names[a.AssessmentClassroomID],
			Subject:       a.AssessmentSubject,
			Period:        a.AssessmentPeriod,
			MaxScore:      a.AssessmentMaxScore,
			StudentID:     g.GradeStudentID.String(),
			StudentName:   students[g.GradeStudentID].StudentName,
			Score:         g.GradeScore,
		})
	}
	return out, nil
}

// GradeFeedForStudent devolve as notas do aluno nos bimestres da janela,
// mais as disciplinas encontradas (na ordem de chegada do feed).
func (f *FeedBuilder) GradeFeedForStudent(ctx context.Context, studentID uuid.UUID, periods []string) ([]aggregate.GradeRecord, []string, error) {
	var grades []assessmentModel.GradeModel
	if err := f.DB.WithContext(ctx).
		Where("grade_student_id = ?", studentID).
		Find(&grades).Error; err != nil {
		return nil, nil, err
	}

	assessmentIDs := make([]uuid.UUID, 0, len(grades))
	for _, g := range grades {
		assessmentIDs = append(assessmentIDs, g.GradeAssessmentID)
	}

	var assessments []assessmentModel.AssessmentModel
	if len(assessmentIDs) > 0 {
		if err := f.DB.WithContext(ctx).
			Where("assessment_id IN ? AND assessment_period IN ?", uniqueIDs(assessmentIDs), periods).
			Find(&assessments).Error; err != nil {
			return nil, nil, err
		}
	}

	feed, err := f.gradeFeed(ctx, assessments, grades)
	if err != nil {
		return nil, nil, err
	}

	subjects := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range feed {
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		seen[r.Subject] = struct{}{}
		subjects = append(subjects, r.Subject)
	}
	return feed, subjects, nil
}

// GradeFeedForClassroom devolve todas as notas da turma na janela.
func (f *FeedBuilder) GradeFeedForClassroom(ctx context.Context, classroomID uuid.UUID, periods []string) ([]aggregate.GradeRecord, error) {
	var assessments []assessmentModel.AssessmentModel
	if err := f.DB.WithContext(ctx).
		Where("assessment_classroom_id = ? AND assessment_period IN ?", classroomID, periods).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return []aggregate.GradeRecord{}, nil
	}

	ids := make([]uuid.UUID, 0, len(assessments))
	for _, a := range assessments {
		ids = append(ids, a.AssessmentID)
	}

	var grades []assessmentModel.GradeModel
	if err := f.DB.WithContext(ctx).
		Where("grade_assessment_id IN ?", ids).
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return f.gradeFeed(ctx, assessments, grades)
}

// GradeFeedByType devolve as notas de avaliações de um tipo (INTERNA ou
// EXTERNA) — o painel usa as externas para a distribuição de proficiência.
func (f *FeedBuilder) GradeFeedByType(ctx context.Context, assessmentType string) ([]aggregate.GradeRecord, error) {
	var assessments []assessmentModel.AssessmentModel
	if err := f.DB.WithContext(ctx).
		Where("assessment_type = ?", assessmentType).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return []aggregate.GradeRecord{}, nil
	}

	ids := make([]uuid.UUID, 0, len(assessments))
	for _, a := range assessments {
		ids = append(ids, a.AssessmentID)
	}

	var grades []assessmentModel.GradeModel
	if err := f.DB.WithContext(ctx).
		Where("grade_assessment_id IN ?", ids).
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return f.gradeFeed(ctx, assessments, grades)
}

// GradeFeedAll devolve todas as notas lançadas — alimenta o ranking de risco.
func (f *FeedBuilder) GradeFeedAll(ctx context.Context) ([]aggregate.GradeRecord, error) {
	var assessments []assessmentModel.AssessmentModel
	if err := f.DB.WithContext(ctx).Find(&assessments).Error; err != nil {
		return nil, err
	}
	var grades []assessmentModel.GradeModel
	if err := f.DB.WithContext(ctx).Find(&grades).Error; err != nil {
		return nil, err
	}
	return f.gradeFeed(ctx, assessments, grades)
}

// attendanceFeed achata chamadas + presenças + alunos em AttendanceRecord.
func (f *FeedBuilder) attendanceFeed(ctx context.Context, sessions []attendanceModel.AttendanceSessionModel, marks []attendanceModel.AttendanceMarkModel) ([]aggregate.AttendanceRecord, error) {
	bySession := make(map[uuid.UUID]attendanceModel.AttendanceSessionModel, len(sessions))
	classroomIDs := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		bySession[s.SessionID] = s
		classroomIDs = append(classroomIDs, s.SessionClassroomID)
	}

	names, err := f.classroomNames(ctx, uniqueIDs(classroomIDs))
	if err != nil {
		return nil, err
	}

	studentIDs := make([]uuid.UUID, 0, len(marks))
	for _, m := range marks {
		studentIDs = append(studentIDs, m.MarkStudentID)
	}
	students, err := f.studentsByID(ctx, uniqueIDs(studentIDs))
	if err != nil {
		return nil, err
	}

	out := make([]aggregate.AttendanceRecord, 0, len(marks))
	for _, m := range marks {
		s, ok := bySession[m.MarkSessionID]
		if !ok {
			continue
		}
		out = append(out, aggregate.AttendanceRecord{
			StudentID:     m.MarkStudentID.String(),
			StudentName:   students[m.MarkStudentID].StudentName,
			ClassroomName: names[s.SessionClassroomID],
			IsPresent:     m.MarkIsPresent,
		})
	}
	return out, nil
}

// AttendanceFeedForClassroom devolve as presenças de todas as chamadas da turma.
func (f *FeedBuilder) AttendanceFeedForClassroom(ctx context.Context, classroomID uuid.UUID) ([]aggregate.AttendanceRecord, error) {
	var sessions []attendanceModel.AttendanceSessionModel
	if err := f.DB.WithContext(ctx).
		Where("session_classroom_id = ?", classroomID).
		Order("session_date ASC, session_created_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []aggregate.AttendanceRecord{}, nil
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.SessionID)
	}

	var marks []attendanceModel.AttendanceMarkModel
	if err := f.DB.WithContext(ctx).
		Where("mark_session_id IN ?", ids).
		Find(&marks).Error; err != nil {
		return nil, err
	}
	return f.attendanceFeed(ctx, sessions, marks)
}

// AttendanceFeedForStudent devolve as presenças de um aluno em todas as chamadas.
func (f *FeedBuilder) AttendanceFeedForStudent(ctx context.Context, studentID uuid.UUID) ([]aggregate.AttendanceRecord, error) {
	var marks []attendanceModel.AttendanceMarkModel
	if err := f.DB.WithContext(ctx).
		Where("mark_student_id = ?", studentID).
		Find(&marks).Error; err != nil {
		return nil, err
	}
	if len(marks) == 0 {
		return []aggregate.AttendanceRecord{}, nil
	}

	ids := make([]uuid.UUID, 0, len(marks))
	for _, m := range marks {
		ids = append(ids, m.MarkSessionID)
	}

	var sessions []attendanceModel.AttendanceSessionModel
	if err := f.DB.WithContext(ctx).
		Where("session_id IN ?", uniqueIDs(ids)).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return f.attendanceFeed(ctx, sessions, marks)
}

// AttendanceFeedAll devolve todas as presenças registradas — alimenta o
// ranking de risco.
func (f *FeedBuilder) AttendanceFeedAll(ctx context.Context) ([]aggregate.AttendanceRecord, error) {
	var sessions []attendanceModel.AttendanceSessionModel
	if err := f.DB.WithContext(ctx).Find(&sessions).Error; err != nil {
		return nil, err
	}
	var marks []attendanceModel.AttendanceMarkModel
	if err := f.DB.WithContext(ctx).Find(&marks).Error; err != nil {
		return nil, err
	}
	return f.attendanceFeed(ctx, sessions, marks)
}
