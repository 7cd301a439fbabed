package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "portalescolar_backend/internals/features/school/students/model"
)

// RenumberClassroom reatribui os números de chamada da turma em ordem
// alfabética (1..N). Chamado dentro da transação que cria, move ou remove
// um aluno.
func RenumberClassroom(tx *gorm.DB, classroomID uuid.UUID) error {
	var students []model.StudentModel
	if err := tx.Where("student_classroom_id = ?", classroomID).
		Order("student_name ASC").
		Find(&students).Error; err != nil {
		return fmt.Errorf("falha ao carregar alunos da turma: %w", err)
	}

	for i := range students {
		want := i + 1
		if students[i].StudentCallNumber == want {
			continue
		}
		if err := tx.Model(&model.StudentModel{}).
			Where("student_id = ?", students[i].StudentID).
			Update("student_call_number", want).Error; err != nil {
			return fmt.Errorf("falha ao renumerar aluno: %w", err)
		}
	}
	return nil
}

// SyncClassroomStudentCount atualiza o contador denormalizado da turma.
func SyncClassroomStudentCount(tx *gorm.DB, classroomID uuid.UUID) error {
	return tx.Exec(`
		UPDATE classrooms
		   SET classroom_student_count = (
		       SELECT COUNT(*) FROM students
		        WHERE student_classroom_id = ?
		          AND student_deleted_at IS NULL
		   )
		 WHERE classroom_id = ?`, classroomID, classroomID).Error
}
