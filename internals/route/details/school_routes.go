package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portalescolar_backend/internals/constants"
	assessmentCtl "portalescolar_backend/internals/features/school/assessments/controller"
	attendanceCtl "portalescolar_backend/internals/features/school/attendance/controller"
	classroomCtl "portalescolar_backend/internals/features/school/classrooms/controller"
	disciplineCtl "portalescolar_backend/internals/features/school/discipline/controller"
	notificationCtl "portalescolar_backend/internals/features/school/notifications/controller"
	notificationSvc "portalescolar_backend/internals/features/school/notifications/service"
	reportCtl "portalescolar_backend/internals/features/school/reports/controller"
	scheduleCtl "portalescolar_backend/internals/features/school/schedules/controller"
	staffCtl "portalescolar_backend/internals/features/school/staff/controller"
	studentCtl "portalescolar_backend/internals/features/school/students/controller"
	authMiddleware "portalescolar_backend/internals/middlewares/auth"
)

// SchoolRoutes registra o miolo administrativo em /api/a.
func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	// Secretaria e acima: matrícula, turmas e equipe
	secretaria := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("a secretaria"),
			constants.SecretariaAndAbove,
		),
	)

	classrooms := classroomCtl.NewClassroomController(db, nil)
	secretaria.Post("/classrooms", classrooms.Create)
	secretaria.Get("/classrooms", classrooms.List)
	secretaria.Get("/classrooms/:id", classrooms.GetByID)
	secretaria.Patch("/classrooms/:id", classrooms.Patch)
	secretaria.Delete("/classrooms/:id", classrooms.Delete)

	students := studentCtl.NewStudentController(db, nil)
	secretaria.Post("/students", students.Create)
	secretaria.Get("/students", students.List)
	secretaria.Get("/students/:id", students.GetByID)
	secretaria.Patch("/students/:id", students.Patch)
	secretaria.Post("/students/:id/move", students.Move)
	secretaria.Delete("/students/:id", students.Delete)

	staff := staffCtl.NewStaffController(db, nil)
	secretaria.Post("/staff", staff.Create)
	secretaria.Get("/staff", staff.List)
	secretaria.Get("/staff/:id", staff.GetByID)
	secretaria.Patch("/staff/:id", staff.Patch)
	secretaria.Delete("/staff/:id", staff.Delete)

	// Professores e acima: notas, chamada e ocorrências
	docencia := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTeacher("o diário de classe"),
			constants.AllRoles,
		),
	)

	assessments := assessmentCtl.NewAssessmentController(db, nil)
	docencia.Post("/assessments", assessments.Create)
	docencia.Get("/assessments", assessments.List)
	docencia.Patch("/assessments/:id", assessments.Patch)
	docencia.Delete("/assessments/:id", assessments.Delete)
	docencia.Put("/assessments/:id/grades", assessments.UpsertGrades)
	docencia.Get("/assessments/:id/grades", assessments.ListGrades)

	attendance := attendanceCtl.NewAttendanceController(db, nil)
	docencia.Post("/attendance/sessions", attendance.CreateSession)
	docencia.Get("/attendance/sessions", attendance.ListSessions)
	docencia.Put("/attendance/sessions/:id/marks", attendance.UpsertMarks)
	docencia.Get("/attendance/sessions/:id/marks", attendance.ListMarks)
	docencia.Delete("/attendance/sessions/:id", attendance.DeleteSession)

	discipline := disciplineCtl.NewOccurrenceController(db, nil)
	docencia.Post("/discipline/occurrences", discipline.Create)
	docencia.Get("/discipline/occurrences", discipline.List)
	docencia.Patch("/discipline/occurrences/:id", discipline.Patch)
	docencia.Delete("/discipline/occurrences/:id", discipline.Delete)

	// Coordenação e admin: grade horária, relatórios e avisos
	coordenacao := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("a coordenação"),
			constants.AdminAndCoordenacao,
		),
	)

	schedules := scheduleCtl.NewScheduleController(db, nil)
	coordenacao.Post("/schedules", schedules.Create)
	coordenacao.Get("/schedules", schedules.List)
	coordenacao.Get("/schedules/conflicts", schedules.Conflicts)
	coordenacao.Patch("/schedules/:id", schedules.Patch)
	coordenacao.Delete("/schedules/:id", schedules.Delete)

	reports := reportCtl.NewReportController(db)
	coordenacao.Get("/reports/dashboard", reports.SchoolDashboard)
	coordenacao.Get("/reports/students/:id/bulletin", reports.StudentBulletin)
	coordenacao.Get("/reports/classrooms/:id/dashboard", reports.ClassroomDashboard)
	coordenacao.Get("/reports/risk", reports.RiskRanking)

	notifications := notificationCtl.NewNotificationController(notificationSvc.NewGormStore(db), nil)
	coordenacao.Post("/notifications", notifications.Send)
}

// UserRoutes registra o que qualquer usuário logado enxerga em /api/u.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	notifications := notificationCtl.NewNotificationController(notificationSvc.NewGormStore(db), nil)
	api.Get("/notifications", notifications.Mine)
	api.Patch("/notifications/:id/read", notifications.MarkRead)
}
