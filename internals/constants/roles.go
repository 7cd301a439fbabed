package constants

import "fmt"

// Papéis de acesso do portal
const (
	RoleAdmin       = "admin"
	RoleCoordenacao = "coordenacao"
	RoleSecretaria  = "secretaria"
	RoleProfessor   = "professor"
)

// Templates de mensagem de erro por papel
const (
	ErrOnlyAdminsCanAccess   = "❌ Apenas administradores podem acessar %s."
	ErrOnlyStaffCanAccess    = "❌ Apenas a equipe da escola pode acessar %s."
	ErrOnlyTeachersCanAccess = "❌ Apenas professores, coordenação ou administradores podem acessar %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleCoordenacao,
		RoleSecretaria,
		RoleProfessor,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	AdminAndCoordenacao = []string{
		RoleAdmin,
		RoleCoordenacao,
	}

	SecretariaAndAbove = []string{
		RoleAdmin,
		RoleCoordenacao,
		RoleSecretaria,
	}
)
