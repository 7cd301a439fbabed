package constants

// Bimestres letivos, na ordem cronológica fixa do ano escolar.
var Bimesters = []string{
	"1º BIMESTRE",
	"2º BIMESTRE",
	"3º BIMESTRE",
	"4º BIMESTRE",
}

func IsValidBimester(b string) bool {
	for _, v := range Bimesters {
		if v == b {
			return true
		}
	}
	return false
}

// BimestersUpTo devolve a janela cumulativa [1º..b]. Se b não for um
// bimestre conhecido, devolve todos.
func BimestersUpTo(b string) []string {
	for i, v := range Bimesters {
		if v == b {
			return Bimesters[:i+1]
		}
	}
	return Bimesters
}

// Turnos de funcionamento das turmas
const (
	ShiftManha    = "MANHÃ"
	ShiftTarde    = "TARDE"
	ShiftIntegral = "INTEGRAL"
	ShiftNoite    = "NOITE"
)

var Shifts = []string{ShiftManha, ShiftTarde, ShiftIntegral, ShiftNoite}

// Tipos de avaliação
const (
	AssessmentInternal = "INTERNA"
	AssessmentExternal = "EXTERNA"
)

// Dias letivos da grade horária
var Weekdays = []string{"SEGUNDA", "TERÇA", "QUARTA", "QUINTA", "SEXTA"}

func IsValidWeekday(d string) bool {
	for _, v := range Weekdays {
		if v == d {
			return true
		}
	}
	return false
}
