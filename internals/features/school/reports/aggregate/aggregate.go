// Package aggregate concentra o cálculo acadêmico do portal: médias por
// disciplina e bimestre, classificação APTO/RECUPERAÇÃO, percentual de
// frequência, faixas de proficiência e o ranking de turmas em risco.
//
// Tudo aqui é transformação pura em memória. Nenhuma função faz I/O,
// altera a entrada ou guarda estado: cada chamada recalcula do zero a
// partir dos feeds já materializados pelas consultas ao banco. As funções
// são totais sobre os formatos documentados — dado ausente vira default
// (0 para nota, 100% para frequência sem registros), nunca erro.
package aggregate

import (
	"math"
	"sort"
)

// Escala canônica interna: 0–100. Toda nota é normalizada na entrada
// (Normalize) e os limiares abaixo valem nessa escala.
const (
	// PassMark é a nota mínima de aprovação (6,0 na escala 0–10).
	PassMark = 60.0

	// AttendanceRiskMark: frequência abaixo disso marca o aluno em risco.
	AttendanceRiskMark = 85

	// Faixas de proficiência para avaliações externas.
	proficiencyAlto  = 80.0
	proficiencyMedio = 60.0
	proficiencyBaixo = 40.0
)

// GradeRecord é uma linha do feed de notas (uma nota de um aluno em uma
// avaliação), já com os campos da avaliação achatados.
type GradeRecord struct {
	AssessmentID  string  `json:"assessment_id"`
	ClassroomName string  `json:"classroom_name"`
	Subject       string  `json:"subject"`
	Period        string  `json:"period"`
	MaxScore      float64 `json:"max_score"`
	StudentID     string  `json:"student_id"`
	StudentName   string  `json:"student_name"`
	Score         float64 `json:"score"`
}

// AttendanceRecord é uma linha do feed de frequência: um registro por
// (aluno, aula).
type AttendanceRecord struct {
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	ClassroomName string `json:"classroom_name"`
	IsPresent     bool   `json:"is_present"`
}

type PassStatus string

const (
	StatusApto        PassStatus = "APTO"
	StatusRecuperacao PassStatus = "RECUPERACAO"
)

type ProficiencyLevel string

const (
	NivelMuitoBaixo ProficiencyLevel = "MUITO_BAIXO"
	NivelBaixo      ProficiencyLevel = "BAIXO"
	NivelMedio      ProficiencyLevel = "MÉDIO"
	NivelAlto       ProficiencyLevel = "ALTO"
)

// Normalize converte uma nota para a escala canônica 0–100 e limita o
// resultado a [0, 100]. maxScore <= 0 é tratado como 100 (o default das
// avaliações), então a nota passa sem reescala.
func Normalize(score, maxScore float64) float64 {
	if maxScore <= 0 {
		maxScore = 100
	}
	v := score / maxScore * 100
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SubjectAverages é o resultado por disciplina: média de cada bimestre da
// janela e a média das médias.
type SubjectAverages struct {
	PerPeriod map[string]float64 `json:"per_period"`
	// Overall é a média aritmética dos valores por bimestre da janela.
	// Bimestre sem nota vale 0 e ENTRA na conta — é assim que o boletim
	// se comporta, um zero puxa a média para baixo.
	Overall float64 `json:"overall"`
}

// ComputeSubjectAverages calcula, para cada disciplina pedida, a média das
// notas normalizadas em cada bimestre da janela. Par (disciplina, bimestre)
// sem nenhuma nota vale 0, nunca "ausente".
func ComputeSubjectAverages(grades []GradeRecord, subjects, periods []string) map[string]SubjectAverages {
	out := make(map[string]SubjectAverages, len(subjects))

	for _, subject := range subjects {
		perPeriod := make(map[string]float64, len(periods))
		sum := 0.0

		for _, period := range periods {
			total := 0.0
			n := 0
			for _, g := range grades {
				if g.Subject != subject || g.Period != period {
					continue
				}
				total += Normalize(g.Score, g.MaxScore)
				n++
			}
			avg := 0.0
			if n > 0 {
				avg = total / float64(n)
			}
			perPeriod[period] = avg
			sum += avg
		}

		overall := 0.0
		if len(periods) > 0 {
			overall = sum / float64(len(periods))
		}

		out[subject] = SubjectAverages{PerPeriod: perPeriod, Overall: overall}
	}

	return out
}

// ClassifyPass aplica o corte de aprovação sobre uma média já na escala
// 0–100. Exatamente 60 é APTO.
func ClassifyPass(avg float64) PassStatus {
	if avg >= PassMark {
		return StatusApto
	}
	return StatusRecuperacao
}

// ComputeAttendancePercentage devolve a frequência como inteiro 0–100,
// arredondado. Sem registros (total = 0) a frequência é 100: ausência de
// chamada não conta contra o aluno — decisão de política, não derivação.
func ComputeAttendancePercentage(present, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// ClassifyProficiencyLevel mapeia uma pontuação 0–100 para a faixa usada
// nas avaliações externas. Limites inclusivos no piso de cada faixa:
// <40 MUITO_BAIXO, [40,60) BAIXO, [60,80) MÉDIO, >=80 ALTO.
func ClassifyProficiencyLevel(score float64) ProficiencyLevel {
	switch {
	case score >= proficiencyAlto:
		return NivelAlto
	case score >= proficiencyMedio:
		return NivelMedio
	case score >= proficiencyBaixo:
		return NivelBaixo
	default:
		return NivelMuitoBaixo
	}
}

// StudentAttendance resume a frequência de um aluno dentro do feed.
type StudentAttendance struct {
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	ClassroomName string `json:"classroom_name"`
	Present       int    `json:"present"`
	Total         int    `json:"total"`
	Percentage    int    `json:"percentage"`
}

// SummarizeAttendance agrupa o feed por aluno, na ordem em que cada aluno
// aparece, e calcula o percentual de cada um.
func SummarizeAttendance(marks []AttendanceRecord) []StudentAttendance {
	index := make(map[string]int, len(marks))
	out := make([]StudentAttendance, 0, len(marks))

	for _, m := range marks {
		i, ok := index[m.StudentID]
		if !ok {
			i = len(out)
			index[m.StudentID] = i
			out = append(out, StudentAttendance{
				StudentID:     m.StudentID,
				StudentName:   m.StudentName,
				ClassroomName: m.ClassroomName,
			})
		}
		out[i].Total++
		if m.IsPresent {
			out[i].Present++
		}
	}

	for i := range out {
		out[i].Percentage = ComputeAttendancePercentage(out[i].Present, out[i].Total)
	}
	return out
}

// ClassroomRisk acumula os contadores de risco de uma turma.
type ClassroomRisk struct {
	ClassroomName       string `json:"classroom_name"`
	GradeRiskCount      int    `json:"grade_risk_count"`
	AttendanceRiskCount int    `json:"attendance_risk_count"`
	RiskScore           int    `json:"risk_score"`
}

// RankClassroomsByRisk combina nota baixa e frequência baixa por turma e
// ordena da mais crítica para a menos crítica.
//
// Cada nota normalizada abaixo de PassMark soma 1 no gradeRiskCount da
// turma da avaliação. Cada aluno com frequência abaixo de
// AttendanceRiskMark soma 1 no attendanceRiskCount da turma que o feed de
// frequência traz embutida — registro sem nome de turma é excluído do
// ranking, não atribuído a "N/A". A ordenação é estável: empates ficam na
// ordem de chegada do feed.
func RankClassroomsByRisk(grades []GradeRecord, marks []AttendanceRecord) []ClassroomRisk {
	index := make(map[string]int)
	out := make([]ClassroomRisk, 0)

	slot := func(classroom string) int {
		i, ok := index[classroom]
		if !ok {
			i = len(out)
			index[classroom] = i
			out = append(out, ClassroomRisk{ClassroomName: classroom})
		}
		return i
	}

	for _, g := range grades {
		if g.ClassroomName == "" {
			continue
		}
		if Normalize(g.Score, g.MaxScore) < PassMark {
			out[slot(g.ClassroomName)].GradeRiskCount++
		}
	}

	for _, s := range SummarizeAttendance(marks) {
		if s.ClassroomName == "" {
			continue
		}
		if s.Percentage < AttendanceRiskMark {
			out[slot(s.ClassroomName)].AttendanceRiskCount++
		}
	}

	for i := range out {
		out[i].RiskScore = out[i].GradeRiskCount + out[i].AttendanceRiskCount
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}
