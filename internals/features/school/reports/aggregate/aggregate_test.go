package aggregate

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     float64
	}{
		{name: "escala 0-100", score: 70, maxScore: 100, want: 70},
		{name: "escala 0-10", score: 7, maxScore: 10, want: 70},
		{name: "max zero vira 100", score: 55, maxScore: 0, want: 55},
		{name: "max negativo vira 100", score: 55, maxScore: -1, want: 55},
		{name: "clamp acima", score: 120, maxScore: 100, want: 100},
		{name: "clamp abaixo", score: -5, maxScore: 100, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.score, tt.maxScore); got != tt.want {
				t.Errorf("Normalize(%v, %v) = %v, want %v", tt.score, tt.maxScore, got, tt.want)
			}
		})
	}
}

func TestComputeSubjectAverages(t *testing.T) {
	grades := []GradeRecord{
		{Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a1", Score: 50},
		{Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a2", Score: 70},
		{Subject: "MATEMÁTICA", Period: "2º BIMESTRE", MaxScore: 100, StudentID: "a1", Score: 80},
		{Subject: "PORTUGUÊS", Period: "1º BIMESTRE", MaxScore: 10, StudentID: "a1", Score: 8},
	}
	periods := []string{"1º BIMESTRE", "2º BIMESTRE", "3º BIMESTRE", "4º BIMESTRE"}

	got := ComputeSubjectAverages(grades, []string{"MATEMÁTICA", "PORTUGUÊS", "HISTÓRIA"}, periods)

	mat := got["MATEMÁTICA"]
	if mat.PerPeriod["1º BIMESTRE"] != 60 {
		t.Errorf("média MAT 1º bim = %v, want 60", mat.PerPeriod["1º BIMESTRE"])
	}
	if mat.PerPeriod["2º BIMESTRE"] != 80 {
		t.Errorf("média MAT 2º bim = %v, want 80", mat.PerPeriod["2º BIMESTRE"])
	}
	// bimestres sem nota valem 0, nunca NaN/ausente
	if v, ok := mat.PerPeriod["3º BIMESTRE"]; !ok || v != 0 {
		t.Errorf("média MAT 3º bim = %v (ok=%v), want 0 presente", v, ok)
	}
	// média das médias: (60+80+0+0)/4 = 35 — zeros das janelas vazias contam
	if mat.Overall != 35 {
		t.Errorf("média geral MAT = %v, want 35", mat.Overall)
	}

	// nota em escala 0-10 é normalizada antes de agregar
	if pt := got["PORTUGUÊS"]; pt.PerPeriod["1º BIMESTRE"] != 80 {
		t.Errorf("média PT 1º bim = %v, want 80", pt.PerPeriod["1º BIMESTRE"])
	}

	// disciplina sem nenhuma nota: todos os bimestres 0 e média geral 0
	hist := got["HISTÓRIA"]
	for _, p := range periods {
		if hist.PerPeriod[p] != 0 {
			t.Errorf("média HIST %s = %v, want 0", p, hist.PerPeriod[p])
		}
	}
	if hist.Overall != 0 || math.IsNaN(hist.Overall) {
		t.Errorf("média geral HIST = %v, want 0", hist.Overall)
	}
}

func TestComputeSubjectAveragesJanelaParcial(t *testing.T) {
	grades := []GradeRecord{
		{Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, Score: 80},
		{Subject: "MATEMÁTICA", Period: "2º BIMESTRE", MaxScore: 100, Score: 60},
	}

	// janela só com os dois primeiros bimestres: zeros dos últimos não entram
	got := ComputeSubjectAverages(grades, []string{"MATEMÁTICA"}, []string{"1º BIMESTRE", "2º BIMESTRE"})
	if got["MATEMÁTICA"].Overall != 70 {
		t.Errorf("média na janela parcial = %v, want 70", got["MATEMÁTICA"].Overall)
	}

	// mesma nota, janela cheia: os zeros de 3º/4º puxam para (80+60)/4 = 35
	full := ComputeSubjectAverages(grades, []string{"MATEMÁTICA"},
		[]string{"1º BIMESTRE", "2º BIMESTRE", "3º BIMESTRE", "4º BIMESTRE"})
	if full["MATEMÁTICA"].Overall != 35 {
		t.Errorf("média na janela cheia = %v, want 35", full["MATEMÁTICA"].Overall)
	}
}

func TestClassifyPass(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want PassStatus
	}{
		{name: "exatamente no corte", avg: 60, want: StatusApto},
		{name: "logo abaixo do corte", avg: 59.9, want: StatusRecuperacao},
		{name: "aprovado", avg: 70, want: StatusApto},
		{name: "recuperação", avg: 50, want: StatusRecuperacao},
		{name: "zero", avg: 0, want: StatusRecuperacao},
		{name: "nota máxima", avg: 100, want: StatusApto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPass(tt.avg); got != tt.want {
				t.Errorf("ClassifyPass(%v) = %v, want %v", tt.avg, got, tt.want)
			}
		})
	}
}

func TestComputeAttendancePercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    int
	}{
		{name: "sem registros vale 100", present: 0, total: 0, want: 100},
		{name: "tudo presente", present: 20, total: 20, want: 100},
		{name: "tudo ausente", present: 0, total: 20, want: 0},
		{name: "18 de 20", present: 18, total: 20, want: 90},
		{name: "15 de 20", present: 15, total: 20, want: 75},
		{name: "um terço", present: 1, total: 3, want: 33},
		{name: "dois terços", present: 2, total: 3, want: 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeAttendancePercentage(tt.present, tt.total); got != tt.want {
				t.Errorf("ComputeAttendancePercentage(%d, %d) = %d, want %d", tt.present, tt.total, got, tt.want)
			}
		})
	}
}

func TestComputeAttendancePercentageMonotonico(t *testing.T) {
	prev := -1
	for present := 0; present <= 40; present++ {
		got := ComputeAttendancePercentage(present, 40)
		if got < prev {
			t.Fatalf("percentual regrediu: presente=%d deu %d, anterior era %d", present, got, prev)
		}
		prev = got
	}
}

func TestClassifyProficiencyLevel(t *testing.T) {
	// tabela exata: <40 MUITO_BAIXO, [40,60) BAIXO, [60,80) MÉDIO, >=80 ALTO
	tests := []struct {
		score float64
		want  ProficiencyLevel
	}{
		{score: 0, want: NivelMuitoBaixo},
		{score: 39, want: NivelMuitoBaixo},
		{score: 40, want: NivelBaixo},
		{score: 59, want: NivelBaixo},
		{score: 60, want: NivelMedio},
		{score: 79, want: NivelMedio},
		{score: 80, want: NivelAlto},
		{score: 100, want: NivelAlto},
	}
	for _, tt := range tests {
		if got := ClassifyProficiencyLevel(tt.score); got != tt.want {
			t.Errorf("ClassifyProficiencyLevel(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestSummarizeAttendance(t *testing.T) {
	marks := []AttendanceRecord{
		{StudentID: "a1", StudentName: "Ana", ClassroomName: "6º ANO A", IsPresent: true},
		{StudentID: "a2", StudentName: "Bruno", ClassroomName: "6º ANO A", IsPresent: false},
		{StudentID: "a1", StudentName: "Ana", ClassroomName: "6º ANO A", IsPresent: true},
		{StudentID: "a1", StudentName: "Ana", ClassroomName: "6º ANO A", IsPresent: false},
	}

	got := SummarizeAttendance(marks)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// ordem de chegada preservada
	if got[0].StudentID != "a1" || got[1].StudentID != "a2" {
		t.Errorf("ordem = [%s, %s], want [a1, a2]", got[0].StudentID, got[1].StudentID)
	}
	if got[0].Present != 2 || got[0].Total != 3 || got[0].Percentage != 67 {
		t.Errorf("a1 = %+v, want presente=2 total=3 pct=67", got[0])
	}
	if got[1].Percentage != 0 {
		t.Errorf("a2 pct = %d, want 0", got[1].Percentage)
	}
}

func TestRankClassroomsByRisk(t *testing.T) {
	grades := []GradeRecord{
		// 6º ANO A: duas notas abaixo do corte
		{ClassroomName: "6º ANO A", Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a1", Score: 50},
		{ClassroomName: "6º ANO A", Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a2", Score: 55},
		// 7º ANO B: uma nota abaixo (escala 0-10, 5.0 → 50)
		{ClassroomName: "7º ANO B", Subject: "PORTUGUÊS", Period: "1º BIMESTRE", MaxScore: 10, StudentID: "b1", Score: 5},
		// nota no corte exato NÃO conta como risco
		{ClassroomName: "7º ANO B", Subject: "PORTUGUÊS", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "b2", Score: 60},
		// sem turma: ignorada
		{ClassroomName: "", Subject: "HISTÓRIA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "x1", Score: 10},
	}

	marks := make([]AttendanceRecord, 0, 41)
	// b1: 15 de 20 → 75% → risco; a turma soma exatamente 1 por esse aluno
	for i := 0; i < 20; i++ {
		marks = append(marks, AttendanceRecord{
			StudentID: "b1", StudentName: "Beto", ClassroomName: "7º ANO B", IsPresent: i < 15,
		})
	}
	// a1: 18 de 20 → 90% → fora do risco
	for i := 0; i < 20; i++ {
		marks = append(marks, AttendanceRecord{
			StudentID: "a1", StudentName: "Ana", ClassroomName: "6º ANO A", IsPresent: i < 18,
		})
	}
	// aluno sem turma no feed: excluído do ranking
	marks = append(marks, AttendanceRecord{StudentID: "z1", StudentName: "Zeca", ClassroomName: "", IsPresent: false})

	got := RankClassroomsByRisk(grades, marks)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%+v)", len(got), got)
	}

	// 6º A: 2 notas; 7º B: 1 nota + 1 frequência = 2 → empate fica na
	// ordem de chegada do feed (6º A apareceu primeiro)
	if got[0].ClassroomName != "6º ANO A" || got[0].RiskScore != 2 {
		t.Errorf("primeiro = %+v, want 6º ANO A com score 2", got[0])
	}
	if got[1].ClassroomName != "7º ANO B" || got[1].GradeRiskCount != 1 || got[1].AttendanceRiskCount != 1 {
		t.Errorf("segundo = %+v, want 7º ANO B com 1+1", got[1])
	}

	// idempotência: mesma entrada, mesma saída
	again := RankClassroomsByRisk(grades, marks)
	if !reflect.DeepEqual(got, again) {
		t.Errorf("ranking não é determinístico:\n%+v\n%+v", got, again)
	}
}

func TestRankClassroomsByRiskOrdenaPorScore(t *testing.T) {
	grades := []GradeRecord{
		{ClassroomName: "TURMA X", MaxScore: 100, Score: 10},
		{ClassroomName: "TURMA Y", MaxScore: 100, Score: 10},
		{ClassroomName: "TURMA Y", MaxScore: 100, Score: 20},
		{ClassroomName: "TURMA Y", MaxScore: 100, Score: 30},
	}

	got := RankClassroomsByRisk(grades, nil)
	if got[0].ClassroomName != "TURMA Y" || got[1].ClassroomName != "TURMA X" {
		t.Errorf("ordem = %+v, want TURMA Y antes de TURMA X", got)
	}
}

// Classificação por aluno usa a nota do próprio aluno, não a média da
// turma: na turma com notas 50 e 70 (média 60), um aluno é APTO e o outro
// fica de recuperação.
func TestClassificacaoPorAlunoNaoPorTurma(t *testing.T) {
	grades := []GradeRecord{
		{ClassroomName: "6º ANO A", Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a1", Score: 50},
		{ClassroomName: "6º ANO A", Subject: "MATEMÁTICA", Period: "1º BIMESTRE", MaxScore: 100, StudentID: "a2", Score: 70},
	}
	window := []string{"1º BIMESTRE"}

	class := ComputeSubjectAverages(grades, []string{"MATEMÁTICA"}, window)
	if class["MATEMÁTICA"].PerPeriod["1º BIMESTRE"] != 60 {
		t.Fatalf("média da turma = %v, want 60", class["MATEMÁTICA"].PerPeriod["1º BIMESTRE"])
	}

	only := func(id string) []GradeRecord {
		out := []GradeRecord{}
		for _, g := range grades {
			if g.StudentID == id {
				out = append(out, g)
			}
		}
		return out
	}

	a1 := ComputeSubjectAverages(only("a1"), []string{"MATEMÁTICA"}, window)
	a2 := ComputeSubjectAverages(only("a2"), []string{"MATEMÁTICA"}, window)

	if got := ClassifyPass(a1["MATEMÁTICA"].Overall); got != StatusRecuperacao {
		t.Errorf("a1 (5,0) = %v, want RECUPERACAO", got)
	}
	if got := ClassifyPass(a2["MATEMÁTICA"].Overall); got != StatusApto {
		t.Errorf("a2 (7,0) = %v, want APTO", got)
	}
	// a média da turma (6,0) também seria APTO — o teste garante que a
	// classificação individual usa o operando certo
	if got := ClassifyPass(class["MATEMÁTICA"].Overall); got != StatusApto {
		t.Errorf("média da turma = %v, want APTO", got)
	}
}
