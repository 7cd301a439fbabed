package service

import (
	"context"
	"fmt"
	"strings"
)

/* ============================================
   Extração de documento (matrícula)
============================================ */

// ExtractedDocument são os campos que a secretaria precisa digitar na
// matrícula — a foto do documento preenche o formulário.
type ExtractedDocument struct {
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	CPF          string `json:"cpf"`
	GuardianName string `json:"guardian_name"`
}

const extractPrompt = `Você lê documentos escolares brasileiros (certidão de nascimento, RG, comprovantes de matrícula).
Extraia da imagem os campos abaixo e responda SOMENTE com JSON, sem comentários:
{"name": "", "birth_date": "AAAA-MM-DD", "cpf": "", "guardian_name": ""}
Campo ilegível ou ausente fica como string vazia.`

func (g *GeminiClient) ExtractDocument(ctx context.Context, image []byte, mime string) (ExtractedDocument, error) {
	var out ExtractedDocument
	err := GenerateJSON(ctx, g, extractPrompt, image, mime, &out)
	return out, err
}

/* ============================================
   Sugestão de grade horária
============================================ */

type SuggestedSlot struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
}

// SuggestSchedule pede uma grade semanal para a turma dadas as disciplinas e
// a carga horária de cada uma.
func (g *GeminiClient) SuggestSchedule(ctx context.Context, classroomName string, subjects map[string]int) ([]SuggestedSlot, error) {
	var sb strings.Builder
	for subject, hours := range subjects {
		fmt.Fprintf(&sb, "- %s: %d aulas por semana\n", subject, hours)
	}

	prompt := fmt.Sprintf(`Monte a grade semanal da turma %s. Dias: SEGUNDA a SEXTA, aulas de 50 minutos entre 07:00 e 12:00.
Disciplinas e carga semanal:
%s
Responda SOMENTE com um array JSON de objetos {"weekday": "", "start_time": "HH:MM", "end_time": "HH:MM", "subject": ""}.
Nunca coloque duas aulas no mesmo dia e horário.`, classroomName, sb.String())

	var out []SuggestedSlot
	err := GenerateJSON(ctx, g, prompt, nil, "", &out)
	return out, err
}

/* ============================================
   Rascunho de parecer pedagógico
============================================ */

// DraftReportComment escreve um parecer descritivo a partir dos números do
// boletim. Texto livre, sem JSON.
func (g *GeminiClient) DraftReportComment(ctx context.Context, studentName string, averages map[string]float64, attendancePct int) (string, error) {
	var sb strings.Builder
	for subject, avg := range averages {
		fmt.Fprintf(&sb, "- %s: média %.1f\n", subject, avg)
	}

	prompt := fmt.Sprintf(`Escreva um parecer pedagógico curto (até 4 frases), em português formal, sobre o aluno %s.
Médias por disciplina (escala 0-100, aprovação em 60):
%s
Frequência: %d%%.
Aponte pontos fortes e o que precisa de reforço. Não invente fatos além dos números.`, studentName, sb.String(), attendancePct)

	return g.Generate(ctx, prompt, nil, "")
}
