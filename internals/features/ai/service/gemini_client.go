package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	defaultModel   = "gemini-1.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	maxAttempts    = 3
	baseRetryDelay = 2 * time.Second
)

// GeminiClient fala com a API generateContent. O sleep é injetável para os
// testes não esperarem o backoff de verdade.
type GeminiClient struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
	Sleep   func(time.Duration)
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey:  apiKey,
		Model:   defaultModel,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		Sleep:   time.Sleep,
	}
}

/* ============================================
   Wire types (generateContent)
============================================ */

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

/* ============================================
   Core call
============================================ */

// Generate envia um prompt (e opcionalmente uma imagem) e devolve o texto do
// primeiro candidato. Resposta 429 é tentada de novo até 3 vezes, com espera
// dobrando a partir de 2s.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, image []byte, imageMime string) (string, error) {
	parts := []geminiPart{{Text: prompt}}
	if len(image) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: imageMime,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	body, err := sonic.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("montar requisição: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)

	delay := baseRetryDelay
	var lastStatus int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.HTTP.Do(req)
		if err != nil {
			return "", fmt.Errorf("chamar Gemini: %w", err)
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", err
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < maxAttempts {
				g.Sleep(delay)
				delay *= 2
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("Gemini respondeu %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}

		var parsed geminiResponse
		if err := sonic.Unmarshal(raw, &parsed); err != nil {
			return "", fmt.Errorf("decodificar resposta: %w", err)
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return "", nil
		}
		return parsed.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("Gemini respondeu %d após %d tentativas", lastStatus, maxAttempts)
}

// StripJSONFences remove a cerca de markdown que o modelo costuma devolver
// em volta de JSON (```json ... ```).
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// GenerateJSON chama o modelo e decodifica o texto (sem cercas) em dst.
// Resposta que não parse vira zero value, não erro: o chamador decide o que
// fazer com o vazio.
func GenerateJSON[T any](ctx context.Context, g *GeminiClient, prompt string, image []byte, imageMime string, dst *T) error {
	text, err := g.Generate(ctx, prompt, image, imageMime)
	if err != nil {
		return err
	}
	cleaned := StripJSONFences(text)
	if cleaned == "" {
		return nil
	}
	if err := sonic.Unmarshal([]byte(cleaned), dst); err != nil {
		var zero T
		*dst = zero
	}
	return nil
}
