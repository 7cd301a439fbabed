package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateJSON(text string) string {
	// corpo mínimo de um generateContent bem-sucedido
	b, _ := sonic.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var slept []time.Duration
	cli := NewGeminiClient("test-key")
	cli.BaseURL = srv.URL
	cli.HTTP = srv.Client()
	cli.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return cli, &slept
}

func TestGenerate_OK(t *testing.T) {
	cli, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(candidateJSON("olá")))
	})

	got, err := cli.Generate(context.Background(), "oi", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "olá", got)
	assert.Empty(t, *slept)
}

func TestGenerate_RetriesOn429ThenSucceeds(t *testing.T) {
	calls := 0
	cli, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(candidateJSON("depois da espera")))
	})

	got, err := cli.Generate(context.Background(), "oi", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "depois da espera", got)
	assert.Equal(t, 3, calls)
	// backoff dobra: 2s, depois 4s
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestGenerate_GivesUpAfterThree429(t *testing.T) {
	calls := 0
	cli, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := cli.Generate(context.Background(), "oi", nil, "")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, *slept, 2)
}

func TestGenerate_NonRetryableStatusFailsFast(t *testing.T) {
	calls := 0
	cli, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad"}`))
	})

	_, err := cli.Generate(context.Background(), "oi", nil, "")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	cli, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	got, err := cli.Generate(context.Background(), "oi", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"sem cerca", `{"a":1}`, `{"a":1}`},
		{"cerca json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"cerca simples", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"espaços em volta", "  {\"a\":1}  ", `{"a":1}`},
		{"vazio", "```json\n```", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripJSONFences(tt.in))
		})
	}
}

func TestGenerateJSON_UnparseableBecomesZero(t *testing.T) {
	cli, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateJSON("isto não é json")))
	})

	out := ExtractedDocument{Name: "pré-existente"}
	err := GenerateJSON(context.Background(), cli, "extraia", nil, "", &out)
	require.NoError(t, err)
	assert.Equal(t, ExtractedDocument{}, out)
}

func TestGenerateJSON_ParsesFencedPayload(t *testing.T) {
	cli, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateJSON("```json\n{\"name\":\"Maria Silva\",\"cpf\":\"123.456.789-00\"}\n```")))
	})

	var out ExtractedDocument
	err := GenerateJSON(context.Background(), cli, "extraia", nil, "", &out)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", out.Name)
	assert.Equal(t, "123.456.789-00", out.CPF)
}
