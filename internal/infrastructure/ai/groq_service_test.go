package ai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/po-classifier/internal/application/dto"
	"github.com/jhoicas/po-classifier/internal/infrastructure/ai"
)

// fakeGroq levanta un servidor OpenAI-compatible que responde con status y body fijos
// y guarda el último request recibido.
func fakeGroq(t *testing.T, status int, body string) (*httptest.Server, *map[string]any, *http.Header) {
	t.Helper()
	var got map[string]any
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got, &headers
}

func chatRequest() dto.ChatRequest {
	return dto.ChatRequest{
		Model:       "openai/gpt-oss-120b",
		Temperature: 0,
		Messages: []dto.ChatMessage{
			{Role: dto.RoleSystem, Content: "system"},
			{Role: dto.RoleUser, Content: "PO Description:\npaper"},
		},
	}
}

func TestGroqService_DevuelvePrimeraOpcion(t *testing.T) {
	srv, got, headers := fakeGroq(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": "{\"L1\":\"Office\"}"}, "finish_reason": "stop"},
			{"index": 1, "message": {"role": "assistant", "content": "segunda"}, "finish_reason": "stop"}
		]
	}`)
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_test", BaseURL: srv.URL})

	out, err := svc.Complete(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"L1":"Office"}`, out)

	assert.Equal(t, "Bearer gsk_test", headers.Get("Authorization"))
	assert.Equal(t, "openai/gpt-oss-120b", (*got)["model"])

	temp, ok := (*got)["temperature"]
	require.True(t, ok, "temperature 0 debe enviarse explícitamente")
	assert.InDelta(t, 0, temp, 1e-6)

	msgs, ok := (*got)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

// go-openai omite temperature == 0; el adaptador envía el menor float32 positivo.
// Si una versión nueva del cliente cambia el JSON, este test lo detecta.
func TestGroqService_TemperaturaCeroEnElCable(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_test", BaseURL: srv.URL})

	_, err := svc.Complete(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"temperature":1e-45`)
}

func TestGroqService_EnviaTemperaturaIndicada(t *testing.T) {
	srv, got, _ := fakeGroq(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_test", BaseURL: srv.URL})

	req := chatRequest()
	req.Temperature = 0.5
	_, err := svc.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, (*got)["temperature"], 1e-6)
}

func TestGroqService_ErrorDeAPIConservaMensaje(t *testing.T) {
	srv, _, _ := fakeGroq(t, http.StatusUnauthorized,
		`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_bad", BaseURL: srv.URL})

	_, err := svc.Complete(context.Background(), chatRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Contains(t, err.Error(), "401")
}

func TestGroqService_SinOpcionesEsError(t *testing.T) {
	srv, _, _ := fakeGroq(t, http.StatusOK, `{"choices":[]}`)
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_test", BaseURL: srv.URL})

	_, err := svc.Complete(context.Background(), chatRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "respuesta vacía")
}

func TestGroqService_SinAPIKeyNoLlamaALaRed(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	svc := ai.NewGroqService(ai.GroqConfig{BaseURL: srv.URL})

	_, err := svc.Complete(context.Background(), chatRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
	assert.False(t, called)
}

func TestGroqService_ServidorCaidoEsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	svc := ai.NewGroqService(ai.GroqConfig{APIKey: "gsk_test", BaseURL: url})

	_, err := svc.Complete(context.Background(), chatRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI:")
}
