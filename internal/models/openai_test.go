// internal/models/openai_test.go
package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIGenerate(t *testing.T) {
	var req openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&req)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Rebuttal.\n"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	c := NewOpenAI(server.URL+"/v1/", "sk-test", fastRetry())
	out, err := c.Generate(context.Background(), "gpt-4o-mini", []Message{{Role: RoleUser, Content: "hi"}}, 240)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Rebuttal." {
		t.Errorf("unexpected output %q", out)
	}
	if req.Model != "gpt-4o-mini" || req.MaxTokens != 240 {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	c := NewOpenAI("", "", fastRetry())
	if c.baseURL != DefaultOpenAIBaseURL {
		t.Errorf("expected default base URL, got %s", c.baseURL)
	}
	_, err := c.Generate(context.Background(), "m", nil, 0)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestOpenAINoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewOpenAI(server.URL, "k", fastRetry())
	if _, err := c.Generate(context.Background(), "m", nil, 0); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestOpenAIErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	c := NewOpenAI(server.URL, "k", fastRetry())
	_, err := c.Generate(context.Background(), "m", nil, 0)
	if err == nil || err.Error() != "chat completions: quota exceeded" {
		t.Errorf("unexpected error %v", err)
	}
}
