package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"memobot/internal/ai_model"
)

func newTestModel(serverURL string, timeout time.Duration) *AiModelDeepSeek {
	return NewAiModelDeepSeek("test-key", serverURL, "deepseek-chat", 0.7, 2000, timeout)
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotReq request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello!"}}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`))
	}))
	defer srv.Close()

	m := newTestModel(srv.URL, time.Second)
	reply, err := m.Generate(context.Background(), []ai_model.Message{
		{Role: ai_model.RoleSystem, Content: "be nice"},
		{Role: ai_model.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if reply != "hello!" {
		t.Fatalf("reply = %q, want %q", reply, "hello!")
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotReq.Model != "deepseek-chat" || gotReq.MaxTokens != 2000 || gotReq.Temperature != 0.7 {
		t.Fatalf("request = %+v, want fixed sampling parameters", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != ai_model.RoleSystem {
		t.Fatalf("messages = %+v, want preamble first", gotReq.Messages)
	}
}

func TestGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := newTestModel(srv.URL, time.Second)
	_, err := m.Generate(context.Background(), []ai_model.Message{{Role: ai_model.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("Generate error = nil, want status error")
	}
	if errors.Is(err, ai_model.ErrTimeout) {
		t.Fatalf("Generate error = %v, must not be a timeout", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	m := newTestModel(srv.URL, time.Second)
	if _, err := m.Generate(context.Background(), []ai_model.Message{{Role: ai_model.RoleUser, Content: "hi"}}); err == nil {
		t.Fatal("Generate error = nil, want empty-choices error")
	}
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	m := newTestModel(srv.URL, 50*time.Millisecond)
	_, err := m.Generate(context.Background(), []ai_model.Message{{Role: ai_model.RoleUser, Content: "hi"}})
	if !errors.Is(err, ai_model.ErrTimeout) {
		t.Fatalf("Generate error = %v, want ErrTimeout", err)
	}
}

func TestGenerateContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	m := newTestModel(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.Generate(ctx, []ai_model.Message{{Role: ai_model.RoleUser, Content: "hi"}})
	if !errors.Is(err, ai_model.ErrTimeout) {
		t.Fatalf("Generate error = %v, want ErrTimeout", err)
	}
}
