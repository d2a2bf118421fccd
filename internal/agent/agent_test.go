// FILE: internal/agent/agent_test.go
package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"llmchess/internal/core"
)

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New(core.AgentConfig{Kind: "carrier-pigeon"}, core.ColorWhite); err == nil {
		t.Error("New() accepted an unknown agent kind")
	}
}

func TestNewRegistryHasBothSides(t *testing.T) {
	cfg := core.AgentConfig{Kind: "script", Script: []string{"e4"}}
	reg, err := NewRegistry(cfg, cfg)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	if reg[core.ColorWhite] == nil || reg[core.ColorBlack] == nil {
		t.Fatal("registry is missing a side")
	}
	if reg[core.ColorWhite].ID() == reg[core.ColorBlack].ID() {
		t.Error("both sides share an agent id")
	}
}

func TestScriptReplaysMovesInOrder(t *testing.T) {
	s, err := NewScript(core.AgentConfig{
		Kind:   "script",
		Script: []string{"e4", "Nf3", "O-O"},
	}, core.ColorWhite)
	if err != nil {
		t.Fatalf("NewScript() failed: %v", err)
	}

	ctx := context.Background()
	for _, want := range []string{"MOVE: e4", "MOVE: Nf3", "MOVE: O-O"} {
		got, err := s.RequestMove(ctx, "ignored")
		if err != nil {
			t.Fatalf("RequestMove() failed: %v", err)
		}
		if got != want {
			t.Errorf("RequestMove() = %q, want %q", got, want)
		}
	}

	if _, err := s.RequestMove(ctx, "ignored"); err == nil {
		t.Error("RequestMove() past the end succeeded, want exhaustion error")
	}
}

func TestScriptRequiresMoves(t *testing.T) {
	if _, err := NewScript(core.AgentConfig{Kind: "script"}, core.ColorWhite); err == nil {
		t.Error("NewScript() accepted an empty move list")
	}
}

func TestScriptHonorsCanceledContext(t *testing.T) {
	s, err := NewScript(core.AgentConfig{Kind: "script", Script: []string{"e4"}}, core.ColorWhite)
	if err != nil {
		t.Fatalf("NewScript() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.RequestMove(ctx, "ignored"); err != context.Canceled {
		t.Errorf("RequestMove() = %v, want context.Canceled", err)
	}
}

func TestScriptNaming(t *testing.T) {
	s, _ := NewScript(core.AgentConfig{Kind: "script", Script: []string{"e4"}}, core.ColorBlack)
	if got := s.Name(); got != "script (black)" {
		t.Errorf("default name = %q, want script (black)", got)
	}

	s, _ = NewScript(core.AgentConfig{Kind: "script", Script: []string{"e4"}, Nickname: "kasparov"}, core.ColorBlack)
	if got := s.Name(); got != "kasparov" {
		t.Errorf("name = %q, want the nickname", got)
	}
}

func openAITestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OpenAI) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewOpenAI(core.AgentConfig{
		Kind:    "openai",
		Model:   "gpt-test",
		BaseURL: srv.URL,
		APIKey:  "sk-test",
	}, core.ColorWhite)
	if err != nil {
		t.Fatalf("NewOpenAI() failed: %v", err)
	}
	return srv, a
}

func TestOpenAIRequestMove(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest

	_, a := openAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "MOVE: e4\nA classic."}},
			},
		})
	})

	content, err := a.RequestMove(context.Background(), "your move")
	if err != nil {
		t.Fatalf("RequestMove() failed: %v", err)
	}
	if content != "MOVE: e4\nA classic." {
		t.Errorf("content = %q", content)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-test" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "your move" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestOpenAIAPIError(t *testing.T) {
	_, a := openAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	})

	_, err := a.RequestMove(context.Background(), "your move")
	if err == nil {
		t.Fatal("RequestMove() succeeded against an error response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %v, want status and message surfaced", err)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	_, a := openAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	if _, err := a.RequestMove(context.Background(), "your move"); err == nil {
		t.Error("RequestMove() succeeded with no choices")
	}
}

func TestOpenAICancellationIsContextError(t *testing.T) {
	block := make(chan struct{})
	_, a := openAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	_, err := a.RequestMove(ctx, "your move")
	if err == nil {
		t.Fatal("RequestMove() succeeded despite cancellation")
	}
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled unchanged", err)
	}
}

func TestOpenAIRequiresModel(t *testing.T) {
	if _, err := NewOpenAI(core.AgentConfig{Kind: "openai"}, core.ColorWhite); err == nil {
		t.Error("NewOpenAI() accepted an empty model")
	}
}
