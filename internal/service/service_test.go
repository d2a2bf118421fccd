// FILE: internal/service/service_test.go
package service

import (
	"strings"
	"testing"

	"llmchess/internal/core"
	"llmchess/internal/orchestrator"
)

func scriptConfig(moves ...string) core.AgentConfig {
	return core.AgentConfig{Kind: "script", Script: moves}
}

func newTestService() *Service {
	return New(nil, orchestrator.DefaultConfig(), nil)
}

func TestCreateAndGetMatch(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	id, err := svc.CreateMatch(core.CreateMatchRequest{
		White: scriptConfig("e4"),
		Black: scriptConfig("e5"),
	})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateMatch() returned an empty id")
	}

	o, err := svc.GetMatch(id)
	if err != nil {
		t.Fatalf("GetMatch() failed: %v", err)
	}

	resp := o.Response()
	if resp.MatchID != id {
		t.Errorf("MatchID = %q, want %q", resp.MatchID, id)
	}
	if resp.Status != "idle" {
		t.Errorf("status = %q, want idle before start", resp.Status)
	}
	if resp.Turn != "w" {
		t.Errorf("turn = %q, want w", resp.Turn)
	}
}

func TestCreateMatchFromCustomPosition(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	id, err := svc.CreateMatch(core.CreateMatchRequest{
		White: scriptConfig("O-O"),
		Black: scriptConfig("Kd7"),
		FEN:   fen,
	})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}

	o, _ := svc.GetMatch(id)
	if got := o.Response().FEN; got != fen {
		t.Errorf("FEN = %q, want %q", got, fen)
	}
}

func TestCreateMatchRejectsBadInput(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	tests := []struct {
		name string
		req  core.CreateMatchRequest
	}{
		{
			"bad fen",
			core.CreateMatchRequest{
				White: scriptConfig("e4"),
				Black: scriptConfig("e5"),
				FEN:   "not a position",
			},
		},
		{
			"unknown agent kind",
			core.CreateMatchRequest{
				White: core.AgentConfig{Kind: "telnet"},
				Black: scriptConfig("e5"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateMatch(tt.req); err == nil {
				t.Error("CreateMatch() succeeded, want error")
			}
		})
	}

	if got := len(svc.ListMatches()); got != 0 {
		t.Errorf("rejected requests left %d matches registered", got)
	}
}

func TestListMatches(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	want := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id, err := svc.CreateMatch(core.CreateMatchRequest{
			White: scriptConfig("e4"),
			Black: scriptConfig("e5"),
		})
		if err != nil {
			t.Fatalf("CreateMatch() failed: %v", err)
		}
		want[id] = true
	}

	listed := svc.ListMatches()
	if len(listed) != 3 {
		t.Fatalf("ListMatches() returned %d matches, want 3", len(listed))
	}
	for _, resp := range listed {
		if !want[resp.MatchID] {
			t.Errorf("ListMatches() returned unknown id %q", resp.MatchID)
		}
	}
}

func TestDeleteMatch(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	id, err := svc.CreateMatch(core.CreateMatchRequest{
		White: scriptConfig("e4"),
		Black: scriptConfig("e5"),
	})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}

	if err := svc.DeleteMatch(id); err != nil {
		t.Fatalf("DeleteMatch() failed: %v", err)
	}
	if _, err := svc.GetMatch(id); err == nil {
		t.Error("GetMatch() found a deleted match")
	}
	if err := svc.DeleteMatch(id); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("second DeleteMatch() = %v, want not-found error", err)
	}
}

func TestConfigOverrides(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	// The knobs only narrow behavior that is observable through play, so
	// here we only assert that the request is accepted with every override
	// set and that match creation does not conflate the two matches' ids.
	first, err := svc.CreateMatch(core.CreateMatchRequest{
		White:              scriptConfig("e4"),
		Black:              scriptConfig("e5"),
		TurnDelayMs:        50,
		HallucinationLimit: 1,
		DisableAutoPromote: true,
	})
	if err != nil {
		t.Fatalf("CreateMatch() with overrides failed: %v", err)
	}
	second, err := svc.CreateMatch(core.CreateMatchRequest{
		White: scriptConfig("e4"),
		Black: scriptConfig("e5"),
	})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}
	if first == second {
		t.Error("two matches share an id")
	}
}

func TestStorageHealthDisabledWithoutStore(t *testing.T) {
	svc := newTestService()
	defer svc.Close()

	if got := svc.GetStorageHealth(); got != "disabled" {
		t.Errorf("GetStorageHealth() = %q, want disabled", got)
	}

	// Recorder calls are no-ops without a store; they must not panic.
	svc.RecordMove("m", core.MoveEntry{Number: 1, Side: "w", Move: "e4"})
	svc.RecordHallucination("m", core.ColorWhite, 1, "reason", "raw")
	svc.RecordResult("m", core.MatchResult{Outcome: core.OutcomeDraw, Reason: core.ReasonStalemate})
}
