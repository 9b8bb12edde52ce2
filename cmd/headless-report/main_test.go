package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/skirmish/internal/game"
)

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "economy", Key: "spend", Value: "50 → 150"},
		{Tick: 7, Category: "task", Key: "spawn", Value: "worker-aaaa"},
		{Tick: 9, Category: "task", Key: "spawn", Value: "goblin-bbbb"},
	}
	if got := firstTick(entries, "task", "spawn", ""); got != 7 {
		t.Fatalf("first spawn = %d, want 7", got)
	}
	if got := firstTick(entries, "task", "spawn", "goblin"); got != 9 {
		t.Fatalf("first goblin spawn = %d, want 9", got)
	}
	if got := firstTick(entries, "combat", "kill", ""); got != -1 {
		t.Fatalf("missing event = %d, want -1", got)
	}
}

func TestDetectStagnation_TrueWhenNothingHappens(t *testing.T) {
	rs := runStats{rulesFired: map[string]int{"wander": 3}, failedCommands: 3}
	stagnant, reason := detectStagnation(rs)
	if !stagnant {
		t.Fatalf("expected stagnant=true (reason=%s)", reason)
	}
	if !strings.Contains(reason, "all_commands_failed") {
		t.Fatalf("expected reason to mention all_commands_failed, got: %s", reason)
	}
}

func TestDetectStagnation_FalseWhenTraining(t *testing.T) {
	rs := runStats{spawns: 2, deposits: 1, rulesFired: map[string]int{"build-worker": 2}}
	stagnant, reason := detectStagnation(rs)
	if stagnant || reason != "economy_active" {
		t.Fatalf("expected active economy, got stagnant=%v reason=%s", stagnant, reason)
	}
}

func TestJoinCountsSorted(t *testing.T) {
	got := joinCounts(map[string]int{"wander": 2, "build-worker": 1})
	if got != "build-worker=1 wander=2" {
		t.Fatalf("joinCounts = %q", got)
	}
	if joinCounts(nil) != "none" {
		t.Fatal("empty counts should print none")
	}
}

func TestRunCPUSkirmish_Deterministic(t *testing.T) {
	a, err := runCPUSkirmish(1, 5, 600, 0.2, 0.05)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := runCPUSkirmish(1, 5, 600, 0.2, 0.05)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.stateChanges != b.stateChanges || a.spends != b.spends || a.firstSpawnTick != b.firstSpawnTick {
		t.Fatalf("same seed gave different runs: %+v vs %+v", a, b)
	}
	if a.window == nil || a.window.SampleCount != 11 {
		t.Fatalf("expected 11 report samples over 600 ticks, got %+v", a.window)
	}
	if a.window.Format() != b.window.Format() {
		t.Fatalf("same seed gave different window reports:\n%s\nvs\n%s", a.window.Format(), b.window.Format())
	}
	if len(a.finals) != 2 {
		t.Fatalf("expected two players in the report, got %d", len(a.finals))
	}
	for _, f := range a.finals {
		if f.resources < 0 {
			t.Fatalf("%s finished with negative resources", f.name)
		}
	}
}
