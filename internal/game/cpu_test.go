package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func cpuSim(t *testing.T, pc PolicyConfig, opts ...SimOption) *TestSim {
	t.Helper()
	ctrl, err := NewCPUController(pc, rand.New(rand.NewSource(3))) // #nosec G404 -- test
	if err != nil {
		t.Fatalf("NewCPUController: %v", err)
	}
	base := []SimOption{WithPlayer("cpu", ctrl), WithPlayer("idle", nil)}
	return NewTestSim(append(base, opts...)...)
}

func TestCPU_DefaultRulesCompileInPriorityOrder(t *testing.T) {
	ctrl, err := NewCPUController(DefaultPolicyConfig(), nil)
	if err != nil {
		t.Fatalf("NewCPUController: %v", err)
	}
	rules := ctrl.Rules()
	if len(rules) != 2 || rules[0].Name != "build-worker" || rules[1].Name != "wander" {
		t.Fatalf("unexpected rule order: %v", ruleNames(rules))
	}
}

func TestCPU_BadConditionRejected(t *testing.T) {
	pc := DefaultPolicyConfig()
	pc.Rules = []*PolicyRule{{Name: "broken", ConditionSrc: `NoSuchThing() > 1`, Action: ActionWander}}
	if _, err := NewCPUController(pc, nil); err == nil {
		t.Fatal("expected a compile error for an unknown function")
	}
	pc.Rules = []*PolicyRule{{Name: "not-bool", ConditionSrc: `Resources()`, Action: ActionWander}}
	if _, err := NewCPUController(pc, nil); err == nil {
		t.Fatal("expected a compile error for a non-boolean condition")
	}
	pc.Rules = []*PolicyRule{{Name: "no-action", ConditionSrc: `true`}}
	if _, err := NewCPUController(pc, nil); err == nil {
		t.Fatal("expected an error for a rule without an action")
	}
}

func TestCPU_WanderMovesUnitInsideRegion(t *testing.T) {
	pc := DefaultPolicyConfig()
	pc.MoveRate = 1
	pc.WorkerBuildRate = 0
	pc.MoveRegion = Rect{X: 800, Y: 80, W: 400, H: 400}
	ts := cpuSim(t, pc, WithUnit(1, UnitShade, 100, 100))
	u := ts.UnitsOf(1)[0]
	ts.RunTicks(1)
	if u.State() != UnitMoving {
		t.Fatalf("state = %s, want moving", u.State())
	}
	path := u.Path()
	dest := path[len(path)-1]
	if !PointInRect(pc.MoveRegion, dest) {
		t.Fatalf("destination %v outside the move region", dest)
	}
	if !ts.World.Log.HasEntry("ai", "rule_fired", "wander") {
		t.Fatal("expected an ai/rule_fired entry")
	}
}

func TestCPU_BuildWorkerUntilBroke(t *testing.T) {
	pc := DefaultPolicyConfig()
	pc.MoveRate = 0
	pc.WorkerBuildRate = 1
	ts := cpuSim(t, pc, WithBuilding(1, BuildingBase, 0, 0, true))
	p := ts.Player(1)
	ts.RunTicks(6)
	if p.Resources != 0 {
		t.Fatalf("resources = %d, want 0 after four workers", p.Resources)
	}
	if n := len(p.PrimaryBase().Tasks()); n != 4 {
		t.Fatalf("queued %d workers, want 4", n)
	}
	if ts.World.Log.CountCategory("ai", "command_failed") != 2 {
		t.Fatalf("expected two failed attempts\n%s", ts.World.Log.Format())
	}
}

func TestCPU_FailuresNeverAbortTick(t *testing.T) {
	pc := DefaultPolicyConfig()
	pc.MoveRate = 1
	pc.WorkerBuildRate = 1
	// Region entirely on rock: every wander fails.
	pc.MoveRegion = Rect{X: 0, Y: 720, W: 80, H: 79}
	ts := cpuSim(t, pc,
		WithRock(0, 9),
		WithUnit(1, UnitShade, 400, 100),
	)
	ts.RunTicks(20)
	if ts.World.CurrentTick() != 20 {
		t.Fatal("ticks did not advance")
	}
	if ts.World.Log.CountCategory("ai", "command_failed") < 20 {
		t.Fatalf("expected every tick to log failures\n%s", ts.World.Log.Format())
	}
	if ts.Player(1).Resources < 0 {
		t.Fatal("resources went negative")
	}
}

func TestCPU_ExclusiveCategory(t *testing.T) {
	var fired []string
	record := func(name string) PolicyActionFunc {
		return func(PolicyEnv) error {
			fired = append(fired, name)
			return nil
		}
	}
	pc := DefaultPolicyConfig()
	pc.Rules = []*PolicyRule{
		{Name: "low", Priority: 1, Category: "x", Exclusive: true, ConditionSrc: `true`, Action: record("low")},
		{Name: "high", Priority: 9, Category: "x", Exclusive: true, ConditionSrc: `Tick > 0`, Action: record("high")},
		{Name: "other", Priority: 5, Category: "y", ConditionSrc: `Resources() >= 200 && IdleCount() == 1`, Action: record("other")},
	}
	ts := cpuSim(t, pc, WithUnit(1, UnitWorker, 100, 100))
	ts.RunTicks(1)
	if got := strings.Join(fired, ","); got != "high,other" {
		t.Fatalf("fired %q, want high,other", got)
	}
}

func TestCPU_CanAffordHelper(t *testing.T) {
	pc := DefaultPolicyConfig()
	var seen []bool
	pc.Rules = []*PolicyRule{{
		Name: "probe", ConditionSrc: `true`,
		Action: func(env PolicyEnv) error {
			seen = append(seen, env.CanAfford("build worker"))
			return errors.New("probe")
		},
	}}
	ts := cpuSim(t, pc,
		WithConfig(WithStartingResources(40)),
		WithBuilding(1, BuildingBase, 0, 0, true),
	)
	ts.RunTicks(1)
	if len(seen) != 1 || seen[0] {
		t.Fatalf("CanAfford with 40 resources = %v, want false", seen)
	}
}

func ruleNames(rules []*PolicyRule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}
