package game

import (
	"strings"
	"testing"
)

func TestSimLog_FiltersAndCounts(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "worker-aaaa", "red", "state", "change", "idle → moving", 0)
	sl.Add(2, "shade-bbbb", "blue", "combat", "damage", "worker hit for 6", 6)
	sl.Add(3, "shade-bbbb", "blue", "combat", "kill", "worker", 0)
	sl.AddVerbose(3, "worker-aaaa", "red", "move", "position", "(1,1)", 0)

	if n := len(sl.Entries()); n != 3 {
		t.Fatalf("entries = %d, want 3 (verbose off)", n)
	}
	if n := sl.CountCategory("combat", ""); n != 2 {
		t.Fatalf("combat entries = %d, want 2", n)
	}
	if n := len(sl.FilterEntity("shade-bbbb")); n != 2 {
		t.Fatalf("shade entries = %d, want 2", n)
	}
	if n := len(sl.FilterPlayer("red")); n != 1 {
		t.Fatalf("red entries = %d, want 1", n)
	}
	if n := len(sl.FilterTickRange(2, 3)); n != 2 {
		t.Fatalf("ticks 2..3 = %d, want 2", n)
	}
	if e, ok := sl.LastOf("combat", "damage"); !ok || e.NumVal != 6 {
		t.Fatalf("LastOf damage = %+v ok=%v", e, ok)
	}
	if !sl.HasEntry("state", "change", "moving") {
		t.Fatal("HasEntry missed a substring match")
	}
	if !strings.Contains(sl.Format(), "[T=002] shade-bbbb") {
		t.Fatalf("unexpected format:\n%s", sl.Format())
	}
}

func TestSimLog_VerboseRecords(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(1, "worker-aaaa", "red", "move", "position", "(1,1)", 0)
	if len(sl.Entries()) != 1 {
		t.Fatal("verbose log should keep verbose entries")
	}
}

func TestSimLog_Summary(t *testing.T) {
	ts := twoPlayerSim(
		WithBuilding(1, BuildingBase, 0, 0, true),
		WithUnit(1, UnitWorker, 400, 400),
	)
	out := ts.World.Log.Summary(ts.World.CurrentTick(), ts.World.Players())
	for _, want := range []string{"red: resources=200 units=1 buildings=1 (built 1)", "idle=1", "kills=0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
