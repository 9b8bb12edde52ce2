package game

import "testing"

type countingSound struct{ plays map[string]int }

func (s *countingSound) Play(name string) { s.plays[name]++ }

func humanSim(opts ...SimOption) *TestSim {
	base := []SimOption{WithPlayer("human", HumanController{}), WithPlayer("cpu", nil)}
	return NewTestSim(append(base, opts...)...)
}

func TestHuman_DragPrefersUnits(t *testing.T) {
	ts := humanSim(
		WithBuilding(1, BuildingBarracks, 400, 400, true),
		WithUnit(1, UnitWorker, 380, 380),
		WithUnit(1, UnitGoblin, 600, 600),
	)
	p := ts.Player(1)
	ts.Step(Drag(350, 350, 650, 650))
	sel := p.Selected()
	if len(sel) != 2 {
		t.Fatalf("selected %d entities, want the 2 units", len(sel))
	}
	for _, r := range sel {
		if p.Unit(r.ID) == nil {
			t.Fatal("a building was selected alongside units")
		}
	}
}

func TestHuman_DragSelectsBuildingsWhenNoUnits(t *testing.T) {
	ts := humanSim(WithBuilding(1, BuildingBarracks, 400, 400, true))
	p := ts.Player(1)
	// Dragging up and to the left.
	ts.Step(Drag(500, 500, 450, 450))
	if len(p.Selected()) != 1 || p.Building(p.Selected()[0].ID) == nil {
		t.Fatalf("expected the barracks selected, got %v", p.Selected())
	}
}

func TestHuman_DragIgnoresEnemies(t *testing.T) {
	ts := humanSim(
		WithUnit(1, UnitWorker, 100, 100),
		WithUnit(2, UnitWorker, 120, 100),
	)
	p := ts.Player(1)
	ts.Step(Drag(50, 50, 200, 200))
	if len(p.Selected()) != 1 || p.Selected()[0].Player != p.ID {
		t.Fatalf("drag should only pick own entities, got %v", p.Selected())
	}
}

func TestHuman_EmptyDragKeepsSelection(t *testing.T) {
	ts := humanSim(WithUnit(1, UnitWorker, 100, 100))
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(Drag(900, 500, 1000, 600))
	if len(p.Selected()) != 1 {
		t.Fatal("an empty drag should not clear the selection")
	}
}

func TestHuman_ClickSelectsAtMostOne(t *testing.T) {
	ts := humanSim(
		WithUnit(1, UnitWorker, 100, 100),
		WithUnit(1, UnitGoblin, 110, 100),
		WithUnit(2, UnitShade, 700, 300),
	)
	p := ts.Player(1)
	ts.Step(Click(105, 100))
	if len(p.Selected()) != 1 {
		t.Fatalf("click selected %d entities, want 1", len(p.Selected()))
	}

	// Enemy units may be selected for inspection but never take orders.
	ts.Step(Click(700, 300))
	sel := p.Selected()
	if len(sel) != 1 || sel[0].Player != 2 {
		t.Fatalf("expected the enemy shade selected, got %v", sel)
	}
	enemy := ts.UnitsOf(2)[0]
	ts.Step(RightClick(900, 300))
	if enemy.State() != UnitIdle {
		t.Fatalf("enemy unit obeyed an order: %s", enemy.State())
	}
}

func TestHuman_RightClickPriorities(t *testing.T) {
	ts := humanSim(
		WithMine(Rect{X: 800, Y: 0, W: 80, H: 80}, 500),
		WithBuilding(1, BuildingBase, 0, 400, true),
		WithUnit(1, UnitWorker, 600, 100),
		WithUnit(1, UnitShade, 600, 200),
		WithUnit(2, UnitGoblin, 1000, 300),
	)
	p := ts.Player(1)
	us := p.Units()
	worker, shade := us[0], us[1]

	// Mine: the worker mines, the shade cannot and walks there instead.
	ts.Step(Drag(550, 50, 650, 250))
	ts.Step(RightClick(840, 40))
	if worker.State() != UnitMining {
		t.Fatalf("worker state = %s, want mining", worker.State())
	}
	if shade.State() != UnitMoving {
		t.Fatalf("shade state = %s, want moving", shade.State())
	}
	mf := p.MoveFeedback()
	if mf == nil || mf.At != (Point{X: 840, Y: 40}) {
		t.Fatalf("expected move feedback at the click, got %+v", mf)
	}

	// Enemy: both attack.
	ts.Step(RightClick(1000, 300))
	if worker.State() != UnitAttacking || shade.State() != UnitAttacking {
		t.Fatalf("states = %s/%s, want attacking", worker.State(), shade.State())
	}

	// Deposit: a loaded worker right-clicking its base heads home.
	worker.carrying = 5
	ts.Step(Click(600, 100))
	ts.Step(RightClick(100, 450))
	if worker.State() != UnitReturning {
		t.Fatalf("loaded worker state = %s, want returning", worker.State())
	}
}

func TestHuman_MoveFeedbackExpires(t *testing.T) {
	ts := humanSim(WithUnit(1, UnitWorker, 100, 100))
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(RightClick(1200, 100))
	if p.MoveFeedback() == nil {
		t.Fatal("expected move feedback after a move order")
	}
	ts.RunTicks(moveFeedbackTicks)
	if p.MoveFeedback() != nil {
		t.Fatal("move feedback should expire")
	}
}

func TestHuman_UnreachableMoveIsHarmless(t *testing.T) {
	ts := humanSim(
		WithRock(10, 1),
		WithUnit(1, UnitWorker, 100, 100),
	)
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(RightClick(840, 120))
	if u := p.Units()[0]; u.State() != UnitIdle {
		t.Fatalf("state = %s, want idle after an unreachable order", u.State())
	}
	if !ts.World.Log.HasEntry("command", "failed", "move") {
		t.Fatal("expected a command/failed entry")
	}
}

func TestHuman_HUDActionQueuesTask(t *testing.T) {
	ts := humanSim(WithBuilding(1, BuildingBase, 0, 0, true))
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(PressAction(0))
	base := p.PrimaryBase()
	if len(base.Tasks()) != 1 || p.Resources != 150 {
		t.Fatalf("tasks=%d resources=%d", len(base.Tasks()), p.Resources)
	}
	// Empty slot: nothing happens.
	ts.Step(PressAction(4))
	if len(base.Tasks()) != 1 {
		t.Fatal("an empty slot executed something")
	}
}

func TestHuman_PlacementFlow(t *testing.T) {
	sound := &countingSound{plays: map[string]int{}}
	ts := humanSim(
		WithConfig(WithStartingResources(500), WithSound(sound)),
		WithUnit(1, UnitWorker, 100, 100),
	)
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(PressAction(1)) // build barracks
	if !p.InPlacement() {
		t.Fatal("expected placement mode")
	}
	if fp, ok := p.PlacementPreview(ts.World.Map, Point{X: 650, Y: 250}); !ok || fp.X != 640 || fp.Y != 240 {
		t.Fatalf("preview = %+v ok=%v", fp, ok)
	}

	// The placing click must not also change the selection.
	ts.Step(Click(650, 250))
	if p.InPlacement() {
		t.Fatal("placement mode should end after the click")
	}
	bs := p.Buildings()
	if len(bs) != 1 || bs[0].Built() {
		t.Fatalf("expected one unbuilt barracks, got %d", len(bs))
	}
	if u := p.Units()[0]; u.State() != UnitBuildBuilding {
		t.Fatalf("builder state = %s", u.State())
	}
	if p.Resources != 350 {
		t.Fatalf("resources = %d, want 350", p.Resources)
	}
	if len(p.Selected()) != 1 || p.Unit(p.Selected()[0].ID) == nil {
		t.Fatal("selection changed by the placing click")
	}
	if sound.plays["click"] == 0 {
		t.Fatal("expected click sounds")
	}
}

func TestHuman_RightClickCancelsPlacement(t *testing.T) {
	ts := humanSim(
		WithConfig(WithStartingResources(500)),
		WithUnit(1, UnitWorker, 100, 100),
	)
	p := ts.Player(1)
	ts.Step(Click(100, 100))
	ts.Step(PressAction(0)) // build base
	ts.Step(RightClick(600, 300))
	if p.InPlacement() {
		t.Fatal("right click should cancel placement")
	}
	if len(p.Buildings()) != 0 || p.Resources != 500 {
		t.Fatal("cancelled placement spent resources")
	}
	if u := p.Units()[0]; u.State() != UnitIdle {
		t.Fatalf("cancelling placement should not order the unit, state=%s", u.State())
	}
}
