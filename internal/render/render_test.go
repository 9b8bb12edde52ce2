package render

import (
	"testing"

	"github.com/Garsondee/skirmish/internal/game"
)

func TestHUD_SlotGeometry(t *testing.T) {
	h := hudLayout{screenW: 1280, screenH: 720}
	for i := range game.ActionSlots {
		r := h.slotRect(i)
		if !h.inPanel(r.Center()) {
			t.Fatalf("slot %d at %+v lies outside the panel", i, r)
		}
		got, ok := h.slotAt(r.Center())
		if !ok || got != i {
			t.Fatalf("slotAt(centre of %d) = %d, %v", i, got, ok)
		}
	}
	if _, ok := h.slotAt(game.Point{X: 10, Y: 10}); ok {
		t.Fatal("a point in the world view should not hit a slot")
	}
	// Cancel lives bottom-right.
	c := h.slotRect(game.CancelSlot)
	if c.X+c.W != 1280-gridMargin {
		t.Fatalf("cancel slot right edge = %v", c.X+c.W)
	}
}

func TestMouse_ClickVersusDrag(t *testing.T) {
	m := mouseTracker{hud: hudLayout{screenW: 1280, screenH: 720}}
	cam := game.Point{X: 100, Y: 50}

	m.update(mouseSample{X: 200, Y: 200, LeftPressed: true}, cam)
	in := m.update(mouseSample{X: 202, Y: 201, LeftReleased: true}, cam)
	if in.ClickTarget == nil || in.ReleaseDrag != nil {
		t.Fatalf("small movement should be a click: %+v", in)
	}
	if *in.ClickTarget != (game.Point{X: 300, Y: 250}) {
		t.Fatalf("click in world coords = %v", *in.ClickTarget)
	}

	m.update(mouseSample{X: 200, Y: 200, LeftPressed: true}, cam)
	if _, ok := m.dragBox(mouseSample{X: 260, Y: 150}, cam); !ok {
		t.Fatal("expected an in-progress drag box")
	}
	in = m.update(mouseSample{X: 260, Y: 150, LeftReleased: true}, cam)
	if in.ReleaseDrag == nil || in.ClickTarget != nil {
		t.Fatalf("large movement should be a drag: %+v", in)
	}
	if r := *in.ReleaseDrag; r.X != 300 || r.Y != 250 || r.W != 60 || r.H != -50 {
		t.Fatalf("drag = %+v", r)
	}
}

func TestMouse_HUDPress(t *testing.T) {
	h := hudLayout{screenW: 1280, screenH: 720}
	m := mouseTracker{hud: h}
	c := h.slotRect(4).Center()
	m.update(mouseSample{X: int(c.X), Y: int(c.Y), LeftPressed: true}, game.Point{})
	in := m.update(mouseSample{X: int(c.X), Y: int(c.Y), LeftReleased: true}, game.Point{})
	if !in.ActionPressed || in.ActionSlot != 4 {
		t.Fatalf("expected slot 4 pressed, got %+v", in)
	}
	if in.ClickTarget != nil {
		t.Fatal("a HUD press must not also click the world")
	}
	in = m.update(mouseSample{X: int(c.X), Y: int(c.Y), RightPressed: true}, game.Point{})
	if in.RightClickTarget != nil {
		t.Fatal("right clicks on the HUD should be ignored")
	}
}

func TestClampCamera(t *testing.T) {
	bounds := game.Rect{W: 2240, H: 800}
	view := game.Rect{W: 1280, H: 560}
	got := clampCamera(game.Point{X: -50, Y: 900}, bounds, view)
	if got.X != 0 || got.Y != 240 {
		t.Fatalf("clamped camera = %+v, want (0,240)", got)
	}
}

func TestAbbreviate(t *testing.T) {
	cases := map[string]string{
		"stop":           "stop",
		"build worker":   "worker",
		"train goblin":   "goblin",
		"build barracks": "barrack",
	}
	for in, want := range cases {
		if got := abbreviate(in); got != want {
			t.Fatalf("abbreviate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSelectionLines(t *testing.T) {
	s, err := game.NewSkirmish(game.HumanController{})
	if err != nil {
		t.Fatalf("NewSkirmish: %v", err)
	}
	s.World.Tick(game.Click(480, 300))
	lines := selectionLines(s.World, s.Human)
	if len(lines) < 2 || lines[1] != "worker (own) hp 40  idle" {
		t.Fatalf("unexpected HUD lines: %q", lines)
	}
	if _, ok := singleOwned(s.World, s.Human); !ok {
		t.Fatal("expected a single owned selection")
	}
}
