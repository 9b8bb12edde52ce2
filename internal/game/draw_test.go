package game

import (
	"image/color"
	"testing"
)

type recordingDrawer struct {
	rects, ellipses, texts, minimap int
	selectRings                     int
}

func (d *recordingDrawer) Rect(Rect, color.Color, color.Color, float64) { d.rects++ }
func (d *recordingDrawer) Ellipse(_ Point, _, _ float64, _, stroke color.Color, _ float64) {
	d.ellipses++
	if stroke == color.Color(selectRingColor) {
		d.selectRings++
	}
}
func (d *recordingDrawer) Text(string, Point, float64, color.Color) { d.texts++ }
func (d *recordingDrawer) MiniMap(Rect, color.Color)                { d.minimap++ }

func TestDraw_WorldIsObservational(t *testing.T) {
	s, err := NewSkirmish(HumanController{})
	if err != nil {
		t.Fatalf("NewSkirmish: %v", err)
	}
	before := s.World.Log.Summary(0, s.World.Players())
	d := &recordingDrawer{}
	s.World.Draw(d, s.Human, Point{X: 100, Y: 100})
	if d.rects == 0 || d.ellipses == 0 || d.minimap == 0 {
		t.Fatalf("nothing drawn: %+v", d)
	}
	// 2 bases + 5 units + 4 mines on the minimap.
	if d.minimap != 11 {
		t.Fatalf("minimap calls = %d, want 11", d.minimap)
	}
	if after := s.World.Log.Summary(0, s.World.Players()); after != before {
		t.Fatal("drawing changed the world")
	}
}

func TestDraw_PlacementGhost(t *testing.T) {
	ts := humanSim(
		WithConfig(WithStartingResources(500)),
		WithUnit(1, UnitWorker, 100, 100),
	)
	p := ts.Player(1)
	plain := &recordingDrawer{}
	p.Draw(plain, ts.World.Map, p, Point{X: 600, Y: 300})

	if err := p.BeginPlacement(p.Units()[0].ID(), BuildingBarracks); err != nil {
		t.Fatalf("BeginPlacement: %v", err)
	}
	ghost := &recordingDrawer{}
	p.Draw(ghost, ts.World.Map, p, Point{X: 600, Y: 300})
	if ghost.rects <= plain.rects {
		t.Fatal("placement mode should draw a ghost building")
	}
}

func TestDraw_RingsFollowViewerSelection(t *testing.T) {
	ts := humanSim(
		WithUnit(1, UnitWorker, 100, 100),
		WithUnit(2, UnitShade, 600, 300),
	)
	human, cpu := ts.Player(1), ts.Player(2)
	if !human.ClickSelect(ts.World, Point{X: 600, Y: 300}) {
		t.Fatal("click on the enemy shade should select it for inspection")
	}
	cpu.Select(ts.UnitsOf(2)[0].Ref())

	d := &recordingDrawer{}
	ts.World.Draw(d, human, Point{})
	if d.selectRings != 1 {
		t.Fatalf("select rings = %d, want 1 for the inspected enemy", d.selectRings)
	}

	none := &recordingDrawer{}
	ts.World.Draw(none, nil, Point{})
	if none.selectRings != 0 {
		t.Fatalf("select rings without a viewer = %d, want 0", none.selectRings)
	}
}
