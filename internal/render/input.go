package render

import (
	"math"

	"github.com/Garsondee/skirmish/internal/game"
)

// dragThreshold is how far (screen pixels) the pointer must travel while held
// before a release counts as a drag instead of a click.
const dragThreshold = 6

// mouseSample is the raw pointer state for one frame.
type mouseSample struct {
	X, Y         int
	LeftPressed  bool // went down this frame
	LeftReleased bool // went up this frame
	RightPressed bool
}

// mouseTracker turns raw samples into game.Input, splitting clicks from
// drags and HUD presses from world clicks.
type mouseTracker struct {
	hud   hudLayout
	down  bool
	start game.Point
	onHUD bool
}

// update consumes one sample. cam is the world position of the screen's
// top-left corner.
func (m *mouseTracker) update(s mouseSample, cam game.Point) game.Input {
	screen := game.Point{X: float64(s.X), Y: float64(s.Y)}
	world := game.Point{X: screen.X + cam.X, Y: screen.Y + cam.Y}
	in := game.Input{MouseLocation: world}

	if s.LeftPressed {
		m.down = true
		m.start = screen
		m.onHUD = m.hud.inPanel(screen)
	}
	if s.LeftReleased && m.down {
		m.down = false
		switch {
		case m.onHUD:
			if slot, ok := m.hud.slotAt(screen); ok {
				in.ActionPressed = true
				in.ActionSlot = slot
			}
		case math.Hypot(screen.X-m.start.X, screen.Y-m.start.Y) > dragThreshold:
			end := screen
			if m.hud.inPanel(end) {
				end.Y = m.hud.panel().Y
			}
			in.ReleaseDrag = &game.Rect{
				X: m.start.X + cam.X,
				Y: m.start.Y + cam.Y,
				W: end.X - m.start.X,
				H: end.Y - m.start.Y,
			}
		default:
			in.ClickTarget = &game.Point{X: m.start.X + cam.X, Y: m.start.Y + cam.Y}
		}
	}
	if s.RightPressed && !m.hud.inPanel(screen) {
		in.RightClickTarget = &world
	}
	return in
}

// dragBox returns the in-progress drag rectangle in world coordinates.
func (m *mouseTracker) dragBox(s mouseSample, cam game.Point) (game.Rect, bool) {
	if !m.down || m.onHUD {
		return game.Rect{}, false
	}
	dx, dy := float64(s.X)-m.start.X, float64(s.Y)-m.start.Y
	if math.Hypot(dx, dy) <= dragThreshold {
		return game.Rect{}, false
	}
	return game.Rect{X: m.start.X + cam.X, Y: m.start.Y + cam.Y, W: dx, H: dy}, true
}
