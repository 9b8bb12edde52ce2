package game

// Input is the per-frame pointer snapshot the front end hands to the
// simulation. Nil pointers mean "did not happen this frame".
type Input struct {
	ClickTarget      *Point
	RightClickTarget *Point
	ReleaseDrag      *Rect // start corner plus extent; may be negative
	MouseLocation    Point

	// ActionPressed is set when a HUD action slot was clicked.
	ActionPressed bool
	ActionSlot    int
}

// Click is a convenience constructor for a left click at (x, y).
func Click(x, y float64) Input { return Input{ClickTarget: &Point{X: x, Y: y}, MouseLocation: Point{X: x, Y: y}} }

// RightClick is a convenience constructor for a right click at (x, y).
func RightClick(x, y float64) Input {
	return Input{RightClickTarget: &Point{X: x, Y: y}, MouseLocation: Point{X: x, Y: y}}
}

// Drag is a convenience constructor for a drag released this frame.
func Drag(x0, y0, x1, y1 float64) Input {
	return Input{ReleaseDrag: &Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, MouseLocation: Point{X: x1, Y: y1}}
}

// PressAction is a convenience constructor for a HUD slot press.
func PressAction(slot int) Input { return Input{ActionPressed: true, ActionSlot: slot} }

// Sound plays named effects. Fire and forget.
type Sound interface {
	Play(name string)
}

// NopSound discards every effect.
type NopSound struct{}

func (NopSound) Play(string) {}

// Controller turns a frame's input (or its own policy) into commands for a
// player. Human and CPU controllers go through the same Player and Unit
// methods.
type Controller interface {
	Resolve(w *World, p *Player, in Input)
}
