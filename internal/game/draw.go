package game

import (
	"fmt"
	"image/color"
)

// Drawer is the rendering boundary. Entities describe themselves with these
// primitives; nothing drawn ever feeds back into the simulation. A nil fill
// or stroke colour means "none".
type Drawer interface {
	Rect(r Rect, fill, stroke color.Color, strokeWidth float64)
	Ellipse(center Point, rx, ry float64, fill, stroke color.Color, strokeWidth float64)
	Text(s string, at Point, size float64, c color.Color)
	MiniMap(r Rect, c color.Color)
}

var (
	selectRingColor = color.RGBA{R: 0x44, G: 0xAA, B: 0xCC, A: 0xFF}
	hitRingColor    = color.RGBA{R: 0xAA, G: 0x00, B: 0x00, A: 0xFF}
	buildingBody    = color.RGBA{R: 0xAA, G: 0x33, B: 0x33, A: 0xFF}
	buildingRoof    = color.RGBA{R: 0xAA, G: 0x55, B: 0x55, A: 0xFF}
	flagpoleColor   = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}
	miniMapColor    = color.RGBA{G: 0xFF, A: 0xFF}
	mineColor       = color.RGBA{R: 0x66, G: 0x99, B: 0xCC, A: 0xFF}
	healthColor     = color.RGBA{G: 0xCC, A: 0xFF}
	carryColor      = color.RGBA{R: 0x66, G: 0x99, B: 0xCC, A: 0xFF}
)

// ghost returns c at the translucency used for unbuilt buildings.
func ghost(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 0x44}
}

// DrawBuildingShape draws a building body with a flag in the owner colour.
// It is shared by placed buildings and the placement preview.
func DrawBuildingShape(d Drawer, r Rect, owner color.RGBA, built bool) {
	body, roof, pole, flag := buildingBody, buildingRoof, flagpoleColor, owner
	if !built {
		body, roof, pole, flag = ghost(body), ghost(roof), ghost(pole), ghost(flag)
	}
	const flagpoleW, flagpoleH = 10, 100
	d.Rect(Rect{X: r.X, Y: r.Y + r.H/4, W: r.W, H: r.H * 3 / 4}, body, nil, 0)
	d.Ellipse(Point{X: r.X + r.W/2, Y: r.Y + r.H}, r.W/2, r.H/4, body, nil, 0)
	d.Ellipse(Point{X: r.X + r.W/2, Y: r.Y + r.H/4}, r.W/2, r.H/4, roof, nil, 0)
	d.Rect(Rect{X: r.X + r.W/2 - flagpoleW/2, Y: r.Y + r.H/4 - flagpoleH, W: flagpoleW, H: flagpoleH}, pole, nil, 0)
	d.Rect(Rect{X: r.X + r.W/2 + flagpoleW/2, Y: r.Y + r.H/4 - flagpoleH, W: 60, H: 40}, flag, nil, 0)
}

// Draw renders the building.
func (b *Building) Draw(d Drawer, owner color.RGBA, selected bool) {
	hb := b.Hitbox()
	ring := func(c color.Color) {
		d.Ellipse(Point{X: hb.X + hb.W/2, Y: hb.Y + hb.H}, (hb.W+40)/2, hb.H/3, nil, c, 5)
	}
	if selected {
		ring(selectRingColor)
	}
	if b.Flashing() {
		ring(hitRingColor)
	}
	DrawBuildingShape(d, hb, owner, b.built)
	if !b.built && b.tmpl.BuildTime > 0 {
		done := float64(b.tmpl.BuildTime-b.progress) / float64(b.tmpl.BuildTime)
		d.Text(fmt.Sprintf("%d%%", int(done*100)), Point{X: hb.X + 4, Y: hb.Y + hb.H - 16}, 1, color.White)
	}
	d.MiniMap(hb, miniMapColor)
}

// Draw renders the unit as a coloured body with a health bar.
func (u *Unit) Draw(d Drawer, owner color.RGBA, selected bool) {
	r := u.tmpl.Radius
	pos := u.Position()
	if selected {
		d.Ellipse(Point{X: pos.X, Y: pos.Y + r}, r+6, r/2, nil, selectRingColor, 3)
	}
	if u.Flashing() {
		d.Ellipse(Point{X: pos.X, Y: pos.Y + r}, r+8, r/2+2, nil, hitRingColor, 3)
	}
	d.Ellipse(pos, r*0.8, r, owner, color.Black, 1)
	if u.carrying > 0 {
		d.Rect(Rect{X: pos.X + r/2, Y: pos.Y - r, W: 8, H: 8}, carryColor, nil, 0)
	}
	frac := float64(u.health) / float64(max(u.tmpl.Health, 1))
	d.Rect(Rect{X: pos.X - r, Y: pos.Y - r - 8, W: 2 * r * frac, H: 4}, healthColor, nil, 0)
	d.MiniMap(u.Hitbox(), owner)
}

// Draw renders a mine with its remaining stock.
func (m *Mine) Draw(d Drawer) {
	if m.Depleted() {
		d.Rect(m.Rect, nil, mineColor, 2)
		return
	}
	d.Rect(m.Rect, mineColor, color.Black, 2)
	d.Text(fmt.Sprintf("%d", m.Stock), Point{X: m.Rect.X + 4, Y: m.Rect.Y + 4}, 1, color.Black)
	d.MiniMap(m.Rect, mineColor)
}

// Draw renders the player's entities. Selection rings follow the viewer's
// selection, so entities picked for inspection are ringed too. The placement
// ghost and move marker are only drawn when the player is the viewer; cursor
// is the viewer's mouse position.
func (p *Player) Draw(d Drawer, m Map, viewer *Player, cursor Point) {
	selected := func(id EntityID) bool { return viewer != nil && viewer.IsSelected(id) }
	for _, b := range p.buildings {
		b.Draw(d, p.Color, selected(b.id))
	}
	for _, u := range p.units {
		u.Draw(d, p.Color, selected(u.id))
	}
	if viewer != p {
		return
	}
	if fp, ok := p.PlacementPreview(m, cursor); ok {
		DrawBuildingShape(d, fp, p.Color, false)
	}
	if mf := p.moveFeedback; mf != nil && mf.Time%10 < 5 {
		d.Ellipse(mf.At, 23, 13, nil, selectRingColor, 5)
	}
}

// Draw renders the whole world as seen by viewer, which may be nil.
func (w *World) Draw(d Drawer, viewer *Player, cursor Point) {
	for _, m := range w.Mines.All() {
		m.Draw(d)
	}
	for _, p := range w.players {
		p.Draw(d, w.Map, viewer, cursor)
	}
}
