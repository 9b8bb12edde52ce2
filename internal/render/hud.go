package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/skirmish/internal/game"
)

// HUD layout in screen pixels. The panel spans the bottom of the window.
const (
	hudHeight   = 160
	slotSize    = 48
	slotGap     = 4
	gridMargin  = 8
	miniMapW    = 224
	miniMapH    = 80
	progressW   = 160
	lineHeight  = 14
	hudTextPadX = 8
)

var (
	hudBg         = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	hudBorder     = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}
	slotReady     = color.RGBA{G: 0xFF, A: 0xFF}
	slotDisabled  = color.RGBA{R: 0x64, G: 0x64, B: 0x64, A: 0xB3}
	progressFill  = color.RGBA{R: 0x66, G: 0x99, B: 0xCC, A: 0xFF}
	miniMapBg     = color.RGBA{R: 0x22, G: 0x33, B: 0x22, A: 0xFF}
	miniMapCamera = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x99}
)

// hudLayout is the geometry of the HUD for a given screen size.
type hudLayout struct {
	screenW, screenH int
}

func (h hudLayout) panel() game.Rect {
	return game.Rect{X: 0, Y: float64(h.screenH - hudHeight), W: float64(h.screenW), H: hudHeight}
}

// slotRect returns the screen rectangle of action slot i (row-major 3x3,
// anchored to the right edge of the panel).
func (h hudLayout) slotRect(i int) game.Rect {
	p := h.panel()
	gridW := 3*slotSize + 2*slotGap
	x0 := p.X + p.W - gridMargin - float64(gridW)
	y0 := p.Y + gridMargin
	col, row := i%3, i/3
	return game.Rect{
		X: x0 + float64(col*(slotSize+slotGap)),
		Y: y0 + float64(row*(slotSize+slotGap)),
		W: slotSize,
		H: slotSize,
	}
}

// slotAt returns the action slot under a screen point.
func (h hudLayout) slotAt(pt game.Point) (int, bool) {
	for i := range game.ActionSlots {
		if game.PointInRect(h.slotRect(i), pt) {
			return i, true
		}
	}
	return 0, false
}

// inPanel reports whether a screen point lands on the HUD.
func (h hudLayout) inPanel(pt game.Point) bool {
	p := h.panel()
	return pt.Y >= p.Y && pt.Y <= p.Y+p.H
}

func (h hudLayout) miniMapRect() game.Rect {
	p := h.panel()
	return game.Rect{X: p.X + gridMargin, Y: p.Y + p.H - gridMargin - miniMapH, W: miniMapW, H: miniMapH}
}

// selectionLines describes the selection for the HUD text column.
func selectionLines(w *game.World, p *game.Player) []string {
	lines := []string{fmt.Sprintf("resources: %d   tick: %d", p.Resources, w.CurrentTick())}
	sel := p.Selected()
	switch {
	case len(sel) == 0:
		lines = append(lines, "nothing selected")
	case len(sel) == 1:
		e, ok := w.Entity(sel[0])
		if !ok {
			break
		}
		owner := "own"
		if e.Owner() != p.ID {
			owner = "enemy"
		}
		line := fmt.Sprintf("%s (%s) hp %d", e.Name(), owner, e.Health())
		if u, ok := e.(*game.Unit); ok {
			line += fmt.Sprintf("  %s", u.State())
			if u.CarryingResource() {
				line += fmt.Sprintf("  carrying %d", u.Carrying())
			}
		}
		lines = append(lines, line)
	default:
		counts := map[string]int{}
		var order []string
		for _, r := range sel {
			e, ok := w.Entity(r)
			if !ok {
				continue
			}
			if counts[e.Name()] == 0 {
				order = append(order, e.Name())
			}
			counts[e.Name()]++
		}
		line := fmt.Sprintf("%d selected:", len(sel))
		for _, n := range order {
			line += fmt.Sprintf(" %s x%d", n, counts[n])
		}
		lines = append(lines, line)
	}
	if p.InPlacement() {
		lines = append(lines, "placing: left click to build, right click to cancel")
	}
	return lines
}

// singleOwned returns the one selected entity when it belongs to p.
func singleOwned(w *game.World, p *game.Player) (game.Entity, bool) {
	sel := p.Selected()
	if len(sel) != 1 || sel[0].Player != p.ID {
		return nil, false
	}
	return w.Entity(sel[0])
}

func (h hudLayout) draw(screen *ebiten.Image, w *game.World, p *game.Player, mini []miniRect, cam game.Rect) {
	pr := h.panel()
	vector.FillRect(screen, float32(pr.X), float32(pr.Y), float32(pr.W), float32(pr.H), hudBg, false)
	vector.StrokeLine(screen, 0, float32(pr.Y), float32(pr.W), float32(pr.Y), 2, hudBorder, false)

	tx := int(pr.X) + miniMapW + 2*gridMargin
	ty := int(pr.Y) + gridMargin
	for i, line := range selectionLines(w, p) {
		ebitenutil.DebugPrintAt(screen, line, tx, ty+i*lineHeight)
	}

	e, ok := singleOwned(w, p)
	if !ok {
		h.drawMiniMap(screen, w, mini, cam)
		return
	}
	if b, isBuilding := e.(*game.Building); isBuilding {
		if t := b.CurrentTask(); t != nil {
			y := float32(ty + 4*lineHeight)
			vector.StrokeRect(screen, float32(tx), y, progressW, 10, 1, hudBorder, false)
			vector.FillRect(screen, float32(tx), y, float32(progressW*t.Progress()), 10, progressFill, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  (%d queued)", t.Name, len(b.Tasks())), tx+progressW+hudTextPadX, int(y)-3)
		}
	}
	for i, a := range e.Actions(p) {
		if a.Empty() {
			continue
		}
		r := h.slotRect(i)
		c := slotDisabled
		if a.Actionable() {
			c = slotReady
		}
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), hudBg, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, c, false)
		ebitenutil.DebugPrintAt(screen, abbreviate(a.Name), int(r.X)+3, int(r.Y)+3)
		if a.Cost > 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", a.Cost), int(r.X)+3, int(r.Y)+int(r.H)-16)
		}
	}
	h.drawMiniMap(screen, w, mini, cam)
}

func (h hudLayout) drawMiniMap(screen *ebiten.Image, w *game.World, mini []miniRect, cam game.Rect) {
	mr := h.miniMapRect()
	bounds := w.Map.Bounds()
	if bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	sx, sy := mr.W/bounds.W, mr.H/bounds.H
	vector.FillRect(screen, float32(mr.X), float32(mr.Y), float32(mr.W), float32(mr.H), miniMapBg, false)
	for _, m := range mini {
		r := m.r.Normalize()
		vector.FillRect(screen,
			float32(mr.X+r.X*sx), float32(mr.Y+r.Y*sy),
			float32(max(r.W*sx, 1)), float32(max(r.H*sy, 1)), m.c, false)
	}
	vector.StrokeRect(screen,
		float32(mr.X+cam.X*sx), float32(mr.Y+cam.Y*sy),
		float32(cam.W*sx), float32(cam.H*sy), 1, miniMapCamera, false)
}

// abbreviate fits an action name into a slot.
func abbreviate(name string) string {
	const maxChars = 7
	if len(name) <= maxChars {
		return name
	}
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			rest := name[i+1:]
			if len(rest) > maxChars {
				rest = rest[:maxChars]
			}
			return rest
		}
	}
	return name[:maxChars]
}
