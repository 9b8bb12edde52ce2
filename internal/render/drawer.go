package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/skirmish/internal/game"
)

// labelFace is the fixed-width face used for in-world labels.
var labelFace = text.NewGoXFace(basicfont.Face7x13)

// ellipseSegments is how many line segments approximate an ellipse outline.
const ellipseSegments = 32

// screenDrawer implements game.Drawer on an ebiten image, offset by the
// camera. Minimap rectangles are collected and drawn later by the HUD.
type screenDrawer struct {
	dst  *ebiten.Image
	cam  game.Point
	mini []miniRect
}

type miniRect struct {
	r game.Rect
	c color.Color
}

func newScreenDrawer(dst *ebiten.Image, cam game.Point) *screenDrawer {
	return &screenDrawer{dst: dst, cam: cam}
}

func (d *screenDrawer) toScreen(p game.Point) (float32, float32) {
	return float32(p.X - d.cam.X), float32(p.Y - d.cam.Y)
}

func (d *screenDrawer) Rect(r game.Rect, fill, stroke color.Color, strokeWidth float64) {
	r = r.Normalize()
	x, y := d.toScreen(game.Point{X: r.X, Y: r.Y})
	if fill != nil {
		vector.FillRect(d.dst, x, y, float32(r.W), float32(r.H), fill, false)
	}
	if stroke != nil && strokeWidth > 0 {
		vector.StrokeRect(d.dst, x, y, float32(r.W), float32(r.H), float32(strokeWidth), stroke, false)
	}
}

// Ellipse fills with one horizontal span per pixel row and strokes with a
// closed polyline.
func (d *screenDrawer) Ellipse(center game.Point, rx, ry float64, fill, stroke color.Color, strokeWidth float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	cx, cy := d.toScreen(center)
	if fill != nil {
		for dy := -ry; dy <= ry; dy++ {
			half := rx * math.Sqrt(max(0, 1-(dy*dy)/(ry*ry)))
			vector.FillRect(d.dst, cx-float32(half), cy+float32(dy), float32(2*half), 1, fill, false)
		}
	}
	if stroke != nil && strokeWidth > 0 {
		px, py := cx+float32(rx), cy
		for i := 1; i <= ellipseSegments; i++ {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			nx := cx + float32(rx*math.Cos(a))
			ny := cy + float32(ry*math.Sin(a))
			vector.StrokeLine(d.dst, px, py, nx, ny, float32(strokeWidth), stroke, true)
			px, py = nx, ny
		}
	}
}

func (d *screenDrawer) Text(s string, at game.Point, size float64, c color.Color) {
	x, y := d.toScreen(at)
	op := &text.DrawOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(d.dst, s, labelFace, op)
}

func (d *screenDrawer) MiniMap(r game.Rect, c color.Color) {
	d.mini = append(d.mini, miniRect{r: r, c: c})
}
