// Package render is the ebiten front end: it samples the mouse and
// keyboard, ticks the world once per frame and draws it with a HUD.
package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/skirmish/internal/game"
)

const (
	panSpeed     = 12
	statusFrames = 120
)

var (
	windowBg  = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	dragColor = color.RGBA{R: 0x44, G: 0xAA, B: 0xCC, A: 0xFF}

	groundColors = map[game.GroundType]color.RGBA{
		game.GroundGrass: {R: 0x3A, G: 0x5F, B: 0x2E, A: 0xFF},
		game.GroundDirt:  {R: 0x6B, G: 0x55, B: 0x3A, A: 0xFF},
		game.GroundRock:  {R: 0x55, G: 0x55, B: 0x5A, A: 0xFF},
		game.GroundWater: {R: 0x2A, G: 0x4A, B: 0x7A, A: 0xFF},
	}
)

// App implements ebiten.Game around a World and the human player in it.
type App struct {
	world  *game.World
	human  *game.Player
	width  int
	height int

	cam    game.Point
	hud    hudLayout
	mouse  mouseTracker
	sample mouseSample
	paused bool

	status      string
	statusTimer int
}

// NewApp creates the front end for a window of width×height pixels.
func NewApp(w *game.World, human *game.Player, width, height int) *App {
	hud := hudLayout{screenW: width, screenH: height}
	return &App{
		world:  w,
		human:  human,
		width:  width,
		height: height,
		hud:    hud,
		mouse:  mouseTracker{hud: hud},
	}
}

func (a *App) Update() error {
	a.handleKeys()

	x, y := ebiten.CursorPosition()
	a.sample = mouseSample{
		X:            x,
		Y:            y,
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	}
	in := a.mouse.update(a.sample, a.cam)
	if !a.paused {
		a.world.Tick(in)
	}
	if a.statusTimer > 0 {
		a.statusTimer--
	}
	return nil
}

func (a *App) handleKeys() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panSpeed
	}
	a.cam = clampCamera(game.Point{X: a.cam.X + dx, Y: a.cam.Y + dy}, a.world.Map.Bounds(), a.viewport())

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.human.CancelPlacement()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copySummary()
	}
}

// copySummary puts the event-log summary on the system clipboard.
func (a *App) copySummary() {
	summary := a.world.Log.Summary(a.world.CurrentTick(), a.world.Players())
	if err := clipboard.WriteAll(summary); err != nil {
		slog.Warn("clipboard unavailable", "error", err)
		a.setStatus("clipboard unavailable")
		return
	}
	slog.Info("summary copied", "tick", a.world.CurrentTick(), "bytes", len(summary))
	a.setStatus("summary copied to clipboard")
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusTimer = statusFrames
}

// viewport is the world-view area on screen, above the HUD.
func (a *App) viewport() game.Rect {
	return game.Rect{W: float64(a.width), H: float64(a.height - hudHeight)}
}

// clampCamera keeps the view inside the map.
func clampCamera(cam game.Point, bounds, view game.Rect) game.Point {
	cam.X = max(min(cam.X, bounds.X+bounds.W-view.W), bounds.X)
	cam.Y = max(min(cam.Y, bounds.Y+bounds.H-view.H), bounds.Y)
	return cam
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(windowBg)
	d := newScreenDrawer(screen, a.cam)
	a.drawGround(d)

	cursor := game.Point{X: float64(a.sample.X) + a.cam.X, Y: float64(a.sample.Y) + a.cam.Y}
	a.world.Draw(d, a.human, cursor)

	if box, ok := a.mouse.dragBox(a.sample, a.cam); ok {
		d.Rect(box, nil, dragColor, 1)
	}

	view := a.viewport()
	a.hud.draw(screen, a.world, a.human, d.mini, game.Rect{X: a.cam.X, Y: a.cam.Y, W: view.W, H: view.H})

	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED  P=resume", 8, 8)
	}
	if a.statusTimer > 0 {
		ebitenutil.DebugPrintAt(screen, a.status, 8, 24)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), a.width-64, 8)
}

func (a *App) drawGround(d *screenDrawer) {
	tm, ok := a.world.Map.(*game.TileMap)
	if !ok {
		b := a.world.Map.Bounds()
		d.Rect(b, groundColors[game.GroundGrass], nil, 0)
		return
	}
	ts := tm.TileSize()
	for ty := range tm.Rows() {
		for tx := range tm.Cols() {
			x, y := tm.TileToCoords(tx, ty, false)
			c := groundColors[tm.Ground(tx, ty)]
			d.Rect(game.Rect{X: x, Y: y, W: ts, H: ts}, c, nil, 0)
		}
	}
	grid := color.RGBA{A: 0x22}
	b := tm.Bounds()
	ox, oy := d.toScreen(game.Point{X: b.X, Y: b.Y})
	for tx := 0; tx <= tm.Cols(); tx++ {
		x := ox + float32(float64(tx)*ts)
		vector.StrokeLine(d.dst, x, oy, x, oy+float32(b.H), 1, grid, false)
	}
	for ty := 0; ty <= tm.Rows(); ty++ {
		y := oy + float32(float64(ty)*ts)
		vector.StrokeLine(d.dst, ox, y, ox+float32(b.W), y, 1, grid, false)
	}
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}
