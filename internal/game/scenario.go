package game

import (
	"fmt"
	"image/color"
	"log/slog"
)

// Default skirmish colours.
var (
	HumanColor = color.RGBA{R: 0xAA, A: 0xFF}
	CPUColor   = color.RGBA{B: 0xAA, A: 0xFF}
)

const skirmishMineStock = 1500

// Skirmish is the stock two-player match.
type Skirmish struct {
	World *World
	Human *Player
	CPU   *Player
}

// NewSkirmish lays out the default map: a rock ridge splitting the field,
// two mines per side, a built base for each player and their opening units.
// humanCtrl drives the first player; the second is always the CPU policy.
func NewSkirmish(humanCtrl Controller, opts ...Option) (*Skirmish, error) {
	w := NewWorld(opts...)
	if tm, ok := w.Map.(*TileMap); ok {
		layRidge(tm)
	}
	ts := w.Map.TileSize()
	for _, t := range [][2]int{{8, 1}, {8, 7}, {19, 1}, {19, 7}} {
		x, y := w.Map.TileToCoords(t[0], t[1], false)
		w.Mines.Add(Rect{X: x, Y: y, W: ts, H: ts}, skirmishMineStock)
	}

	cpuCtrl, err := NewCPUController(w.Config().Policy, w.Rand())
	if err != nil {
		return nil, fmt.Errorf("cpu controller: %w", err)
	}
	human := w.AddPlayer("human", HumanColor, humanCtrl)
	cpu := w.AddPlayer("cpu", CPUColor, cpuCtrl)

	bx, by := w.Map.TileToCoords(2, 3, false)
	human.AddBuilding(BuildingBase, bx, by, true)
	human.AddUnit(UnitShade, 500, 380)
	human.AddUnit(UnitGoblin, 500, 440)
	human.AddUnit(UnitBrute, 500, 560)
	human.AddUnit(UnitWorker, 480, 300)

	cx, cy := w.Map.TileToCoords(22, 6, false)
	cpu.AddBuilding(BuildingBase, cx, cy, true)
	cpu.AddUnit(UnitShade, 18*ts, 6*ts)

	slog.Info("skirmish ready", "seed", w.Config().Seed, "players", len(w.players), "mines", len(w.Mines.All()))
	return &Skirmish{World: w, Human: human, CPU: cpu}, nil
}

// layRidge blocks two columns of rock in the middle of the map with a gap
// through the centre rows.
func layRidge(tm *TileMap) {
	mid := tm.Cols()/2 - 1
	gapFrom, gapTo := tm.Rows()*3/10, tm.Rows()*7/10
	for x := mid; x <= mid+1; x++ {
		for y := 0; y < tm.Rows(); y++ {
			if y >= gapFrom && y < gapTo {
				continue
			}
			tm.SetGround(x, y, GroundRock)
		}
	}
}
