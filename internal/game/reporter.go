package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// PlayerReport captures one player's economy and army at one point in time.
type PlayerReport struct {
	PlayerID       int
	Name           string
	Resources      int
	Units          int
	Buildings      int
	BuiltBuildings int
	QueuedTasks    int
	Carrying       int // resources in transit
	Injured        int // health < max but > 0
	States         map[UnitState]int
}

// UnitReport captures a single unit's state.
type UnitReport struct {
	Label    string
	PlayerID int
	State    UnitState
	Health   int
	Position Point
	Carrying int
}

// SimReport is a full snapshot of the world at one tick.
type SimReport struct {
	Tick int

	Players []PlayerReport

	// Total stock left in all mines.
	MineStock int

	// Units detail (optional, for verbose mode).
	Units []UnitReport
}

// --- Reporter ---

// SimReporter collects periodic reports from the world and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current world state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(w *World) {
	report := SimReport{Tick: w.CurrentTick()}

	for _, p := range w.Players() {
		pr := PlayerReport{
			PlayerID:  p.ID,
			Name:      p.Name,
			Resources: p.Resources,
			States:    make(map[UnitState]int),
		}
		for _, u := range p.units {
			pr.Units++
			pr.States[u.state]++
			pr.Carrying += u.carrying
			if u.health > 0 && u.health < u.tmpl.Health {
				pr.Injured++
			}
			if r.verbose {
				report.Units = append(report.Units, UnitReport{
					Label:    u.Label(),
					PlayerID: p.ID,
					State:    u.state,
					Health:   u.health,
					Position: u.Position(),
					Carrying: u.carrying,
				})
			}
		}
		for _, b := range p.buildings {
			pr.Buildings++
			if b.built {
				pr.BuiltBuildings++
			}
			pr.QueuedTasks += b.tasks.Len()
		}
		report.Players = append(report.Players, pr)
	}

	for _, m := range w.Mines.All() {
		report.MineStock += m.Stock
	}

	r.history = append(r.history, report)
}

// Latest returns the most recent report, or nil.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every collected report, oldest first.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowSummary returns an aggregated summary over the recent time window.
// It averages unit, building and carry counts per player and turns unit
// states into a distribution.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	// Find reports within the window.
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	oldest, newest := window[len(window)-1], window[0]
	wr := &WindowReport{
		FromTick:      oldest.Tick,
		ToTick:        newest.Tick,
		SampleCount:   len(window),
		MineStockDrop: oldest.MineStock - newest.MineStock,
	}

	index := map[int]int{}
	stateTotals := map[int]map[UnitState]float64{}
	unitTotals := map[int]float64{}

	// Oldest first so StartResources is the window's first sample.
	for i := len(window) - 1; i >= 0; i-- {
		for _, pr := range window[i].Players {
			at, ok := index[pr.PlayerID]
			if !ok {
				at = len(wr.Players)
				index[pr.PlayerID] = at
				wr.Players = append(wr.Players, PlayerWindow{
					PlayerID:       pr.PlayerID,
					Name:           pr.Name,
					StartResources: pr.Resources,
					StatePct:       make(map[UnitState]float64),
				})
				stateTotals[pr.PlayerID] = make(map[UnitState]float64)
			}
			pw := &wr.Players[at]
			pw.EndResources = pr.Resources
			pw.AvgUnits += float64(pr.Units)
			pw.AvgBuildings += float64(pr.Buildings)
			pw.AvgInjured += float64(pr.Injured)
			pw.AvgCarrying += float64(pr.Carrying)
			pw.AvgQueued += float64(pr.QueuedTasks)
			for s, c := range pr.States {
				stateTotals[pr.PlayerID][s] += float64(c)
				unitTotals[pr.PlayerID] += float64(c)
			}
		}
	}

	// Averages.
	for i := range wr.Players {
		pw := &wr.Players[i]
		pw.AvgUnits /= n
		pw.AvgBuildings /= n
		pw.AvgInjured /= n
		pw.AvgCarrying /= n
		pw.AvgQueued /= n
		if total := unitTotals[pw.PlayerID]; total > 0 {
			for s, c := range stateTotals[pw.PlayerID] {
				pw.StatePct[s] = c / total * 100
			}
		}
	}

	return wr
}

// PlayerWindow is one player's aggregate over a window.
type PlayerWindow struct {
	PlayerID int
	Name     string

	StartResources, EndResources int

	// Unit state distribution as percentages (0-100).
	StatePct map[UnitState]float64

	// Averages over the window.
	AvgUnits, AvgBuildings float64
	AvgInjured             float64
	AvgCarrying            float64
	AvgQueued              float64
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	Players []PlayerWindow

	// Stock taken out of the mines during the window.
	MineStockDrop int
}

// Player returns the window entry for a player ID, or nil.
func (wr *WindowReport) Player(id int) *PlayerWindow {
	for i := range wr.Players {
		if wr.Players[i].PlayerID == id {
			return &wr.Players[i]
		}
	}
	return nil
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	for _, pw := range wr.Players {
		fmt.Fprintf(&sb, "\n--- %s ---\n", strings.ToUpper(pw.Name))
		fmt.Fprintf(&sb, "  resources: %d -> %d (%s)\n",
			pw.StartResources, pw.EndResources, trendLabel(pw.EndResources-pw.StartResources))
		fmt.Fprintf(&sb, "  units=%.1f  buildings=%.1f  injured=%.1f  carrying=%.1f  queued=%.1f\n",
			pw.AvgUnits, pw.AvgBuildings, pw.AvgInjured, pw.AvgCarrying, pw.AvgQueued)
		sb.WriteString("  states:")
		for s := UnitIdle; s <= UnitDead; s++ {
			if pct, ok := pw.StatePct[s]; ok && pct > 0.5 {
				fmt.Fprintf(&sb, " %s=%.1f%%", s, pct)
			}
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "\n--- Mines ---\n  stock mined=%d\n", wr.MineStockDrop)
	return sb.String()
}

// FormatLatest returns the window summary followed by per-unit detail of the
// latest snapshot when verbose collection is on.
func (r *SimReporter) FormatLatest() string {
	out := r.WindowSummary().Format()
	latest := r.Latest()
	if latest == nil || len(latest.Units) == 0 {
		return out
	}
	var sb strings.Builder
	sb.WriteString(out)
	fmt.Fprintf(&sb, "\n--- Units at T=%d ---\n", latest.Tick)
	for _, u := range latest.Units {
		fmt.Fprintf(&sb, "  %-14s p%d %-14s hp=%-4d (%.0f,%.0f) carry=%d\n",
			u.Label, u.PlayerID, u.State, u.Health, u.Position.X, u.Position.Y, u.Carrying)
	}
	return sb.String()
}

func trendLabel(delta int) string {
	switch {
	case delta > 0:
		return "growing"
	case delta < 0:
		return "spending"
	default:
		return "flat"
	}
}
