package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// HumanController resolves the player's pointer input into commands.
type HumanController struct{}

// Resolve applies one frame of input: HUD action, then placement or
// selection, then right-click orders for the selected units.
func (HumanController) Resolve(w *World, p *Player, in Input) {
	if in.ActionPressed {
		p.executeSelectedAction(in.ActionSlot)
	}
	if p.placement != nil {
		p.resolvePlacement(w, in)
		return
	}
	if in.ReleaseDrag != nil {
		p.DragSelect(*in.ReleaseDrag)
	} else if in.ClickTarget != nil {
		p.ClickSelect(w, *in.ClickTarget)
	}
	if in.RightClickTarget != nil {
		p.CommandSelected(w, *in.RightClickTarget)
	}
}

// executeSelectedAction runs a menu slot of the single selected own entity.
func (p *Player) executeSelectedAction(slot int) {
	if len(p.selected) != 1 || slot < 0 || slot >= ActionSlots {
		return
	}
	ref := p.selected[0]
	if ref.Player != p.ID {
		return
	}
	e, ok := p.Entity(ref.ID)
	if !ok {
		return
	}
	a := e.Actions(p)[slot]
	if a.Empty() {
		return
	}
	if err := a.Execute(p); err != nil {
		p.commandFailed(e.Name(), a.Name, err)
		return
	}
	p.play("click")
	p.record(e.Name(), "command", "action", a.Name, float64(a.Cost))
}

// resolvePlacement commits or abandons placement mode. A left click tries to
// place; a right click cancels. Either way the mode ends.
func (p *Player) resolvePlacement(w *World, in Input) {
	switch {
	case in.RightClickTarget != nil:
		p.CancelPlacement()
	case in.ClickTarget != nil:
		pl := *p.placement
		p.CancelPlacement()
		p.play("click")
		if _, err := p.PlaceBuildingForConstruction(w, pl.builder, pl.kind, in.ClickTarget.X, in.ClickTarget.Y); err != nil {
			p.commandFailed(pl.kind.String(), "place", err)
		}
	}
}

// CommandSelected resolves a right click at pt for every selected own unit,
// in priority order: mine, deposit at a friendly base, attack an enemy,
// otherwise move. Movers share one feedback marker.
func (p *Player) CommandSelected(w *World, pt Point) {
	var movers []*Unit
	for _, u := range p.selectedUnits() {
		if u.state == UnitBuildBuilding {
			continue
		}
		if u.CanMine() && !u.CarryingResource() {
			if mine := w.Mines.At(pt); mine != nil {
				p.order(u, "mine", u.SetMining(mine, w.Map))
				continue
			}
		}
		if u.CarryingResource() {
			if base := p.baseAt(pt); base != nil {
				p.order(u, "deposit", u.ReturnResource(p, w.Map, base))
				continue
			}
		}
		if enemy := w.EnemyAt(p.ID, pt); enemy != nil {
			p.order(u, "attack", u.SetTarget(enemy, w.Map))
			continue
		}
		movers = append(movers, u)
	}
	if len(movers) > 0 {
		p.moveGroup(w, movers, pt)
	}
}

func (p *Player) moveGroup(w *World, units []*Unit, pt Point) {
	for _, u := range units {
		p.order(u, "move", u.SetPath(pt, w.Map))
	}
	p.moveFeedback = &MoveFeedback{At: pt, Time: moveFeedbackTicks}
	p.play("click")
}

func (p *Player) order(u *Unit, what string, err error) {
	if err != nil {
		p.commandFailed(u.Label(), what, err)
		return
	}
	p.play("click")
	p.record(u.Label(), "command", what, u.state.String(), 0)
}

func (p *Player) commandFailed(label, what string, err error) {
	level := slog.LevelDebug
	if !errors.Is(err, ErrUnreachable) && !errors.Is(err, ErrInsufficientResources) {
		level = slog.LevelInfo
	}
	slog.Log(context.Background(), level, "command refused", "player", p.Name, "entity", label, "command", what, "error", err)
	p.record(label, "command", "failed", fmt.Sprintf("%s: %v", what, err), 0)
}
