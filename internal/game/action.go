package game

const (
	// ActionSlots is the size of every action menu.
	ActionSlots = 9
	// CancelSlot is where cancel and stop live.
	CancelSlot = 8
)

// Action is one entry of an action menu. Menus are rebuilt from the entity
// and player every time they are requested, so an Action never outlives the
// state it was derived from by more than a frame.
type Action struct {
	Name string
	Cost int
	Icon string

	actionable func() bool
	execute    func(p *Player) error
}

// Empty reports whether the slot holds no action.
func (a Action) Empty() bool { return a.execute == nil }

// Actionable reports whether Execute is expected to succeed right now.
func (a Action) Actionable() bool {
	if a.Empty() {
		return false
	}
	return a.actionable == nil || a.actionable()
}

// Execute runs the action. It re-checks its own preconditions; a refused
// action leaves the player and the world unchanged.
func (a Action) Execute(p *Player) error {
	if a.Empty() {
		return ErrNotActionable
	}
	return a.execute(p)
}

// FindAction returns the first action in the menu with the given name.
func FindAction(menu [ActionSlots]Action, name string) (Action, bool) {
	for _, a := range menu {
		if !a.Empty() && a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

func cancelBuildingAction(b *Building) Action {
	return Action{
		Name:       "cancel",
		Icon:       "cancel",
		actionable: func() bool { return !b.Built() },
		execute: func(p *Player) error {
			if err := p.CancelBuilding(b.ID()); err != nil {
				return err
			}
			p.ClearSelection()
			return nil
		},
	}
}

// trainAction queues production of a unit kind on b.
func trainAction(b *Building, p *Player, verb string, kind UnitKind) Action {
	t := kind.Template()
	return Action{
		Name:       verb + " " + t.Name,
		Cost:       t.Cost,
		Icon:       t.Name,
		actionable: func() bool { return b.Built() && b.Alive() && p.CanAfford(t.Cost) },
		execute: func(p *Player) error {
			if !b.Built() || !b.Alive() {
				return ErrNotActionable
			}
			if err := p.Spend(b.Label(), t.Cost); err != nil {
				return err
			}
			b.QueueTask(Task{
				Name: t.Name,
				Time: t.TrainTime,
				Icon: t.Name,
				Complete: func(p *Player) {
					rp := b.rallyPoint()
					u := p.AddUnit(kind, rp.X, rp.Y)
					p.record(b.Label(), "task", "spawn", u.Label(), 0)
				},
			}, p)
			return nil
		},
	}
}

func baseActions(b *Building, p *Player) [ActionSlots]Action {
	var out [ActionSlots]Action
	out[0] = trainAction(b, p, "build", UnitWorker)
	return out
}

func barracksActions(b *Building, p *Player) [ActionSlots]Action {
	var out [ActionSlots]Action
	out[0] = trainAction(b, p, "train", UnitGoblin)
	out[1] = trainAction(b, p, "train", UnitBrute)
	out[2] = trainAction(b, p, "train", UnitShade)
	return out
}

// placeAction puts the player into placement mode for a building kind.
func placeAction(u *Unit, p *Player, kind BuildingKind) Action {
	t := kind.Template()
	return Action{
		Name:       "build " + t.Name,
		Cost:       t.Cost,
		Icon:       t.Name,
		actionable: func() bool { return u.orderable() && p.CanAfford(t.Cost) },
		execute: func(p *Player) error {
			return p.BeginPlacement(u.ID(), kind)
		},
	}
}

func stopAction(u *Unit) Action {
	return Action{
		Name:       "stop",
		Icon:       "stop",
		actionable: u.orderable,
		execute:    func(*Player) error { return u.Stop() },
	}
}

// Actions returns the unit's action menu.
func (u *Unit) Actions(p *Player) [ActionSlots]Action {
	var out [ActionSlots]Action
	if u.tmpl.CanBuild {
		out[0] = placeAction(u, p, BuildingBase)
		out[1] = placeAction(u, p, BuildingBarracks)
	}
	out[CancelSlot] = stopAction(u)
	return out
}
