package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// PolicyConfig tunes the CPU controller.
type PolicyConfig struct {
	MoveRate        float64 // chance per tick of a random move order
	WorkerBuildRate float64 // chance per tick of trying to build a worker
	MoveRegion      Rect    // where random move orders are sent

	// Rules replaces the default rule set when non-empty.
	Rules []*PolicyRule
}

// DefaultPolicyConfig returns the stock CPU behaviour.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		MoveRate:        0.01,
		WorkerBuildRate: 0.001,
		MoveRegion:      Rect{X: 18 * DefaultTileSize, Y: DefaultTileSize, W: 5 * DefaultTileSize, H: 7 * DefaultTileSize},
	}
}

// PolicyActionFunc issues commands when a rule's condition holds.
type PolicyActionFunc func(env PolicyEnv) error

// PolicyRule is a condition → action pair. Rules run by descending
// priority; an exclusive rule that fires blocks the rest of its category
// for that tick.
type PolicyRule struct {
	Name         string
	Priority     int
	Category     string
	Exclusive    bool
	ConditionSrc string // expr source evaluated against PolicyEnv
	Action       PolicyActionFunc

	program *vm.Program
}

// DefaultPolicyRules returns the random-wander and build-worker rules.
func DefaultPolicyRules() []*PolicyRule {
	return []*PolicyRule{
		{
			Name:         "build-worker",
			Priority:     200,
			Category:     "production",
			Exclusive:    true,
			ConditionSrc: `HasBase() && Roll() < WorkerBuildRate`,
			Action:       ActionBuildWorker,
		},
		{
			Name:         "wander",
			Priority:     100,
			Category:     "army",
			Exclusive:    true,
			ConditionSrc: `UnitCount() > 0 && Roll() < MoveRate`,
			Action:       ActionWander,
		},
	}
}

// PolicyEnv is what rule conditions see. Exported methods and fields are
// callable from expr.
type PolicyEnv struct {
	Tick            int
	MoveRate        float64
	WorkerBuildRate float64
	MoveRegion      Rect

	world  *World
	player *Player
	rng    *rand.Rand
}

func (e PolicyEnv) World() *World   { return e.world }
func (e PolicyEnv) Player() *Player { return e.player }

// Roll draws a uniform number in [0, 1).
func (e PolicyEnv) Roll() float64 { return e.rng.Float64() }

func (e PolicyEnv) UnitCount() int     { return len(e.player.units) }
func (e PolicyEnv) BuildingCount() int { return len(e.player.buildings) }
func (e PolicyEnv) Resources() int     { return e.player.Resources }
func (e PolicyEnv) HasBase() bool      { return e.player.PrimaryBase() != nil }

// IdleCount returns how many units have no orders.
func (e PolicyEnv) IdleCount() int {
	n := 0
	for _, u := range e.player.units {
		if u.state == UnitIdle {
			n++
		}
	}
	return n
}

// CanAfford reports whether the primary base's named action is actionable.
func (e PolicyEnv) CanAfford(action string) bool {
	base := e.player.PrimaryBase()
	if base == nil {
		return false
	}
	a, ok := FindAction(base.Actions(e.player), action)
	return ok && a.Actionable()
}

// ActionWander sends a uniformly random unit to a random point in the region.
func ActionWander(env PolicyEnv) error {
	units := env.player.units
	if len(units) == 0 {
		return ErrNotFound
	}
	u := units[env.rng.Intn(len(units))]
	r := env.MoveRegion.Normalize()
	dest := Point{
		X: math.Floor(r.X + env.rng.Float64()*r.W),
		Y: math.Floor(r.Y + env.rng.Float64()*r.H),
	}
	if err := u.SetPath(dest, env.world.Map); err != nil {
		return fmt.Errorf("move %s to (%.0f,%.0f): %w", u.Label(), dest.X, dest.Y, err)
	}
	slog.Debug("cpu moving unit", "player", env.player.Name, "unit", u.Label(), "x", dest.X, "y", dest.Y)
	return nil
}

// ActionBuildWorker runs "build worker" on the primary base.
func ActionBuildWorker(env PolicyEnv) error {
	base := env.player.PrimaryBase()
	if base == nil {
		return ErrNotFound
	}
	a, ok := FindAction(base.Actions(env.player), "build worker")
	if !ok {
		return fmt.Errorf("build worker on %s: %w", base.Label(), ErrNotActionable)
	}
	if err := a.Execute(env.player); err != nil {
		return fmt.Errorf("build worker on %s: %w", base.Label(), err)
	}
	slog.Debug("cpu building worker", "player", env.player.Name, "base", base.Label(), "resources", env.player.Resources)
	return nil
}

// CPUController is the stochastic computer player. It issues commands only
// through the same Player and Unit methods a human uses.
type CPUController struct {
	cfg   PolicyConfig
	rules []*PolicyRule
	rng   *rand.Rand
}

// NewCPUController compiles the rule conditions. A nil rng gets seed 1.
func NewCPUController(cfg PolicyConfig, rng *rand.Rand) (*CPUController, error) {
	rules := cfg.Rules
	if len(rules) == 0 {
		rules = DefaultPolicyRules()
	}
	compiled, err := compilePolicyRules(rules)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- game simulation
	}
	return &CPUController{cfg: cfg, rules: compiled, rng: rng}, nil
}

// Rules returns the compiled rules in evaluation order.
func (c *CPUController) Rules() []*PolicyRule { return c.rules }

// Resolve evaluates every rule once. Failed commands are logged and never
// stop the tick.
func (c *CPUController) Resolve(w *World, p *Player, _ Input) {
	env := PolicyEnv{
		Tick:            w.CurrentTick(),
		MoveRate:        c.cfg.MoveRate,
		WorkerBuildRate: c.cfg.WorkerBuildRate,
		MoveRegion:      c.cfg.MoveRegion,
		world:           w,
		player:          p,
		rng:             c.rng,
	}
	fired := make(map[string]bool)
	for _, r := range c.rules {
		if fired[r.Category] {
			continue
		}
		out, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("policy condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := out.(bool); !ok || !match {
			continue
		}
		p.record("--", "ai", "rule_fired", r.Name, float64(r.Priority))
		if err := r.Action(env); err != nil {
			slog.Info("cpu command failed", "player", p.Name, "rule", r.Name, "resources", p.Resources, "error", err)
			p.record("--", "ai", "command_failed", fmt.Sprintf("%s: %v", r.Name, err), 0)
		}
		if r.Exclusive {
			fired[r.Category] = true
		}
	}
}

func compilePolicyRules(rules []*PolicyRule) ([]*PolicyRule, error) {
	out := make([]*PolicyRule, 0, len(rules))
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("policy rule %q has no action", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(PolicyEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile policy rule %q: %w", r.Name, err)
		}
		rc := *r
		rc.program = prog
		out = append(out, &rc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}
