package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/skirmish/internal/game"
)

type playerFinal struct {
	name      string
	resources int
	units     int
	buildings int
}

type runStats struct {
	runIndex int
	seed     int64

	firstSpawnTick   int
	firstDepositTick int
	firstDamageTick  int
	firstKillTick    int

	stateChanges   int
	spends         int
	deposits       int
	rulesFired     map[string]int
	failedCommands int
	spawns         int

	finals []playerFinal
	window *game.WindowReport
}

// reportEvery is how often the reporter samples the world (1s at 60TPS).
const reportEvery = 60

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var moveRate float64
	var buildRate float64
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&moveRate, "move-rate", 0.01, "CPU chance per tick of a wander order")
	flag.Float64Var(&buildRate, "build-rate", 0.001, "CPU chance per tick of training a worker")
	flag.StringVar(&logLevel, "log-level", "warn", "slog level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Printf("error: bad -log-level %q\n", logLevel)
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d move_rate=%.4f build_rate=%.4f\n\n",
		runs, ticks, seedBase, seedStep, moveRate, buildRate)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runCPUSkirmish(i+1, seed, ticks, moveRate, buildRate)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

// runCPUSkirmish plays the stock skirmish with the CPU policy on both sides.
// The west player wanders around its own half of the map.
func runCPUSkirmish(runIndex int, seed int64, ticks int, moveRate, buildRate float64) (runStats, error) {
	east := game.DefaultPolicyConfig()
	east.MoveRate = moveRate
	east.WorkerBuildRate = buildRate

	west := east
	west.MoveRegion = game.Rect{X: 2 * game.DefaultTileSize, Y: game.DefaultTileSize, W: 5 * game.DefaultTileSize, H: 7 * game.DefaultTileSize}
	westCtrl, err := game.NewCPUController(west, rand.New(rand.NewSource(seed^0x5eed))) // #nosec G404 -- simulation
	if err != nil {
		return runStats{}, err
	}

	s, err := game.NewSkirmish(westCtrl, game.WithSeed(seed), game.WithPolicy(east))
	if err != nil {
		return runStats{}, err
	}
	reporter := game.NewSimReporter(0, false)
	reporter.Collect(s.World)
	for done := 0; done < ticks; done += reportEvery {
		s.World.RunTicks(min(reportEvery, ticks-done))
		reporter.Collect(s.World)
	}
	stats := collectStats(runIndex, seed, s.World)
	stats.window = reporter.WindowSummary()
	return stats, nil
}

func collectStats(runIndex int, seed int64, w *game.World) runStats {
	log := w.Log
	entries := log.Entries()
	fired := map[string]int{}
	for _, e := range log.Filter("ai", "rule_fired") {
		fired[e.Value]++
	}
	var finals []playerFinal
	for _, p := range w.Players() {
		finals = append(finals, playerFinal{
			name:      p.Name,
			resources: p.Resources,
			units:     len(p.Units()),
			buildings: len(p.Buildings()),
		})
	}
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		firstSpawnTick:   firstTick(entries, "task", "spawn", ""),
		firstDepositTick: firstTick(entries, "economy", "deposit", ""),
		firstDamageTick:  firstTick(entries, "combat", "damage", ""),
		firstKillTick:    firstTick(entries, "combat", "kill", ""),
		stateChanges:     log.CountCategory("state", "change"),
		spends:           log.CountCategory("economy", "spend"),
		deposits:         log.CountCategory("economy", "deposit"),
		rulesFired:       fired,
		failedCommands:   log.CountCategory("ai", "command_failed") + log.CountCategory("command", "failed"),
		spawns:           log.CountCategory("task", "spawn"),
		finals:           finals,
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStagnation flags runs where the economy never moved: nothing was
// trained and nothing was mined.
func detectStagnation(rs runStats) (bool, string) {
	var reasons []string
	if rs.spawns == 0 {
		reasons = append(reasons, "no_units_trained")
	}
	if rs.deposits == 0 {
		reasons = append(reasons, "no_deposits")
	}
	if rs.failedCommands > 0 && rs.failedCommands >= totalFired(rs) {
		reasons = append(reasons, "all_commands_failed")
	}
	stagnant := rs.spawns == 0 && rs.deposits == 0
	if len(reasons) == 0 {
		return false, "economy_active"
	}
	return stagnant, strings.Join(reasons, ",")
}

func totalFired(rs runStats) int {
	n := 0
	for _, v := range rs.rulesFired {
		n += v
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_spawn=%d first_deposit=%d first_damage=%d first_kill=%d\n",
		rs.firstSpawnTick, rs.firstDepositTick, rs.firstDamageTick, rs.firstKillTick)
	fmt.Printf("event_totals: state_change=%d spend=%d deposit=%d spawn=%d failed_commands=%d\n",
		rs.stateChanges, rs.spends, rs.deposits, rs.spawns, rs.failedCommands)
	fmt.Printf("rules_fired: %s\n", joinCounts(rs.rulesFired))
	for _, f := range rs.finals {
		fmt.Printf("final %-6s resources=%d units=%d buildings=%d\n", f.name, f.resources, f.units, f.buildings)
	}
	stagnant, reason := detectStagnation(rs)
	fmt.Printf("stagnant=%v (%s)\n", stagnant, reason)
	if rs.window != nil {
		fmt.Print(rs.window.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalState, totalSpend, totalDeposit, totalSpawn, totalFailed := 0, 0, 0, 0, 0
	spawnTicks := make([]int, 0, len(all))
	damageTicks := make([]int, 0, len(all))
	stagnant := 0
	fired := map[string]int{}
	for _, rs := range all {
		totalState += rs.stateChanges
		totalSpend += rs.spends
		totalDeposit += rs.deposits
		totalSpawn += rs.spawns
		totalFailed += rs.failedCommands
		if rs.firstSpawnTick >= 0 {
			spawnTicks = append(spawnTicks, rs.firstSpawnTick)
		}
		if rs.firstDamageTick >= 0 {
			damageTicks = append(damageTicks, rs.firstDamageTick)
		}
		if s, _ := detectStagnation(rs); s {
			stagnant++
		}
		for k, v := range rs.rulesFired {
			fired[k] += v
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stagnant_runs=%d\n", len(all), stagnant)
	fmt.Printf("avg_events_per_run: state_change=%.1f spend=%.1f deposit=%.1f spawn=%.1f failed_commands=%.1f\n",
		avg(totalState, len(all)), avg(totalSpend, len(all)), avg(totalDeposit, len(all)), avg(totalSpawn, len(all)), avg(totalFailed, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_spawn=%s first_damage=%s\n", avgTickString(spawnTicks), avgTickString(damageTicks))
	fmt.Printf("rules_fired_total: %s\n", joinCounts(fired))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
