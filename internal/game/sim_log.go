package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Entity   string  // label e.g. "worker-3f2a", or "--" for player-level events
	Player   string  // owning player name
	Category string  // state, command, combat, economy, build, task, ai, select, unit, building, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] worker-3f2a human    state    change           idle → moving
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-14s %-8s %-8s %-16s %s",
		e.Tick, e.Entity, e.Player, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from the simulation. It is unbounded
// and machine-readable; reports and tests read it back.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position/speed/stat
// entries are also recorded (useful for detailed debugging).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, player, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, player, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, entity, player, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FilterPlayer returns entries recorded for one player.
func (sl *SimLog) FilterPlayer(name string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Player == name {
			out = append(out, e)
		}
	}
	return out
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(tick int, players []*Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	for _, p := range players {
		states := map[UnitState]int{}
		for _, u := range p.units {
			states[u.state]++
		}
		built := 0
		for _, b := range p.buildings {
			if b.built {
				built++
			}
		}
		fmt.Fprintf(&sb, "%s: resources=%d units=%d buildings=%d (built %d)\n",
			p.Name, p.Resources, len(p.units), len(p.buildings), built)
		fmt.Fprintf(&sb, "  states: ")
		for s := UnitIdle; s <= UnitDead; s++ {
			if n := states[s]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", s, n)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "kills=%d deposits=%d spends=%d failed_commands=%d\n",
		sl.CountCategory("combat", "kill"),
		sl.CountCategory("economy", "deposit"),
		sl.CountCategory("economy", "spend"),
		sl.CountCategory("command", "failed")+sl.CountCategory("ai", "command_failed"))
	return sb.String()
}
