package game

// Config holds the knobs for building a World.
type Config struct {
	Cols, Rows        int
	TileSize          float64
	Seed              int64
	StartingResources int
	Verbose           bool // record per-tick position entries in the SimLog
	Policy            PolicyConfig

	// Map and Sound override the defaults when set.
	Map   Map
	Sound Sound
}

// DefaultConfig returns the skirmish defaults.
func DefaultConfig() Config {
	return Config{
		Cols:              28,
		Rows:              10,
		TileSize:          DefaultTileSize,
		Seed:              1,
		StartingResources: 200,
		Policy:            DefaultPolicyConfig(),
	}
}

// Option adjusts a Config before the World is built.
type Option func(*Config)

// WithMapSize sets the grid size in tiles.
func WithMapSize(cols, rows int) Option {
	return func(c *Config) {
		c.Cols = cols
		c.Rows = rows
	}
}

// WithMap supplies a ready-made map instead of an open grid.
func WithMap(m Map) Option {
	return func(c *Config) { c.Map = m }
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithStartingResources sets every player's opening ledger.
func WithStartingResources(n int) Option {
	return func(c *Config) { c.StartingResources = max(n, 0) }
}

// WithPolicy replaces the CPU policy configuration.
func WithPolicy(pc PolicyConfig) Option {
	return func(c *Config) { c.Policy = pc }
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}

// WithSound routes sound effects to s.
func WithSound(s Sound) Option {
	return func(c *Config) { c.Sound = s }
}
