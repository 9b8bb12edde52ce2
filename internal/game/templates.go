package game

// UnitKind selects a unit template.
type UnitKind int

const (
	UnitWorker UnitKind = iota
	UnitShade
	UnitGoblin
	UnitBrute
	unitKindCount
)

// UnitTemplate holds the static stats every unit of a kind shares.
type UnitTemplate struct {
	Name      string
	Health    int
	Speed     float64 // pixels per tick
	Damage    int     // per hit
	Range     float64 // pixels from the unit to the target hitbox edge
	Cooldown  int     // ticks between hits
	Radius    float64 // hitbox half-size
	CanMine   bool
	CanBuild  bool
	Carry     int // resources carried per mining trip
	Cost      int
	TrainTime int // ticks in a production queue
}

var unitTemplates = [unitKindCount]UnitTemplate{
	UnitWorker: {Name: "worker", Health: 40, Speed: 3, Damage: 2, Range: 20, Cooldown: 40, Radius: 16, CanMine: true, CanBuild: true, Carry: 8, Cost: 50, TrainTime: 120},
	UnitShade:  {Name: "shade", Health: 60, Speed: 5, Damage: 6, Range: 120, Cooldown: 30, Radius: 16, Cost: 100, TrainTime: 200},
	UnitGoblin: {Name: "goblin", Health: 50, Speed: 4, Damage: 5, Range: 20, Cooldown: 20, Radius: 16, CanMine: true, Carry: 5, Cost: 75, TrainTime: 150},
	UnitBrute:  {Name: "brute", Health: 140, Speed: 2.5, Damage: 14, Range: 24, Cooldown: 45, Radius: 20, Cost: 150, TrainTime: 300},
}

// Template returns the stats for the kind.
func (k UnitKind) Template() UnitTemplate {
	if k < 0 || k >= unitKindCount {
		return unitTemplates[UnitWorker]
	}
	return unitTemplates[k]
}

func (k UnitKind) String() string { return k.Template().Name }

// BuildingKind selects a building template and its capability menu.
type BuildingKind int

const (
	BuildingBase BuildingKind = iota
	BuildingBarracks
	buildingKindCount
)

// BuildingTemplate holds the static stats of a building kind.
type BuildingTemplate struct {
	Name      string
	Health    int
	SizeX     float64
	SizeY     float64
	BuildTime int // ticks of construction
	Cost      int
}

var buildingTemplates = [buildingKindCount]BuildingTemplate{
	BuildingBase:     {Name: "base", Health: 1000, SizeX: 3 * DefaultTileSize, SizeY: 2 * DefaultTileSize, BuildTime: 600, Cost: 400},
	BuildingBarracks: {Name: "barracks", Health: 600, SizeX: 2 * DefaultTileSize, SizeY: 2 * DefaultTileSize, BuildTime: 400, Cost: 150},
}

// Template returns the stats for the kind.
func (k BuildingKind) Template() BuildingTemplate {
	if k < 0 || k >= buildingKindCount {
		return buildingTemplates[BuildingBase]
	}
	return buildingTemplates[k]
}

func (k BuildingKind) String() string { return k.Template().Name }
