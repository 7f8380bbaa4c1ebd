// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/economy"
	"go-td-core/internal/enemy"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/player"
	"go-td-core/internal/skill"
	"go-td-core/internal/spawn"
	"go-td-core/internal/tower"
	"go-td-core/internal/types"
	"go-td-core/internal/utils"
	"go-td-core/pkg/geom"
	"go-td-core/pkg/grid"
	"go-td-core/pkg/path"
)

// Options configure a new game. Zero values pick the defaults from config.
type Options struct {
	Seed         int64
	MapID        string
	TimelineID   string
	StartingGold int
	BaseHealth   int
	SkillStore   skill.Store
}

// Game owns every simulation component and advances them in a fixed order.
type Game struct {
	Library  *defs.Library
	Map      *defs.MapDefinition
	World    *entity.World
	Events   *event.Dispatcher
	Rng      *utils.PRNGService
	Grid     *grid.Grid
	Paths    []*path.Data
	Ledger   *economy.Ledger
	Base     *player.Base
	Skills   *skill.Graph
	Spawner  *spawn.Scheduler
	Towers   *tower.Manager
	Panel    *tower.UpgradePanel
	Enemies  *entity.Registry[*enemy.Agent]
	commands chan Command
	over     bool
}

// NewGame builds the board from the chosen map and wires every component.
func NewGame(lib *defs.Library, opts Options) (*Game, error) {
	if lib == nil {
		return nil, errors.New("nil definition library")
	}
	mapDef, err := pickMap(lib, opts.MapID)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Library:  lib,
		Map:      mapDef,
		World:    entity.NewWorld(),
		Events:   event.NewDispatcher(),
		Rng:      utils.NewPRNGService(opts.Seed),
		Enemies:  entity.NewRegistry[*enemy.Agent](),
		commands: make(chan Command, config.CommandQueueSize),
	}

	if err := g.buildBoard(); err != nil {
		return nil, err
	}

	gold := opts.StartingGold
	if gold <= 0 {
		gold = config.StartingGold
	}
	health := opts.BaseHealth
	if health <= 0 {
		health = config.StartingBaseHealth
	}
	g.Ledger = economy.NewLedger(gold, g.Events)
	g.Base = player.NewBase(health, g.Events)

	g.Skills = skill.NewGraph(lib.SkillTrees, opts.SkillStore, g.Events)
	g.Skills.Load()

	g.Towers = tower.NewManager(lib.Towers, g.Grid, g.Ledger, g.Skills, g.World, g.Events)
	g.Panel = tower.NewUpgradePanel(g.Rng, g.Events)

	timeline := pickTimeline(lib, opts.TimelineID)
	if timeline == nil {
		log.Printf("Game: no spawn timeline available, spawning disabled")
	}
	g.Spawner = spawn.NewScheduler(timeline, g, g.Rng, g.Events)

	g.Events.Subscribe(event.PlayerDefeated, event.ListenerFunc(g.onDefeat))

	log.Printf("Game: map %q ready with %d path(s), %d gold, %d base health", mapDef.ID, len(g.Paths), gold, health)
	return g, nil
}

func (g *Game) buildBoard() error {
	m := g.Map
	cellSize := m.CellSize
	if cellSize <= 0 {
		cellSize = config.DefaultCellSize
	}
	board, err := grid.New(m.Width, m.Height, cellSize)
	if err != nil {
		return fmt.Errorf("failed to create grid for map %q: %w", m.ID, err)
	}
	for _, p := range m.Blocked {
		if !board.SetCellType(p.X, p.Y, grid.Blocked) {
			log.Printf("Game: blocked cell (%d, %d) is outside map %q", p.X, p.Y, m.ID)
		}
	}

	containers := make([]path.Container, 0, len(m.Paths))
	for _, pd := range m.Paths {
		policy, err := grid.ParseRasterPolicy(pd.Raster)
		if err != nil {
			log.Printf("Game: path %q: %v, using AUTO", pd.Name, err)
		}
		c := path.Container{Name: pd.Name, Raster: policy}
		for _, wp := range pd.Waypoints {
			c.Waypoints = append(c.Waypoints, path.Waypoint{Order: wp.Order, Position: geom.V3(wp.X, 0, wp.Z)})
		}
		containers = append(containers, c)
	}

	paths := path.Detect(containers)
	if len(paths) == 0 {
		return fmt.Errorf("map %q has no usable paths", m.ID)
	}
	for _, w := range path.Validate(paths, m.Tolerance) {
		log.Printf("PathDetector: %s", w)
	}
	if m.SnapWaypoints {
		path.Snap(board, paths)
	}
	marked := path.MarkOnGrid(board, paths)
	for _, w := range path.CheckConnectivity(board, paths) {
		log.Printf("PathDetector: %s", w)
	}
	log.Printf("Game: marked %d path cells", marked)

	board.OnChange(func(x, y int, from, to grid.CellType) {
		g.Events.Publish(event.Event{Type: event.CellTypeChanged, Data: event.CellChangedData{
			X: x, Y: y, From: from.String(), To: to.String(),
		}})
	})

	g.Grid = board
	g.Paths = paths
	return nil
}

func pickMap(lib *defs.Library, id string) (*defs.MapDefinition, error) {
	if id != "" {
		m, ok := lib.Maps[id]
		if !ok {
			return nil, fmt.Errorf("unknown map %q", id)
		}
		return m, nil
	}
	ids := sortedKeys(lib.Maps)
	if len(ids) == 0 {
		return nil, errors.New("library has no maps")
	}
	return lib.Maps[ids[0]], nil
}

func pickTimeline(lib *defs.Library, id string) *defs.SpawnTimeline {
	if id != "" {
		if tl, ok := lib.Timelines[id]; ok {
			return tl
		}
		log.Printf("Game: unknown timeline %q", id)
		return nil
	}
	ids := sortedKeys(lib.Timelines)
	if len(ids) == 0 {
		return nil
	}
	return lib.Timelines[ids[0]]
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tick advances the simulation by dt seconds.
func (g *Game) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	g.drainCommands()

	if !g.over {
		g.World.GameTime += dt
		g.Spawner.Tick(dt)

		for _, a := range g.Enemies.Values() {
			a.Tick(dt)
		}

		g.Towers.Tick(g.World.GameTime, dt, g.targets())
		g.sweep()
	}

	g.Events.Flush()
}

// targets lists alive enemies in spawn order.
func (g *Game) targets() []tower.Target {
	out := make([]tower.Target, 0, g.Enemies.Len())
	g.Enemies.Each(func(_ types.EntityID, a *enemy.Agent) {
		if a.IsAlive() {
			out = append(out, a)
		}
	})
	return out
}

func (g *Game) sweep() {
	g.Enemies.RemoveIf(func(a *enemy.Agent) bool { return a.Finished() })
}

// Spawn creates an enemy for a scheduler request.
func (g *Game) Spawn(req spawn.Request) {
	def, ok := g.Library.Enemies[req.EnemyID]
	if !ok {
		log.Printf("Game: cannot spawn unknown enemy %q", req.EnemyID)
		return
	}

	idx := req.PathIndex
	switch {
	case idx == spawn.AnyPath:
		idx = g.Rng.Intn(len(g.Paths))
	case idx < 0 || idx >= len(g.Paths):
		log.Printf("Game: path index %d out of range for %q, using path 0", idx, req.EnemyID)
		idx = 0
	}

	a, err := enemy.New(g.World.NewEntity(), def, g.Paths[idx], idx, g.Ledger, g.Base, g.Events)
	if err != nil {
		log.Printf("Game: failed to spawn %q: %v", req.EnemyID, err)
		return
	}
	if m := req.HealthMultiplier; m > 0 && m != 1 {
		a.ApplyHealthMultiplier(m)
	}
	if m := req.DifficultyMultiplier; m > 0 && m != 1 {
		a.ApplyDifficultyMultiplier(m)
	}
	if bonus := g.Skills.ModifierValue(defs.StatGoldDrop, ""); bonus != 0 && 1+bonus/100 > 0 {
		a.ScaleReward(1 + bonus/100)
	}
	if req.Offset != (geom.Vec3{}) {
		a.SetOffset(req.Offset)
	}

	g.Enemies.Add(a.ID(), a)
	g.Events.Publish(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{
		ID:        a.ID(),
		DefID:     a.DefID(),
		Position:  a.Position(),
		PathIndex: idx,
		Health:    a.Health(),
		Reward:    a.GoldReward(),
		Damage:    a.AttackDamage(),
	}})
}

func (g *Game) onDefeat(event.Event) {
	if g.over {
		return
	}
	g.over = true
	g.Spawner.Stop()
	g.Towers.CancelPlacement()
	g.Panel.Close()
	log.Printf("Game: base destroyed at %.2fs", g.World.GameTime)
}

// Over reports whether the base has been destroyed.
func (g *Game) Over() bool { return g.over }

// Time is the simulated time in seconds.
func (g *Game) Time() float64 { return g.World.GameTime }

// EnemyList returns live enemies in spawn order.
func (g *Game) EnemyList() []*enemy.Agent { return g.Enemies.Values() }

// Close persists skill progress.
func (g *Game) Close() error {
	return g.Skills.Save()
}
