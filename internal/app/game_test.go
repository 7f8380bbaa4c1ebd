package app

import (
	"strings"
	"testing"

	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/spawn"
	"go-td-core/pkg/grid"
)

func testLibrary(enemySpeed float64, twoPaths bool) *defs.Library {
	lib := defs.NewLibrary()
	lib.AddTowers(defs.TowerDefinition{
		ID: "ARROW", Cost: 50, Damage: 10, Range: 2.5, FireRate: 1, MaxLevel: 1,
	})
	lib.AddEnemies(defs.EnemyDefinition{
		ID: "GRUNT", Health: 20, Speed: enemySpeed, GoldReward: 5, AttackDamage: 2, Experience: 10,
	})

	count, interval := 1, 0.0
	pattern := defs.PatternInstant
	if twoPaths {
		count, interval, pattern = 6, 0.5, defs.PatternStaggered
	}
	lib.AddTimelines(defs.SpawnTimeline{
		ID: "test", Name: "test", TotalDuration: 100,
		Events: []defs.SpawnEvent{{Name: "opening", EnemyID: "GRUNT", Count: count, Pattern: pattern, SpawnInterval: interval}},
	})

	m := defs.MapDefinition{
		ID: "strip", Width: 10, Height: 5, CellSize: 1,
		Paths: []defs.PathDefinition{{Name: "a", Waypoints: []defs.WaypointDefinition{
			{Order: 0, X: 0.5, Z: 1.5}, {Order: 1, X: 9.5, Z: 1.5},
		}}},
	}
	if twoPaths {
		m.Paths = append(m.Paths, defs.PathDefinition{Name: "b", Waypoints: []defs.WaypointDefinition{
			{Order: 1, X: 9.5, Z: 3.5}, {Order: 0, X: 0.5, Z: 3.5},
		}})
	}
	lib.AddMaps(m)
	lib.SkillTrees = []defs.SkillTree{{ID: "eco", Skills: []defs.SkillDefinition{
		{ID: "FRUGAL", Cost: 1, Modifiers: []defs.StatModifier{{Stat: defs.StatBuildCost, Value: -10}}},
	}}}
	return lib
}

func newTestGame(t *testing.T, lib *defs.Library, opts Options) *Game {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g, err := NewGame(lib, opts)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func runTicks(g *Game, dt float64, n int) {
	for i := 0; i < n; i++ {
		g.Tick(dt)
	}
}

func TestNewGameBuildsBoard(t *testing.T) {
	g := newTestGame(t, testLibrary(1, false), Options{})
	if g.Ledger.Balance() != 200 || g.Base.Health() != 20 {
		t.Errorf("gold %d health %d, want config defaults", g.Ledger.Balance(), g.Base.Health())
	}
	if n := g.Grid.Count(grid.Path); n != 10 {
		t.Errorf("path cells = %d, want 10", n)
	}
	if c, _ := g.Grid.Cell(3, 1); c.Type != grid.Path {
		t.Errorf("cell (3, 1) = %s, want Path", c.Type)
	}
	if _, err := NewGame(testLibrary(1, false), Options{MapID: "missing"}); err == nil {
		t.Error("expected an error for an unknown map")
	}
}

func TestTowerKillsEnemyAndEarnsReward(t *testing.T) {
	g := newTestGame(t, testLibrary(1, false), Options{})
	kills := 0
	g.Events.Subscribe(event.EnemyKilled, event.ListenerFunc(func(event.Event) { kills++ }))

	if res := g.BuildTower("ARROW", 2, 0); !res.OK {
		t.Fatalf("BuildTower: %+v", res)
	}
	if res := g.StartSpawning(); !res.OK {
		t.Fatalf("StartSpawning: %+v", res)
	}
	runTicks(g, 0.1, 50)

	if kills != 1 {
		t.Fatalf("kills = %d, want 1", kills)
	}
	if g.Enemies.Len() != 0 {
		t.Errorf("%d enemies left after the kill", g.Enemies.Len())
	}
	if g.Ledger.Balance() != 155 {
		t.Errorf("balance = %d, want 155", g.Ledger.Balance())
	}
	if tw := g.Towers.Towers()[0]; tw.Experience() != 10 {
		t.Errorf("tower experience = %d, want 10", tw.Experience())
	}
}

func TestBaseDefeatEndsGame(t *testing.T) {
	g := newTestGame(t, testLibrary(5, false), Options{BaseHealth: 2})
	g.StartSpawning()
	runTicks(g, 0.1, 40)

	if !g.Over() || g.Base.Health() != 0 {
		t.Fatalf("over %v health %d", g.Over(), g.Base.Health())
	}
	if g.Spawner.State() == spawn.Running {
		t.Error("spawner still running after defeat")
	}
	if res := g.BuildTower("ARROW", 2, 0); res.Reason != "game_over" {
		t.Errorf("BuildTower after defeat = %+v", res)
	}
}

func TestSubmitRunsOnNextTick(t *testing.T) {
	g := newTestGame(t, testLibrary(1, false), Options{})
	var results []event.CommandData
	g.Events.Subscribe(event.CommandExecuted, event.ListenerFunc(func(e event.Event) {
		results = append(results, e.Data.(event.CommandData))
	}))

	if !g.Submit(Command{Name: CmdBuildTower, DefID: "ARROW", X: 2, Y: 0}) {
		t.Fatal("Submit rejected")
	}
	g.Submit(Command{Name: CmdBuildTower, DefID: "ARROW", X: 3, Y: 1})
	if g.Towers.Len() != 0 {
		t.Fatal("command ran before Tick")
	}
	g.Tick(0.01)

	if g.Towers.Len() != 1 {
		t.Errorf("towers = %d, want 1", g.Towers.Len())
	}
	if len(results) != 2 || !results[0].OK || results[1].Reason != "cell_unavailable" {
		t.Errorf("results = %+v", results)
	}
}

func TestCommandReasons(t *testing.T) {
	g := newTestGame(t, testLibrary(1, false), Options{})
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"place without mode", g.PlaceTower(2, 2), "not_placing"},
		{"unknown tower", g.StartPlacement("NOPE"), "unknown_tower"},
		{"off grid", g.BuildTower("ARROW", 20, 20), "invalid_cell"},
		{"spend too much", g.SpendGold(1000), "insufficient_gold"},
		{"negative earn", g.EarnGold(-5), "invalid_amount"},
		{"unknown skill", g.UnlockSkill("NOPE"), "unknown_skill"},
		{"no points", g.UnlockSkill("FRUGAL"), "insufficient_points"},
		{"closed panel", g.ChooseUpgrade(0), "panel_closed"},
		{"missing tower", g.RemoveTower(99), "tower_not_found"},
		{"resume idle", g.ResumeSpawning(), "not_paused"},
	}
	for _, tt := range tests {
		if tt.res.OK || tt.res.Reason != tt.want {
			t.Errorf("%s: got %+v, want reason %q", tt.name, tt.res, tt.want)
		}
	}
	if res := g.Execute(Command{Name: "dance"}); res.OK || !strings.HasPrefix(res.Reason, "unknown_command") {
		t.Errorf("unknown command = %+v", res)
	}
}

func TestSkillDiscountsPlacement(t *testing.T) {
	g := newTestGame(t, testLibrary(1, false), Options{})
	if res := g.AddSkillPoints(1); !res.OK {
		t.Fatal(res.Reason)
	}
	if res := g.UnlockSkill("FRUGAL"); !res.OK {
		t.Fatal(res.Reason)
	}
	if res := g.BuildTower("ARROW", 2, 0); !res.OK {
		t.Fatal(res.Reason)
	}
	if g.Ledger.Balance() != 155 {
		t.Errorf("balance = %d, want 155", g.Ledger.Balance())
	}
}

func spawnTrace(t *testing.T, seed int64) []int {
	g := newTestGame(t, testLibrary(1, true), Options{Seed: seed})
	var trace []int
	g.Events.Subscribe(event.EnemySpawned, event.ListenerFunc(func(e event.Event) {
		trace = append(trace, e.Data.(event.EnemyData).PathIndex)
	}))
	g.StartSpawning()
	runTicks(g, 0.1, 40)
	return trace
}

func TestSameSeedSameRun(t *testing.T) {
	a, b := spawnTrace(t, 1234), spawnTrace(t, 1234)
	if len(a) != 6 {
		t.Fatalf("spawned %d enemies, want 6", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at spawn %d: %v vs %v", i, a, b)
		}
	}
}

func TestCompletedTimelineNeedsRestart(t *testing.T) {
	lib := testLibrary(1, false)
	lib.Timelines["test"].TotalDuration = 1
	g := newTestGame(t, lib, Options{})

	if res := g.StartSpawning(); !res.OK {
		t.Fatalf("StartSpawning: %+v", res)
	}
	runTicks(g, 0.1, 15)
	if g.Spawner.State() != spawn.Complete {
		t.Fatalf("spawner state = %v, want Complete", g.Spawner.State())
	}
	if res := g.StartSpawning(); res.Reason != "timeline_complete" {
		t.Errorf("StartSpawning after completion = %+v", res)
	}
	if res := g.RestartSpawning(); !res.OK || g.Spawner.State() != spawn.Running {
		t.Errorf("RestartSpawning = %+v, state %v", res, g.Spawner.State())
	}
}
