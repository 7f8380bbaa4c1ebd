// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// File names inside a data directory.
const (
	TowersFile    = "towers.json"
	EnemiesFile   = "enemies.json"
	TimelinesFile = "timelines.json"
	SkillsFile    = "skills.json"
	MapsFile      = "maps.json"
)

// Library holds every loaded definition. Order slices keep the authored
// order for menus and deterministic iteration.
type Library struct {
	Towers     map[string]*TowerDefinition
	TowerOrder []string
	Enemies    map[string]*EnemyDefinition
	Timelines  map[string]*SpawnTimeline
	Maps       map[string]*MapDefinition
	SkillTrees []SkillTree
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		Towers:    make(map[string]*TowerDefinition),
		Enemies:   make(map[string]*EnemyDefinition),
		Timelines: make(map[string]*SpawnTimeline),
		Maps:      make(map[string]*MapDefinition),
	}
}

// LoadLibrary reads all definition files from dir and validates references.
func LoadLibrary(dir string) (*Library, error) {
	lib := NewLibrary()
	if err := lib.LoadTowerDefinitions(filepath.Join(dir, TowersFile)); err != nil {
		return nil, err
	}
	if err := lib.LoadEnemyDefinitions(filepath.Join(dir, EnemiesFile)); err != nil {
		return nil, err
	}
	if err := lib.LoadTimelines(filepath.Join(dir, TimelinesFile)); err != nil {
		return nil, err
	}
	if err := lib.LoadSkillTrees(filepath.Join(dir, SkillsFile)); err != nil {
		return nil, err
	}
	if err := lib.LoadMaps(filepath.Join(dir, MapsFile)); err != nil {
		return nil, err
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func readJSON(path, what string, v interface{}) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s file: %w", what, err)
	}
	if err := json.Unmarshal(file, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return nil
}

// LoadTowerDefinitions reads the tower configuration file.
func (l *Library) LoadTowerDefinitions(path string) error {
	var towerDefs []TowerDefinition
	if err := readJSON(path, "tower definitions", &towerDefs); err != nil {
		return err
	}
	l.AddTowers(towerDefs...)
	log.Printf("Loaded %d tower definitions", len(l.Towers))
	return nil
}

// AddTowers registers tower definitions, filling defaults.
func (l *Library) AddTowers(towerDefs ...TowerDefinition) {
	for i := range towerDefs {
		def := towerDefs[i]
		if def.Attack == "" {
			def.Attack = AttackSingle
		}
		if def.Targeting == "" {
			def.Targeting = TargetClosest
		}
		if def.MaxLevel < 1 {
			def.MaxLevel = 1
		}
		if _, exists := l.Towers[def.ID]; !exists {
			l.TowerOrder = append(l.TowerOrder, def.ID)
		}
		l.Towers[def.ID] = &def
	}
}

// LoadEnemyDefinitions reads the enemy configuration file.
func (l *Library) LoadEnemyDefinitions(path string) error {
	var enemyDefs []EnemyDefinition
	if err := readJSON(path, "enemy definitions", &enemyDefs); err != nil {
		return err
	}
	l.AddEnemies(enemyDefs...)
	log.Printf("Loaded %d enemy definitions", len(l.Enemies))
	return nil
}

func (l *Library) AddEnemies(enemyDefs ...EnemyDefinition) {
	for i := range enemyDefs {
		def := enemyDefs[i]
		l.Enemies[def.ID] = &def
	}
}

// LoadTimelines reads spawn timelines. Curves are sorted once here.
func (l *Library) LoadTimelines(path string) error {
	var timelines []SpawnTimeline
	if err := readJSON(path, "spawn timelines", &timelines); err != nil {
		return err
	}
	l.AddTimelines(timelines...)
	log.Printf("Loaded %d spawn timelines", len(l.Timelines))
	return nil
}

func (l *Library) AddTimelines(timelines ...SpawnTimeline) {
	for i := range timelines {
		tl := timelines[i]
		if c := tl.Continuous; c != nil {
			c.SpawnRate = c.SpawnRate.Sorted()
			c.HealthMultiplier = c.HealthMultiplier.Sorted()
			c.DifficultyCurve = c.DifficultyCurve.Sorted()
			for j := range c.Entries {
				c.Entries[j].WeightCurve = c.Entries[j].WeightCurve.Sorted()
			}
		}
		if d := tl.Difficulty; d != nil {
			d.RateMultiplier = d.RateMultiplier.Sorted()
		}
		l.Timelines[tl.ID] = &tl
	}
}

// LoadSkillTrees reads skill trees and logs validation warnings.
func (l *Library) LoadSkillTrees(path string) error {
	var trees []SkillTree
	if err := readJSON(path, "skill trees", &trees); err != nil {
		return err
	}
	l.SkillTrees = append(l.SkillTrees, trees...)
	for _, w := range ValidateSkillTrees(l.SkillTrees) {
		log.Printf("SkillTrees: %s", w)
	}
	log.Printf("Loaded %d skill trees", len(trees))
	return nil
}

// LoadMaps reads map definitions.
func (l *Library) LoadMaps(path string) error {
	var maps []MapDefinition
	if err := readJSON(path, "map definitions", &maps); err != nil {
		return err
	}
	l.AddMaps(maps...)
	log.Printf("Loaded %d maps", len(l.Maps))
	return nil
}

func (l *Library) AddMaps(maps ...MapDefinition) {
	for i := range maps {
		m := maps[i]
		l.Maps[m.ID] = &m
	}
}

// Validate checks cross references between definitions.
func (l *Library) Validate() error {
	var errs []error
	for _, id := range l.TowerOrder {
		def := l.Towers[id]
		if !def.Attack.Valid() {
			errs = append(errs, fmt.Errorf("tower %q: unknown attack type %q", id, def.Attack))
		}
		if !def.Targeting.Valid() {
			errs = append(errs, fmt.Errorf("tower %q: unknown targeting mode %q", id, def.Targeting))
		}
		if def.NextUpgradeID != "" {
			if _, ok := l.Towers[def.NextUpgradeID]; !ok {
				errs = append(errs, fmt.Errorf("tower %q: unknown next upgrade %q", id, def.NextUpgradeID))
			}
		}
	}
	for _, def := range l.Enemies {
		if err := def.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	for id, tl := range l.Timelines {
		for _, ev := range tl.Events {
			if _, ok := l.Enemies[ev.EnemyID]; !ok {
				errs = append(errs, fmt.Errorf("timeline %q event %q: unknown enemy %q", id, ev.Name, ev.EnemyID))
			}
		}
		if c := tl.Continuous; c != nil {
			for _, e := range c.Entries {
				if _, ok := l.Enemies[e.EnemyID]; !ok {
					errs = append(errs, fmt.Errorf("timeline %q continuous: unknown enemy %q", id, e.EnemyID))
				}
			}
		}
		if b := tl.Background; b != nil && b.Enabled {
			if _, ok := l.Enemies[b.EnemyID]; !ok {
				errs = append(errs, fmt.Errorf("timeline %q background: unknown enemy %q", id, b.EnemyID))
			}
		}
	}
	return errors.Join(errs...)
}
