// internal/defs/timeline.go
package defs

import "go-td-core/internal/curve"

// SpawnTimeline is an authored schedule of enemy releases.
type SpawnTimeline struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	TotalDuration float64      `json:"total_duration"`
	Infinite      bool         `json:"infinite"`
	Events        []SpawnEvent `json:"events"`

	Continuous *ContinuousSpawnConfig `json:"continuous,omitempty"`
	Background *BackgroundSpawn       `json:"background,omitempty"`
	Difficulty *DifficultyScaling     `json:"difficulty,omitempty"`
}

// SpawnEvent fires once when the timeline reaches TriggerTime.
type SpawnEvent struct {
	Name          string       `json:"name"`
	TriggerTime   float64      `json:"trigger_time"`
	EnemyID       string       `json:"enemy_id"`
	Count         int          `json:"count"`
	Pattern       SpawnPattern `json:"pattern"`
	SpawnInterval float64      `json:"spawn_interval"`
	BurstDuration float64      `json:"burst_duration"`
	PathIndex     *int         `json:"path_index,omitempty"` // nil picks a random path
	ShowWarning   bool         `json:"show_warning"`
	WarningTime   float64      `json:"warning_time"`
}

// Interval returns the delay between consecutive spawns of the event.
func (e *SpawnEvent) Interval() float64 {
	switch e.Pattern {
	case PatternStaggered:
		return e.SpawnInterval
	case PatternBurst:
		if e.Count > 0 {
			return e.BurstDuration / float64(e.Count)
		}
	}
	return 0
}

// ContinuousSpawnConfig drives the rate-based spawner that runs alongside
// the discrete events.
type ContinuousSpawnConfig struct {
	Enabled           bool              `json:"enabled"`
	TotalDuration     float64           `json:"total_duration"`
	BaseInterval      float64           `json:"base_interval"`
	MinInterval       float64           `json:"min_interval"`
	SpawnRate         curve.Curve       `json:"spawn_rate"`
	UseRandomDelay    bool              `json:"use_random_delay"`
	MinDelay          float64           `json:"min_delay"`
	MaxDelay          float64           `json:"max_delay"`
	PositionVariation float64           `json:"position_variation"`
	Entries           []ContinuousEntry `json:"entries"`
	HealthMultiplier  curve.Curve       `json:"health_multiplier"`
	DifficultyCurve   curve.Curve       `json:"difficulty_multiplier"`
}

// ContinuousEntry is one weighted archetype of the continuous spawner.
type ContinuousEntry struct {
	EnemyID     string      `json:"enemy_id"`
	BaseWeight  float64     `json:"base_weight"`
	WeightCurve curve.Curve `json:"weight_curve"`
	UnlockTime  float64     `json:"unlock_time"`
	LockTime    *float64    `json:"lock_time,omitempty"` // nil or negative never locks
	PathIndex   *int        `json:"path_index,omitempty"`
}

// Available reports whether the entry may spawn at elapsed time t.
func (e *ContinuousEntry) Available(t float64) bool {
	if t < e.UnlockTime {
		return false
	}
	return e.LockTime == nil || *e.LockTime < 0 || t < *e.LockTime
}

// BackgroundSpawn trickles a fixed enemy in at a steady cadence.
type BackgroundSpawn struct {
	Enabled  bool    `json:"enabled"`
	EnemyID  string  `json:"enemy_id"`
	Interval float64 `json:"interval"`
	Count    int     `json:"count"`
}

// DifficultyScaling speeds up background spawning over the timeline.
type DifficultyScaling struct {
	Enabled        bool        `json:"enabled"`
	RateMultiplier curve.Curve `json:"rate_multiplier"`
}
