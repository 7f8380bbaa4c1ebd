// internal/defs/towers.go
package defs

import (
	"image/color"
)

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Family    string        `json:"family,omitempty"`
	Cost      int           `json:"cost"`
	Damage    float64       `json:"damage"`
	Range     float64       `json:"range"`
	FireRate  float64       `json:"fire_rate"` // Shots per second
	Attack    AttackType    `json:"attack"`
	Targeting TargetingMode `json:"targeting"`
	Area      AreaDef       `json:"area"`
	Turret    *TurretDef    `json:"turret,omitempty"`

	MaxLevel             int             `json:"max_level"`
	ExperienceThresholds []int           `json:"experience_thresholds"`
	Upgrades             []UpgradeChoice `json:"upgrades"`

	// Linear upgrade chain: the tower is replaced by NextUpgradeID for UpgradeCost.
	NextUpgradeID string `json:"next_upgrade_id,omitempty"`
	UpgradeCost   int    `json:"upgrade_cost,omitempty"`

	Visuals Visuals `json:"visuals"`
}

// FamilyID names the tower line that tower-scoped skills match on. Towers
// reached by a linear upgrade share the family of their base tower.
func (d *TowerDefinition) FamilyID() string {
	if d.Family != "" {
		return d.Family
	}
	return d.ID
}

// AreaDef configures splash damage for AREA towers.
type AreaDef struct {
	SplashRadius     float64  `json:"splash_radius"`
	MinDamagePercent *float64 `json:"min_damage_percent,omitempty"`
	DisableFalloff   bool     `json:"disable_falloff"`
}

// TurretDef makes a tower rotate toward its target before firing.
type TurretDef struct {
	TurnSpeed    float64 `json:"turn_speed"`    // degrees per second
	AimThreshold float64 `json:"aim_threshold"` // degrees
}

// UpgradeChoice is one option offered when a tower levels up.
// Zero multipliers are treated as 1.
type UpgradeChoice struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	DamageMultiplier   float64    `json:"damage_multiplier"`
	DamageBonus        float64    `json:"damage_bonus"`
	RangeMultiplier    float64    `json:"range_multiplier"`
	RangeBonus         float64    `json:"range_bonus"`
	FireRateMultiplier float64    `json:"fire_rate_multiplier"`
	FireRateBonus      float64    `json:"fire_rate_bonus"`
	SplashMultiplier   float64    `json:"splash_multiplier"`
	SplashBonus        float64    `json:"splash_bonus"`
	AttackType         AttackType `json:"attack_type,omitempty"`
}

// Visuals contains parameters for rendering a tower or an enemy.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
	Glyph        string     `json:"glyph"`
}

// ExperienceFor returns the experience needed to reach level (1-based).
// Levels beyond the table reuse its last entry.
func (d *TowerDefinition) ExperienceFor(level int) (int, bool) {
	if level < 2 || level > d.MaxLevel || len(d.ExperienceThresholds) == 0 {
		return 0, false
	}
	i := level - 2
	if i >= len(d.ExperienceThresholds) {
		i = len(d.ExperienceThresholds) - 1
	}
	return d.ExperienceThresholds[i], true
}
