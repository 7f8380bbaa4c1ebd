// internal/tower/stats.go
package tower

import (
	"math"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
)

// ModifierSource reports the summed skill modifier, in percent, for a stat
// as it applies to one tower type.
type ModifierSource interface {
	ModifierValue(stat defs.StatType, towerType string) float64
}

// Stats are the effective numbers a tower fights with.
type Stats struct {
	Damage           float64
	Range            float64
	FireRate         float64
	Attack           defs.AttackType
	SplashRadius     float64
	MinDamagePercent float64
	Falloff          bool

	HasTurret    bool
	TurnSpeed    float64 // degrees per second
	AimThreshold float64 // degrees
}

// Cooldown is the time between two shots. A non-positive fire rate never fires.
func (s Stats) Cooldown() float64 {
	if s.FireRate <= 0 {
		return math.Inf(1)
	}
	return 1 / s.FireRate
}

// ComputeStats folds the chosen upgrades in order over the definition and
// then applies skill modifiers as percentages.
func ComputeStats(def *defs.TowerDefinition, upgrades []defs.UpgradeChoice, mods ModifierSource) Stats {
	s := Stats{
		Damage:           def.Damage,
		Range:            def.Range,
		FireRate:         def.FireRate,
		Attack:           def.Attack,
		SplashRadius:     def.Area.SplashRadius,
		MinDamagePercent: config.DefaultMinDamagePercent,
		Falloff:          !def.Area.DisableFalloff,
	}
	if s.Attack == "" {
		s.Attack = defs.AttackSingle
	}
	if def.Area.MinDamagePercent != nil {
		s.MinDamagePercent = clamp01(*def.Area.MinDamagePercent)
	}
	if def.Turret != nil {
		s.HasTurret = true
		s.TurnSpeed = def.Turret.TurnSpeed
		s.AimThreshold = def.Turret.AimThreshold
		if s.TurnSpeed <= 0 {
			s.TurnSpeed = config.DefaultTurnSpeedDeg
		}
		if s.AimThreshold <= 0 {
			s.AimThreshold = config.DefaultAimThresholdDeg
		}
	}

	for _, u := range upgrades {
		s.Damage = s.Damage*multiplier(u.DamageMultiplier) + u.DamageBonus
		s.Range = s.Range*multiplier(u.RangeMultiplier) + u.RangeBonus
		s.FireRate = s.FireRate*multiplier(u.FireRateMultiplier) + u.FireRateBonus
		s.SplashRadius = s.SplashRadius*multiplier(u.SplashMultiplier) + u.SplashBonus
		if u.AttackType != "" {
			s.Attack = u.AttackType
		}
	}

	if mods != nil {
		s.Damage *= percent(mods.ModifierValue(defs.StatDamage, def.FamilyID()))
		s.Range *= percent(mods.ModifierValue(defs.StatRange, def.FamilyID()))
		s.FireRate *= percent(mods.ModifierValue(defs.StatFireRate, def.FamilyID()))
		s.SplashRadius *= percent(mods.ModifierValue(defs.StatSplashRadius, def.FamilyID()))
		s.TurnSpeed *= percent(mods.ModifierValue(defs.StatTurretRotationSpeed, def.FamilyID()))
	}

	s.Damage = math.Max(s.Damage, 0)
	s.Range = math.Max(s.Range, 0)
	s.FireRate = math.Max(s.FireRate, 0)
	s.SplashRadius = math.Max(s.SplashRadius, 0)
	return s
}

// BuildCost is the definition cost adjusted by the BUILD_COST modifier.
func BuildCost(def *defs.TowerDefinition, mods ModifierSource) int {
	if mods == nil {
		return def.Cost
	}
	cost := int(math.Round(float64(def.Cost) * percent(mods.ModifierValue(defs.StatBuildCost, def.FamilyID()))))
	if cost < 0 {
		return 0
	}
	return cost
}

func multiplier(m float64) float64 {
	if m == 0 {
		return 1
	}
	return m
}

// percent turns a summed modifier into a factor, never below zero.
func percent(sum float64) float64 {
	return math.Max(1+sum/100, 0)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
