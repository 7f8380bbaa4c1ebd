// internal/defs/types.go
package defs

// AttackType defines how a tower shot resolves.
type AttackType string

const (
	AttackSingle AttackType = "SINGLE"
	AttackArea   AttackType = "AREA"
	// Pierce and Chain currently resolve like Single.
	AttackPierce AttackType = "PIERCE"
	AttackChain  AttackType = "CHAIN"
)

func (a AttackType) Valid() bool {
	switch a {
	case AttackSingle, AttackArea, AttackPierce, AttackChain:
		return true
	}
	return false
}

// TargetingMode selects which enemy a tower prefers.
type TargetingMode string

const (
	TargetClosest       TargetingMode = "CLOSEST"
	TargetFurthest      TargetingMode = "FURTHEST"
	TargetLowestHealth  TargetingMode = "LOWEST_HEALTH"
	TargetHighestHealth TargetingMode = "HIGHEST_HEALTH"
	TargetMostProgress  TargetingMode = "MOST_PROGRESS"
	TargetLeastProgress TargetingMode = "LEAST_PROGRESS"
)

// TargetingModes lists every mode in cycling order.
var TargetingModes = []TargetingMode{
	TargetClosest, TargetFurthest, TargetLowestHealth, TargetHighestHealth,
	TargetMostProgress, TargetLeastProgress,
}

func (m TargetingMode) Valid() bool {
	for _, v := range TargetingModes {
		if v == m {
			return true
		}
	}
	return false
}

// SpawnPattern controls how the enemies of one timeline event are released.
type SpawnPattern string

const (
	PatternInstant   SpawnPattern = "INSTANT"
	PatternStaggered SpawnPattern = "STAGGERED"
	PatternBurst     SpawnPattern = "BURST"
)

// StatType is a stat a skill can modify.
type StatType string

const (
	StatDamage              StatType = "DAMAGE"
	StatRange               StatType = "RANGE"
	StatFireRate            StatType = "FIRE_RATE"
	StatTurretRotationSpeed StatType = "TURRET_ROTATION_SPEED"
	StatBuildCost           StatType = "BUILD_COST"
	StatExpGain             StatType = "EXP_GAIN"
	StatGoldDrop            StatType = "GOLD_DROP"
	StatSpecialDrop         StatType = "SPECIAL_DROP"
	StatSplashRadius        StatType = "SPLASH_RADIUS"
	StatProjectileSpeed     StatType = "PROJECTILE_SPEED"
)

// ModifierType is descriptive; every modifier value is summed per stat and
// applied as a percentage.
type ModifierType string

const (
	ModifierFlat       ModifierType = "FLAT"
	ModifierPercentage ModifierType = "PERCENTAGE"
	ModifierMultiplier ModifierType = "MULTIPLIER"
)
