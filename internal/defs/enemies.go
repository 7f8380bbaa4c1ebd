// internal/defs/enemies.go
package defs

import (
	"errors"
	"fmt"
)

var ErrInvalidEnemy = errors.New("invalid enemy definition")

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Health       float64 `json:"health"`
	Speed        float64 `json:"speed"`
	GoldReward   int     `json:"gold_reward"`
	AttackDamage int     `json:"attack_damage"`
	Experience   int     `json:"experience"`
	Visuals      Visuals `json:"visuals"`
}

// Check rejects definitions an enemy cannot be built from.
func (d *EnemyDefinition) Check() error {
	if d.Health <= 0 {
		return fmt.Errorf("%w: %q health %v must be positive", ErrInvalidEnemy, d.ID, d.Health)
	}
	if d.Speed < 0 {
		return fmt.Errorf("%w: %q speed %v is negative", ErrInvalidEnemy, d.ID, d.Speed)
	}
	return nil
}
