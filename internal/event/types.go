// internal/event/types.go
package event

import (
	"go-td-core/internal/types"
	"go-td-core/pkg/geom"
)

const (
	BalanceChanged EventType = "BalanceChanged"
	GoldSpent      EventType = "GoldSpent"
	GoldEarned     EventType = "GoldEarned"

	BaseDamaged       EventType = "BaseDamaged"
	BaseHealthChanged EventType = "BaseHealthChanged"
	PlayerDefeated    EventType = "PlayerDefeated"

	CellTypeChanged EventType = "CellTypeChanged"

	TimelineStarted     EventType = "TimelineStarted"
	TimelineStopped     EventType = "TimelineStopped"
	TimelinePaused      EventType = "TimelinePaused"
	TimelineResumed     EventType = "TimelineResumed"
	TimelineCompleted   EventType = "TimelineCompleted"
	SpawnWarning        EventType = "SpawnWarning"
	SpawnEventTriggered EventType = "SpawnEventTriggered"

	EnemySpawned    EventType = "EnemySpawned"
	EnemyDamaged    EventType = "EnemyDamaged"
	EnemyKilled     EventType = "EnemyKilled"
	EnemyReachedEnd EventType = "EnemyReachedEnd"

	PlacementModeChanged EventType = "PlacementModeChanged"
	TowerPlaced          EventType = "TowerPlaced"
	TowerRemoved         EventType = "TowerRemoved"
	TowerUpgraded        EventType = "TowerUpgraded"
	TowerFired           EventType = "TowerFired"
	Explosion            EventType = "Explosion"
	TowerLevelReady      EventType = "TowerLevelReady"
	UpgradeOffered       EventType = "UpgradeOffered"
	UpgradeChosen        EventType = "UpgradeChosen"

	SkillUnlocked      EventType = "SkillUnlocked"
	SkillLocked        EventType = "SkillLocked"
	SkillPointsChanged EventType = "SkillPointsChanged"
	SkillsReset        EventType = "SkillsReset"

	CommandExecuted EventType = "CommandExecuted"
)

type BalanceData struct {
	Balance int `json:"balance"`
}

// GoldChangeData is carried by GoldSpent and GoldEarned.
type GoldChangeData struct {
	Amount  int `json:"amount"`
	Balance int `json:"balance"`
}

type BaseHealthData struct {
	Amount    int `json:"amount"`
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
}

type CellChangedData struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	From string `json:"from"`
	To   string `json:"to"`
}

type TimelineData struct {
	Name    string  `json:"name"`
	Elapsed float64 `json:"elapsed"`
}

// SpawnNoticeData is carried by SpawnWarning and SpawnEventTriggered.
type SpawnNoticeData struct {
	EventName   string  `json:"eventName"`
	EnemyID     string  `json:"enemyId"`
	Count       int     `json:"count"`
	TriggerTime float64 `json:"triggerTime"`
}

type EnemyData struct {
	ID        types.EntityID `json:"id"`
	DefID     string         `json:"defId"`
	Position  geom.Vec3      `json:"position"`
	PathIndex int            `json:"pathIndex"`
	Health    float64        `json:"health"`
	Amount    float64        `json:"amount"`
	Reward    int            `json:"reward,omitempty"`
	Damage    int            `json:"damage,omitempty"`
}

type PlacementData struct {
	Active bool   `json:"active"`
	DefID  string `json:"defId"`
}

type TowerData struct {
	ID    types.EntityID `json:"id"`
	DefID string         `json:"defId"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Level int            `json:"level"`
}

type ShotData struct {
	TowerID  types.EntityID `json:"towerId"`
	TargetID types.EntityID `json:"targetId"`
	From     geom.Vec3      `json:"from"`
	To       geom.Vec3      `json:"to"`
	Damage   float64        `json:"damage"`
	Attack   string         `json:"attack"`
}

type ExplosionData struct {
	TowerID types.EntityID `json:"towerId"`
	Center  geom.Vec3      `json:"center"`
	Radius  float64        `json:"radius"`
	Hits    int            `json:"hits"`
}

type UpgradeOfferData struct {
	TowerID types.EntityID `json:"towerId"`
	Choices []string       `json:"choices"`
}

type SkillData struct {
	ID     string `json:"id,omitempty"`
	Points int    `json:"points"`
}

type CommandData struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}
