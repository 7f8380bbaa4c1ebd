// internal/config/config.go
package config

import "image/color"

// Simulation defaults.
const (
	MaxDeltaTime = 0.06

	DefaultCellSize   = 1.0
	DefaultGridWidth  = 20
	DefaultGridHeight = 12

	StartingGold       = 200
	StartingBaseHealth = 20

	WaypointArrivalEpsilon     = 0.01
	DestinationTolerance       = 2.0
	DefaultMinDamagePercent    = 0.5
	DefaultAimThresholdDeg     = 5.0
	DefaultTurnSpeedDeg        = 180.0
	DamageFlashDuration        = 0.15
	UpgradeChoicesOffered      = 2
	MaxContinuousSpawnsPerTick = 32

	ContinuousMaxDelayCap = 0.5

	CommandQueueSize = 64
)

// Persistence.
const (
	SkillSaveFile    = "skill_progress.json"
	DefaultProfileID = "default"
	DataDir          = "assets/data"
)

// Viewer layout.
const (
	ScreenWidth  = 1200
	ScreenHeight = 800
	CellPixels   = 48
	HUDHeight    = 80

	EnemyRadius       = 10.0
	TowerRadiusFactor = 0.35
	HealthBarWidth    = 24.0
	HealthBarHeight   = 4.0

	SpeedButtonX    = ScreenWidth - 60
	SpeedButtonY    = 30
	SpeedButtonSize = 14.0
	ClickCooldown   = 300
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	BuildableColor   = color.RGBA{70, 100, 120, 220}
	PathColor        = color.RGBA{194, 178, 128, 255}
	OccupiedColor    = color.RGBA{90, 90, 110, 255}
	BlockedColor     = color.RGBA{150, 70, 70, 220}
	GridLineColor    = color.RGBA{40, 40, 55, 255}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	EnemyColor       = color.RGBA{0, 0, 0, 255}
	EnemyFlashColor  = color.RGBA{255, 255, 255, 255}
	HealthBarColor   = color.RGBA{50, 205, 50, 255}
	HealthBackColor  = color.RGBA{120, 20, 20, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	ShotColor        = color.RGBA{255, 255, 0, 200}
	HoverColor       = color.RGBA{255, 255, 255, 80}
	TowerColors      = []color.RGBA{
		{255, 50, 50, 255},
		{50, 255, 50, 255},
		{50, 100, 255, 255},
		{180, 50, 230, 255},
		{255, 215, 0, 255},
	}
	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},
		color.RGBA{220, 60, 60, 220},
		color.RGBA{194, 178, 128, 255},
	}
	GameSpeeds = []float64{1, 2, 4}
)

// Viewer widgets.
var (
	IdleStateColor    = color.RGBA{120, 120, 140, 255}
	RunningStateColor = color.RGBA{220, 60, 60, 255}
	PausedStateColor  = color.RGBA{255, 215, 0, 255}
	DoneStateColor    = color.RGBA{50, 205, 50, 255}
	PauseButtonColor  = color.RGBA{240, 240, 240, 255}
	PlayButtonColor   = color.RGBA{50, 205, 50, 255}
)

const (
	IndicatorOffsetX = 30
	IndicatorRadius  = 12
	PauseButtonX     = ScreenWidth - 110
	PauseButtonY     = 30
	PauseButtonSize  = 10.0
)
