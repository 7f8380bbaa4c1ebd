// internal/app/commands.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/skill"
	"go-td-core/internal/spawn"
	"go-td-core/internal/tower"
	"go-td-core/internal/types"
)

// Command names accepted by Execute and Submit.
const (
	CmdStartSpawning       = "start_spawning"
	CmdStopSpawning        = "stop_spawning"
	CmdPauseSpawning       = "pause_spawning"
	CmdResumeSpawning      = "resume_spawning"
	CmdRestartSpawning     = "restart_spawning"
	CmdStartPlacement      = "start_placement"
	CmdCancelPlacement     = "cancel_placement"
	CmdPlaceTower          = "place_tower"
	CmdBuildTower          = "build_tower"
	CmdRemoveTower         = "remove_tower"
	CmdRemoveAllTowers     = "remove_all_towers"
	CmdUpgradeTower        = "upgrade_tower"
	CmdSetTargeting        = "set_targeting"
	CmdRequestUpgradePanel = "request_upgrade_panel"
	CmdChooseUpgrade       = "choose_upgrade"
	CmdCloseUpgradePanel   = "close_upgrade_panel"
	CmdUnlockSkill         = "unlock_skill"
	CmdLockSkill           = "lock_skill"
	CmdResetSkills         = "reset_skills"
	CmdAddSkillPoints      = "add_skill_points"
	CmdSpendGold           = "spend_gold"
	CmdEarnGold            = "earn_gold"
)

// Command is a serialisable request to change the game.
type Command struct {
	Name    string         `json:"command"`
	DefID   string         `json:"defId,omitempty"`
	X       int            `json:"x,omitempty"`
	Y       int            `json:"y,omitempty"`
	TowerID types.EntityID `json:"towerId,omitempty"`
	Mode    string         `json:"mode,omitempty"`
	Choice  int            `json:"choice,omitempty"`
	SkillID string         `json:"skillId,omitempty"`
	Amount  int            `json:"amount,omitempty"`
}

// Result is the outcome of a command. Reason is a short code on failure.
type Result struct {
	OK      bool           `json:"ok"`
	Reason  string         `json:"reason,omitempty"`
	TowerID types.EntityID `json:"towerId,omitempty"`
	Choices []string       `json:"choices,omitempty"`
}

func ok() Result { return Result{OK: true} }

func fail(reason string) Result { return Result{Reason: reason} }

var reasonCodes = []struct {
	err  error
	code string
}{
	{tower.ErrNotPlacing, "not_placing"},
	{tower.ErrUnknownTower, "unknown_tower"},
	{tower.ErrTowerNotFound, "tower_not_found"},
	{tower.ErrInvalidCell, "invalid_cell"},
	{tower.ErrCellUnavailable, "cell_unavailable"},
	{tower.ErrInsufficientGold, "insufficient_gold"},
	{tower.ErrNoUpgradePath, "no_upgrade_path"},
	{tower.ErrInvalidTargeting, "invalid_targeting"},
	{tower.ErrCannotLevelUp, "cannot_level_up"},
	{tower.ErrMaxLevel, "max_level"},
	{tower.ErrPanelClosed, "panel_closed"},
	{tower.ErrInvalidChoice, "invalid_choice"},
	{tower.ErrNotEnoughUpgrades, "not_enough_upgrades"},
	{skill.ErrUnknownSkill, "unknown_skill"},
	{skill.ErrAlreadyUnlocked, "already_unlocked"},
	{skill.ErrNotUnlocked, "not_unlocked"},
	{skill.ErrPrerequisitesMissing, "prerequisites_missing"},
	{skill.ErrInsufficientPoints, "insufficient_points"},
	{skill.ErrHasDependents, "has_dependents"},
}

// resultOf turns an error into a Result with a stable reason code.
func resultOf(err error) Result {
	if err == nil {
		return ok()
	}
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return fail(rc.code)
		}
	}
	return fail(err.Error())
}

// Submit queues cmd for the start of the next Tick. It never blocks and is
// safe to call from any goroutine; false means the queue is full.
func (g *Game) Submit(cmd Command) bool {
	select {
	case g.commands <- cmd:
		return true
	default:
		log.Printf("Game: command queue full, dropping %q", cmd.Name)
		return false
	}
}

func (g *Game) drainCommands() {
	for {
		select {
		case cmd := <-g.commands:
			res := g.Execute(cmd)
			g.Events.Publish(event.Event{Type: event.CommandExecuted, Data: event.CommandData{
				Name: cmd.Name, OK: res.OK, Reason: res.Reason,
			}})
		default:
			return
		}
	}
}

// Execute runs cmd immediately. It must be called from the simulation goroutine.
func (g *Game) Execute(cmd Command) Result {
	switch cmd.Name {
	case CmdStartSpawning:
		return g.StartSpawning()
	case CmdStopSpawning:
		return g.StopSpawning()
	case CmdPauseSpawning:
		return g.PauseSpawning()
	case CmdResumeSpawning:
		return g.ResumeSpawning()
	case CmdRestartSpawning:
		return g.RestartSpawning()
	case CmdStartPlacement:
		return g.StartPlacement(cmd.DefID)
	case CmdCancelPlacement:
		return g.CancelPlacement()
	case CmdPlaceTower:
		return g.PlaceTower(cmd.X, cmd.Y)
	case CmdBuildTower:
		return g.BuildTower(cmd.DefID, cmd.X, cmd.Y)
	case CmdRemoveTower:
		return g.RemoveTower(cmd.TowerID)
	case CmdRemoveAllTowers:
		return g.RemoveAllTowers()
	case CmdUpgradeTower:
		return g.UpgradeTower(cmd.TowerID)
	case CmdSetTargeting:
		return g.SetTargeting(cmd.TowerID, defs.TargetingMode(cmd.Mode))
	case CmdRequestUpgradePanel:
		return g.RequestUpgradePanel(cmd.TowerID)
	case CmdChooseUpgrade:
		return g.ChooseUpgrade(cmd.Choice)
	case CmdCloseUpgradePanel:
		return g.CloseUpgradePanel()
	case CmdUnlockSkill:
		return g.UnlockSkill(cmd.SkillID)
	case CmdLockSkill:
		return g.LockSkill(cmd.SkillID)
	case CmdResetSkills:
		return g.ResetSkills()
	case CmdAddSkillPoints:
		return g.AddSkillPoints(cmd.Amount)
	case CmdSpendGold:
		return g.SpendGold(cmd.Amount)
	case CmdEarnGold:
		return g.EarnGold(cmd.Amount)
	}
	return fail(fmt.Sprintf("unknown_command: %s", cmd.Name))
}

func (g *Game) StartSpawning() Result {
	if g.over {
		return fail("game_over")
	}
	if g.Spawner.Timeline() == nil {
		return fail("no_timeline")
	}
	if g.Spawner.State() == spawn.Complete {
		return fail("timeline_complete")
	}
	if !g.Spawner.Start() {
		return fail("already_running")
	}
	return ok()
}

func (g *Game) StopSpawning() Result {
	if !g.Spawner.Stop() {
		return fail("not_running")
	}
	return ok()
}

func (g *Game) PauseSpawning() Result {
	if !g.Spawner.Pause() {
		return fail("not_running")
	}
	return ok()
}

func (g *Game) ResumeSpawning() Result {
	if !g.Spawner.Resume() {
		return fail("not_paused")
	}
	return ok()
}

// RestartSpawning runs the timeline again from zero.
func (g *Game) RestartSpawning() Result {
	if g.over {
		return fail("game_over")
	}
	if g.Spawner.Timeline() == nil {
		return fail("no_timeline")
	}
	if !g.Spawner.Restart() {
		return fail("already_running")
	}
	return ok()
}

func (g *Game) StartPlacement(defID string) Result {
	if g.over {
		return fail("game_over")
	}
	return resultOf(g.Towers.StartPlacement(defID))
}

func (g *Game) CancelPlacement() Result {
	if !g.Towers.CancelPlacement() {
		return fail("not_placing")
	}
	return ok()
}

// PlaceTower builds the armed tower type at cell (x, y).
func (g *Game) PlaceTower(x, y int) Result {
	if g.over {
		return fail("game_over")
	}
	t, err := g.Towers.Place(x, y)
	if err != nil {
		return resultOf(err)
	}
	return Result{OK: true, TowerID: t.ID()}
}

// BuildTower places defID at (x, y) without entering placement mode.
func (g *Game) BuildTower(defID string, x, y int) Result {
	if g.over {
		return fail("game_over")
	}
	t, err := g.Towers.Build(defID, x, y)
	if err != nil {
		return resultOf(err)
	}
	return Result{OK: true, TowerID: t.ID()}
}

func (g *Game) RemoveTower(id types.EntityID) Result {
	if err := g.Towers.Remove(id); err != nil {
		return resultOf(err)
	}
	if g.Panel.TowerID() == id {
		g.Panel.Close()
	}
	return ok()
}

// RemoveAllTowers clears the board of towers. There are no refunds.
func (g *Game) RemoveAllTowers() Result {
	for _, t := range g.Towers.Towers() {
		g.Towers.Remove(t.ID())
	}
	g.Panel.Close()
	return ok()
}

func (g *Game) UpgradeTower(id types.EntityID) Result {
	return resultOf(g.Towers.Upgrade(id))
}

func (g *Game) SetTargeting(id types.EntityID, mode defs.TargetingMode) Result {
	return resultOf(g.Towers.SetTargeting(id, mode))
}

// RequestUpgradePanel offers level-up choices for a tower.
func (g *Game) RequestUpgradePanel(id types.EntityID) Result {
	t, found := g.Towers.Get(id)
	if !found {
		return resultOf(fmt.Errorf("%w: %s", tower.ErrTowerNotFound, id))
	}
	choices, err := g.Panel.Request(t)
	if err != nil {
		return resultOf(err)
	}
	res := Result{OK: true, TowerID: g.Panel.TowerID()}
	for _, c := range choices {
		res.Choices = append(res.Choices, c.ID)
	}
	return res
}

func (g *Game) ChooseUpgrade(i int) Result {
	id := g.Panel.TowerID()
	if err := g.Panel.Choose(i); err != nil {
		return resultOf(err)
	}
	return Result{OK: true, TowerID: id}
}

func (g *Game) CloseUpgradePanel() Result {
	if !g.Panel.Showing() {
		return fail("panel_closed")
	}
	g.Panel.Close()
	return ok()
}

func (g *Game) UnlockSkill(id string) Result {
	return resultOf(g.Skills.Unlock(id))
}

func (g *Game) LockSkill(id string) Result {
	return resultOf(g.Skills.Lock(id))
}

func (g *Game) ResetSkills() Result {
	g.Skills.Reset()
	return ok()
}

func (g *Game) AddSkillPoints(n int) Result {
	if n <= 0 {
		return fail("invalid_amount")
	}
	g.Skills.AddPoints(n)
	return ok()
}

func (g *Game) SpendGold(amount int) Result {
	if amount < 0 {
		return fail("invalid_amount")
	}
	if !g.Ledger.TrySpend(amount) {
		return fail("insufficient_gold")
	}
	return ok()
}

func (g *Game) EarnGold(amount int) Result {
	if !g.Ledger.Earn(amount) {
		return fail("invalid_amount")
	}
	return ok()
}
