// internal/defs/skills.go
package defs

import "fmt"

// SkillTree groups skills shown together.
type SkillTree struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Skills []SkillDefinition `json:"skills"`
}

// SkillDefinition is the shared, read-only template of a skill. Whether it
// is unlocked lives in the player's progress, not here.
type SkillDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Cost          int            `json:"cost"`
	Prerequisites []string       `json:"prerequisites"`
	Modifiers     []StatModifier `json:"modifiers"`
	TowerType     string         `json:"tower_type,omitempty"` // empty applies to every tower
}

// StatModifier adds Value to a stat.
type StatModifier struct {
	Stat  StatType     `json:"stat"`
	Type  ModifierType `json:"type"`
	Value float64      `json:"value"`
}

// ValidateSkillTrees reports duplicate ids, dangling prerequisites and
// prerequisite cycles. It never fails; the graph loads what it can.
func ValidateSkillTrees(trees []SkillTree) []string {
	var warnings []string
	byID := make(map[string]SkillDefinition)
	var order []string
	for _, tree := range trees {
		for _, s := range tree.Skills {
			if s.ID == "" {
				warnings = append(warnings, fmt.Sprintf("tree %q: skill with empty id", tree.ID))
				continue
			}
			if _, dup := byID[s.ID]; dup {
				warnings = append(warnings, fmt.Sprintf("tree %q: duplicate skill id %q", tree.ID, s.ID))
				continue
			}
			byID[s.ID] = s
			order = append(order, s.ID)
		}
	}

	for _, id := range order {
		for _, pre := range byID[id].Prerequisites {
			if _, ok := byID[pre]; !ok {
				warnings = append(warnings, fmt.Sprintf("skill %q: unknown prerequisite %q", id, pre))
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		for _, pre := range byID[id].Prerequisites {
			if _, ok := byID[pre]; ok && visit(pre) {
				return true
			}
		}
		state[id] = done
		return false
	}
	for _, id := range order {
		if state[id] == unvisited && visit(id) {
			warnings = append(warnings, fmt.Sprintf("skill %q: prerequisite cycle", id))
		}
	}
	return warnings
}
