package rules

import (
	"fmt"

	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Rule categories. The stall escape stands alone so the action branches
// can still override it on the same tick.
const (
	CategoryEscape = "escape"
	CategoryAction = "action"
)

// CompilePolicy generates the pilot's rule set from tuning.
// Conditions are built with fmt.Sprintf from tuning values, so every
// threshold the rules compare against comes from t.
func CompilePolicy(t tuning.Tuning) []*Rule {
	p, g := t.Policy, t.Guard
	var rules []*Rule

	// Known to be a weak escape: a stuck drone often stays stuck. Kept
	// because later branches usually override it anyway.
	rules = append(rules, &Rule{
		Name:         "escape-stall",
		Priority:     1000,
		Category:     CategoryEscape,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`StalledSteps() > %d && !Leading()`, p.StallEscapeSteps),
		Action:       ActionEscapeStall,
	})

	rules = append(rules, &Rule{
		Name:         "harvest",
		Priority:     900,
		Category:     CategoryAction,
		Exclusive:    true,
		ConditionSrc: `ResourceAvailable() && HomePayload() < HarvestQuota()`,
		Action:       ActionHarvest,
	})

	rules = append(rules, &Rule{
		Name:      "fall-back",
		Priority:  800,
		Category:  CategoryAction,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`!AtDefensePoint() && ((Leading() && !ResourceAvailable()) || (EnemyEngaged() && HomeEnemyDistance() <= %v) || (EnemyCount() > %d && TeammateCount() < %d))`,
			t.WeaponRange+g.EngageMargin, p.SwarmEnemies, p.SmallTeam),
		Action: ActionFallBack,
	})

	rules = append(rules, &Rule{
		Name:      "engage",
		Priority:  700,
		Category:  CategoryAction,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`EnemyEngaged() && EnemyDistance() <= %v && (SafeShot() || AtDefensePoint())`,
			t.WeaponRange+g.TurnMargin),
		Action: ActionEngage,
	})

	rules = append(rules, &Rule{
		Name:      "advance",
		Priority:  600,
		Category:  CategoryAction,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`EnemyEngaged() && (DefenseSteps() > %d || EnemyCount() < %d) && !EnemyProtected() && (HomeEnemyDistance() >= %v || !Leading())`,
			p.DefenseWaitSteps, p.FewEnemies, t.WeaponRange+g.EngageMargin),
		Action: ActionAdvance,
	})

	rules = append(rules, &Rule{
		Name:         "scavenge",
		Priority:     500,
		Category:     CategoryAction,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`CargoTargets() > 0 && (Rank == 0 || EnemyCount() < %d)`, p.FewEnemies),
		Action:       ActionScavenge,
	})

	rules = append(rules, &Rule{
		Name:         "hold-defense",
		Priority:     400,
		Category:     CategoryAction,
		Exclusive:    true,
		ConditionSrc: `!AtDefensePoint()`,
		Action:       ActionHoldDefense,
	})

	return rules
}
