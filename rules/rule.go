package rules

import "github.com/expr-lang/expr/vm"

// ActionFunc turns a matched condition into the pilot's order for this tick.
// It never talks to the host; the agent carries the order out.
type ActionFunc func(env RuleEnv) Action

// Rule is one branch of the pilot's policy: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// so that only the first matching branch of a category acts.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
