package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Engine runs the compiled policy against a prepared RuleEnv.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category. The decision is the last non-hold action produced,
// matching how a newer order on the host replaces an older one.
type Engine struct {
	mu     sync.RWMutex
	rules  []*Rule
	tuning tuning.Tuning
}

// NewEngine compiles the policy for t into expr bytecode.
func NewEngine(t tuning.Tuning) (*Engine, error) {
	compiled, err := compileRules(CompilePolicy(t))
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, tuning: t}, nil
}

// Tuning returns the parameters the current rule set was compiled with.
func (e *Engine) Tuning() tuning.Tuning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tuning
}

// Evaluate picks exactly one action for the drone described by env.
func (e *Engine) Evaluate(env RuleEnv) Action {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	fired := make(map[string]bool) // category → exclusive rule already fired
	decision := Action{Kind: ActionHold}
	var effects Effects

	for _, r := range rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "drone", env.Self.ID)

		act := r.Action(env)
		act.Rule = r.Name
		effects = effects.merge(act.Effects)
		if act.Kind != ActionHold || decision.Kind == ActionHold {
			act.Superseded = decision.Superseded
			if decision.Kind == ActionMove {
				act.Superseded = append(act.Superseded, decision.Dest)
			}
			decision = act
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	decision.Effects = effects
	return decision
}

// Swap recompiles the policy for new tuning and replaces the rule set.
// If compilation fails the old rules remain active.
func (e *Engine) Swap(t tuning.Tuning) error {
	compiled, err := compileRules(CompilePolicy(t))
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.tuning = t
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
