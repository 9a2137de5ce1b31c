package rules

import (
	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
)

// ActionKind is the single order a drone carries out after a decision.
type ActionKind string

const (
	ActionHold        ActionKind = "hold"
	ActionMove        ActionKind = "move"
	ActionLoad        ActionKind = "load"
	ActionUnload      ActionKind = "unload"
	ActionTurnAndFire ActionKind = "turn_and_fire"
)

// Destination is a point, optionally naming the entity standing on it so
// the host can follow a moving target.
type Destination struct {
	Point geom.Point
	Ref   *model.Ref
}

func PointDest(p geom.Point) Destination { return Destination{Point: p} }

func EntityDest(e Entity) Destination {
	ref := e.Ref
	return Destination{Point: e.Pos, Ref: &ref}
}

// Effects are counter and memory updates that go along with an action.
// Rules stay pure; the agent applies these after the decision.
type Effects struct {
	ResetTeamDefense bool       // zero DefenseSteps for self and every teammate
	ResetOwnDefense  bool       // zero own DefenseSteps
	ResetStall       bool       // zero own StalledSteps
	NoteCargo        *model.Ref // cargo to pick up again after a stun
}

func (e Effects) merge(o Effects) Effects {
	e.ResetTeamDefense = e.ResetTeamDefense || o.ResetTeamDefense
	e.ResetOwnDefense = e.ResetOwnDefense || o.ResetOwnDefense
	e.ResetStall = e.ResetStall || o.ResetStall
	if o.NoteCargo != nil {
		e.NoteCargo = o.NoteCargo
	}
	return e
}

type Action struct {
	Kind ActionKind
	Rule string

	// Dest is the move goal, the load source, the unload base or the
	// enemy to face, depending on Kind.
	Dest Destination
	// Face optionally turns the drone after issuing Kind, so the next
	// departure is already aimed.
	Face *Destination
	// Fire is set on turn_and_fire when the enemy is inside firing range.
	Fire bool
	// Sidestep nudges a stalled shooter toward its enemy.
	Sidestep *geom.Point

	// Superseded lists moves an earlier branch issued on the same
	// evaluation before this action replaced them.
	Superseded []Destination

	Effects Effects
}

func Hold() Action { return Action{Kind: ActionHold} }

func MoveTo(d Destination) Action { return Action{Kind: ActionMove, Dest: d} }

func ActionEscapeStall(env RuleEnv) Action {
	return MoveTo(PointDest(env.DefensePoint()))
}

func ActionHarvest(env RuleEnv) Action {
	if env.Resource == nil {
		return Hold()
	}
	return MoveTo(EntityDest(*env.Resource))
}

func ActionFallBack(env RuleEnv) Action {
	a := MoveTo(PointDest(env.DefensePoint()))
	a.Effects.ResetTeamDefense = true
	return a
}

func ActionEngage(env RuleEnv) Action {
	if env.Enemy == nil {
		return Hold()
	}
	a := Action{
		Kind: ActionTurnAndFire,
		Dest: EntityDest(*env.Enemy),
		Fire: env.EnemyDistance() <= env.Tuning.WeaponRange+env.Tuning.Guard.FireMargin,
	}
	if env.Counters.StalledSteps > env.Tuning.Policy.StallSidestepSteps {
		self := env.Self.Pos()
		p := self.Add(geom.FromPoints(self, env.Enemy.Pos, env.Tuning.Guard.SidestepDistance))
		a.Sidestep = &p
		a.Effects.ResetStall = true
	}
	return a
}

func ActionAdvance(env RuleEnv) Action {
	a := MoveTo(PointDest(env.AttackPoint()))
	a.Effects.ResetOwnDefense = true
	return a
}

// ActionScavenge flies to the first cargo node that is either close to
// home or worth the trip because the tracked enemy is pinned at its base.
// Holds if no node qualifies.
func ActionScavenge(env RuleEnv) Action {
	pinned := env.EnemyProtected()
	home := env.Snapshot.Home.Pos()
	for _, n := range env.Snapshot.Nodes {
		if !pinned && geom.Distance(home, n.Pos) > env.Tuning.Resources.ScavengeRadius {
			continue
		}
		if OnFire(n.Pos, env.Snapshot, env.Tuning.WeaponRange) {
			continue
		}
		a := MoveTo(EntityDest(n))
		ref := n.Ref
		a.Effects.NoteCargo = &ref
		return a
	}
	return Hold()
}

func ActionHoldDefense(env RuleEnv) Action {
	return MoveTo(PointDest(env.DefensePoint()))
}
