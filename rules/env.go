package rules

import (
	"math"
	"math/rand"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Counters are the per-drone step counts the heartbeat keeps.
type Counters struct {
	DefenseSteps int
	StalledSteps int
}

// RuleEnv wraps one drone's derived view of the tick and exposes helper
// methods callable from expr expressions.
type RuleEnv struct {
	State     model.GameState
	Self      model.Drone
	Teammates []model.Drone
	Snapshot  Snapshot

	Rank        int
	MinID       int
	DefenseRing []geom.Point
	AttackFan   []geom.Point

	Enemy    *Entity // tracked engagement, nil when none
	Resource *Entity // harvest target, nil when none

	Counters      Counters
	TotalResource int // asteroid payload at spawn
	Tuning        tuning.Tuning
}

// Prepare refreshes everything the rules read: enemies, cargo nodes, rank,
// defense ring, harvest target and the engagement. engaged is the enemy
// tracked since an earlier tick; the returned ref is what to track next.
func Prepare(gs model.GameState, self model.Drone, engaged *model.Ref, c Counters, totalResource int, rng *rand.Rand, t tuning.Tuning) (RuleEnv, *model.Ref) {
	env := RuleEnv{
		State:         gs,
		Self:          self,
		Teammates:     gs.Teammates(self),
		Snapshot:      BuildSnapshot(gs, self, t),
		Counters:      c,
		TotalResource: totalResource,
		Tuning:        t,
	}
	env.Rank = Rank(self, env.Teammates)
	env.MinID = MinID(self, env.Teammates)
	env.DefenseRing = DefenseRing(env.Snapshot.Home.Pos(), gs.Center(), len(env.Teammates)+1, t)

	if res, ok := SelectResource(gs, self, env.MinID, rng, t); ok {
		env.Resource = &res
	}

	if enemy, ok := resolveEngagement(env, engaged); ok {
		env.Enemy = &enemy
	} else if enemy, ok := SelectEnemy(env.Snapshot, len(env.Teammates), t); ok {
		env.Enemy = &enemy
	}
	if env.Enemy == nil {
		return env, nil
	}
	env.AttackFan = AttackFan(env.Enemy.Pos, env.Snapshot.Home.Pos(), gs.FieldWidth, gs.FieldHeight, t)
	ref := env.Enemy.Ref
	return env, &ref
}

// resolveEngagement keeps a tracked enemy while it lives and stays within
// weapon range plus the engage margin.
func resolveEngagement(env RuleEnv, engaged *model.Ref) (Entity, bool) {
	if engaged == nil {
		return Entity{}, false
	}
	var e Entity
	switch engaged.Kind {
	case model.KindDrone:
		d, ok := env.State.Drone(engaged.ID)
		if !ok || !d.Alive {
			return Entity{}, false
		}
		e = droneEntity(d)
	case model.KindMothership:
		m, ok := env.State.MothershipByID(engaged.ID)
		if !ok || !m.Alive {
			return Entity{}, false
		}
		e = mothershipEntity(m)
	default:
		return Entity{}, false
	}
	if geom.Distance(env.Self.Pos(), e.Pos) > env.Tuning.WeaponRange+env.Tuning.Guard.EngageMargin {
		return Entity{}, false
	}
	return e, true
}

func (e RuleEnv) DefensePoint() geom.Point {
	return SlotAt(e.DefenseRing, e.Rank, e.Snapshot.Home.Pos())
}

// AttackPoint falls back to the defense slot when the fan is too short.
func (e RuleEnv) AttackPoint() geom.Point {
	return SlotAt(e.AttackFan, e.Rank, e.DefensePoint())
}

func (e RuleEnv) AtDefensePoint() bool {
	return e.Self.Pos().Near(e.DefensePoint(), e.Tuning.ArrivalRadius)
}

func (e RuleEnv) ResourceAvailable() bool { return e.Resource != nil }

func (e RuleEnv) HomePayload() int { return e.Snapshot.Home.Payload }

// HarvestQuota is how much the base should hold before the pilot stops
// prioritising harvest.
func (e RuleEnv) HarvestQuota() int {
	return e.TotalResource / e.Tuning.Resources.HarvestQuotaDiv
}

// Leading is true when no living enemy base holds as much as ours.
func (e RuleEnv) Leading() bool {
	for _, m := range e.Snapshot.EnemyBases {
		if m.Payload >= e.Snapshot.Home.Payload {
			return false
		}
	}
	return true
}

func (e RuleEnv) EnemyEngaged() bool { return e.Enemy != nil }

func (e RuleEnv) EnemyDistance() float64 {
	if e.Enemy == nil {
		return math.Inf(1)
	}
	return geom.Distance(e.Self.Pos(), e.Enemy.Pos)
}

func (e RuleEnv) HomeEnemyDistance() float64 {
	if e.Enemy == nil {
		return math.Inf(1)
	}
	return geom.Distance(e.Snapshot.Home.Pos(), e.Enemy.Pos)
}

func (e RuleEnv) EnemyCount() int { return len(e.Snapshot.EnemyDrones) }

func (e RuleEnv) TeammateCount() int { return len(e.Teammates) }

func (e RuleEnv) SafeShot() bool {
	if e.Enemy == nil {
		return false
	}
	return SafeToFire(e.Self.Pos(), e.Enemy.Pos, e.Teammates, e.Tuning.Guard)
}

func (e RuleEnv) EnemyProtected() bool {
	if e.Enemy == nil {
		return false
	}
	return Protected(*e.Enemy, e.Snapshot, e.Tuning.Guard)
}

func (e RuleEnv) DefenseSteps() int { return e.Counters.DefenseSteps }

func (e RuleEnv) StalledSteps() int { return e.Counters.StalledSteps }

// CargoTargets counts reachable cargo nodes outside enemy fire.
func (e RuleEnv) CargoTargets() int { return len(e.Snapshot.Nodes) }
