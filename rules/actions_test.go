package rules

import (
	"testing"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

func TestActionAdvanceUsesAttackSlot(t *testing.T) {
	env := RuleEnv{
		Rank:        1,
		DefenseRing: []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		AttackFan:   []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 20}},
		Tuning:      tuning.Default(),
	}
	a := ActionAdvance(env)
	if a.Kind != ActionMove || a.Dest.Point != (geom.Point{X: 20, Y: 20}) {
		t.Errorf("advance = %+v, want move to fan slot 1", a)
	}
	if !a.Effects.ResetOwnDefense {
		t.Error("advance should reset own defense steps")
	}

	env.AttackFan = env.AttackFan[:1]
	if a := ActionAdvance(env); a.Dest.Point != (geom.Point{X: 2, Y: 2}) {
		t.Errorf("short fan: dest = %+v, want defense slot 1", a.Dest.Point)
	}
}

func TestActionScavengeSkipsFarNodesUnlessPinned(t *testing.T) {
	tun := tuning.Default()
	far := Entity{Ref: model.Ref{Kind: model.KindAsteroid, ID: 1}, Pos: geom.Point{X: 700, Y: 100}, Payload: 10}
	env := RuleEnv{
		Snapshot: Snapshot{
			Home:  model.Mothership{ID: 100, Team: "red", X: 100, Y: 100, Alive: true},
			Nodes: []Entity{far},
		},
		Tuning: tun,
	}
	if a := ActionScavenge(env); a.Kind != ActionHold {
		t.Errorf("far node without a pinned enemy: %+v, want hold", a)
	}

	// The tracked enemy sits inside its base's cover, far from the node.
	env.Snapshot.EnemyBases = []model.Mothership{{ID: 101, Team: "blue", X: 1100, Y: 1100, Alive: true}}
	enemy := Entity{Ref: model.Ref{Kind: model.KindDrone, ID: 9}, Team: "blue", Pos: geom.Point{X: 1100, Y: 1000}}
	env.Enemy = &enemy
	a := ActionScavenge(env)
	if a.Kind != ActionMove || a.Dest.Ref == nil || *a.Dest.Ref != far.Ref {
		t.Errorf("pinned enemy: %+v, want move to far node", a)
	}
}

func TestEffectsMerge(t *testing.T) {
	ref := model.Ref{Kind: model.KindDrone, ID: 3}
	got := Effects{ResetStall: true}.merge(Effects{ResetOwnDefense: true, NoteCargo: &ref})
	if !got.ResetStall || !got.ResetOwnDefense || got.NoteCargo == nil {
		t.Errorf("merge = %+v", got)
	}
}
