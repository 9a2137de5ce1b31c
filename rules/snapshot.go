package rules

import (
	"sort"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Entity is anything the pilot can fly to, load from or shoot at.
type Entity struct {
	Ref     model.Ref
	Team    string
	Pos     geom.Point
	Payload int
}

func droneEntity(d model.Drone) Entity {
	return Entity{Ref: model.Ref{Kind: model.KindDrone, ID: d.ID}, Team: d.Team, Pos: d.Pos(), Payload: d.Payload}
}

func mothershipEntity(m model.Mothership) Entity {
	return Entity{Ref: model.Ref{Kind: model.KindMothership, ID: m.ID}, Team: m.Team, Pos: m.Pos(), Payload: m.Payload}
}

func asteroidEntity(a model.Asteroid) Entity {
	return Entity{Ref: model.Ref{Kind: model.KindAsteroid, ID: a.ID}, Pos: a.Pos(), Payload: a.Payload}
}

// Snapshot is the per-tick view of the arena from one drone's seat.
// It is rebuilt from scratch every time; nothing carries over.
type Snapshot struct {
	Home        model.Mothership
	EnemyBases  []model.Mothership
	EnemyDrones []model.Drone
	// Nodes are cargo sources sorted by distance from Home, with anything
	// inside an enemy drone's weapon range dropped.
	Nodes []Entity
}

func BuildSnapshot(gs model.GameState, self model.Drone, t tuning.Tuning) Snapshot {
	home, _ := gs.Mothership(self.Team)
	snap := Snapshot{Home: home}

	for _, m := range gs.Motherships {
		if m.Alive && m.Team != self.Team {
			snap.EnemyBases = append(snap.EnemyBases, m)
		}
	}
	for _, d := range gs.Drones {
		if d.Alive && d.Team != self.Team {
			snap.EnemyDrones = append(snap.EnemyDrones, d)
		}
	}

	var nodes []Entity
	for _, m := range gs.Motherships {
		if !m.Alive && m.Team != self.Team && m.Payload != 0 {
			nodes = append(nodes, mothershipEntity(m))
		}
	}
	for _, d := range gs.Drones {
		if !d.Alive && d.Team != self.Team && d.Payload != 0 {
			nodes = append(nodes, droneEntity(d))
		}
	}
	for _, a := range gs.Asteroids {
		if a.Payload != 0 {
			nodes = append(nodes, asteroidEntity(a))
		}
	}
	homePos := home.Pos()
	sort.SliceStable(nodes, func(i, j int) bool {
		return geom.Distance(homePos, nodes[i].Pos) < geom.Distance(homePos, nodes[j].Pos)
	})
	for _, n := range nodes {
		if !OnFire(n.Pos, snap, t.WeaponRange) {
			snap.Nodes = append(snap.Nodes, n)
		}
	}
	return snap
}
