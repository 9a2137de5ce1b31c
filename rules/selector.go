package rules

import (
	"math"
	"math/rand"
	"sort"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// SelectResource picks where self should harvest next.
//
// Rich asteroids (payload >= RichPayload) away from home and within reach
// are shared out by dense rank (ID - minID): drone k takes candidate k-1
// of the self-distance ordering, so the drone with the smallest ID wraps
// onto the farthest one. A rank beyond the candidate count draws one at
// random. When nothing rich qualifies, or the hold is nearly full, the
// nearest non-empty asteroid wins, then foreign wreck drones, then wreck
// motherships.
func SelectResource(gs model.GameState, self model.Drone, minID int, rng *rand.Rand, t tuning.Tuning) (Entity, bool) {
	r := t.Resources
	home, _ := gs.Mothership(self.Team)
	homePos, selfPos := home.Pos(), self.Pos()
	reach := geom.Distance(homePos, gs.Center()) * r.ReachFactor

	var candidates []Entity
	for _, a := range gs.Asteroids {
		if a.Payload >= r.RichPayload &&
			geom.Distance(homePos, a.Pos()) > r.MinBaseDistance &&
			geom.Distance(selfPos, a.Pos()) <= reach {
			candidates = append(candidates, asteroidEntity(a))
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return geom.Distance(selfPos, candidates[i].Pos) < geom.Distance(selfPos, candidates[j].Pos)
	})

	var (
		chosen Entity
		ok     bool
	)
	if len(candidates) > 0 {
		dense := self.ID - minID
		if len(candidates) >= dense {
			idx := dense - 1
			if idx < 0 {
				idx = len(candidates) - 1
			}
			chosen = candidates[idx]
		} else {
			chosen = candidates[rng.Intn(len(candidates))]
		}
		ok = true
	}

	nearlyFull := self.Payload > r.NearlyFullAbove && self.Payload < r.Full
	if ok && !nearlyFull {
		return chosen, true
	}
	if e, found := nearestFallback(gs, self); found {
		return e, true
	}
	return chosen, ok
}

// nearestFallback walks the fallback tiers in order and returns the
// nearest non-empty source of the first tier that has one.
func nearestFallback(gs model.GameState, self model.Drone) (Entity, bool) {
	selfPos := self.Pos()

	var tiers [3][]Entity
	for _, a := range gs.Asteroids {
		if a.Payload != 0 {
			tiers[0] = append(tiers[0], asteroidEntity(a))
		}
	}
	for _, d := range gs.Drones {
		if !d.Alive && d.Team != self.Team && d.Payload != 0 {
			tiers[1] = append(tiers[1], droneEntity(d))
		}
	}
	for _, m := range gs.Motherships {
		if !m.Alive && m.Team != self.Team && m.Payload != 0 {
			tiers[2] = append(tiers[2], mothershipEntity(m))
		}
	}

	for _, tier := range tiers {
		if e, found := nearestTo(selfPos, tier); found {
			return e, true
		}
	}
	return Entity{}, false
}

func nearestTo(p geom.Point, es []Entity) (Entity, bool) {
	best, bestDist, found := Entity{}, math.MaxFloat64, false
	for _, e := range es {
		if d := geom.Distance(p, e.Pos); d < bestDist {
			best, bestDist, found = e, d, true
		}
	}
	return best, found
}

// SelectEnemy picks a target: the unprotected enemy drone nearest our
// base; failing that, the first enemy drone when they are few enough to
// take on anyway; failing that, the unprotected enemy base nearest ours.
func SelectEnemy(snap Snapshot, teammateCount int, t tuning.Tuning) (Entity, bool) {
	homePos := snap.Home.Pos()

	var open []Entity
	for _, d := range snap.EnemyDrones {
		e := droneEntity(d)
		if !Protected(e, snap, t.Guard) {
			open = append(open, e)
		}
	}
	if e, found := nearestTo(homePos, open); found {
		return e, true
	}

	n := len(snap.EnemyDrones)
	if n != 0 && n < teammateCount+t.Policy.ForcedTargetSurplus {
		return droneEntity(snap.EnemyDrones[0]), true
	}

	var bases []Entity
	for _, m := range snap.EnemyBases {
		e := mothershipEntity(m)
		if !Protected(e, snap, t.Guard) {
			bases = append(bases, e)
		}
	}
	return nearestTo(homePos, bases)
}
