package agent

import (
	"fmt"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
)

// ArenaEventKind identifies a notable change between two arena states.
type ArenaEventKind string

const (
	EventTeammateLost  ArenaEventKind = "teammate_lost"
	EventBaseDestroyed ArenaEventKind = "base_destroyed"
	EventFirstContact  ArenaEventKind = "first_contact"
	EventFieldDepleted ArenaEventKind = "field_depleted"
)

// ArenaEvent is detected by diffing consecutive states seen by a team.
type ArenaEvent struct {
	Kind   ArenaEventKind
	Tick   int
	Detail string
}

// stateSnapshot captures the diffable fields of one arena state.
type stateSnapshot struct {
	tick            int
	ownDrones       map[int]bool   // id → alive
	bases           map[int]string // living base id → team
	contact         bool           // an enemy drone has come within weapon range of home
	asteroidPayload int
}

func takeSnapshot(gs model.GameState, team string, weaponRange float64) stateSnapshot {
	snap := stateSnapshot{
		tick:            gs.Tick,
		ownDrones:       make(map[int]bool),
		bases:           make(map[int]string),
		asteroidPayload: gs.TotalAsteroidPayload(),
	}
	home, hasHome := gs.Mothership(team)
	for _, d := range gs.Drones {
		if d.Team == team {
			snap.ownDrones[d.ID] = d.Alive
			continue
		}
		if hasHome && d.Alive && geom.Distance(d.Pos(), home.Pos()) <= weaponRange {
			snap.contact = true
		}
	}
	for _, m := range gs.Motherships {
		if m.Alive {
			snap.bases[m.ID] = m.Team
		}
	}
	return snap
}

// detectEvents compares the current state against the previous snapshot.
// Returns nil if prev is nil (first state seen).
func detectEvents(cur stateSnapshot, prev *stateSnapshot) []ArenaEvent {
	if prev == nil {
		return nil
	}
	var events []ArenaEvent

	for id, alive := range prev.ownDrones {
		if alive && !cur.ownDrones[id] {
			events = append(events, ArenaEvent{
				Kind:   EventTeammateLost,
				Tick:   cur.tick,
				Detail: fmt.Sprintf("drone %d destroyed", id),
			})
		}
	}

	for id, team := range prev.bases {
		if _, ok := cur.bases[id]; !ok {
			events = append(events, ArenaEvent{
				Kind:   EventBaseDestroyed,
				Tick:   cur.tick,
				Detail: fmt.Sprintf("mothership %d (%s) destroyed", id, team),
			})
		}
	}

	if !prev.contact && cur.contact {
		events = append(events, ArenaEvent{
			Kind:   EventFirstContact,
			Tick:   cur.tick,
			Detail: "enemy drone within weapon range of home",
		})
	}

	if prev.asteroidPayload > 0 && cur.asteroidPayload == 0 {
		events = append(events, ArenaEvent{
			Kind:   EventFieldDepleted,
			Tick:   cur.tick,
			Detail: "every asteroid harvested",
		})
	}

	return events
}

// arenaWatch diffs successive states once per tick. Contact is sticky so
// first_contact fires at most once per match.
type arenaWatch struct {
	prev *stateSnapshot
}

func (w *arenaWatch) observe(gs model.GameState, team string, weaponRange float64) []ArenaEvent {
	if w.prev != nil && gs.Tick <= w.prev.tick {
		return nil
	}
	cur := takeSnapshot(gs, team, weaponRange)
	events := detectEvents(cur, w.prev)
	if w.prev != nil && w.prev.contact {
		cur.contact = true
	}
	w.prev = &cur
	return events
}
