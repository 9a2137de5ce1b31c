package agent

import (
	"testing"

	"github.com/nstehr/elerium/elerium-core/model"
)

const testRange = 635

// baseArena returns a two-team arena for event tests.
func baseArena(tick int) model.GameState {
	return model.GameState{
		Tick:        tick,
		FieldWidth:  1200,
		FieldHeight: 1200,
		Drones: []model.Drone{
			{ID: 1, Team: "red", X: 150, Y: 150, Health: 100, Alive: true},
			{ID: 2, Team: "red", X: 200, Y: 150, Health: 100, Alive: true},
			{ID: 5, Team: "blue", X: 1100, Y: 1000, Health: 100, Alive: true},
		},
		Motherships: []model.Mothership{
			{ID: 100, Team: "red", X: 100, Y: 100, Alive: true},
			{ID: 101, Team: "blue", X: 1100, Y: 1100, Alive: true},
		},
		Asteroids: []model.Asteroid{{ID: 1, X: 600, Y: 600, Payload: 20}},
	}
}

func hasEvent(events []ArenaEvent, kind ArenaEventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestDetectEvents_NoEvents(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d: %+v", len(events), events)
	}
}

func TestDetectEvents_NilPrev(t *testing.T) {
	events := detectEvents(takeSnapshot(baseArena(100), "red", testRange), nil)
	if events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
}

func TestDetectEvents_TeammateLost(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	gs.Drones[1].Alive = false
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if !hasEvent(events, EventTeammateLost) {
		t.Errorf("expected teammate_lost, got %+v", events)
	}
}

func TestDetectEvents_EnemyLossIsNotTeammateLoss(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	gs.Drones[2].Alive = false
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if hasEvent(events, EventTeammateLost) {
		t.Errorf("enemy death reported as teammate loss: %+v", events)
	}
}

func TestDetectEvents_BaseDestroyed(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	gs.Motherships[1].Alive = false
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if !hasEvent(events, EventBaseDestroyed) {
		t.Errorf("expected base_destroyed, got %+v", events)
	}
}

func TestDetectEvents_FirstContact(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	gs.Drones[2].X, gs.Drones[2].Y = 500, 500
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if !hasEvent(events, EventFirstContact) {
		t.Errorf("expected first_contact, got %+v", events)
	}
}

func TestDetectEvents_FieldDepleted(t *testing.T) {
	gs := baseArena(100)
	prev := takeSnapshot(gs, "red", testRange)

	gs.Tick = 101
	gs.Asteroids[0].Payload = 0
	events := detectEvents(takeSnapshot(gs, "red", testRange), &prev)
	if !hasEvent(events, EventFieldDepleted) {
		t.Errorf("expected field_depleted, got %+v", events)
	}
}

func TestArenaWatch_FirstContactOnce(t *testing.T) {
	var w arenaWatch
	gs := baseArena(100)
	w.observe(gs, "red", testRange)

	gs.Tick = 101
	gs.Drones[2].X, gs.Drones[2].Y = 500, 500
	if events := w.observe(gs, "red", testRange); !hasEvent(events, EventFirstContact) {
		t.Fatalf("expected first_contact, got %+v", events)
	}

	// Enemy withdraws and returns.
	gs.Tick = 102
	gs.Drones[2].X, gs.Drones[2].Y = 1100, 1000
	w.observe(gs, "red", testRange)
	gs.Tick = 103
	gs.Drones[2].X, gs.Drones[2].Y = 500, 500
	if events := w.observe(gs, "red", testRange); hasEvent(events, EventFirstContact) {
		t.Errorf("first_contact fired twice: %+v", events)
	}
}

func TestArenaWatch_SameTickObservedOnce(t *testing.T) {
	var w arenaWatch
	gs := baseArena(100)
	w.observe(gs, "red", testRange)

	gs.Tick = 101
	gs.Drones[1].Alive = false
	if events := w.observe(gs, "red", testRange); len(events) != 1 {
		t.Fatalf("expected 1 event, got %+v", events)
	}
	if events := w.observe(gs, "red", testRange); events != nil {
		t.Errorf("second callback in the same tick reported %+v", events)
	}
}
