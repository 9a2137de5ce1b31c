package model

import "testing"

func testState() GameState {
	return GameState{
		FieldWidth:  1200,
		FieldHeight: 1200,
		Drones: []Drone{
			{ID: 7, Team: "red", X: 10, Y: 10, Alive: true},
			{ID: 3, Team: "red", X: 20, Y: 20, Alive: true},
			{ID: 5, Team: "red", X: 30, Y: 30, Alive: false, Payload: 40},
			{ID: 1, Team: "blue", X: 900, Y: 900, Alive: true},
		},
		Motherships: []Mothership{
			{ID: 100, Team: "red", X: 90, Y: 90, Alive: true},
			{ID: 101, Team: "blue", X: 1110, Y: 1110, Alive: true},
		},
		Asteroids: []Asteroid{
			{ID: 1, X: 600, Y: 600, Payload: 100},
			{ID: 2, X: 300, Y: 600, Payload: 35},
		},
	}
}

func TestTeammates(t *testing.T) {
	gs := testState()
	self, _ := gs.Drone(7)
	mates := gs.Teammates(self)
	if len(mates) != 1 || mates[0].ID != 3 {
		t.Fatalf("Teammates = %+v, want only drone 3 (dead and foreign excluded)", mates)
	}
}

func TestTotalAsteroidPayload(t *testing.T) {
	if got := testState().TotalAsteroidPayload(); got != 135 {
		t.Errorf("TotalAsteroidPayload = %d, want 135", got)
	}
}

func TestCenter(t *testing.T) {
	c := GameState{FieldWidth: 1201, FieldHeight: 800}.Center()
	if c.X != 600 || c.Y != 400 {
		t.Errorf("Center = %+v, want (600,400)", c)
	}
}

func TestLocate(t *testing.T) {
	gs := testState()
	tests := []struct {
		ref         Ref
		wantOK      bool
		wantPayload int
	}{
		{Ref{KindAsteroid, 2}, true, 35},
		{Ref{KindDrone, 5}, true, 40},
		{Ref{KindMothership, 101}, true, 0},
		{Ref{KindAsteroid, 99}, false, 0},
		{Ref{"unknown", 1}, false, 0},
	}
	for _, tc := range tests {
		_, payload, ok := gs.Locate(tc.ref)
		if ok != tc.wantOK || payload != tc.wantPayload {
			t.Errorf("Locate(%+v) = (%d, %v), want (%d, %v)", tc.ref, payload, ok, tc.wantPayload, tc.wantOK)
		}
	}
}

func TestMothershipByTeam(t *testing.T) {
	gs := testState()
	m, ok := gs.Mothership("blue")
	if !ok || m.ID != 101 {
		t.Errorf("Mothership(blue) = %+v, %v", m, ok)
	}
	if _, ok := gs.Mothership("green"); ok {
		t.Error("Mothership(green) should not be found")
	}
}
