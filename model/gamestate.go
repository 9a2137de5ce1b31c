package model

import (
	"sort"

	"github.com/nstehr/elerium/elerium-core/geom"
)

// GameState is the arena snapshot the host sends with every drone event.
// Dead drones and motherships stay in the lists while they carry cargo.
type GameState struct {
	Tick        int          `json:"tick"`
	FieldWidth  int          `json:"fieldWidth"`
	FieldHeight int          `json:"fieldHeight"`
	Drones      []Drone      `json:"drones"`
	Motherships []Mothership `json:"motherships"`
	Asteroids   []Asteroid   `json:"asteroids"`
}

type Drone struct {
	ID      int     `json:"id"`
	Team    string  `json:"team"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Health  float64 `json:"health"`
	Payload int     `json:"payload"`
	Alive   bool    `json:"alive"`
}

func (d Drone) Pos() geom.Point { return geom.Point{X: d.X, Y: d.Y} }

type Mothership struct {
	ID      int     `json:"id"`
	Team    string  `json:"team"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Payload int     `json:"payload"`
	Alive   bool    `json:"alive"`
}

func (m Mothership) Pos() geom.Point { return geom.Point{X: m.X, Y: m.Y} }

type Asteroid struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Payload int     `json:"payload"`
}

func (a Asteroid) Pos() geom.Point { return geom.Point{X: a.X, Y: a.Y} }

// EntityKind names what a Ref points at.
type EntityKind string

const (
	KindAsteroid   EntityKind = "asteroid"
	KindDrone      EntityKind = "drone"
	KindMothership EntityKind = "mothership"
)

// Ref identifies an entity across ticks. IDs are only unique per kind.
type Ref struct {
	Kind EntityKind `json:"kind"`
	ID   int        `json:"id"`
}

func (gs GameState) Drone(id int) (Drone, bool) {
	for _, d := range gs.Drones {
		if d.ID == id {
			return d, true
		}
	}
	return Drone{}, false
}

func (gs GameState) Asteroid(id int) (Asteroid, bool) {
	for _, a := range gs.Asteroids {
		if a.ID == id {
			return a, true
		}
	}
	return Asteroid{}, false
}

func (gs GameState) MothershipByID(id int) (Mothership, bool) {
	for _, m := range gs.Motherships {
		if m.ID == id {
			return m, true
		}
	}
	return Mothership{}, false
}

// Mothership returns the home base of team, alive or not.
func (gs GameState) Mothership(team string) (Mothership, bool) {
	for _, m := range gs.Motherships {
		if m.Team == team {
			return m, true
		}
	}
	return Mothership{}, false
}

// Teammates returns the living drones of self's team, excluding self,
// ordered by ID.
func (gs GameState) Teammates(self Drone) []Drone {
	var out []Drone
	for _, d := range gs.Drones {
		if d.Alive && d.Team == self.Team && d.ID != self.ID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TotalAsteroidPayload sums what is left on every asteroid.
func (gs GameState) TotalAsteroidPayload() int {
	n := 0
	for _, a := range gs.Asteroids {
		n += a.Payload
	}
	return n
}

func (gs GameState) Center() geom.Point {
	return geom.Point{X: float64(gs.FieldWidth / 2), Y: float64(gs.FieldHeight / 2)}
}

// Locate resolves a Ref against the snapshot, returning its position and
// remaining payload.
func (gs GameState) Locate(r Ref) (pos geom.Point, payload int, ok bool) {
	switch r.Kind {
	case KindAsteroid:
		if a, found := gs.Asteroid(r.ID); found {
			return a.Pos(), a.Payload, true
		}
	case KindDrone:
		if d, found := gs.Drone(r.ID); found {
			return d.Pos(), d.Payload, true
		}
	case KindMothership:
		if m, found := gs.MothershipByID(r.ID); found {
			return m.Pos(), m.Payload, true
		}
	}
	return geom.Point{}, 0, false
}
