package agent

import (
	"log/slog"
	"math/rand"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/ipc"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/rules"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Pilot drives one drone through its life-cycle callbacks. Everything it
// decides is derived from the state delivered with the callback; the only
// memory it keeps across callbacks is listed below.
type Pilot struct {
	ID     int
	team   *Team
	rec    *Record
	engine *rules.Engine
	rng    *rand.Rand

	steps         int
	lastPos       geom.Point
	hasLast       bool
	engaged       *model.Ref // tracked enemy
	cargo         *model.Ref // drifting cargo noted while scavenging
	totalResource int        // asteroid payload in the arena at spawn
}

func newPilot(id int, team *Team, engine *rules.Engine, rng *rand.Rand) *Pilot {
	return &Pilot{
		ID:     id,
		team:   team,
		rec:    team.own(id),
		engine: engine,
		rng:    rng,
	}
}

func (p *Pilot) counters() rules.Counters {
	return rules.Counters{DefenseSteps: p.rec.DefenseSteps, StalledSteps: p.rec.StalledSteps}
}

func (p *Pilot) orders(self model.Drone, t tuning.Tuning) *orders {
	return newOrders(self, t.Resources.Full, &p.rec.Stats)
}

// Spawn sizes the arena's resource pool and heads for the first harvest.
func (p *Pilot) Spawn(gs model.GameState, self model.Drone) []ipc.Command {
	t := p.engine.Tuning()
	p.totalResource = gs.TotalAsteroidPayload()

	mates := gs.Teammates(self)
	res, ok := rules.SelectResource(gs, self, rules.MinID(self, mates), p.rng, t)
	if !ok {
		return p.decide(gs, self)
	}
	o := p.orders(self, t)
	o.moveTo(rules.EntityDest(res))
	return o.cmds
}

// Heartbeat updates the step, time-in-defense and stall counters. It never
// issues commands.
func (p *Pilot) Heartbeat(gs model.GameState, self model.Drone) {
	t := p.engine.Tuning()
	p.steps++

	pos := self.Pos()
	atPost := pos.Near(p.defensePoint(gs, self, t), t.ArrivalRadius)
	if atPost {
		p.rec.DefenseSteps++
	}
	if p.hasLast && pos == p.lastPos && !atPost {
		p.rec.StalledSteps++
	}
	p.lastPos, p.hasLast = pos, true
}

func (p *Pilot) defensePoint(gs model.GameState, self model.Drone, t tuning.Tuning) geom.Point {
	home, _ := gs.Mothership(self.Team)
	mates := gs.Teammates(self)
	ring := rules.DefenseRing(home.Pos(), gs.Center(), len(mates)+1, t)
	return rules.SlotAt(ring, rules.Rank(self, mates), home.Pos())
}

// StopAtNode starts loading from a node that still carries payload, facing
// home so the return leg is pre-aimed.
func (p *Pilot) StopAtNode(gs model.GameState, self model.Drone, node *model.Ref) []ipc.Command {
	if node == nil {
		return p.decide(gs, self)
	}
	if _, payload, ok := gs.Locate(*node); !ok || payload == 0 {
		return p.decide(gs, self)
	}
	home, _ := gs.Mothership(self.Team)
	o := p.orders(self, p.engine.Tuning())
	o.load(*node)
	o.turnTo(baseDest(home))
	return o.cmds
}

// LoadComplete sends a full drone home and re-plans otherwise.
func (p *Pilot) LoadComplete(gs model.GameState, self model.Drone) []ipc.Command {
	t := p.engine.Tuning()
	if self.Payload != t.Resources.Full {
		return p.decide(gs, self)
	}
	home, _ := gs.Mothership(self.Team)
	o := p.orders(self, t)
	o.moveTo(baseDest(home))
	return o.cmds
}

// StopAtBase unloads at home, aiming at the next harvest first, and then
// checks whether the harvest is over. At a foreign base it loads whatever
// the base still holds. The report is non-nil only when this drone emits it.
func (p *Pilot) StopAtBase(gs model.GameState, self model.Drone, base *model.Ref) ([]ipc.Command, *Report) {
	t := p.engine.Tuning()
	home, ok := gs.Mothership(self.Team)
	if base == nil || !ok {
		return p.decide(gs, self), nil
	}
	o := p.orders(self, t)

	if base.ID != home.ID {
		o.turnTo(baseDest(home))
		o.load(*base)
		return o.cmds, nil
	}

	if self.Payload != 0 {
		mates := gs.Teammates(self)
		if res, ok := rules.SelectResource(gs, self, rules.MinID(self, mates), p.rng, t); ok {
			o.turnTo(rules.EntityDest(res))
		}
		o.unload(*base)
	}
	return o.cmds, p.checkReport(gs, self, home, t)
}

// UnloadComplete re-plans.
func (p *Pilot) UnloadComplete(gs model.GameState, self model.Drone) []ipc.Command {
	return p.decide(gs, self)
}

// Wake runs after a stun or similar recovery.
func (p *Pilot) Wake(gs model.GameState, self model.Drone) []ipc.Command {
	t := p.engine.Tuning()
	home, _ := gs.Mothership(self.Team)
	mates := gs.Teammates(self)
	o := p.orders(self, t)

	switch {
	case wounded(self, mates, t.Guard.WoundedHealth):
		o.moveTo(baseDest(home))
	case self.Payload != 0 && geom.Distance(self.Pos(), home.Pos()) <= t.Resources.ReturnHomeRadius:
		o.moveTo(baseDest(home))
	case p.cargo != nil && p.cargoPayload(gs) != 0:
		o.turnTo(baseDest(home))
		o.load(*p.cargo)
		p.cargo = nil
	default:
		return p.decide(gs, self)
	}
	return o.cmds
}

func (p *Pilot) cargoPayload(gs model.GameState) int {
	_, payload, _ := gs.Locate(*p.cargo)
	return payload
}

func wounded(self model.Drone, mates []model.Drone, threshold float64) bool {
	if self.Health <= threshold {
		return true
	}
	for _, m := range mates {
		if m.Health <= threshold {
			return true
		}
	}
	return false
}

// decide runs the top-level policy and applies its side effects.
func (p *Pilot) decide(gs model.GameState, self model.Drone) []ipc.Command {
	t := p.engine.Tuning()
	env, engaged := rules.Prepare(gs, self, p.engaged, p.counters(), p.totalResource, p.rng, t)
	p.engaged = engaged

	act := p.engine.Evaluate(env)
	p.apply(act.Effects, env)

	o := p.orders(self, t)
	o.act(act)
	slog.Debug("decision", "drone", self.ID, "rule", act.Rule, "kind", act.Kind, "rank", env.Rank, "commands", len(o.cmds))
	return o.cmds
}

func (p *Pilot) apply(fx rules.Effects, env rules.RuleEnv) {
	if fx.ResetTeamDefense {
		ids := []int{p.ID}
		for _, m := range env.Teammates {
			ids = append(ids, m.ID)
		}
		p.team.ResetDefense(ids...)
	}
	if fx.ResetOwnDefense {
		p.rec.DefenseSteps = 0
	}
	if fx.ResetStall {
		p.rec.StalledSteps = 0
	}
	if fx.NoteCargo != nil {
		ref := *fx.NoteCargo
		p.cargo = &ref
	}
}

// checkReport emits the statistics report once every living teammate is
// docked at home, no resource node holds payload and nobody on the team has
// reported yet. The totals come from a single representative: the last
// living teammate by ID, or this drone when it flies alone.
func (p *Pilot) checkReport(gs model.GameState, self model.Drone, home model.Mothership, t tuning.Tuning) *Report {
	mates := gs.Teammates(self)
	for _, m := range mates {
		if !m.Pos().Near(home.Pos(), t.ArrivalRadius) {
			return nil
		}
	}
	if cargoLeft(gs) {
		return nil
	}
	ids := []int{self.ID}
	for _, m := range mates {
		ids = append(ids, m.ID)
	}
	if p.team.AnyPrinted(ids...) {
		return nil
	}

	rep, stats := self.ID, p.rec.Stats
	if len(mates) > 0 {
		last := mates[len(mates)-1]
		rep = last.ID
		r, _ := p.team.Get(last.ID)
		stats = r.Stats
	}
	p.rec.Printed = true
	r := NewReport(p.team.Name, self.ID, rep, gs.Tick, stats)
	return &r
}

// cargoLeft reports whether any asteroid or wreck still carries payload.
func cargoLeft(gs model.GameState) bool {
	for _, a := range gs.Asteroids {
		if a.Payload != 0 {
			return true
		}
	}
	for _, d := range gs.Drones {
		if !d.Alive && d.Payload != 0 {
			return true
		}
	}
	for _, m := range gs.Motherships {
		if !m.Alive && m.Payload != 0 {
			return true
		}
	}
	return false
}
