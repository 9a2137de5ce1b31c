package agent

import (
	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/ipc"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/rules"
)

// orders collects the commands for one callback. Every move books its
// straight-line distance into stats before it is issued.
type orders struct {
	self  model.Drone
	full  int
	stats *Stats
	cmds  []ipc.Command
}

func newOrders(self model.Drone, full int, stats *Stats) *orders {
	return &orders{self: self, full: full, stats: stats, cmds: []ipc.Command{}}
}

func (o *orders) moveTo(d rules.Destination) {
	o.stats.Add(o.self.Payload, o.full, geom.Distance(o.self.Pos(), d.Point))
	o.cmds = append(o.cmds, ipc.StopCommand())
	if d.Ref != nil {
		o.cmds = append(o.cmds, ipc.MoveToTarget(*d.Ref, d.Point.X, d.Point.Y))
		return
	}
	o.cmds = append(o.cmds, ipc.MoveToPoint(d.Point.X, d.Point.Y))
}

func (o *orders) turnTo(d rules.Destination) {
	if d.Ref != nil {
		o.cmds = append(o.cmds, ipc.TurnToTarget(*d.Ref, d.Point.X, d.Point.Y))
		return
	}
	o.cmds = append(o.cmds, ipc.TurnToPoint(d.Point.X, d.Point.Y))
}

func (o *orders) load(r model.Ref)   { o.cmds = append(o.cmds, ipc.LoadCommand(r)) }
func (o *orders) unload(r model.Ref) { o.cmds = append(o.cmds, ipc.UnloadCommand(r)) }
func (o *orders) shoot(r model.Ref)  { o.cmds = append(o.cmds, ipc.ShootCommand(r)) }

// act translates an engine decision into host commands. Moves a later
// branch replaced are booked but not sent.
func (o *orders) act(a rules.Action) {
	for _, d := range a.Superseded {
		o.stats.Add(o.self.Payload, o.full, geom.Distance(o.self.Pos(), d.Point))
	}
	switch a.Kind {
	case rules.ActionMove:
		o.moveTo(a.Dest)
	case rules.ActionTurnAndFire:
		o.turnTo(a.Dest)
		if a.Fire && a.Dest.Ref != nil {
			o.shoot(*a.Dest.Ref)
		}
		if a.Sidestep != nil {
			o.moveTo(rules.PointDest(*a.Sidestep))
		}
	case rules.ActionLoad:
		if a.Dest.Ref != nil {
			o.load(*a.Dest.Ref)
		}
		if a.Face != nil {
			o.turnTo(*a.Face)
		}
	case rules.ActionUnload:
		if a.Face != nil {
			o.turnTo(*a.Face)
		}
		if a.Dest.Ref != nil {
			o.unload(*a.Dest.Ref)
		}
	}
}

func baseDest(m model.Mothership) rules.Destination {
	return rules.Destination{
		Point: m.Pos(),
		Ref:   &model.Ref{Kind: model.KindMothership, ID: m.ID},
	}
}
