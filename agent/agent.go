package agent

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/nstehr/elerium/elerium-core/ipc"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/rules"
)

const reportTimeout = 5 * time.Second

// Agent owns the decision-making for a single team session.
type Agent struct {
	Conn      *ipc.Connection
	Team      *Team
	Engine    *rules.Engine
	Reporters []Reporter

	rng    *rand.Rand
	pilots map[int]*Pilot
	watch  arenaWatch
}

func New(conn *ipc.Connection, engine *rules.Engine, seed int64, reporters ...Reporter) *Agent {
	return &Agent{
		Conn:      conn,
		Engine:    engine,
		Reporters: reporters,
		rng:       rand.New(rand.NewSource(seed)),
		pilots:    make(map[int]*Pilot),
	}
}

// HandleHello completes the handshake so the host knows the team is bound.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	if hello.Team == "" {
		return nil, fmt.Errorf("hello without team")
	}

	a.Team = NewTeam(hello.Team)
	a.pilots = make(map[int]*Pilot)
	a.watch = arenaWatch{}
	if a.Conn != nil {
		a.Conn.Team = hello.Team
	}
	slog.Info("team identified", "team", hello.Team, "field", fmt.Sprintf("%dx%d", hello.FieldWidth, hello.FieldHeight))

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleEvent runs one life-cycle callback and replies with the drone's
// commands, which may be empty.
func (a *Agent) HandleEvent(env ipc.Envelope) (*ipc.Envelope, error) {
	if a.Team == nil {
		return nil, fmt.Errorf("event before hello")
	}
	var msg ipc.EventMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}
	self, ok := msg.State.Drone(msg.Drone)
	if !ok {
		return nil, fmt.Errorf("drone %d not in state", msg.Drone)
	}
	if self.Team != a.Team.Name {
		return nil, fmt.Errorf("drone %d belongs to %q, session is %q", self.ID, self.Team, a.Team.Name)
	}

	for _, ev := range a.watch.observe(msg.State, a.Team.Name, a.Engine.Tuning().WeaponRange) {
		slog.Info("arena event", "team", a.Team.Name, "kind", ev.Kind, "tick", ev.Tick, "detail", ev.Detail)
	}

	cmds, err := a.dispatch(msg, self)
	if err != nil {
		return nil, err
	}
	if cmds == nil {
		cmds = []ipc.Command{}
	}

	out, err := ipc.NewEnvelope(ipc.TypeCommands, ipc.CommandsMessage{Drone: msg.Drone, Commands: cmds})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Agent) dispatch(msg ipc.EventMessage, self model.Drone) ([]ipc.Command, error) {
	p := a.pilot(self.ID, msg.State)
	if !self.Alive {
		return nil, nil
	}
	gs := msg.State

	switch msg.Kind {
	case ipc.EventSpawn:
		return p.Spawn(gs, self), nil
	case ipc.EventHeartbeat:
		p.Heartbeat(gs, self)
		return nil, nil
	case ipc.EventStopAtNode:
		return p.StopAtNode(gs, self, msg.Target), nil
	case ipc.EventLoadComplete:
		return p.LoadComplete(gs, self), nil
	case ipc.EventStopAtBase:
		cmds, report := p.StopAtBase(gs, self, msg.Target)
		if report != nil {
			a.publish(*report)
		}
		return cmds, nil
	case ipc.EventUnloadComplete:
		return p.UnloadComplete(gs, self), nil
	case ipc.EventWake:
		return p.Wake(gs, self), nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", msg.Kind)
	}
}

// pilot returns the pilot for id, creating one on first contact. A pilot
// first seen after its spawn sizes the resource pool from the current state.
func (a *Agent) pilot(id int, gs model.GameState) *Pilot {
	p, ok := a.pilots[id]
	if !ok {
		p = newPilot(id, a.Team, a.Engine, a.rng)
		p.totalResource = gs.TotalAsteroidPayload()
		a.pilots[id] = p
	}
	return p
}

func (a *Agent) publish(r Report) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	for _, rep := range a.Reporters {
		if err := rep.Report(ctx, r); err != nil {
			slog.Error("failed to publish report", "team", r.Team, "drone", r.Drone, "error", err)
		}
	}
}
