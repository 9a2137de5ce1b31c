package ipc

import "github.com/nstehr/elerium/elerium-core/model"

// These constants must stay in sync with the arena host's message types.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeEvent    = "event"
	TypeCommands = "commands"
)

// HelloMessage opens a session for one team.
type HelloMessage struct {
	Team        string `json:"team"`
	FieldWidth  int    `json:"fieldWidth"`
	FieldHeight int    `json:"fieldHeight"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// EventKind is the drone life-cycle callback the host is forwarding.
type EventKind string

const (
	EventSpawn          EventKind = "spawn"
	EventHeartbeat      EventKind = "heartbeat"
	EventStopAtNode     EventKind = "stop_at_node"
	EventLoadComplete   EventKind = "load_complete"
	EventStopAtBase     EventKind = "stop_at_base"
	EventUnloadComplete EventKind = "unload_complete"
	EventWake           EventKind = "wake"
)

// EventMessage carries one callback for one drone together with the
// arena as the host sees it at that moment. Target names the node or
// base for stop_at_* events.
type EventMessage struct {
	Drone  int             `json:"drone"`
	Kind   EventKind       `json:"kind"`
	Target *model.Ref      `json:"target,omitempty"`
	State  model.GameState `json:"state"`
}

// CommandsMessage answers an event with the orders for that drone, to be
// applied in sequence. An empty list means keep doing whatever it does.
type CommandsMessage struct {
	Drone    int       `json:"drone"`
	Commands []Command `json:"commands"`
}
