package ipc

import "github.com/nstehr/elerium/elerium-core/model"

// Command types understood by the host's command executor.
const (
	CmdStop   = "stop"
	CmdMove   = "move"
	CmdTurn   = "turn"
	CmdLoad   = "load"
	CmdUnload = "unload"
	CmdShoot  = "shoot"
)

// Command is one order for a drone. Movement and turning take either a
// Target entity or a bare point; load, unload and shoot need a Target.
type Command struct {
	Type   string     `json:"type"`
	Target *model.Ref `json:"target,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
}

func StopCommand() Command { return Command{Type: CmdStop} }

func MoveToPoint(x, y float64) Command { return Command{Type: CmdMove, X: x, Y: y} }

func MoveToTarget(r model.Ref, x, y float64) Command {
	return Command{Type: CmdMove, Target: &r, X: x, Y: y}
}

func TurnToPoint(x, y float64) Command { return Command{Type: CmdTurn, X: x, Y: y} }

func TurnToTarget(r model.Ref, x, y float64) Command {
	return Command{Type: CmdTurn, Target: &r, X: x, Y: y}
}

func LoadCommand(r model.Ref) Command { return Command{Type: CmdLoad, Target: &r} }

func UnloadCommand(r model.Ref) Command { return Command{Type: CmdUnload, Target: &r} }

func ShootCommand(r model.Ref) Command { return Command{Type: CmdShoot, Target: &r} }
