package ipc

import (
	"bytes"
	"encoding/binary"
	"net"
	"strings"
	"testing"

	"github.com/nstehr/elerium/elerium-core/model"
)

func TestEnvelopeRoundTripOverPipe(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	target := model.Ref{Kind: model.KindAsteroid, ID: 7}
	sent := CommandsMessage{Drone: 3, Commands: []Command{StopCommand(), MoveToTarget(target, 400, 400)}}

	errc := make(chan error, 1)
	go func() {
		env, err := NewEnvelope(TypeCommands, sent)
		if err != nil {
			errc <- err
			return
		}
		errc <- WriteEnvelope(client, env)
	}()

	env, err := ReadEnvelope(server)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	if env.Type != TypeCommands {
		t.Fatalf("Type = %q", env.Type)
	}

	var got CommandsMessage
	if err := env.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Drone != 3 || len(got.Commands) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Commands[1].Type != CmdMove || got.Commands[1].Target == nil || *got.Commands[1].Target != target {
		t.Errorf("move = %+v", got.Commands[1])
	}
}

func TestFrameIsLittleEndianLengthPrefixed(t *testing.T) {
	var buf bytes.Buffer
	env, _ := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
	if err := WriteEnvelope(&buf, env); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	n := binary.LittleEndian.Uint32(raw[:4])
	if int(n) != len(raw)-4 {
		t.Errorf("prefix %d, payload %d", n, len(raw)-4)
	}
	if !strings.Contains(string(raw[4:]), `"type":"ack"`) {
		t.Errorf("payload = %s", raw[4:])
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, n := range []uint32{0, MaxFrame + 1} {
		var buf bytes.Buffer
		_ = binary.Write(&buf, binary.LittleEndian, n)
		if _, err := ReadEnvelope(&buf); err == nil {
			t.Errorf("length %d accepted", n)
		}
	}
}

func TestEventMessageDecodesState(t *testing.T) {
	raw := `{"drone":1,"kind":"stop_at_node","target":{"kind":"asteroid","id":4},
		"state":{"tick":12,"fieldWidth":1200,"fieldHeight":1200,
		"drones":[{"id":1,"team":"red","x":10,"y":20,"health":100,"payload":0,"alive":true}],
		"asteroids":[{"id":4,"x":10,"y":25,"payload":60}]}}`
	env := Envelope{Type: TypeEvent, Data: []byte(raw)}

	var msg EventMessage
	if err := env.Decode(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Kind != EventStopAtNode || msg.Target == nil || msg.Target.ID != 4 {
		t.Errorf("msg = %+v", msg)
	}
	if _, payload, ok := msg.State.Locate(*msg.Target); !ok || payload != 60 {
		t.Errorf("Locate = %d, %v", payload, ok)
	}
}
