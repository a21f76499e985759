package netwrk

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"airhockey/internal/hockey"
)

// InputMessage is the JSON frame a player sends whenever its controls
// change. The last one received stays in effect.
type InputMessage struct {
	Forward  bool    `json:"forward,omitempty"`
	Backward bool    `json:"backward,omitempty"`
	Left     bool    `json:"left,omitempty"`
	Right    bool    `json:"right,omitempty"`
	StickX   float64 `json:"stickX,omitempty"`
	StickZ   float64 `json:"stickZ,omitempty"`
}

func NewInputMessage(in hockey.Input) InputMessage {
	return InputMessage{
		Forward:  in.Forward,
		Backward: in.Backward,
		Left:     in.Left,
		Right:    in.Right,
		StickX:   in.Stick[0],
		StickZ:   in.Stick[1],
	}
}

func (m InputMessage) Input() hockey.Input {
	return hockey.Input{
		Forward:  m.Forward,
		Backward: m.Backward,
		Left:     m.Left,
		Right:    m.Right,
		Stick:    hockey.Vec{clampAxis(m.StickX), clampAxis(m.StickZ)},
	}
}

// DecodeInput parses a player frame. Stick axes outside [-1, 1] are clamped.
func DecodeInput(data []byte) (hockey.Input, error) {
	var m InputMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return hockey.Input{}, fmt.Errorf("decoding input: %w", err)
	}
	return m.Input(), nil
}

func clampAxis(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// Frame is one decoded snapshot as a remote client sees it.
type Frame struct {
	Snapshot hockey.Snapshot
	Events   []string
}

// EncodeSnapshot packs a snapshot and the frame's events into a protobuf
// Struct.
func EncodeSnapshot(snap hockey.Snapshot, events []hockey.Event) ([]byte, error) {
	evs := make([]any, 0, len(events))
	for _, ev := range events {
		evs = append(evs, ev.String())
	}
	msg, err := structpb.NewStruct(map[string]any{
		"frame": snap.Frame,
		"table": map[string]any{
			"width":     snap.Table.Width,
			"height":    snap.Table.Height,
			"goalWidth": snap.Table.GoalWidth,
		},
		"paddles": []any{
			encodeBody(snap.Paddles[hockey.Player1]),
			encodeBody(snap.Paddles[hockey.Player2]),
		},
		"puck": encodeBody(snap.Puck),
		"score": map[string]any{
			"player1": snap.Score.Player1,
			"player2": snap.Score.Player2,
		},
		"events": evs,
	})
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return b, nil
}

func encodeBody(b hockey.Body) map[string]any {
	return map[string]any{
		"x":      b.Position[0],
		"z":      b.Position[1],
		"vx":     b.Velocity[0],
		"vz":     b.Velocity[1],
		"radius": b.Radius,
	}
}

// DecodeSnapshot is the inverse of EncodeSnapshot. Missing fields decode as
// zero values.
func DecodeSnapshot(data []byte) (Frame, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return Frame{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	m := msg.AsMap()

	var f Frame
	f.Snapshot.Frame = cast.ToUint64(m["frame"])

	table := cast.ToStringMap(m["table"])
	f.Snapshot.Table = hockey.Table{
		Width:     cast.ToFloat64(table["width"]),
		Height:    cast.ToFloat64(table["height"]),
		GoalWidth: cast.ToFloat64(table["goalWidth"]),
	}

	paddles := cast.ToSlice(m["paddles"])
	for i := 0; i < len(paddles) && i < len(f.Snapshot.Paddles); i++ {
		f.Snapshot.Paddles[i] = decodeBody(paddles[i])
	}
	f.Snapshot.Puck = decodeBody(m["puck"])

	score := cast.ToStringMap(m["score"])
	f.Snapshot.Score = hockey.Score{
		Player1: cast.ToInt(score["player1"]),
		Player2: cast.ToInt(score["player2"]),
	}

	f.Events = cast.ToStringSlice(m["events"])
	return f, nil
}

func decodeBody(v any) hockey.Body {
	m := cast.ToStringMap(v)
	return hockey.Body{
		Position: hockey.Vec{cast.ToFloat64(m["x"]), cast.ToFloat64(m["z"])},
		Velocity: hockey.Vec{cast.ToFloat64(m["vx"]), cast.ToFloat64(m["vz"])},
		Radius:   cast.ToFloat64(m["radius"]),
	}
}
