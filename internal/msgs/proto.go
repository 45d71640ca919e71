package msgs

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/roman-kulish/drone-state-publisher/internal/msgs/geometrypb"
)

// ErrUnsupportedType is returned for messages without a protobuf form
var ErrUnsupportedType = errors.New("unsupported message type")

// ToProto returns the protobuf form of a message
func ToProto(m Message) (proto.Message, error) {
	switch v := m.(type) {
	case *Point32:
		return v.Proto(), nil
	case *TransformStamped:
		return v.Proto(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, m)
	}
}

// Marshal encodes a message in the protobuf wire format
func Marshal(m Message) ([]byte, error) {
	pm, err := ToProto(m)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pm)
}

func (p *Point32) Proto() *geometrypb.Point32 {
	return &geometrypb.Point32{X: p.X, Y: p.Y, Z: p.Z}
}

func (t *TransformStamped) Proto() *geometrypb.TransformStamped {
	return &geometrypb.TransformStamped{
		Header: &geometrypb.Header{
			Stamp:   &geometrypb.Time{Sec: t.Header.Stamp.Sec, Nanosec: t.Header.Stamp.Nanosec},
			FrameId: t.Header.FrameID,
		},
		ChildFrameId: t.ChildFrameID,
		Transform: &geometrypb.Transform{
			Translation: &geometrypb.Vector3{
				X: t.Transform.Translation.X,
				Y: t.Transform.Translation.Y,
				Z: t.Transform.Translation.Z,
			},
			Rotation: &geometrypb.Quaternion{
				X: t.Transform.Rotation.X,
				Y: t.Transform.Rotation.Y,
				Z: t.Transform.Rotation.Z,
				W: t.Transform.Rotation.W,
			},
		},
	}
}
