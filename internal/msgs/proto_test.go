package msgs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"

	"github.com/roman-kulish/drone-state-publisher/internal/msgs/geometrypb"
)

type unknownMessage struct{}

func (unknownMessage) TypeName() string { return "std_msgs/String" }

func TestMarshal_Point32(t *testing.T) {
	data, err := Marshal(&Point32{X: 1.5, Y: -2, Z: 0.25})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var got geometrypb.Point32
	if err = proto.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	want := &geometrypb.Point32{X: 1.5, Y: -2, Z: 0.25}
	if diff := cmp.Diff(want, &got, protocmp.Transform()); diff != "" {
		t.Errorf("Point mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_TransformStamped(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 30, 0, 250_000_000, time.UTC)
	in := &TransformStamped{
		Header:       Header{Stamp: TimeFrom(stamp), FrameID: "/map"},
		ChildFrameID: "/base_footprint_drone",
		Transform: Transform{
			Translation: Vector3{X: 1, Y: 2, Z: 3},
			Rotation:    Quaternion{X: 0, Y: 0, Z: 0.7071, W: 0.7071},
		},
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var got geometrypb.TransformStamped
	if err = proto.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	want := &geometrypb.TransformStamped{
		Header: &geometrypb.Header{
			Stamp:   &geometrypb.Time{Sec: int32(stamp.Unix()), Nanosec: 250_000_000},
			FrameId: "/map",
		},
		ChildFrameId: "/base_footprint_drone",
		Transform: &geometrypb.Transform{
			Translation: &geometrypb.Vector3{X: 1, Y: 2, Z: 3},
			Rotation:    &geometrypb.Quaternion{Z: 0.7071, W: 0.7071},
		},
	}
	if diff := cmp.Diff(want, &got, protocmp.Transform()); diff != "" {
		t.Errorf("Transform mismatch (-want +got):\n%s", diff)
	}

	if ts := got.GetHeader().GetStamp(); !(Time{Sec: ts.GetSec(), Nanosec: ts.GetNanosec()}).Time().Equal(stamp) {
		t.Errorf("Expected stamp %s, got %v", stamp, ts)
	}
}

func TestMarshal_UnsupportedType(t *testing.T) {
	if _, err := Marshal(unknownMessage{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestProto_FullNames(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{&Point32{}, "geometry_msgs.Point32"},
		{&TransformStamped{}, "geometry_msgs.TransformStamped"},
	}

	for _, tt := range tests {
		pm, err := ToProto(tt.msg)
		if err != nil {
			t.Fatalf("Failed to convert %s: %v", tt.msg.TypeName(), err)
		}
		if got := string(pm.ProtoReflect().Descriptor().FullName()); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(TypePoint32).(*Point32); !ok {
		t.Error("Expected *Point32")
	}
	if _, ok := New(TypeTransformStamped).(*TransformStamped); !ok {
		t.Error("Expected *TransformStamped")
	}
	if New("std_msgs/String") != nil {
		t.Error("Expected nil for unknown type")
	}
}
