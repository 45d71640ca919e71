// Package msgs defines the geometry messages published by the drone and
// their protobuf form.
package msgs

import "time"

// ROS type names of the supported messages
const (
	TypePoint32          = "geometry_msgs/Point32"
	TypeTransformStamped = "geometry_msgs/TransformStamped"
)

// Message is a value that can be published on a topic
type Message interface {
	TypeName() string
}

// Time is a ROS time stamp
type Time struct {
	Sec     int32
	Nanosec uint32
}

// TimeFrom converts a time.Time to a Time
func TimeFrom(t time.Time) Time {
	return Time{Sec: int32(t.Unix()), Nanosec: uint32(t.Nanosecond())}
}

// Time returns the stamp as a time.Time
func (t Time) Time() time.Time {
	return time.Unix(int64(t.Sec), int64(t.Nanosec))
}

// Header carries the time stamp and the coordinate frame of a message
type Header struct {
	Stamp   Time
	FrameID string
}

// Point32 is a point with 32-bit float coordinates
type Point32 struct {
	X, Y, Z float32
}

func (*Point32) TypeName() string { return TypePoint32 }

// Vector3 is a translation in free space
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is an orientation in free space
type Quaternion struct {
	X, Y, Z, W float64
}

// Transform is a rotation followed by a translation
type Transform struct {
	Translation Vector3
	Rotation    Quaternion
}

// TransformStamped expresses the pose of the child frame in the header frame
type TransformStamped struct {
	Header       Header
	ChildFrameID string
	Transform    Transform
}

func (*TransformStamped) TypeName() string { return TypeTransformStamped }

// New returns an empty message for a type name, or nil for unknown types
func New(typeName string) Message {
	switch typeName {
	case TypePoint32:
		return &Point32{}
	case TypeTransformStamped:
		return &TransformStamped{}
	default:
		return nil
	}
}
