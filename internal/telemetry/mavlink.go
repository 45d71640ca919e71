package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrEventsClosed is returned when the MAVLink event stream ends unexpectedly
var ErrEventsClosed = errors.New("mavlink event stream closed")

// EventStream is implemented by *gomavlib.Node
type EventStream interface {
	Events() chan gomavlib.Event
}

// WithMAVLinkLogger sets the logger for the MAVLink source
func WithMAVLinkLogger(logger *slog.Logger) func(*MAVLinkSource) {
	return func(s *MAVLinkSource) {
		s.logger = logger.With(slog.String("source", "mavlink"))
	}
}

// WithMAVLinkSystemID accepts messages from the given system only
func WithMAVLinkSystemID(id uint8) func(*MAVLinkSource) {
	return func(s *MAVLinkSource) {
		s.systemID = id
	}
}

// MAVLinkSource fills the state estimate variables from an autopilot
// streaming ATTITUDE, LOCAL_POSITION_NED and ATTITUDE_QUATERNION.
//
// The autopilot reports a FRD body in a NED frame. State is stored for a FLU
// body in an ENU frame, so that z is the height above the origin and yaw is
// measured counter-clockwise from east. Angles are converted to degrees.
type MAVLinkSource struct {
	events   EventStream
	table    *Table
	handles  StateHandles
	systemID uint8 // 0 accepts any system
	logger   *slog.Logger
}

// NewMAVLinkSource creates a MAVLinkSource reading from the given event stream
func NewMAVLinkSource(events EventStream, table *Table, handles StateHandles, options ...func(*MAVLinkSource)) *MAVLinkSource {
	s := MAVLinkSource{
		events:  events,
		table:   table,
		handles: handles,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&s)
	}

	return &s
}

// Run consumes events until the context is cancelled or the stream is closed
func (s *MAVLinkSource) Run(ctx context.Context) error {
	events := s.events.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-events:
			if !ok {
				return ErrEventsClosed
			}

			switch e := evt.(type) {
			case *gomavlib.EventChannelOpen:
				s.logger.Info("channel open", slog.String("channel", e.Channel.String()))

			case *gomavlib.EventChannelClose:
				s.logger.Warn("channel closed", slog.String("channel", e.Channel.String()))

			case *gomavlib.EventFrame:
				if s.systemID != 0 && e.SystemID() != s.systemID {
					continue
				}
				s.HandleMessage(e.Message())
			}
		}
	}
}

// HandleMessage stores the state carried by a MAVLink message.
// It reports whether the message was used.
func (s *MAVLinkSource) HandleMessage(msg message.Message) bool {
	switch m := msg.(type) {
	case *common.MessageAttitude:
		s.table.SetFloat(s.handles.Roll, radToDeg(m.Roll))
		s.table.SetFloat(s.handles.Pitch, radToDeg(-m.Pitch))
		s.table.SetFloat(s.handles.Yaw, radToDeg(float32(normalizeAngle(math.Pi/2-float64(m.Yaw)))))

	case *common.MessageLocalPositionNed:
		s.table.SetFloat(s.handles.X, m.Y)
		s.table.SetFloat(s.handles.Y, m.X)
		s.table.SetFloat(s.handles.Z, -m.Z)

	case *common.MessageAttitudeQuaternion:
		q := nedToENU(mgl32.Quat{W: m.Q1, V: mgl32.Vec3{m.Q2, m.Q3, m.Q4}})
		s.table.SetFloat(s.handles.QW, q.W)
		s.table.SetFloat(s.handles.QX, q.V[0])
		s.table.SetFloat(s.handles.QY, q.V[1])
		s.table.SetFloat(s.handles.QZ, q.V[2])

	default:
		return false
	}

	return true
}

var (
	// swaps x and y and flips z: 180° about (1,1,0)
	nedToENUFrame = mgl32.Quat{V: mgl32.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}}

	// flips y and z: 180° about x
	frdToFLUBody = mgl32.Quat{V: mgl32.Vec3{1, 0, 0}}
)

// nedToENU converts the orientation of a FRD body in NED into the
// orientation of the FLU body in ENU, with a non-negative W.
func nedToENU(q mgl32.Quat) mgl32.Quat {
	q = nedToENUFrame.Mul(q).Mul(frdToFLUBody)
	if q.W < 0 {
		q = q.Scale(-1)
	}
	return q
}

func radToDeg(rad float32) float32 {
	return float32(float64(rad) * 180 / math.Pi)
}
