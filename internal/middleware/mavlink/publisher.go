package mavlink

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"

	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/msgs"
)

// debugVectNameLen is the size of the DEBUG_VECT name field
const debugVectNameLen = 10

type publisher struct {
	node     *Node
	topic    string
	typeName string
	name     string
}

func (p *publisher) Topic() string {
	return p.topic
}

func (p *publisher) Publish(ctx context.Context, msg msgs.Message) error {
	if p.node.closed.Load() {
		return middleware.ErrNodeClosed
	}
	if err := middleware.CheckMessage(p.topic, p.typeName, msg); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := p.encode(msg)
	if err != nil {
		return err
	}

	if err = p.node.write(m); err != nil {
		return fmt.Errorf("writing %s: %w", p.topic, err)
	}
	return nil
}

func (p *publisher) encode(msg msgs.Message) (message.Message, error) {
	switch m := msg.(type) {
	case *msgs.Point32:
		return &common.MessageDebugVect{
			Name:     p.name,
			TimeUsec: p.node.timeUsec(time.Time{}),
			X:        m.X,
			Y:        m.Y,
			Z:        m.Z,
		}, nil

	case *msgs.TransformStamped:
		var covariance [21]float32
		covariance[0] = float32(math.NaN()) // unknown

		var stamp time.Time
		if m.Header.Stamp != (msgs.Time{}) {
			stamp = m.Header.Stamp.Time()
		}

		r, t := m.Transform.Rotation, m.Transform.Translation
		return &common.MessageAttPosMocap{
			TimeUsec:   p.node.timeUsec(stamp),
			Q:          [4]float32{float32(r.W), float32(r.X), float32(r.Y), float32(r.Z)},
			X:          float32(t.X),
			Y:          float32(t.Y),
			Z:          float32(t.Z),
			Covariance: covariance,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", middleware.ErrUnsupported, msg.TypeName())
	}
}

// debugVectName derives the DEBUG_VECT name from the last topic segment
func debugVectName(topic string) string {
	name := topic
	if i := strings.LastIndex(strings.TrimRight(topic, "/"), "/"); i >= 0 {
		name = topic[i+1:]
	}
	name = strings.Trim(name, "/")

	if len(name) > debugVectNameLen {
		name = name[:debugVectNameLen]
	}
	return name
}
