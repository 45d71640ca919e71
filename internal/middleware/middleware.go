// Package middleware defines the publish/subscribe node the drone state is
// published through, and the agent connectivity checks shared by all
// backends.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/msgs"
)

// QoS is the delivery guarantee of a publisher
type QoS int

const (
	BestEffort QoS = iota
	Reliable
)

func (q QoS) String() string {
	switch q {
	case BestEffort:
		return "best-effort"
	case Reliable:
		return "reliable"
	default:
		return fmt.Sprintf("QoS(%d)", int(q))
	}
}

var (
	// ErrNodeClosed is returned by operations on a closed node
	ErrNodeClosed = errors.New("node closed")

	// ErrAgentUnavailable is returned when the agent does not answer a ping
	ErrAgentUnavailable = errors.New("agent unavailable")

	// ErrTypeMismatch is returned when a message does not match the publisher type
	ErrTypeMismatch = errors.New("message type mismatch")

	// ErrUnsupported is returned for message types or QoS a backend cannot carry
	ErrUnsupported = errors.New("unsupported by transport")
)

// Publisher sends messages of a single type on a topic
type Publisher interface {
	Topic() string
	Publish(ctx context.Context, msg msgs.Message) error
}

// Pinger checks whether the agent on the other side of the transport is reachable
type Pinger interface {
	Ping(ctx context.Context, timeout time.Duration) error
}

// Node is a participant of the middleware
type Node interface {
	Pinger

	// Name returns the node name
	Name() string

	// Publisher creates a publisher for the topic. typeName is one of the
	// msgs type names.
	Publisher(topic, typeName string, qos QoS) (Publisher, error)

	// Close releases the transport. It is safe to call Close multiple times.
	Close() error
}

// CheckMessage verifies that msg can be published on a publisher of typeName
func CheckMessage(topic, typeName string, msg msgs.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message on %s", ErrTypeMismatch, topic)
	}
	if msg.TypeName() != typeName {
		return fmt.Errorf("%w: %s expects %s, got %s", ErrTypeMismatch, topic, typeName, msg.TypeName())
	}
	return nil
}

// ValidatePublisher checks the arguments of Node.Publisher
func ValidatePublisher(topic, typeName string) error {
	if topic == "" {
		return errors.New("topic is required")
	}
	if msgs.New(typeName) == nil {
		return fmt.Errorf("%w: message type %s", ErrUnsupported, typeName)
	}
	return nil
}
