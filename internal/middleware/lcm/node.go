// Package lcm publishes middleware topics over LCM UDP multicast. Every topic
// is an LCM channel and payloads are the protobuf form of the message, so
// any protobuf decoder with geometry.proto can read them.
package lcm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.einride.tech/lcm"
	"google.golang.org/protobuf/proto"

	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/msgs"
)

// Transmitter sends raw payloads on LCM channels
type Transmitter interface {
	Transmit(ctx context.Context, channel string, data []byte) error
	Close() error
}

// Config describes the LCM node
type Config struct {
	Name string

	// Interface is the network interface multicast is sent from. The system
	// default is used when empty.
	Interface string
}

// Dial opens the multicast transmitter
func Dial(ctx context.Context, conf Config, options ...func(*Node)) (*Node, error) {
	var (
		tx  *lcm.Transmitter
		err error
	)

	if conf.Interface != "" {
		tx, err = lcm.DialMulticastUDP(ctx, lcm.WithTransmitInterface(conf.Interface))
	} else {
		tx, err = lcm.DialMulticastUDP(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("dialing lcm multicast: %w", err)
	}

	return NewNode(conf.Name, tx, options...), nil
}

// WithLogger sets the logger for the node
func WithLogger(logger *slog.Logger) func(*Node) {
	return func(n *Node) {
		n.logger = logger.With(slog.String("node", n.name), slog.String("transport", "lcm"))
	}
}

// Node is a middleware.Node over LCM
type Node struct {
	name   string
	tx     Transmitter
	closed atomic.Bool
	sent   atomic.Uint64
	logger *slog.Logger
}

// NewNode creates a node on top of an open transmitter
func NewNode(name string, tx Transmitter, options ...func(*Node)) *Node {
	n := Node{
		name:   name,
		tx:     tx,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&n)
	}

	return &n
}

// Name returns the node name
func (n *Node) Name() string {
	return n.name
}

// Sent returns the number of messages transmitted
func (n *Node) Sent() uint64 {
	return n.sent.Load()
}

// Ping always succeeds on an open node: LCM is connectionless and has no
// agent to wait for.
func (n *Node) Ping(ctx context.Context, _ time.Duration) error {
	if n.closed.Load() {
		return middleware.ErrNodeClosed
	}
	return ctx.Err()
}

// Publisher creates a publisher for the topic. Reliable delivery is not
// available over multicast.
func (n *Node) Publisher(topic, typeName string, qos middleware.QoS) (middleware.Publisher, error) {
	if n.closed.Load() {
		return nil, middleware.ErrNodeClosed
	}
	if err := middleware.ValidatePublisher(topic, typeName); err != nil {
		return nil, err
	}
	if qos != middleware.BestEffort {
		return nil, fmt.Errorf("%w: %s publishers", middleware.ErrUnsupported, qos)
	}

	return &publisher{node: n, topic: topic, typeName: typeName}, nil
}

// Close closes the transmitter
func (n *Node) Close() error {
	if n.closed.Swap(true) {
		return nil
	}

	n.logger.Info("lcm node closed", slog.Uint64("sent", n.sent.Load()))

	if err := n.tx.Close(); err != nil {
		return fmt.Errorf("closing lcm transmitter: %w", err)
	}
	return nil
}

type publisher struct {
	node     *Node
	topic    string
	typeName string
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

	pm, err := msgs.ToProto(msg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.topic, err)
	}

	// TransmitProto would name the channel after the message type, which
	// puts attitude and odometry on the same channel
	data, err := proto.Marshal(pm)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.topic, err)
	}

	if err = p.node.tx.Transmit(ctx, p.topic, data); err != nil {
		return fmt.Errorf("transmitting %s: %w", p.topic, err)
	}

	p.node.sent.Add(1)
	return nil
}
