// Package radio implements the byte transport between the ground station and
// the drone: a serial-attached radio dongle carrying CRTP-style packets on a
// configurable radio channel and port.
package radio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"
)

const (
	DefaultChannel  = 65
	DefaultPort     = 9
	DefaultBaudRate = 115200

	MaxChannel = 125 // 2400 + 125 MHz
	MaxPort    = 15

	// MaxPayload is the largest payload carried by a single packet
	MaxPayload = 30

	controlHeader = 0xFF // link control packets, port 15 channel 3
	cmdSetChannel = 0x01
)

// Config describes the radio link
type Config struct {
	Device   string `yaml:"device" json:"device"`     // Serial device of the radio dongle, e.g. /dev/ttyACM0
	BaudRate int    `yaml:"baudRate" json:"baudRate"` // Serial baud rate
	Channel  int    `yaml:"channel" json:"channel"`   // Radio channel, 0-125
	Port     int    `yaml:"port" json:"port"`         // Packet port, 0-15
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Device == "" {
		return NewConfigError("radio: device is required")
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.BaudRate < 0 {
		return NewConfigError(fmt.Sprintf("radio: invalid baud rate %d", c.BaudRate))
	}
	if c.Channel < 0 || c.Channel > MaxChannel {
		return NewConfigError(fmt.Sprintf("radio: channel must be within 0-%d, %d given", MaxChannel, c.Channel))
	}
	if c.Port < 0 || c.Port > MaxPort {
		return NewConfigError(fmt.Sprintf("radio: port must be within 0-%d, %d given", MaxPort, c.Port))
	}
	return nil
}

// Opener opens the serial device of the dongle
type Opener func(device string, baudRate int) (io.ReadWriteCloser, error)

// OpenSerial opens a serial port in blocking mode
func OpenSerial(device string, baudRate int) (io.ReadWriteCloser, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", device, err)
	}
	return port, nil
}

// WithLogger sets the logger for the link
func WithLogger(logger *slog.Logger) func(*Link) {
	return func(l *Link) {
		l.logger = logger.With(
			slog.String("device", l.config.Device),
			slog.Int("channel", l.config.Channel),
			slog.Int("port", l.config.Port),
		)
	}
}

// WithOpener replaces the serial opener
func WithOpener(open Opener) func(*Link) {
	return func(l *Link) {
		l.open = open
	}
}

// Stats counts link traffic
type Stats struct {
	TxPackets uint64
	RxPackets uint64
	Dropped   uint64 // packets addressed to other ports and bytes skipped on resync
}

// Link is an io.ReadWriteCloser over the radio. Writes are split into
// packets of at most MaxPayload bytes; reads return payloads of packets
// addressed to the configured port and drop everything else.
//
// Read and Write may be called concurrently, but not Read with Read. Read
// owns the receive buffers, so the link must not be reopened while a Read is
// in progress.
type Link struct {
	config Config
	open   Opener
	logger *slog.Logger

	mu     sync.Mutex // guards port and writes
	port   io.ReadWriteCloser
	reader *bufio.Reader
	isOpen atomic.Bool

	pending []byte // unread part of the last payload
	frame   [1 + MaxPayload]byte

	txPackets atomic.Uint64
	rxPackets atomic.Uint64
	dropped   atomic.Uint64
}

// New creates a closed Link
func New(config Config, options ...func(*Link)) (*Link, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	l := Link{
		config: config,
		open:   OpenSerial,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&l)
	}

	return &l, nil
}

// Open opens the dongle and tunes it to the configured channel
func (l *Link) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isOpen.Load() {
		return fmt.Errorf("radio link is already open")
	}

	port, err := l.open(l.config.Device, l.config.BaudRate)
	if err != nil {
		return err
	}

	if _, err = port.Write([]byte{3, controlHeader, cmdSetChannel, byte(l.config.Channel)}); err != nil {
		_ = port.Close()
		return fmt.Errorf("setting radio channel: %w", err)
	}

	l.port = port
	l.reader = bufio.NewReaderSize(port, 256)
	l.pending = nil
	l.isOpen.Store(true)

	l.logger.Info("radio link open")
	return nil
}

// Close closes the dongle. Closing a closed link is a no-op.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isOpen.Load() {
		return nil
	}
	l.isOpen.Store(false)

	err := l.port.Close()
	l.logger.Info("radio link closed",
		slog.Uint64("txPackets", l.txPackets.Load()),
		slog.Uint64("rxPackets", l.rxPackets.Load()),
		slog.Uint64("dropped", l.dropped.Load()))

	return err
}

// Write sends p as a sequence of packets
func (l *Link) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isOpen.Load() {
		return 0, ErrClosed
	}

	header := l.header()
	written := 0
	for written < len(p) {
		n := min(len(p)-written, MaxPayload)

		packet := make([]byte, 0, 2+n)
		packet = append(packet, byte(1+n), header)
		packet = append(packet, p[written:written+n]...)

		if _, err := l.port.Write(packet); err != nil {
			return written, fmt.Errorf("writing packet: %w", err)
		}

		l.txPackets.Add(1)
		written += n
	}

	return written, nil
}

// Read returns payload bytes received on the configured port. Malformed
// length bytes are skipped, only errors of the underlying port are returned.
func (l *Link) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(l.pending) == 0 {
		if !l.isOpen.Load() {
			return 0, ErrClosed
		}

		payload, err := l.readPacket()
		if err != nil {
			return 0, err
		}
		l.pending = payload
	}

	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

// readPacket reads the next non-empty payload addressed to our port
func (l *Link) readPacket() ([]byte, error) {
	for {
		size, err := l.reader.ReadByte()
		if err != nil {
			return nil, l.readError(err)
		}
		if size == 0 || int(size) > len(l.frame) {
			// not a length byte, skip it and resync on the next one
			l.dropped.Add(1)
			l.logger.Debug("radio link resync", slog.Int("length", int(size)))
			continue
		}

		frame := l.frame[:size]
		if _, err = io.ReadFull(l.reader, frame); err != nil {
			return nil, l.readError(err)
		}

		header, payload := frame[0], frame[1:]
		if header != l.header() {
			l.dropped.Add(1)
			continue
		}

		l.rxPackets.Add(1)
		if len(payload) == 0 {
			continue
		}

		// the frame buffer is reused by the next read
		return append([]byte(nil), payload...), nil
	}
}

func (l *Link) readError(err error) error {
	if !l.isOpen.Load() {
		return ErrClosed
	}
	return err
}

func (l *Link) header() byte {
	return byte(l.config.Port&0x0F) << 4
}

// Stats returns the traffic counters
func (l *Link) Stats() Stats {
	return Stats{
		TxPackets: l.txPackets.Load(),
		RxPackets: l.rxPackets.Load(),
		Dropped:   l.dropped.Load(),
	}
}
