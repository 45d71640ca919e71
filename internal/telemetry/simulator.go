package telemetry

import (
	"context"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	gravity = 9.81

	defaultSimPeriod       = 10 * time.Millisecond
	defaultSimRadius       = 1.0
	defaultSimAltitude     = 0.5
	defaultSimAngularSpeed = 0.5 // rad/s
)

// WithSimLogger sets the logger for the simulator
func WithSimLogger(logger *slog.Logger) func(*Simulator) {
	return func(s *Simulator) {
		s.logger = logger.With(slog.String("source", "simulator"))
	}
}

// WithSimPeriod sets how often the simulator updates the table
func WithSimPeriod(period time.Duration) func(*Simulator) {
	return func(s *Simulator) {
		s.period = period
	}
}

// WithSimOrbit sets the radius (m), altitude (m) and angular speed (rad/s) of the simulated orbit
func WithSimOrbit(radius, altitude, angularSpeed float64) func(*Simulator) {
	return func(s *Simulator) {
		s.radius = radius
		s.altitude = altitude
		s.angularSpeed = angularSpeed
	}
}

// Simulator is a stand-in for the onboard state estimator. It flies the drone
// on a horizontal circle, banking into the turn, and keeps the state
// estimate variables of a Table up to date.
type Simulator struct {
	table   *Table
	handles StateHandles

	period       time.Duration
	radius       float64
	altitude     float64
	angularSpeed float64

	now    func() time.Time
	logger *slog.Logger
}

// NewSimulator creates a Simulator writing into the given table
func NewSimulator(table *Table, handles StateHandles, options ...func(*Simulator)) *Simulator {
	s := Simulator{
		table:        table,
		handles:      handles,
		period:       defaultSimPeriod,
		radius:       defaultSimRadius,
		altitude:     defaultSimAltitude,
		angularSpeed: defaultSimAngularSpeed,
		now:          time.Now,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&s)
	}

	return &s
}

// Run updates the table every period until the context is cancelled
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	start := s.now()
	s.logger.Info("simulated state estimator started",
		slog.Float64("radius", s.radius),
		slog.Float64("altitude", s.altitude),
		slog.Duration("period", s.period))

	for {
		s.handles.Write(s.table, s.StateAt(s.now().Sub(start)))

		select {
		case <-ctx.Done():
			s.logger.Info("simulated state estimator stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// StateAt computes the simulated state after the given flight time
func (s *Simulator) StateAt(elapsed time.Duration) State {
	t := elapsed.Seconds()
	theta := s.angularSpeed * t

	// coordinated turn: bank angle from centripetal acceleration
	speed := s.angularSpeed * s.radius
	roll := math.Atan2(speed*speed, s.radius*gravity)
	pitch := 0.05 * math.Sin(0.7*t)
	yaw := normalizeAngle(theta + math.Pi/2)

	q := mgl32.AnglesToQuat(float32(yaw), float32(pitch), float32(roll), mgl32.ZYX).Normalize()

	return State{
		X:     float32(s.radius * math.Cos(theta)),
		Y:     float32(s.radius * math.Sin(theta)),
		Z:     float32(s.altitude + 0.05*math.Sin(0.5*t)),
		Roll:  mgl32.RadToDeg(float32(roll)),
		Pitch: mgl32.RadToDeg(float32(pitch)),
		Yaw:   mgl32.RadToDeg(float32(yaw)),
		QX:    q.V[0],
		QY:    q.V[1],
		QZ:    q.V[2],
		QW:    q.W,
	}
}

// normalizeAngle wraps an angle in radians into (-π, π]
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
