package telemetry

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestSimulator_StateAt(t *testing.T) {
	table := NewTable()
	h, err := RegisterStateEstimate(table)
	if err != nil {
		t.Fatalf("Failed to register state estimate: %v", err)
	}

	sim := NewSimulator(table, h, WithSimOrbit(2, 1, 0.5))

	start := sim.StateAt(0)
	if math.Abs(float64(start.X-2)) > 1e-6 || math.Abs(float64(start.Y)) > 1e-6 {
		t.Errorf("Expected start position (2, 0), got (%f, %f)", start.X, start.Y)
	}
	if math.Abs(float64(start.Z-1)) > 1e-6 {
		t.Errorf("Expected start altitude 1, got %f", start.Z)
	}
	if math.Abs(float64(start.Yaw-90)) > 1e-3 {
		t.Errorf("Expected start heading 90 degrees, got %f", start.Yaw)
	}

	for _, elapsed := range []time.Duration{0, time.Second, 5 * time.Second, time.Minute} {
		s := sim.StateAt(elapsed)

		radius := math.Hypot(float64(s.X), float64(s.Y))
		if math.Abs(radius-2) > 1e-4 {
			t.Errorf("At %s: expected orbit radius 2, got %f", elapsed, radius)
		}

		norm := math.Sqrt(float64(s.QX*s.QX + s.QY*s.QY + s.QZ*s.QZ + s.QW*s.QW))
		if math.Abs(norm-1) > 1e-4 {
			t.Errorf("At %s: expected unit quaternion, got norm %f", elapsed, norm)
		}

		if s.Yaw <= -180 || s.Yaw > 180 {
			t.Errorf("At %s: yaw %f out of range", elapsed, s.Yaw)
		}
	}
}

func TestSimulator_Run(t *testing.T) {
	table := NewTable()
	h, err := RegisterStateEstimate(table)
	if err != nil {
		t.Fatalf("Failed to register state estimate: %v", err)
	}

	sim := NewSimulator(table, h, WithSimPeriod(time.Millisecond), WithSimOrbit(1, 0.5, 0.5))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := sim.Run(ctx); err != nil {
		t.Fatalf("Simulator returned error: %v", err)
	}

	if v := table.Float(h.Z); v < 0.4 || v > 0.6 {
		t.Errorf("Expected altitude near 0.5, got %f", v)
	}
}

func TestNormalizeAngle(t *testing.T) {
	testCases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, -math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}

	for _, tc := range testCases {
		if got := normalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("normalizeAngle(%f): expected %f, got %f", tc.in, tc.want, got)
		}
	}
}
