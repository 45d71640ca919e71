package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterStateEstimate(t *testing.T) {
	table := NewTable()

	h, err := RegisterStateEstimate(table)
	if err != nil {
		t.Fatalf("Failed to register state estimate: %v", err)
	}

	if table.Len() != len(stateEstimateVars) {
		t.Errorf("Expected %d variables, got %d", len(stateEstimateVars), table.Len())
	}
	if v := table.Float(h.QW); v != 1 {
		t.Errorf("Expected identity quaternion W=1, got %f", v)
	}

	resolved, err := ResolveStateHandles(table)
	if err != nil {
		t.Fatalf("Failed to resolve handles: %v", err)
	}
	if diff := cmp.Diff(h, resolved); diff != "" {
		t.Errorf("Resolved handles mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveStateHandles_Missing(t *testing.T) {
	table := NewTable()
	_, _ = table.Register(StateEstimateGroup, VarX)

	if _, err := ResolveStateHandles(table); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Expected ErrUnknownVariable, got %v", err)
	}
}

func TestStateHandles_WriteRead(t *testing.T) {
	table := NewTable()
	h, err := RegisterStateEstimate(table)
	if err != nil {
		t.Fatalf("Failed to register state estimate: %v", err)
	}

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	want := State{
		Timestamp: ts,
		X:         1, Y: 2, Z: 3,
		Roll: 4, Pitch: 5, Yaw: 6,
		QX: 0.1, QY: 0.2, QZ: 0.3, QW: 0.9,
	}

	h.Write(table, want)
	got := h.Read(table, ts)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("State mismatch (-want +got):\n%s", diff)
	}
}
