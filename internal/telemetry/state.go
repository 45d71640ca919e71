package telemetry

import (
	"fmt"
	"time"
)

// StateEstimateGroup is the log group of the onboard state estimator
const StateEstimateGroup = "stateEstimate"

// Names of the state estimate variables
const (
	VarX     = "x"
	VarY     = "y"
	VarZ     = "z"
	VarRoll  = "roll"
	VarPitch = "pitch"
	VarYaw   = "yaw"
	VarQX    = "qx"
	VarQY    = "qy"
	VarQZ    = "qz"
	VarQW    = "qw"
)

var stateEstimateVars = []string{VarX, VarY, VarZ, VarRoll, VarPitch, VarYaw, VarQX, VarQY, VarQZ, VarQW}

// StateHandles holds the resolved handles of the state estimate variables
type StateHandles struct {
	X, Y, Z          VarID
	Roll, Pitch, Yaw VarID
	QX, QY, QZ, QW   VarID
}

// RegisterStateEstimate registers the state estimate variables in the table.
// The quaternion is initialized to identity.
func RegisterStateEstimate(t *Table) (StateHandles, error) {
	for _, name := range stateEstimateVars {
		if _, err := t.Register(StateEstimateGroup, name); err != nil {
			return StateHandles{}, fmt.Errorf("registering %s.%s: %w", StateEstimateGroup, name, err)
		}
	}

	h, err := ResolveStateHandles(t)
	if err != nil {
		return StateHandles{}, err
	}
	t.SetFloat(h.QW, 1)

	return h, nil
}

// ResolveStateHandles maps the state estimate variable names to handles.
// It is meant to be called once, before polling starts.
func ResolveStateHandles(t *Table) (StateHandles, error) {
	var h StateHandles

	targets := []struct {
		name string
		id   *VarID
	}{
		{VarQX, &h.QX},
		{VarQY, &h.QY},
		{VarQZ, &h.QZ},
		{VarQW, &h.QW},
		{VarPitch, &h.Pitch},
		{VarRoll, &h.Roll},
		{VarYaw, &h.Yaw},
		{VarX, &h.X},
		{VarY, &h.Y},
		{VarZ, &h.Z},
	}
	for _, target := range targets {
		id, err := t.VarID(StateEstimateGroup, target.name)
		if err != nil {
			return StateHandles{}, fmt.Errorf("resolving state estimate: %w", err)
		}
		*target.id = id
	}

	return h, nil
}

// Read polls the current state estimate from the table
func (h StateHandles) Read(t *Table, ts time.Time) State {
	return State{
		Timestamp: ts,
		X:         t.Float(h.X),
		Y:         t.Float(h.Y),
		Z:         t.Float(h.Z),
		Roll:      t.Float(h.Roll),
		Pitch:     t.Float(h.Pitch),
		Yaw:       t.Float(h.Yaw),
		QX:        t.Float(h.QX),
		QY:        t.Float(h.QY),
		QZ:        t.Float(h.QZ),
		QW:        t.Float(h.QW),
	}
}

// Write stores a state in the table
func (h StateHandles) Write(t *Table, s State) {
	t.SetFloat(h.X, s.X)
	t.SetFloat(h.Y, s.Y)
	t.SetFloat(h.Z, s.Z)
	t.SetFloat(h.Roll, s.Roll)
	t.SetFloat(h.Pitch, s.Pitch)
	t.SetFloat(h.Yaw, s.Yaw)
	t.SetFloat(h.QX, s.QX)
	t.SetFloat(h.QY, s.QY)
	t.SetFloat(h.QZ, s.QZ)
	t.SetFloat(h.QW, s.QW)
}
