package telemetry

import (
	"context"
	"time"
)

// Source keeps writing drone state into a Table until the context is done.
type Source interface {
	Run(ctx context.Context) error
}

// State is a snapshot of the onboard state estimate
type State struct {
	Timestamp time.Time `json:"timestamp"` // When the variables were read
	X         float32   `json:"x"`         // Position X in meters
	Y         float32   `json:"y"`         // Position Y in meters
	Z         float32   `json:"z"`         // Position Z in meters
	Roll      float32   `json:"roll"`      // Roll angle in degrees
	Pitch     float32   `json:"pitch"`     // Pitch angle in degrees
	Yaw       float32   `json:"yaw"`       // Yaw angle in degrees
	QX        float32   `json:"qx"`        // Orientation quaternion X
	QY        float32   `json:"qy"`        // Orientation quaternion Y
	QZ        float32   `json:"qz"`        // Orientation quaternion Z
	QW        float32   `json:"qw"`        // Orientation quaternion W
}
