package storage

import (
	"database/sql"
	"time"
)

type sessionData struct {
	ID        int64
	StartTime time.Time
	RunID     string
	Source    string
	Config    sql.NullString
}

type stateData struct {
	SessionID int64
	Timestamp int64 // unix nanoseconds
	X, Y, Z   float64
	Roll      float64
	Pitch     float64
	Yaw       float64
	QX, QY    float64
	QZ, QW    float64
}
