package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if rbErr := rb.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && *err == nil {
		*err = rbErr
	}
}

func toConfigData(config any) (sql.NullString, error) {
	var configData sql.NullString

	switch v := config.(type) {
	case nil:
		return configData, nil

	case string:
		configData.String = v

	case []byte:
		configData.String = string(v)

	default:
		p, err := json.Marshal(config)
		if err != nil {
			return configData, fmt.Errorf("marshaling config: %w", err)
		}
		configData.String = string(p)
	}

	configData.Valid = true
	return configData, nil
}

func toStateData(sessionID int64, s *telemetry.State) stateData {
	return stateData{
		SessionID: sessionID,
		Timestamp: s.Timestamp.UnixNano(),
		X:         float64(s.X),
		Y:         float64(s.Y),
		Z:         float64(s.Z),
		Roll:      float64(s.Roll),
		Pitch:     float64(s.Pitch),
		Yaw:       float64(s.Yaw),
		QX:        float64(s.QX),
		QY:        float64(s.QY),
		QZ:        float64(s.QZ),
		QW:        float64(s.QW),
	}
}

func toSession(data *sessionData) *track.Session {
	sess := track.Session{
		ID:        data.ID,
		StartTime: data.StartTime,
		RunID:     data.RunID,
		Source:    data.Source,
	}
	if data.Config.Valid {
		sess.Config = &data.Config.String
	}
	return &sess
}

func toPoint(data *stateData) track.Point {
	return track.Point{
		Timestamp: time.Unix(0, data.Timestamp).UTC(),
		X:         data.X,
		Y:         data.Y,
		Z:         data.Z,
		Roll:      data.Roll,
		Pitch:     data.Pitch,
		Yaw:       data.Yaw,
		QX:        data.QX,
		QY:        data.QY,
		QZ:        data.QZ,
		QW:        data.QW,
	}
}
