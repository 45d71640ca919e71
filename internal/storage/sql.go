package storage

import (
	_ "embed"
)

//go:embed schema.sql
var initSchemaSQL string

//go:embed indexes.sql
var initIndexesSQL string

const (
	insertSessionSQL = `
INSERT INTO sessions (
                      start_time,
                      run_id,
                      source,
                      config)
VALUES (?, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    start_time,
    run_id,
    source,
    config
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    start_time,
    run_id,
    source,
    config
FROM sessions
ORDER BY start_time, id`

	insertStatesSQL = `
INSERT INTO states (
                    session_id,
                    timestamp,
                    x,
                    y,
                    z,
                    roll,
                    pitch,
                    yaw,
                    qx,
                    qy,
                    qz,
                    qw)
VALUES `

	insertStatesPlaceholder = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	selectTimeRangeSQL = `
SELECT
    COALESCE(MIN(timestamp), 0),
    COALESCE(MAX(timestamp), 0)
FROM states
WHERE session_id = ?`

	selectStatesSQL = `
SELECT
    timestamp,
    x,
    y,
    z,
    roll,
    pitch,
    yaw,
    qx,
    qy,
    qz,
    qw
FROM states
WHERE
    session_id = ?
    AND timestamp BETWEEN ? AND ?
ORDER BY timestamp, id`
)
