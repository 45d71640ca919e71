package storage

import (
	"context"

	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

// Store provides an interface for recording drone state.
// It handles sessions and state estimates in a thread-safe manner.
// All operations that write to the database should be considered atomic.
type Store interface {
	// CreateSession initializes a new recording session and returns its unique identifier.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - runID: Identifier of the publishing process run
	//   - source: State source (e.g., "sim", "mavlink")
	//   - config: Optional run configuration. Can be string, []byte, or JSON-serializable object
	//
	// Returns:
	//   - sessionID: Unique identifier for the created session
	//   - error: If session creation fails or context is cancelled
	CreateSession(ctx context.Context, runID, source string, config any) (sessionID int64, err error)

	// Session retrieves a specific session by its ID.
	//
	// Returns:
	//   - session: Pointer to session data
	//   - error: If retrieval fails, the session does not exist or context is cancelled
	Session(ctx context.Context, id int64) (session *track.Session, err error)

	// Sessions returns all sessions stored in the database.
	// Results are ordered by start time in ascending order.
	Sessions(ctx context.Context) (sessions []*track.Session, err error)

	// StoreStates saves state estimates for a specific session.
	// All states are stored in a single atomic transaction.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - sessionID: ID of the session the states belong to
	//   - states: State estimates in time order
	//
	// Returns:
	//   - error: If storage fails or context is cancelled
	StoreStates(ctx context.Context, sessionID int64, states []telemetry.State) error

	// Close releases all database connections and resources.
	// After Close is called, the store instance cannot be reused.
	// It is safe to call Close multiple times.
	Close() error
}
