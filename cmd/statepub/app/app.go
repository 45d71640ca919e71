package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/roman-kulish/drone-state-publisher/internal/influx"
	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/middleware/lcm"
	"github.com/roman-kulish/drone-state-publisher/internal/middleware/mavlink"
	"github.com/roman-kulish/drone-state-publisher/internal/publisher"
	"github.com/roman-kulish/drone-state-publisher/internal/radio"
	"github.com/roman-kulish/drone-state-publisher/internal/storage"
	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
)

const (
	storageDir = "data"
)

// runner is a long-running component stopped by cancelling its context
type runner interface {
	Run(ctx context.Context) error
}

// Run sets up the transport, waits for the agent and publishes the drone
// state until ctx is cancelled.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	runID := uuid.New().String()
	logger = logger.With(slog.String("runID", runID))

	logMemory(logger, "before setup")

	table := telemetry.NewTable()
	handles, err := telemetry.RegisterStateEstimate(table)
	if err != nil {
		return fmt.Errorf("registering log variables: %w", err)
	}

	node, events, err := createNode(ctx, &config.Transport, logger)
	if err != nil {
		return fmt.Errorf("creating %s node: %w", config.Transport.Type, err)
	}
	defer func() {
		if cErr := node.Close(); cErr != nil {
			logger.Error(cErr.Error())
		}
	}()

	logger.Info("waiting for agent", slog.String("transport", string(config.Transport.Type)))

	err = middleware.WaitForAgent(ctx, node, middleware.WaitOptions{
		Timeout:    time.Duration(config.Agent.Timeout),
		Attempts:   config.Agent.Attempts,
		RetryDelay: time.Duration(config.Agent.RetryDelay),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("agent connected")

	source, err := createSource(&config.Source, table, handles, events, logger)
	if err != nil {
		return fmt.Errorf("creating source: %w", err)
	}

	recorders, closeRecorders, err := createRecorders(ctx, config, runID, logger)
	if err != nil {
		return fmt.Errorf("creating recorders: %w", err)
	}
	defer closeRecorders()

	options := []func(*publisher.Publisher){
		publisher.WithLogger(logger),
		publisher.WithPeriod(time.Duration(config.Publisher.Period)),
		publisher.WithFrameIDs(config.Publisher.FrameID, config.Publisher.ChildFrameID),
		publisher.WithRecordEvery(config.Publisher.RecordEvery),
	}
	for _, r := range recorders {
		options = append(options, publisher.WithRecorder(r))
	}

	pub := publisher.New(node, table, options...)
	if err = pub.Setup(); err != nil {
		return fmt.Errorf("setting up publisher: %w", err)
	}

	logMemory(logger, "after setup")

	err = run(ctx, pub, source, recorders)

	stats := pub.Stats()
	logger.Info("publisher stopped",
		slog.Uint64("cycles", stats.Cycles),
		slog.Uint64("published", stats.Published),
		slog.Uint64("failed", stats.Failed),
		slog.Uint64("dropped", stats.Dropped))

	return err
}

// run drives the publisher and the source until ctx is done. Recorders are
// stopped after the publisher so the last states are flushed.
func run(ctx context.Context, pub *publisher.Publisher, source telemetry.Source, recorders []recorder) error {
	recordCtx, stopRecording := context.WithCancel(context.WithoutCancel(ctx))
	defer stopRecording()

	recording, recordCtx := errgroup.WithContext(recordCtx)
	for _, r := range recorders {
		recording.Go(func() error {
			return r.Run(recordCtx)
		})
	}

	publishing, publishCtx := errgroup.WithContext(ctx)
	publishing.Go(func() error {
		if err := source.Run(publishCtx); err != nil {
			return fmt.Errorf("running source: %w", err)
		}
		return nil
	})
	publishing.Go(func() error {
		return pub.Run(publishCtx)
	})

	publishErr := publishing.Wait()
	stopRecording()

	if err := recording.Wait(); err != nil {
		return errors.Join(publishErr, fmt.Errorf("recording: %w", err))
	}
	return publishErr
}

func createNode(ctx context.Context, config *TransportConfig, logger *slog.Logger) (middleware.Node, telemetry.EventStream, error) {
	switch config.Type {
	case TransportMAVLink:
		endpoint, err := createEndpoint(config, logger)
		if err != nil {
			return nil, nil, err
		}

		node, err := mavlink.New(mavlink.Config{
			Name:            config.Name,
			Endpoints:       []gomavlib.EndpointConf{endpoint},
			SystemID:        config.MAVLink.SystemID,
			ComponentID:     config.MAVLink.ComponentID,
			HeartbeatPeriod: time.Duration(config.MAVLink.HeartbeatPeriod),
		}, mavlink.WithLogger(logger))
		if err != nil {
			if c, ok := endpoint.(gomavlib.EndpointCustom); ok {
				_ = c.ReadWriteCloser.Close()
			}
			return nil, nil, err
		}
		return node, node, nil

	case TransportLCM:
		node, err := lcm.Dial(ctx, lcm.Config{Name: config.Name, Interface: config.LCM.Interface}, lcm.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return node, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport type '%s'", config.Type)
	}
}

func createEndpoint(config *TransportConfig, logger *slog.Logger) (gomavlib.EndpointConf, error) {
	switch c := config.MAVLink; c.Endpoint {
	case EndpointRadio:
		link, err := radio.New(config.Radio, radio.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err = link.Open(); err != nil {
			return nil, fmt.Errorf("opening radio link: %w", err)
		}
		return gomavlib.EndpointCustom{ReadWriteCloser: link}, nil

	case EndpointUDPClient:
		return gomavlib.EndpointUDPClient{Address: c.Address}, nil

	case EndpointUDPServer:
		return gomavlib.EndpointUDPServer{Address: c.Address}, nil

	case EndpointTCPClient:
		return gomavlib.EndpointTCPClient{Address: c.Address}, nil

	case EndpointSerial:
		return gomavlib.EndpointSerial{Device: c.SerialDevice, Baud: c.BaudRate}, nil

	default:
		return nil, fmt.Errorf("unknown mavlink endpoint '%s'", c.Endpoint)
	}
}

func createSource(config *SourceConfig, table *telemetry.Table, handles telemetry.StateHandles, events telemetry.EventStream, logger *slog.Logger) (telemetry.Source, error) {
	switch config.Type {
	case SourceSimulator:
		return telemetry.NewSimulator(table, handles,
			telemetry.WithSimLogger(logger),
			telemetry.WithSimPeriod(time.Duration(config.Sim.Period)),
			telemetry.WithSimOrbit(config.Sim.Radius, config.Sim.Altitude, config.Sim.AngularSpeed),
		), nil

	case SourceMAVLink:
		if events == nil {
			return nil, errors.New("mavlink source requires the mavlink transport")
		}
		return telemetry.NewMAVLinkSource(events, table, handles,
			telemetry.WithMAVLinkLogger(logger),
			telemetry.WithMAVLinkSystemID(config.SystemID),
		), nil

	default:
		return nil, fmt.Errorf("unknown source type '%s'", config.Type)
	}
}

// recorder is a publisher.Recorder with its own writer loop
type recorder interface {
	publisher.Recorder
	runner
}

func createRecorders(ctx context.Context, config *Config, runID string, logger *slog.Logger) ([]recorder, func(), error) {
	var (
		recorders []recorder
		closers   []func() error
	)

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Error(err.Error())
			}
		}
	}

	if config.Storage.Enabled {
		store, err := createStorage(&config.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("creating storage: %w", err)
		}
		closers = append(closers, store.Close)

		sessionID, err := store.CreateSession(ctx, runID, string(config.Source.Type), config)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("creating session: %w", err)
		}

		recorders = append(recorders, storage.NewRecorder(store, sessionID,
			storage.WithRecorderLogger(logger),
			storage.WithMaxBatchSize(config.Storage.MaxBatchSize),
		))
	}

	if config.Influx.Enabled {
		rec, err := influx.New(config.Influx.Config, runID, string(config.Source.Type), influx.WithLogger(logger))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, rec.Close)
		recorders = append(recorders, rec)
	}

	return recorders, closeAll, nil
}

func createStorage(config *StorageConfig) (*storage.SqliteStore, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	dbPath := filepath.Join(wd, storageDir)
	if config.DataDirectory != "" {
		dbPath = config.DataDirectory
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(wd, dbPath)
		}
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage directory '%s' does not exist: %w", dbPath, err)
		}
		return nil, fmt.Errorf("checking storage directory '%s': %w", dbPath, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory '%s'", dbPath)
	}

	dbPath = filepath.Join(dbPath, fmt.Sprintf("drone_state_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	return storage.NewSqliteStore(dbPath), nil
}

func logMemory(logger *slog.Logger, stage string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	logger.Info(fmt.Sprintf("memory %s", stage),
		slog.String("heapAlloc", humanize.IBytes(m.HeapAlloc)),
		slog.String("heapIdle", humanize.IBytes(m.HeapIdle)),
		slog.String("sys", humanize.IBytes(m.Sys)))
}
