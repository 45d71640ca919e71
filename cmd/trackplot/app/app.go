package app

import (
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/drone-state-publisher/internal/storage"
	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

var ErrEmptyTrack = errors.New("track has no points")

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer store.Close()

	data, err := readTrack(ctx, store, config, logger)
	if err != nil {
		return err
	}
	return renderTrack(data, config, logger)
}

func readTrack(ctx context.Context, store *storage.SqliteStore, config *Config, logger *slog.Logger) (*TrackData, error) {
	var opts []storage.ReaderOption
	var filters []any
	switch {
	case config.MinTimestamp != nil && config.MaxTimestamp != nil:
		opts = append(opts, storage.WithTimeRange(config.MinTimestamp.UTC(), config.MaxTimestamp.UTC()))

		filters = append(filters,
			slog.String("minTimestamp", config.MinTimestamp.UTC().Format(time.DateTime)),
			slog.String("maxTimestamp", config.MaxTimestamp.UTC().Format(time.DateTime)))

	case config.MinTimestamp != nil:
		opts = append(opts, storage.WithStartTime(config.MinTimestamp.UTC()))
		filters = append(filters, slog.String("minTimestamp", config.MinTimestamp.UTC().Format(time.DateTime)))

	case config.MaxTimestamp != nil:
		opts = append(opts, storage.WithEndTime(config.MaxTimestamp.UTC()))
		filters = append(filters, slog.String("maxTimestamp", config.MaxTimestamp.UTC().Format(time.DateTime)))
	}

	logger.Info("reader configuration", append(filters, slog.Int64("session", config.SessionID))...)

	reader, err := store.ReadTrack(ctx, config.SessionID, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading session %d: %w", config.SessionID, err)
	}
	defer reader.Close()

	points, err := storage.ReadAll(ctx, reader)
	if err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrEmptyTrack
	}

	data := &TrackData{
		Session: reader.Session(),
		Points:  points,
		Summary: track.Summarize(points),
	}

	b := data.Summary.Bounds
	logger.Info("finished reading points",
		slog.Group("stats",
			slog.String("points", humanize.Comma(int64(data.Summary.Points))),
			slog.String("start", data.Summary.Start.Local().Format(time.DateTime)),
			slog.String("end", data.Summary.End.Local().Format(time.DateTime)),
			slog.String("pathLength", fmt.Sprintf("%0.2fm", data.Summary.PathLength)),
			slog.String("minZ", fmt.Sprintf("%0.2fm", b.MinZ)),
			slog.String("maxZ", fmt.Sprintf("%0.2fm", b.MaxZ)),
		))

	return data, nil
}

func renderTrack(data *TrackData, config *Config, logger *slog.Logger) (err error) {
	renderer, err := NewTrackRenderer(RenderConfig{
		Size:          config.Size,
		Location:      config.TimeZone,
		ColorTheme:    config.Theme,
		NoAnnotations: config.NoAnnotations,
	})
	if err != nil {
		return fmt.Errorf("creating track renderer: %w", err)
	}

	logger.Info("rendering track",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
			slog.Int("size", config.Size),
		))

	img, err := renderer.Render(data)
	if err != nil {
		return fmt.Errorf("rendering track: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
