package app

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns the text logger writing to stdout and, when configured,
// to a rotated log file. The returned closer releases the file.
func NewLogger(settings *Settings, level slog.Leveler) (*slog.Logger, io.Closer) {
	if settings.LogFile.Path == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   settings.LogFile.Path,
		MaxSize:    settings.LogFile.MaxSizeMB,
		MaxBackups: settings.LogFile.MaxBackups,
		MaxAge:     settings.LogFile.MaxAgeDays,
		Compress:   settings.LogFile.Compress,
	}

	w := io.MultiWriter(os.Stdout, file)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
