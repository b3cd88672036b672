package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newRotatingWriter returns an io.Writer for file output. Worker logs
// grow steadily (one line per cycle plus one per send), so the file is
// size-rotated via lumberjack, keeping cfg.MaxFiles gzipped backups.
func newRotatingWriter(cfg Config) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
		Compress:   true,
	}
}
