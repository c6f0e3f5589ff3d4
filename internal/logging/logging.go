// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging adapts the structured logger from github.com/baditaflorin/l
// to the small interface the pipeline depends on.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/baditaflorin/l"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// Logger is the logging surface used by the pipeline. Arguments after msg are
// alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Close()
}

// minLevel maps a config level name to an slog.Level. Unknown or empty
// names fall back to info.
func minLevel(name string) slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return lv
}

// stdLogger forwards to an l.Logger, which drops records below its MinLevel.
type stdLogger struct {
	logger l.Logger
}

// New builds a logger writing to out with the level and encoding from cfg.
func New(cfg types.LogConfig, out io.Writer) (Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     out,
		MinLevel:   minLevel(cfg.Level),
		JsonFormat: cfg.JSON,
		AsyncWrite: false,
		BufferSize: 64 * 1024,
		AddSource:  false,
	})
	if err != nil {
		return nil, err
	}
	return &stdLogger{logger: logger}, nil
}

func (s *stdLogger) Debug(msg string, keysAndValues ...any) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...any) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...any) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...any) {
	s.logger.Error(msg, keysAndValues...)
}

func (s *stdLogger) Close() {
	s.logger.Close()
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Close()               {}
