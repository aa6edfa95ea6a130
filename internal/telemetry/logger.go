// Package telemetry provides the default structured logger implementation
// (wrapping go.uber.org/zap, the structured logger pulled in from
// nicolasmd87-gopher3D's go.mod — the only pack repo with a real logging
// dependency) satisfying external.Logger. The teacher's frame-timing
// profiler is not part of this package; it lives in internal/profiling.
package telemetry

import (
	"go.uber.org/zap"

	"voxelengine/internal/external"
)

// ZapLogger adapts a *zap.SugaredLogger to external.Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger (JSON, info level) wrapped
// as external.Logger.
func NewZapLogger() (*ZapLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

// NewDevelopmentZapLogger builds a human-readable console logger, used by
// cmd/worldgen so CLI runs are legible without a log aggregator.
func NewDevelopmentZapLogger() (*ZapLogger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

func (z *ZapLogger) Debugw(msg string, kv ...any) { z.s.Debugw(msg, kv...) }
func (z *ZapLogger) Infow(msg string, kv ...any)  { z.s.Infow(msg, kv...) }
func (z *ZapLogger) Warnw(msg string, kv ...any)  { z.s.Warnw(msg, kv...) }
func (z *ZapLogger) Errorw(msg string, kv ...any) { z.s.Errorw(msg, kv...) }

// Sync flushes any buffered log entries; callers should defer it at
// process exit, mirroring zap's documented usage.
func (z *ZapLogger) Sync() error { return z.s.Sync() }

var _ external.Logger = (*ZapLogger)(nil)
