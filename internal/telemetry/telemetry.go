// Package telemetry centralizes structured logging for internal/workerpool
// and internal/producer around the same dependency wpool.go already pulls in:
// github.com/Andrej220/go-utils/zlog. jobcache itself stays free of this
// import since the cache performs no I/O and logs nothing on its own.
package telemetry

import (
	"context"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Logger is the structured logger every component logs through.
type Logger = lg.ZLogger

// Field is a single structured key-value pair attached to a log line.
type Field = lg.Field

// FromContext returns the logger attached to ctx, or a no-op logger if none
// was attached.
func FromContext(ctx context.Context) Logger { return lg.FromContext(ctx) }

// Any, Int, Int32, and String build structured fields for a log call.
func Any(key string, value any) Field   { return lg.Any(key, value) }
func Int(key string, value int) Field   { return lg.Int(key, value) }
func Int32(key string, value int32) Field { return lg.Int32(key, value) }
func String(key, value string) Field    { return lg.String(key, value) }
