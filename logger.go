package golsh

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithID adds an ID field to the logger.
func (l *Logger) WithID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithLimit adds a max results field to the logger.
func (l *Logger) WithLimit(limit int) *Logger {
	return &Logger{
		Logger: l.Logger.With("limit", limit),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogCreate logs the construction of an index.
func (l *Logger) LogCreate(ctx context.Context, dimension, numTables, bitsPerTable int) {
	l.InfoContext(ctx, "index created",
		"dimension", dimension,
		"tables", numTables,
		"bits_per_table", bitsPerTable,
	)
}

// LogInsert logs an insert operation. vectorLen is the length of the
// vector the caller passed in, which differs from the index dimension on
// a mismatch.
func (l *Logger) LogInsert(ctx context.Context, id uint64, vectorLen int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"vector_len", vectorLen,
			"error", err,
		)
	} else {
		l.WithID(id).DebugContext(ctx, "insert completed",
			"vector_len", vectorLen,
		)
	}
}

// LogBatchInsert logs a batch insert operation. Batches are all-or-nothing,
// so err reports whether every item failed.
func (l *Logger) LogBatchInsert(ctx context.Context, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch insert rejected",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch insert completed",
			"count", count,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(ctx context.Context, limit, resultsFound int, err error) {
	ql := l.WithLimit(limit)
	if err != nil {
		ql.ErrorContext(ctx, "query failed",
			"error", err,
		)
	} else {
		ql.DebugContext(ctx, "query completed",
			"results", resultsFound,
		)
	}
}
