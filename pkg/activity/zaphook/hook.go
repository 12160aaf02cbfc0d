// Package zaphook writes journey activity entries to a zap logger, giving
// hosts structured process logs without a dedicated activity sink.
package zaphook

import (
	"context"

	"github.com/goliatone/go-journey/pkg/activity"
	"go.uber.org/zap"
)

// Hook logs activity entries through zap.
type Hook struct {
	Logger *zap.Logger
}

// New constructs a Hook; a nil logger yields a no-op hook.
func New(logger *zap.Logger) Hook {
	return Hook{Logger: logger}
}

// Notify writes the entry at info level with structured fields.
func (h Hook) Notify(_ context.Context, entry activity.Entry) error {
	if h.Logger == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("domain", entry.Domain),
		zap.String("kind", entry.Kind),
		zap.String("title", entry.Title),
		zap.Time("occurred_at", entry.OccurredAt),
	}
	if entry.Description != "" {
		fields = append(fields, zap.String("description", entry.Description))
	}
	if len(entry.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", entry.Metadata))
	}
	h.Logger.Info("activity", fields...)
	return nil
}
