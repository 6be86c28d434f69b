package audit

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes each record as a structured log entry.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

func (s *LogSink) Ingest(_ context.Context, records []Record) error {
	for _, rec := range records {
		fields := []zap.Field{
			zap.Stringer("action", rec.Action),
			zap.String("caller", rec.Caller),
		}
		if rec.ComponentID != 0 {
			fields = append(fields, zap.Uint64("component_id", rec.ComponentID))
		}
		if rec.EventIndex != 0 {
			fields = append(fields, zap.Uint64("event_index", rec.EventIndex))
		}
		if rec.Detail != "" {
			fields = append(fields, zap.String("detail", rec.Detail))
		}
		s.logger.Info("audit", fields...)
	}
	return nil
}
