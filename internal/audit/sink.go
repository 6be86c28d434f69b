package audit

import "context"

// Sink defines the interface for audit log ingestion (sink pattern)
// A sink only receives and stores data, it does not return query results
type Sink interface {
	// Ingest receives and stores audit records for committed mutations
	Ingest(ctx context.Context, records []Record) error
}

// MultiSink fans records out to every sink in order and stops at the first error.
type MultiSink []Sink

func (m MultiSink) Ingest(ctx context.Context, records []Record) error {
	for _, s := range m {
		if err := s.Ingest(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
