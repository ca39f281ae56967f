package share

import "context"

// Store is the metadata store holding share records keyed by code.
// Each method touches at most one record except ScanAll.
type Store interface {
	// Put writes r, replacing any record with the same code.
	Put(ctx context.Context, r *Record) error
	// Get returns the record for code or ErrNotFound.
	Get(ctx context.Context, code string) (*Record, error)
	// Exists reports whether a record for code is stored.
	Exists(ctx context.Context, code string) (bool, error)
	// ScanAll returns every record as a flat attribute map, in no particular order.
	ScanAll(ctx context.Context) ([]map[string]string, error)
}
