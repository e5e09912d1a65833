package store

import (
	"context"
	"encoding/json"
	"time"
)

// Record is a stored row: the record id, its opaque JSON payload and the
// store-maintained modification stamp.
type Record struct {
	ID           string
	Payload      json.RawMessage
	LastModified time.Time
}

// CollectionStats is a coarse size report for one collection, used for
// diagnostics only.
type CollectionStats struct {
	Entries int64
	Bytes   int64
}

// LocalStore is durable keyed storage for mirrored entities, organized into
// typed collections with secondary indexes.
//
// Every method that touches the medium can fail with an error matching
// [ErrStorage]; callers must degrade to "no data available" instead of
// treating that as fatal. Every mutating call stamps the record's
// last_modified.
type LocalStore interface {
	// Put is an idempotent upsert keyed by id.
	Put(ctx context.Context, collection Collection, id string, payload json.RawMessage) error

	// Get returns the record with the given id, or an error matching
	// [ErrNotFound].
	Get(ctx context.Context, collection Collection, id string) (Record, error)

	// QueryByIndex returns a lazy, finite, non-restartable cursor over the
	// records whose indexed field equals value, in storage order. No
	// ordering is guaranteed across calls beyond stability for unmodified
	// data.
	QueryByIndex(ctx context.Context, collection Collection, index, value string) (*Cursor, error)

	// List returns all records of the collection ordered ascending by the
	// named index.
	List(ctx context.Context, collection Collection, orderBy string) ([]Record, error)

	// Delete removes the record with the given id. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, collection Collection, id string) error

	// DeleteBelow removes every record whose indexed numeric field is
	// strictly less than bound and reports how many rows went away.
	DeleteBelow(ctx context.Context, collection Collection, index string, bound int64) (int64, error)

	// Count reports the number of records in the collection.
	Count(ctx context.Context, collection Collection) (int64, error)

	// Stats reports entry count and a coarse byte estimate.
	Stats(ctx context.Context, collection Collection) (CollectionStats, error)
}
