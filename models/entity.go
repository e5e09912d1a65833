package models

import (
	"encoding/json"
	"time"
)

// Sync states a mirrored entity can be in. A row is "pending" from the moment
// of an optimistic local write until the matching queued action is confirmed
// by the server, after which it becomes "synced". "failed" is reserved for
// callers that choose to mark a row after its action exhausted all retries.
const (
	SyncStatusSynced  = "synced"
	SyncStatusPending = "pending"
	SyncStatusFailed  = "failed"
)

// CachedEntity is one mirrored server object (a trip, booking or post) as it
// lives in the local store. The payload is opaque to the sync engine; only
// the endpoint-specific collaborators interpret its contents.
type CachedEntity struct {
	// ID is the entity key. For optimistic creates it is client-generated
	// and may later diverge from the server-assigned id (see DESIGN.md).
	ID string `json:"id"`

	// OwnerID identifies the user the entity belongs to. Backs the
	// by-user secondary index of every entity collection.
	OwnerID string `json:"ownerId"`

	// CollectionType names the server collection ("trip", "booking", "post").
	CollectionType string `json:"collectionType"`

	// TripID links bookings and posts to their parent trip. Empty for
	// entities that have no parent; backs the by-trip index.
	TripID string `json:"tripId,omitempty"`

	// Payload is the entity body. Never inspected by the engine.
	Payload json.RawMessage `json:"payload"`

	// LastModified is stamped on every local or server-confirmed change.
	LastModified time.Time `json:"lastModified"`

	// SyncStatus is one of SyncStatusSynced, SyncStatusPending,
	// SyncStatusFailed.
	SyncStatus string `json:"syncStatus"`
}
