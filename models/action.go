package models

import "encoding/json"

// HTTP methods a queued mutation may carry.
const (
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// DefaultMaxRetries is applied when an action is enqueued without an
// explicit retry budget.
const DefaultMaxRetries = 3

// QueuedAction is one pending mutation waiting to be replayed against the
// network. The JSON shape below is both the durable persistence record and
// the wire shape, so the field tags must not change.
//
// Every mutation goes through the queue, even while online, to keep the
// online and offline code paths identical. Only the sync engine mutates a
// persisted action, and only its RetryCount.
type QueuedAction struct {
	// ID is generated from type + timestamp + random suffix so rapid
	// enqueues of the same type never collide.
	ID string `json:"id"`

	// Type names the entity kind the mutation targets ("trip", "booking",
	// "post"). Backs the queue's by-type index.
	Type string `json:"type"`

	// Method is one of MethodPost, MethodPut, MethodDelete.
	Method string `json:"method"`

	// Endpoint is the server path relative to the configured base URL.
	Endpoint string `json:"endpoint"`

	// Data is the request body. Opaque to the engine.
	Data json.RawMessage `json:"data"`

	// Token, when set, is attached as a bearer Authorization header.
	Token string `json:"token,omitempty"`

	// Timestamp is the enqueue time in Unix milliseconds. The queue's
	// drain order is ascending by this field; replay order is never
	// changed after enqueue.
	Timestamp int64 `json:"timestamp"`

	RetryCount int `json:"retryCount"`
	MaxRetries int `json:"maxRetries"`
}
