package adapter

import (
	"context"

	"github.com/wanderline/synckit/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// NetworkClient performs the network call described by a queued action.
//
// Any non-2xx response or transport failure is reported as an error matching
// [ErrNetwork]. A 2xx response body, if present, is discarded: the engine
// never inspects server replies (see DESIGN.md on id reconciliation).
type NetworkClient interface {
	Do(ctx context.Context, action models.QueuedAction) error
}
