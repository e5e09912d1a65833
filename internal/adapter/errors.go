package adapter

import "errors"

// ErrNetwork is the network half of the engine's error taxonomy. Every
// failed replay attempt, whether a transport error or a non-2xx status,
// matches it via errors.Is. The engine retries such failures per-action up
// to the action's retry budget.
var ErrNetwork = errors.New("network error")
