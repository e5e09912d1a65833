package models

import "time"

// SyncStatus is the in-memory aggregate handed to status subscribers. It is
// recomputed after every queue mutation and every drain pass and is never
// persisted.
type SyncStatus struct {
	IsOnline           bool       `json:"isOnline"`
	IsSyncing          bool       `json:"isSyncing"`
	PendingActionCount int        `json:"pendingActionCount"`
	LastSyncTime       *time.Time `json:"lastSyncTime,omitempty"`

	// SyncErrors holds one human-readable line per action that exhausted
	// its retries during the most recent drain pass.
	SyncErrors []string `json:"syncErrors"`
}

// Clone returns a deep copy so subscribers can never observe later mutations
// of the broadcaster's internal state.
func (s SyncStatus) Clone() SyncStatus {
	out := s
	if s.LastSyncTime != nil {
		t := *s.LastSyncTime
		out.LastSyncTime = &t
	}
	if s.SyncErrors != nil {
		out.SyncErrors = append([]string(nil), s.SyncErrors...)
	}
	return out
}
