// Package storetest provides an in-memory LocalStore double for tests of
// the layers above the store. It honors the same contract as the SQLite
// implementation: idempotent upserts, index queries resolved through the
// collection registry's JSON paths, and ordered List scans.
package storetest

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wanderline/synckit/internal/store"
)

// Memory is a goroutine-safe in-memory LocalStore.
type Memory struct {
	mu   sync.Mutex
	data map[store.Collection]map[string]store.Record

	// Now is the clock used to stamp LastModified. Defaults to time.Now.
	Now func() time.Time

	// FailWith, when non-nil, is returned by every operation. Use it to
	// exercise degraded storage paths.
	FailWith error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[store.Collection]map[string]store.Record),
		Now:  time.Now,
	}
}

func (m *Memory) Put(_ context.Context, collection store.Collection, id string, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	coll, ok := m.data[collection]
	if !ok {
		coll = make(map[string]store.Record)
		m.data[collection] = coll
	}
	coll[id] = store.Record{
		ID:           id,
		Payload:      append(json.RawMessage(nil), payload...),
		LastModified: m.Now(),
	}
	return nil
}

func (m *Memory) Get(_ context.Context, collection store.Collection, id string) (store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.Record{}, m.FailWith
	}

	rec, ok := m.data[collection][id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *Memory) QueryByIndex(_ context.Context, collection store.Collection, index, value string) (*store.Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	field, err := indexField(collection, index)
	if err != nil {
		return nil, err
	}

	var matched []store.Record
	for _, rec := range m.data[collection] {
		if fieldString(rec.Payload, field) == value {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return store.NewSliceCursor(matched), nil
}

func (m *Memory) List(_ context.Context, collection store.Collection, orderBy string) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	field, err := indexField(collection, orderBy)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(m.data[collection]))
	for _, rec := range m.data[collection] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		ni, iNum := fieldNumber(records[i].Payload, field)
		nj, jNum := fieldNumber(records[j].Payload, field)
		if iNum && jNum {
			return ni < nj
		}
		return fieldString(records[i].Payload, field) < fieldString(records[j].Payload, field)
	})

	return records, nil
}

func (m *Memory) Delete(_ context.Context, collection store.Collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	delete(m.data[collection], id)
	return nil
}

func (m *Memory) DeleteBelow(_ context.Context, collection store.Collection, index string, bound int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}

	field, err := indexField(collection, index)
	if err != nil {
		return 0, err
	}

	var removed int64
	for id, rec := range m.data[collection] {
		if n, ok := fieldNumber(rec.Payload, field); ok && n < float64(bound) {
			delete(m.data[collection], id)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Count(_ context.Context, collection store.Collection) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.data[collection])), nil
}

func (m *Memory) Stats(_ context.Context, collection store.Collection) (store.CollectionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.CollectionStats{}, m.FailWith
	}

	stats := store.CollectionStats{}
	for _, rec := range m.data[collection] {
		stats.Entries++
		stats.Bytes += int64(len(rec.Payload))
	}
	return stats, nil
}

// indexField resolves an index name to the JSON field it covers using the
// same registry the SQLite store uses, minus the "$." path prefix.
func indexField(collection store.Collection, index string) (string, error) {
	path, err := store.IndexPath(collection, index)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(path, "$."), nil
}

func fieldString(payload json.RawMessage, field string) string {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ""
	}
	switch v := doc[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func fieldNumber(payload json.RawMessage, field string) (float64, bool) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return 0, false
	}
	n, ok := doc[field].(float64)
	return n, ok
}
