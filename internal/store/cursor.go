package store

import "database/sql"

// Cursor is a lazy, finite, non-restartable sequence of records produced by
// QueryByIndex. Typical use:
//
//	cur, err := st.QueryByIndex(ctx, store.CollectionTrips, store.IndexByUser, "u1")
//	if err != nil { ... }
//	defer cur.Close()
//	for cur.Next() {
//		rec := cur.Record()
//		...
//	}
//	if err := cur.Err(); err != nil { ... }
type Cursor struct {
	rows *sql.Rows

	// slice-backed mode, used by in-memory store fakes
	recs []Record
	pos  int

	cur Record
	err error
}

func newCursor(rows *sql.Rows) *Cursor {
	return &Cursor{rows: rows}
}

// NewSliceCursor returns a Cursor over an in-memory record slice. It exists
// so LocalStore test doubles can satisfy the QueryByIndex contract.
func NewSliceCursor(records []Record) *Cursor {
	return &Cursor{recs: records}
}

// Next advances to the next record. It returns false when the sequence is
// exhausted or a scan error occurred; check Err afterwards.
func (c *Cursor) Next() bool {
	if c.err != nil {
		return false
	}

	if c.rows == nil {
		if c.pos >= len(c.recs) {
			return false
		}
		c.cur = c.recs[c.pos]
		c.pos++
		return true
	}

	if !c.rows.Next() {
		c.err = c.rows.Err()
		return false
	}

	var rec Record
	var payload []byte
	if err := c.rows.Scan(&rec.ID, &payload, &rec.LastModified); err != nil {
		c.err = storageErr("scan cursor row", err)
		return false
	}
	rec.Payload = payload
	c.cur = rec

	return true
}

// Record returns the record most recently produced by Next.
func (c *Cursor) Record() Record {
	return c.cur
}

// Err returns the first error encountered during iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the underlying rows. Always call it, even after exhausting
// the cursor.
func (c *Cursor) Close() error {
	if c.rows == nil {
		return nil
	}
	return c.rows.Close()
}
