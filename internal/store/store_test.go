package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderline/synckit/internal/logger"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestStore(t *testing.T, db *sql.DB) *sqliteStore {
	t.Helper()
	return &sqliteStore{
		db:     &DB{DB: db, logger: logger.Nop()},
		logger: logger.Nop(),
		now:    func() time.Time { return fixedNow },
	}
}

var recordColumns = []string{"id", "payload", "last_modified"}

func TestPut_UpsertsWithLastModifiedStamp(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	payload := json.RawMessage(`{"id":"t1","ownerId":"u1"}`)

	mock.ExpectExec("INSERT INTO trips").
		WithArgs("t1", []byte(payload), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.Put(context.Background(), CollectionTrips, "t1", payload)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_StorageFailureMatchesErrStorage(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectExec("INSERT INTO trips").
		WillReturnError(errors.New("disk I/O error"))

	err := st.Put(context.Background(), CollectionTrips, "t1", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestPut_UnknownCollection(t *testing.T) {
	db, _ := newTestDB(t)
	st := newTestStore(t, db)

	err := st.Put(context.Background(), Collection("nope"), "x", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestGet_ReturnsStoredRecord(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	payload := []byte(`{"id":"t1"}`)
	mock.ExpectQuery("SELECT id, payload, last_modified FROM trips").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("t1", payload, fixedNow))

	rec, err := st.Get(context.Background(), CollectionTrips, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", rec.ID)
	assert.JSONEq(t, `{"id":"t1"}`, string(rec.Payload))
	assert.Equal(t, fixedNow, rec.LastModified)
}

func TestGet_MissingRowIsErrNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectQuery("SELECT id, payload, last_modified FROM trips").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err := st.Get(context.Background(), CollectionTrips, "t1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStorage, "absence is not a storage failure")
}

func TestGet_QueryFailureMatchesErrStorage(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectQuery("SELECT id, payload, last_modified FROM trips").
		WillReturnError(errors.New("database is locked"))

	_, err := st.Get(context.Background(), CollectionTrips, "t1")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestQueryByIndex_IteratesMatchingRows(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("t1", []byte(`{"id":"t1","ownerId":"u1"}`), fixedNow).
		AddRow("t2", []byte(`{"id":"t2","ownerId":"u1"}`), fixedNow)

	mock.ExpectQuery(`json_extract\(payload, '\$\.ownerId'\) = \?`).
		WithArgs("u1").
		WillReturnRows(rows)

	cur, err := st.QueryByIndex(context.Background(), CollectionTrips, IndexByUser, "u1")
	require.NoError(t, err)
	defer cur.Close()

	var ids []string
	for cur.Next() {
		ids = append(ids, cur.Record().ID)
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, []string{"t1", "t2"}, ids)
}

func TestQueryByIndex_UnknownIndex(t *testing.T) {
	db, _ := newTestDB(t)
	st := newTestStore(t, db)

	_, err := st.QueryByIndex(context.Background(), CollectionTrips, IndexByTrip, "x")
	assert.ErrorIs(t, err, ErrUnknownIndex)
}

func TestList_OrdersByIndexExpression(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("a1", []byte(`{"timestamp":1}`), fixedNow).
		AddRow("a2", []byte(`{"timestamp":2}`), fixedNow)

	mock.ExpectQuery(`ORDER BY json_extract\(payload, '\$\.timestamp'\) ASC`).
		WillReturnRows(rows)

	records, err := st.List(context.Background(), CollectionSyncQueue, IndexByTimestamp)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].ID)
	assert.Equal(t, "a2", records[1].ID)
}

func TestDelete_RemovesRow(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectExec("DELETE FROM sync_queue").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.Delete(context.Background(), CollectionSyncQueue, "a1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBelow_ReportsRemovedCount(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectExec(`DELETE FROM cached_responses WHERE json_extract\(payload, '\$\.expiresAt'\) < \?`).
		WithArgs(int64(5000)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := st.DeleteBelow(context.Background(), CollectionCachedResponses, IndexByExpires, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCount(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sync_queue`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := st.Count(context.Background(), CollectionSyncQueue)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStats_ReportsEntriesAndBytes(t *testing.T) {
	db, mock := newTestDB(t)
	st := newTestStore(t, db)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(LENGTH\(payload\)\), 0\) FROM cached_responses`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "bytes"}).AddRow(int64(2), int64(128)))

	stats, err := st.Stats(context.Background(), CollectionCachedResponses)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Entries)
	assert.Equal(t, int64(128), stats.Bytes)
}

func TestCollectionRegistry_CoversSpecifiedIndexes(t *testing.T) {
	cases := map[Collection][]string{
		CollectionTrips:           {IndexByUser, IndexBySyncStatus},
		CollectionBookings:        {IndexByUser, IndexByTrip},
		CollectionPosts:           {IndexByUser, IndexByTrip},
		CollectionSyncQueue:       {IndexByType, IndexByTimestamp},
		CollectionUserData:        {IndexByUser, IndexByType},
		CollectionCachedResponses: {IndexByURL, IndexByExpires},
	}

	for collection, indexes := range cases {
		for _, index := range indexes {
			path, err := IndexPath(collection, index)
			require.NoError(t, err, "%s/%s", collection, index)
			assert.NotEmpty(t, path)
		}
	}
}
