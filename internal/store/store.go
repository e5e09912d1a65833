package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wanderline/synckit/internal/logger"
)

// sqliteStore is the SQLite-backed LocalStore. One table per collection,
// each row {id, payload, last_modified}; secondary indexes are expression
// indexes over json_extract created by the migrations.
type sqliteStore struct {
	db     *DB
	logger *logger.Logger

	// now is the injected clock used to stamp last_modified.
	now func() time.Time
}

// NewLocalStore returns a LocalStore over the given database handle.
func NewLocalStore(db *DB, log *logger.Logger) LocalStore {
	return &sqliteStore{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

// indexExpr renders the json_extract expression for an index. The path comes
// from the trusted collection registry and must be inlined literally: a bound
// parameter would not match the expression index.
func indexExpr(path string) string {
	return fmt.Sprintf("json_extract(payload, '%s')", path)
}

func (s *sqliteStore) Put(ctx context.Context, collection Collection, id string, payload json.RawMessage) error {
	spec, err := collection.spec()
	if err != nil {
		return err
	}

	query, args, err := sq.Insert(spec.table).
		Columns("id", "payload", "last_modified").
		Values(id, []byte(payload), s.now().UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, last_modified = excluded.last_modified").
		ToSql()
	if err != nil {
		return storageErr("build upsert query", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("id", id).
			Msg("failed to upsert record")
		return storageErr(fmt.Sprintf("put %s/%s", collection, id), err)
	}

	return nil
}

func (s *sqliteStore) Get(ctx context.Context, collection Collection, id string) (Record, error) {
	spec, err := collection.spec()
	if err != nil {
		return Record{}, err
	}

	query, args, err := sq.Select("id", "payload", "last_modified").
		From(spec.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Record{}, storageErr("build select query", err)
	}

	var rec Record
	var payload []byte
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&rec.ID, &payload, &rec.LastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
		}
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("id", id).
			Msg("failed to scan record row")
		return Record{}, storageErr(fmt.Sprintf("get %s/%s", collection, id), err)
	}
	rec.Payload = payload

	return rec, nil
}

func (s *sqliteStore) QueryByIndex(ctx context.Context, collection Collection, index, value string) (*Cursor, error) {
	spec, err := collection.spec()
	if err != nil {
		return nil, err
	}
	path, err := collection.indexPath(index)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select("id", "payload", "last_modified").
		From(spec.table).
		Where(sq.Expr(indexExpr(path)+" = ?", value)).
		ToSql()
	if err != nil {
		return nil, storageErr("build index query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("index", index).
			Msg("failed to query by index")
		return nil, storageErr(fmt.Sprintf("query %s by %s", collection, index), err)
	}

	return newCursor(rows), nil
}

func (s *sqliteStore) List(ctx context.Context, collection Collection, orderBy string) ([]Record, error) {
	spec, err := collection.spec()
	if err != nil {
		return nil, err
	}
	path, err := collection.indexPath(orderBy)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select("id", "payload", "last_modified").
		From(spec.table).
		OrderBy(indexExpr(path) + " ASC").
		ToSql()
	if err != nil {
		return nil, storageErr("build list query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("order_by", orderBy).
			Msg("failed to list collection")
		return nil, storageErr(fmt.Sprintf("list %s", collection), err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err = rows.Scan(&rec.ID, &payload, &rec.LastModified); err != nil {
			return nil, storageErr(fmt.Sprintf("scan %s row", collection), err)
		}
		rec.Payload = payload
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr(fmt.Sprintf("iterate %s rows", collection), err)
	}

	return records, nil
}

func (s *sqliteStore) Delete(ctx context.Context, collection Collection, id string) error {
	spec, err := collection.spec()
	if err != nil {
		return err
	}

	query, args, err := sq.Delete(spec.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return storageErr("build delete query", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("id", id).
			Msg("failed to delete record")
		return storageErr(fmt.Sprintf("delete %s/%s", collection, id), err)
	}

	return nil
}

func (s *sqliteStore) DeleteBelow(ctx context.Context, collection Collection, index string, bound int64) (int64, error) {
	spec, err := collection.spec()
	if err != nil {
		return 0, err
	}
	path, err := collection.indexPath(index)
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Delete(spec.table).
		Where(sq.Expr(indexExpr(path)+" < ?", bound)).
		ToSql()
	if err != nil {
		return 0, storageErr("build bulk delete query", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Str("index", index).
			Int64("bound", bound).
			Msg("failed to bulk delete records")
		return 0, storageErr(fmt.Sprintf("delete below on %s", collection), err)
	}

	// RowsAffected is informational here; sqlite always supports it.
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("rows affected", err)
	}

	return n, nil
}

func (s *sqliteStore) Count(ctx context.Context, collection Collection) (int64, error) {
	spec, err := collection.spec()
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Select("COUNT(*)").From(spec.table).ToSql()
	if err != nil {
		return 0, storageErr("build count query", err)
	}

	var n int64
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Msg("failed to count records")
		return 0, storageErr(fmt.Sprintf("count %s", collection), err)
	}

	return n, nil
}

func (s *sqliteStore) Stats(ctx context.Context, collection Collection) (CollectionStats, error) {
	spec, err := collection.spec()
	if err != nil {
		return CollectionStats{}, err
	}

	query, args, err := sq.Select("COUNT(*)", "COALESCE(SUM(LENGTH(payload)), 0)").
		From(spec.table).
		ToSql()
	if err != nil {
		return CollectionStats{}, storageErr("build stats query", err)
	}

	var stats CollectionStats
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&stats.Entries, &stats.Bytes); err != nil {
		s.logger.Err(err).
			Str("collection", string(collection)).
			Msg("failed to collect stats")
		return CollectionStats{}, storageErr(fmt.Sprintf("stats %s", collection), err)
	}

	return stats, nil
}
