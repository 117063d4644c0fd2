package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqliteRepo implements ProfileRepo on the profiles table.
type sqliteRepo struct {
	drv *entsql.Driver
}

func (r *sqliteRepo) Load(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("profile_key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query profile: %w", err)
		}
		return nil, ErrNotFound
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return data, nil
}

// Save upserts inside a transaction so a failure rolls back to the previous
// row.
func (r *sqliteRepo) Save(ctx context.Context, key string, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(profilesTable).
		Columns("profile_key", "data", "updated_at").
		Values(key, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("profile_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("save profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile: %w", err)
	}
	return nil
}
