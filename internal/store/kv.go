package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Keys used by the engine. They match what the browser build kept in
// localStorage so exported values stay recognisable.
const (
	KeyPreferences = "job-filter-preferences"
	KeyOpenAIKey   = "openai_api_key"
)

// KV is the string-keyed durable store the preference and credential
// holders persist through.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Get returns ok=false when the key was never written.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := d.Pool.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ? LIMIT 1;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO kv(key, value, updated_at) VALUES(?,?,?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (d *DB) Delete(ctx context.Context, key string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM kv WHERE key = ?;`, key)
	return err
}
