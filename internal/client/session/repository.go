package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/securelogx/console/internal/dbx"
)

// Repository stores cookie records.
type Repository interface {
	Upsert(ctx context.Context, r *Record) error
	Delete(ctx context.Context, k Key) error
	List(ctx context.Context) ([]*Record, error)
}

// SQLiteRepository is the Repository over the cookies table. db may be a
// *sql.DB or a *sql.Tx.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts rec or replaces the row with the same key.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *Record) error {
	var expires int64
	if !rec.Expires.IsZero() {
		expires = rec.Expires.Unix()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (host, domain, path, name, origin, value, nonce, expires, secure, http_only, same_site, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(host, domain, path, name) DO UPDATE SET
			origin = excluded.origin,
			value = excluded.value,
			nonce = excluded.nonce,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only,
			same_site = excluded.same_site,
			updated_at = excluded.updated_at
	`, rec.Host, rec.Domain, rec.Path, rec.Name, rec.Origin, rec.Value, rec.Nonce,
		expires, rec.Secure, rec.HTTPOnly, int(rec.SameSite), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store cookie %s@%s: %w", rec.Name, rec.Host, err)
	}
	return nil
}

// Delete removes the row for k. A missing row is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, k Key) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cookies WHERE host = ? AND domain = ? AND path = ? AND name = ?`,
		k.Host, k.Domain, k.Path, k.Name)
	if err != nil {
		return fmt.Errorf("failed to delete cookie %s@%s: %w", k.Name, k.Host, err)
	}
	return nil
}

// List returns every stored record, expired ones included.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT host, domain, path, name, origin, value, nonce, expires, secure, http_only, same_site
		FROM cookies ORDER BY host, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []*Record
	for rows.Next() {
		var (
			rec      Record
			expires  int64
			sameSite int
		)
		if err := rows.Scan(&rec.Host, &rec.Domain, &rec.Path, &rec.Name, &rec.Origin,
			&rec.Value, &rec.Nonce, &expires, &rec.Secure, &rec.HTTPOnly, &sameSite); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if expires != 0 {
			rec.Expires = time.Unix(expires, 0).UTC()
		}
		rec.SameSite = http.SameSite(sameSite)
		result = append(result, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}

	return result, nil
}

var _ Repository = (*SQLiteRepository)(nil)
