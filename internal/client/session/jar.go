package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/securelogx/console/internal/common"
	"github.com/securelogx/console/internal/cryptox"
	"github.com/securelogx/console/internal/dbx"
	"github.com/securelogx/console/internal/logging"
)

// Jar is a persistent http.CookieJar.
type Jar struct {
	db  *sql.DB
	key []byte
	log logging.Logger
	now func() time.Time

	jar *cookiejar.Jar
}

// NewJar builds a jar over db and replays every stored, unexpired cookie into
// it. Rows that no longer open under key are dropped.
func NewJar(ctx context.Context, db *sql.DB, key []byte, log logging.Logger) (*Jar, error) {
	return newJar(ctx, db, key, log, time.Now)
}

func newJar(ctx context.Context, db *sql.DB, key []byte, log logging.Logger, now func() time.Time) (*Jar, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("cookie store key: %d bytes: %w", len(key), common.ErrInvalidKey)
	}

	cj, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	j := &Jar{db: db, key: key, log: log, now: now, jar: cj}
	if err := j.restore(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// SetCookies updates the in-memory jar first, so the live request flow never
// depends on the disk. A failed write is logged.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	ctx := context.Background()
	if err := j.persist(ctx, u, cookies); err != nil {
		j.log.Warn(ctx, "cookie store write failed", "host", u.Host, "error", err)
	}
}

func (j *Jar) persist(ctx context.Context, u *url.URL, cookies []*http.Cookie) error {
	now := j.now()

	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, c := range cookies {
			k := keyOf(u, c)

			if deletes(c, now) {
				if err := repo.Delete(ctx, k); err != nil {
					return err
				}
				j.log.Debug(ctx, "cookie removed", "host", k.Host, "name", k.Name)
				continue
			}

			sealed, nonce, err := cryptox.Seal([]byte(c.Value), j.key, k.additionalData())
			if err != nil {
				return err
			}

			rec := &Record{
				Key:      k,
				Origin:   originOf(u),
				Value:    sealed,
				Nonce:    nonce,
				Expires:  expiresAt(c, now),
				Secure:   c.Secure,
				HTTPOnly: c.HttpOnly,
				SameSite: c.SameSite,
			}
			if err := repo.Upsert(ctx, rec); err != nil {
				return err
			}
			j.log.Debug(ctx, "cookie stored", "host", k.Host, "name", k.Name)
		}
		return nil
	})
}

func (j *Jar) restore(ctx context.Context) error {
	repo := NewSQLiteRepository(j.db)

	records, err := repo.List(ctx)
	if err != nil {
		return err
	}

	now := j.now()
	restored := 0
	for _, rec := range records {
		if rec.expired(now) {
			if err := repo.Delete(ctx, rec.Key); err != nil {
				return err
			}
			continue
		}

		u, err := url.Parse(rec.Origin)
		if err != nil {
			j.log.Warn(ctx, "dropping cookie with bad origin", "origin", rec.Origin, "error", err)
			if err := repo.Delete(ctx, rec.Key); err != nil {
				return err
			}
			continue
		}

		value, err := cryptox.Open(rec.Value, rec.Nonce, j.key, rec.additionalData())
		if err != nil {
			j.log.Warn(ctx, "dropping cookie sealed under another key", "host", rec.Host, "name", rec.Name)
			if err := repo.Delete(ctx, rec.Key); err != nil {
				return err
			}
			continue
		}

		j.jar.SetCookies(u, []*http.Cookie{rec.cookie(string(value))})
		restored++
	}

	j.log.Debug(ctx, "cookie store loaded", "cookies", restored)
	return nil
}

var _ http.CookieJar = (*Jar)(nil)
