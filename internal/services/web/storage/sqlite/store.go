package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/azure-flow/AI-Guide/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
	"github.com/azure-flow/AI-Guide/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for the rendered-page cache.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a page cache SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetPage loads a cached page and metadata by path.
func (s *Store) GetPage(ctx context.Context, path string) (webstorage.PageEntry, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.PageEntry{}, false, fmt.Errorf("storage is not configured")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return webstorage.PageEntry{}, false, fmt.Errorf("page path is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT path, scope, tags, html, stale, refreshed_at, revalidate_after, expires_at
		 FROM page_cache
		 WHERE path = ?`,
		path,
	)

	var entry webstorage.PageEntry
	var tags string
	var staleInt int64
	var refreshedAt int64
	var revalidateAfter int64
	var expiresAt int64
	if err := row.Scan(
		&entry.Path,
		&entry.Scope,
		&tags,
		&entry.HTML,
		&staleInt,
		&refreshedAt,
		&revalidateAfter,
		&expiresAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return webstorage.PageEntry{}, false, nil
		}
		return webstorage.PageEntry{}, false, fmt.Errorf("get page: %w", err)
	}

	entry.Tags = decodeTags(tags)
	entry.Stale = staleInt != 0
	entry.RefreshedAt = unixMillisToTime(refreshedAt)
	entry.RevalidateAfter = unixMillisToTime(revalidateAfter)
	entry.ExpiresAt = unixMillisToTime(expiresAt)

	return entry, true, nil
}

// PutPage upserts a rendered page and metadata by path.
func (s *Store) PutPage(ctx context.Context, entry webstorage.PageEntry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	entry.Path = strings.TrimSpace(entry.Path)
	if entry.Path == "" {
		return fmt.Errorf("page path is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("page scope is required")
	}
	if len(entry.HTML) == 0 {
		return fmt.Errorf("page html is required")
	}

	if entry.RefreshedAt.IsZero() {
		entry.RefreshedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO page_cache (
		    path, scope, tags, html, stale, refreshed_at, revalidate_after, expires_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		    scope = excluded.scope,
		    tags = excluded.tags,
		    html = excluded.html,
		    stale = excluded.stale,
		    refreshed_at = excluded.refreshed_at,
		    revalidate_after = excluded.revalidate_after,
		    expires_at = excluded.expires_at`,
		entry.Path,
		entry.Scope,
		encodeTags(entry.Tags),
		entry.HTML,
		boolToInt(entry.Stale),
		timeToUnixMillis(entry.RefreshedAt),
		timeToUnixMillis(entry.RevalidateAfter),
		timeToUnixMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put page: %w", err)
	}
	return nil
}

// DeletePage removes a cached page by path.
func (s *Store) DeletePage(ctx context.Context, path string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("page path is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM page_cache WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// MarkPathStale marks one cached path stale. Query-string variants of the
// path go stale with it.
func (s *Store) MarkPathStale(ctx context.Context, path string, checkedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("page path is required")
	}
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE page_cache
		 SET stale = 1, revalidate_after = ?
		 WHERE path = ? OR path LIKE ? ESCAPE '\'`,
		timeToUnixMillis(checkedAt),
		path,
		likePrefix(path)+"?%",
	)
	if err != nil {
		return fmt.Errorf("mark path stale: %w", err)
	}
	return nil
}

// MarkScopeStale marks every cached page in one scope stale.
func (s *Store) MarkScopeStale(ctx context.Context, scope string, checkedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return fmt.Errorf("page scope is required")
	}
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE page_cache SET stale = 1, revalidate_after = ? WHERE scope = ?`,
		timeToUnixMillis(checkedAt),
		scope,
	)
	if err != nil {
		return fmt.Errorf("mark scope stale: %w", err)
	}
	return nil
}

// MarkTagStale marks every cached page depending on one content tag stale.
func (s *Store) MarkTagStale(ctx context.Context, tag string, checkedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("tag is required")
	}
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE page_cache
		 SET stale = 1, revalidate_after = ?
		 WHERE tags LIKE ? ESCAPE '\'`,
		timeToUnixMillis(checkedAt),
		"%|"+likePrefix(tag)+"|%",
	)
	if err != nil {
		return fmt.Errorf("mark tag stale: %w", err)
	}
	return nil
}

// ListStalePaths returns paths due for a background refresh, oldest first.
func (s *Store) ListStalePaths(ctx context.Context, now time.Time, limit int) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT path
		 FROM page_cache
		 WHERE stale = 1 OR revalidate_after <= ?
		 ORDER BY refreshed_at
		 LIMIT ?`,
		timeToUnixMillis(now),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list stale paths: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan stale path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale paths: %w", err)
	}
	return paths, nil
}

// DeleteExpired removes cached pages past their hard expiry.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM page_cache WHERE expires_at > 0 AND expires_at <= ?`,
		timeToUnixMillis(now),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired pages: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired pages: %w", err)
	}
	return deleted, nil
}

// encodeTags stores tags pipe-wrapped so LIKE matches whole slugs only.
func encodeTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "|" + strings.Join(cleaned, "|") + "|"
}

func decodeTags(encoded string) []string {
	trimmed := strings.Trim(encoded, "|")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "|")
}

// likePrefix escapes LIKE metacharacters in a literal value.
func likePrefix(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	value = strings.ReplaceAll(value, "_", `\_`)
	return value
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
