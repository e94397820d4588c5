package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RecentRepo handles the recent documents history.
type RecentRepo struct {
	db DBTX
}

// NewRecentRepo returns a repo over db, which may be a transaction.
func NewRecentRepo(db DBTX) *RecentRepo { return &RecentRepo{db: db} }

// Touch records a use of d.Path. A new path is inserted with d.ID; a known
// path bumps its use count and takes the new name, module and time.
func (r *RecentRepo) Touch(ctx context.Context, d RecentDocument) error {
	if d.LastUsedAt.IsZero() {
		d.LastUsedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO recent_documents(id, path, name, module, use_count, last_used_at)
	VALUES (?, ?, ?, ?, 1, ?)
	ON CONFLICT(path) DO UPDATE SET
	 name=excluded.name,
	 module=excluded.module,
	 use_count=recent_documents.use_count + 1,
	 last_used_at=excluded.last_used_at;
	`, d.ID, d.Path, d.Name, d.Module, d.LastUsedAt.UTC())
	return err
}

// List returns up to limit entries, most recently used first.
func (r *RecentRepo) List(ctx context.Context, limit int) ([]RecentDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, path, name, module, use_count, last_used_at
	FROM recent_documents
	ORDER BY last_used_at DESC, use_count DESC, path
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RecentDocument
	for rows.Next() {
		var d RecentDocument
		if err := rows.Scan(&d.ID, &d.Path, &d.Name, &d.Module, &d.UseCount, &d.LastUsedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete forgets path. Unknown paths are not an error.
func (r *RecentRepo) Delete(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recent_documents WHERE path = ?`, path)
	return err
}

// Clear removes every entry and reports how many were removed.
func (r *RecentRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recent_documents`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
