// Package storage implements the SQLite dictionary repository. Category and
// keyword rows carry an explicit position column so the match precedence
// survives the round trip.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finboard/internal/dictionary"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ dictionary.Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads all categories and keywords ordered by position. An empty
// database yields the default dictionary.
func (r *SQLiteRepository) Load(ctx context.Context) (*dictionary.Dictionary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	type catRow struct {
		id   int64
		name string
	}
	var catRows []catRow
	for rows.Next() {
		var c catRow
		if err := rows.Scan(&c.id, &c.name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		catRows = append(catRows, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	if len(catRows) == 0 {
		return dictionary.New(), nil
	}

	cats := make([]dictionary.Category, 0, len(catRows))
	for _, c := range catRows {
		kws, err := r.loadKeywords(ctx, c.id)
		if err != nil {
			return nil, err
		}
		cats = append(cats, dictionary.Category{Name: c.name, Keywords: kws})
	}

	return dictionary.FromCategories(cats), nil
}

func (r *SQLiteRepository) loadKeywords(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT keyword FROM keywords WHERE category_id = ? ORDER BY position`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		out = append(out, kw)
	}
	return out, rows.Err()
}

// Save replaces the whole stored dictionary in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, d *dictionary.Dictionary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM keywords`); err != nil {
		return fmt.Errorf("clear keywords: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	for pos, c := range d.Snapshot() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name, position) VALUES (?, ?)`, c.Name, pos)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
		catID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("category id: %w", err)
		}
		for kpos, kw := range c.Keywords {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO keywords (category_id, keyword, position) VALUES (?, ?, ?)`,
				catID, kw, kpos); err != nil {
				return fmt.Errorf("insert keyword %q: %w", kw, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "Dictionary saved to SQLite", "categories", len(d.Names()))
	return nil
}
