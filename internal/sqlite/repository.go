package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
	_ "modernc.org/sqlite"
)

// Repository implements files.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite repository
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialize through one connection
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}

	// Initialize database schema
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// initSchema creates the necessary database tables
func (r *Repository) initSchema() error {
	// name_folded and caption_folded hold Unicode lower-cased copies so that
	// matching does not depend on SQLite's ASCII-only lower()
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS files (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		external_ref TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		caption TEXT NOT NULL,
		name_folded TEXT NOT NULL,
		caption_folded TEXT NOT NULL,
		source_message_id INTEGER NOT NULL,
		source_channel_id INTEGER NOT NULL,
		kind TEXT NOT NULL
	);`
	if _, err := r.db.Exec(createTableQuery); err != nil {
		return fmt.Errorf("failed to create files table: %w", err)
	}

	return nil
}

// Upsert stores the file, replacing the metadata of an existing record with the
// same external reference while keeping its ID
func (r *Repository) Upsert(ctx context.Context, file *files.File) error {
	query := `
	INSERT INTO files (id, external_ref, name, caption, name_folded, caption_folded,
		source_message_id, source_channel_id, kind)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(external_ref) DO UPDATE SET
		name = excluded.name,
		caption = excluded.caption,
		name_folded = excluded.name_folded,
		caption_folded = excluded.caption_folded,
		source_message_id = excluded.source_message_id,
		source_channel_id = excluded.source_channel_id,
		kind = excluded.kind
	RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		file.ID,
		file.ExternalRef,
		file.Name,
		file.Caption,
		fold(file.Name),
		fold(file.Caption),
		file.SourceMessageID,
		file.SourceChannelID,
		string(file.Kind),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert file record: %w", err)
	}

	file.ID = id
	return nil
}

// Search retrieves files whose name or caption contains query
func (r *Repository) Search(ctx context.Context, query string) ([]*files.File, error) {
	q := `
	SELECT id, external_ref, name, caption, source_message_id, source_channel_id, kind
	FROM files
	WHERE instr(name_folded, ?1) > 0 OR instr(caption_folded, ?1) > 0
	ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, q, fold(query))
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var fileList []*files.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		fileList = append(fileList, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}

	return fileList, nil
}

// FindByID retrieves a file by ID
func (r *Repository) FindByID(ctx context.Context, id string) (*files.File, error) {
	query := `
	SELECT id, external_ref, name, caption, source_message_id, source_channel_id, kind
	FROM files
	WHERE id = ?
	`

	file, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, files.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}

	return file, nil
}

// Delete removes a file by ID
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return files.ErrNotFound
	}

	return nil
}

// Count returns the number of stored files
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*files.File, error) {
	var file files.File
	var kind string
	err := s.Scan(
		&file.ID,
		&file.ExternalRef,
		&file.Name,
		&file.Caption,
		&file.SourceMessageID,
		&file.SourceChannelID,
		&kind,
	)
	if err != nil {
		return nil, err
	}
	file.Kind = files.Kind(kind)
	return &file, nil
}

func fold(s string) string {
	return strings.ToLower(s)
}
