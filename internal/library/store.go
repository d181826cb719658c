// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists the catalog: topics and their ordered document
// references with read flags. Only references are stored; the underlying
// files are never copied, moved, or deleted.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lukisch/DokuReader/pkg/types"
)

const dbFile = "dokureader.db"

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database under cfg.LibraryDir, creating
// the schema if it does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if cfg.LibraryDir == "" {
		return nil, fmt.Errorf("opening catalog: library directory not set")
	}
	if err := os.MkdirAll(cfg.LibraryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.LibraryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS topics (
			name TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			topic TEXT NOT NULL REFERENCES topics(name) ON DELETE CASCADE ON UPDATE CASCADE,
			path TEXT NOT NULL,
			read INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			PRIMARY KEY (topic, path)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_topic ON documents(topic, position)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateTopic adds a new empty topic. Creating an existing topic is an error.
func (s *Store) CreateTopic(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("topic name must not be empty")
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO topics (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("creating topic %s: %w", name, err)
	}
	return nil
}

// RenameTopic renames a topic; document references follow via the cascading
// foreign key.
func (s *Store) RenameTopic(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("topic name must not be empty")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE topics SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("renaming topic %s: %w", oldName, err)
	}
	return requireAffected(res, "topic", oldName)
}

// DeleteTopic removes a topic and its document references.
func (s *Store) DeleteTopic(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting topic %s: %w", name, err)
	}
	return requireAffected(res, "topic", name)
}

// Topics returns all topic names sorted case-insensitively.
func (s *Store) Topics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM topics ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		topics = append(topics, name)
	}
	return topics, rows.Err()
}

// AddDocuments appends references to topic for every path that exists, has a
// supported extension, and is not already referenced. The topic is created
// when missing. It returns the number of references actually added.
func (s *Store) AddDocuments(ctx context.Context, topic string, paths []string) (int, error) {
	if topic == "" {
		return 0, fmt.Errorf("topic name must not be empty")
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO topics (name) VALUES (?)`, topic); err != nil {
		return 0, fmt.Errorf("ensuring topic %s: %w", topic, err)
	}

	added := 0
	for _, p := range paths {
		if !types.Supported(p) {
			continue
		}
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			continue
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO documents (topic, path, read, position)
			 VALUES (?, ?, 0, (SELECT COALESCE(MAX(position), -1) + 1 FROM documents WHERE topic = ?))`,
			topic, p, topic)
		if err != nil {
			return added, fmt.Errorf("adding %s to %s: %w", p, topic, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

// RemoveDocument drops one reference; the underlying file stays untouched.
func (s *Store) RemoveDocument(ctx context.Context, topic, path string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE topic = ? AND path = ?`, topic, path)
	if err != nil {
		return fmt.Errorf("removing %s from %s: %w", path, topic, err)
	}
	return requireAffected(res, "document", path)
}

// SetRead sets the read flag for one document reference.
func (s *Store) SetRead(ctx context.Context, topic, path string, read bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET read = ? WHERE topic = ? AND path = ?`, read, topic, path)
	if err != nil {
		return fmt.Errorf("marking %s: %w", path, err)
	}
	return requireAffected(res, "document", path)
}

// Documents returns the topic's references in insertion order.
func (s *Store) Documents(ctx context.Context, topic string) ([]types.DocumentRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, read FROM documents WHERE topic = ? ORDER BY position`, topic)
	if err != nil {
		return nil, fmt.Errorf("listing documents of %s: %w", topic, err)
	}
	defer rows.Close()

	var docs []types.DocumentRef
	for rows.Next() {
		var d types.DocumentRef
		if err := rows.Scan(&d.Path, &d.Read); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// FilteredDocuments returns the topic's references in insertion order,
// narrowed by the read filter.
func (s *Store) FilteredDocuments(ctx context.Context, topic string, filter types.ReadFilter) ([]types.DocumentRef, error) {
	docs, err := s.Documents(ctx, topic)
	if err != nil {
		return nil, err
	}
	filtered := docs[:0:0]
	for _, d := range docs {
		if filter.Matches(d) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func requireAffected(res sql.Result, kind, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", kind, name)
	}
	return nil
}
