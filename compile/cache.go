package compile

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache persists CompiledPrograms keyed on the content hash of the
// authored patch (spec's "a content hash... keys the compile cache"),
// backed by sqlite -- grounded on the teacher's akita monitoring
// dependency chain, which persists simulation stats the same way
// (database/sql over github.com/mattn/go-sqlite3), generalized here from
// stats rows to a single blob column per hash.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a sqlite-backed cache at path.
// An empty path opens an in-memory cache, useful for tests and for a CLI
// invocation that opts out of persistence.
func OpenCache(path string) (*Cache, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("compile: opening cache: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS compile_cache (
		content_hash TEXT PRIMARY KEY,
		program_json BLOB NOT NULL,
		ok INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("compile: creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached CompiledProgram for contentHash, if present.
// The stored entry is the whole CompiledProgram as Put serialized it,
// Diagnostics included, so a hit returns the same diagnostics the
// original compile produced.
func (c *Cache) Get(contentHash string) (CompiledProgram, bool, error) {
	var blob []byte
	var ok bool
	row := c.db.QueryRow(`SELECT program_json, ok FROM compile_cache WHERE content_hash = ?`, contentHash)
	if err := row.Scan(&blob, &ok); err != nil {
		if err == sql.ErrNoRows {
			return CompiledProgram{}, false, nil
		}
		return CompiledProgram{}, false, fmt.Errorf("compile: reading cache: %w", err)
	}

	var cp CompiledProgram
	if err := json.Unmarshal(blob, &cp); err != nil {
		return CompiledProgram{}, false, fmt.Errorf("compile: decoding cached program: %w", err)
	}
	cp.OK = ok
	return cp, true, nil
}

// Put stores a CompiledProgram. Only OK programs are worth caching;
// callers should not store a failed compile since its diagnostics would
// otherwise mask a later fix to the same patch content.
func (c *Cache) Put(contentHash string, cp CompiledProgram) error {
	if !cp.OK {
		return nil
	}
	blob, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("compile: encoding program for cache: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO compile_cache (content_hash, program_json, ok) VALUES (?, ?, 1)
		 ON CONFLICT(content_hash) DO UPDATE SET program_json = excluded.program_json, ok = excluded.ok`,
		contentHash, blob,
	)
	if err != nil {
		return fmt.Errorf("compile: writing cache: %w", err)
	}
	return nil
}
