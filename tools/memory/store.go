// Package memory is the assistant's long-term memory: short facts kept in a SQLite database and
// recalled by keyword overlap with the query.
package memory

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL
)`

// Memory is one remembered fact.
type Memory struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Store persists memories.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" keeps everything in process.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create memory directory", goerr.V("path", path))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open memory database", goerr.V("path", path))
	}
	// single writer; also keeps an in-memory database on one connection
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to initialize memory database", goerr.V("path", path))
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close memory database")
	}
	return nil
}

// Add stores text. Storing the same text twice keeps the first entry and reports false.
func (s *Store) Add(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, goerr.New("memory text is empty")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO memories (id, text, created_at) VALUES (?, ?, ?)`,
		uuid.Must(uuid.NewV7()).String(), text, s.now().UnixNano())
	if err != nil {
		return false, goerr.Wrap(err, "failed to store memory")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, goerr.Wrap(err, "failed to store memory")
	}
	return n > 0, nil
}

// All returns every memory, newest first.
func (s *Store) All(ctx context.Context) ([]Memory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, created_at FROM memories ORDER BY created_at DESC`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query memories")
	}
	defer rows.Close()

	var memories []Memory
	for rows.Next() {
		var m Memory
		var created int64
		if err := rows.Scan(&m.ID, &m.Text, &created); err != nil {
			return nil, goerr.Wrap(err, "failed to scan memory")
		}
		m.CreatedAt = time.Unix(0, created)
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read memories")
	}
	return memories, nil
}

// Search returns up to limit memories sharing keywords with query, best match first. Ties go to
// the newer memory.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Memory, error) {
	keywords := tokenize(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		memory Memory
		score  int
	}
	var hits []scored
	for _, m := range all {
		if score := overlap(keywords, tokenize(m.Text)); score > 0 {
			hits = append(hits, scored{memory: m, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	result := make([]Memory, len(hits))
	for i, h := range hits {
		result[i] = h.memory
	}
	return result, nil
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true, "were": true,
	"do": true, "does": true, "did": true, "i": true, "me": true, "my": true, "you": true,
	"your": true, "what": true, "where": true, "when": true, "who": true, "how": true,
	"which": true, "of": true, "to": true, "in": true, "on": true, "at": true, "for": true,
	"and": true, "or": true, "it": true, "that": true, "this": true, "about": true,
	"remember": true, "know": true, "tell": true, "user": true, "user's": true,
}

func tokenize(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := map[string]bool{}
	for _, w := range words {
		w = strings.Trim(w, "'")
		if w == "" || stopWords[w] {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

// overlap counts query keywords found in the memory. Words of four letters or more also match
// by prefix, so "live" finds "lives".
func overlap(query, memory map[string]bool) int {
	score := 0
	for q := range query {
		if memory[q] {
			score++
			continue
		}
		if len(q) < 4 {
			continue
		}
		for m := range memory {
			if len(m) >= 4 && (strings.HasPrefix(m, q) || strings.HasPrefix(q, m)) {
				score++
				break
			}
		}
	}
	return score
}
