package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-while/go-probview/internal/models"
)

const problemColumns = `slug, problem_number, title, difficulty, solved, notes_complete, tags, languages, record_path, checksum, created_at, indexed_at`

// UpsertProblems writes the entries in one transaction
func (db *Database) UpsertProblems(entries []*models.ProblemEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return retryableTransactionExec(db.mainDB, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO problems (` + problemColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				problem_number = excluded.problem_number,
				title = excluded.title,
				difficulty = excluded.difficulty,
				solved = excluded.solved,
				notes_complete = excluded.notes_complete,
				tags = excluded.tags,
				languages = excluded.languages,
				record_path = excluded.record_path,
				checksum = excluded.checksum,
				created_at = excluded.created_at,
				indexed_at = excluded.indexed_at`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			tags, err := encodeStringList(e.Tags)
			if err != nil {
				return err
			}
			langs, err := encodeStringList(e.Languages)
			if err != nil {
				return err
			}
			var created interface{}
			if !e.CreatedAt.IsZero() {
				created = e.CreatedAt.UTC()
			}
			indexed := e.IndexedAt
			if indexed.IsZero() {
				indexed = time.Now().UTC()
			}
			if _, err := stmt.Exec(e.Slug, e.Number, e.Title, string(e.Difficulty), e.Solved, e.NotesComplete,
				tags, langs, e.RecordPath, e.Checksum, created, indexed.UTC()); err != nil {
				return fmt.Errorf("upsert %s: %w", e.Slug, err)
			}
		}
		return nil
	})
}

// UpsertProblem writes a single entry
func (db *Database) UpsertProblem(e *models.ProblemEntry) error {
	return db.UpsertProblems([]*models.ProblemEntry{e})
}

// PruneProblems deletes every row whose slug is not in keep and returns how many went away
func (db *Database) PruneProblems(keep []string) (int, error) {
	keepSet := make(map[string]bool, len(keep))
	for _, slug := range keep {
		keepSet[slug] = true
	}
	slugs, err := db.ListSlugs()
	if err != nil {
		return 0, err
	}
	var drop []string
	for _, slug := range slugs {
		if !keepSet[slug] {
			drop = append(drop, slug)
		}
	}
	if len(drop) == 0 {
		return 0, nil
	}
	err = retryableTransactionExec(db.mainDB, func(tx *sql.Tx) error {
		for _, slug := range drop {
			if _, err := tx.Exec(`DELETE FROM problems WHERE slug = ?`, slug); err != nil {
				return fmt.Errorf("delete %s: %w", slug, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(drop), nil
}

// ListSlugs returns all indexed slugs
func (db *Database) ListSlugs() ([]string, error) {
	rows, err := retryableQuery(db.mainDB, `SELECT slug FROM problems ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		out = append(out, slug)
	}
	return out, rows.Err()
}

// GetProblemEntry returns the row of slug or sql.ErrNoRows
func (db *Database) GetProblemEntry(slug string) (*models.ProblemEntry, error) {
	rows, err := retryableQuery(db.mainDB, `SELECT `+problemColumns+` FROM problems WHERE slug = ?`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanProblemEntry(rows)
}

// ListProblems returns entries ordered by problem number. limit <= 0 returns all.
func (db *Database) ListProblems(limit, offset int) ([]*models.ProblemEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := retryableQuery(db.mainDB, `SELECT `+problemColumns+` FROM problems
		ORDER BY problem_number, slug LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProblemEntries(rows)
}

// SearchProblems matches q against title, slug and tags, case-insensitive
func (db *Database) SearchProblems(q string, limit int) ([]*models.ProblemEntry, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	rows, err := retryableQuery(db.mainDB, `SELECT `+problemColumns+` FROM problems
		WHERE lower(title) LIKE ? ESCAPE '\' OR lower(slug) LIKE ? ESCAPE '\' OR lower(tags) LIKE ? ESCAPE '\'
		ORDER BY problem_number, slug LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProblemEntries(rows)
}

// CountProblems returns the number of indexed problems
func (db *Database) CountProblems() (int, error) {
	var n int
	err := retryableQueryRowScan(db.mainDB, `SELECT COUNT(*) FROM problems`, nil, &n)
	return n, err
}

// GetProblemStats summarizes the index
func (db *Database) GetProblemStats() (*models.ProblemStats, error) {
	stats := &models.ProblemStats{ByDifficulty: make(map[string]int)}
	err := retryableQueryRowScan(db.mainDB, `SELECT COUNT(*), COALESCE(SUM(solved), 0), COALESCE(SUM(notes_complete), 0) FROM problems`,
		nil, &stats.Total, &stats.Solved, &stats.NotesDone)
	if err != nil {
		return nil, err
	}
	rows, err := retryableQuery(db.mainDB, `SELECT difficulty, COUNT(*) FROM problems GROUP BY difficulty`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var difficulty string
		var n int
		if err := rows.Scan(&difficulty, &n); err != nil {
			return nil, err
		}
		if difficulty == "" {
			difficulty = "N/A"
		}
		stats.ByDifficulty[difficulty] += n
	}
	return stats, rows.Err()
}

// RecordIndexRun stores one indexer pass
func (db *Database) RecordIndexRun(run *models.IndexRun) error {
	_, err := retryableExec(db.mainDB, `INSERT INTO index_runs (id, started_at, finished_at, indexed, failed, pruned)
		VALUES (?, ?, ?, ?, ?, ?)`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Indexed, run.Failed, run.Pruned)
	return err
}

// LastIndexRun returns the newest index run or sql.ErrNoRows
func (db *Database) LastIndexRun() (*models.IndexRun, error) {
	run := &models.IndexRun{}
	err := retryableQueryRowScan(db.mainDB, `SELECT id, started_at, finished_at, indexed, failed, pruned
		FROM index_runs ORDER BY started_at DESC, id DESC LIMIT 1`, nil,
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Indexed, &run.Failed, &run.Pruned)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func scanProblemEntries(rows *sql.Rows) ([]*models.ProblemEntry, error) {
	var out []*models.ProblemEntry
	for rows.Next() {
		e, err := scanProblemEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanProblemEntry(rows *sql.Rows) (*models.ProblemEntry, error) {
	e := &models.ProblemEntry{}
	var difficulty, tags, langs string
	var created sql.NullTime
	if err := rows.Scan(&e.Slug, &e.Number, &e.Title, &difficulty, &e.Solved, &e.NotesComplete,
		&tags, &langs, &e.RecordPath, &e.Checksum, &created, &e.IndexedAt); err != nil {
		return nil, fmt.Errorf("scan problem: %w", err)
	}
	e.Difficulty = models.Difficulty(difficulty)
	if created.Valid {
		e.CreatedAt = created.Time
	}
	var err error
	if e.Tags, err = decodeStringList(tags); err != nil {
		return nil, fmt.Errorf("problem %s tags: %w", e.Slug, err)
	}
	if e.Languages, err = decodeStringList(langs); err != nil {
		return nil, fmt.Errorf("problem %s languages: %w", e.Slug, err)
	}
	return e, nil
}

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStringList(s string) ([]string, error) {
	var out []string
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// escapeLike escapes LIKE wildcards for use with ESCAPE '\'
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
