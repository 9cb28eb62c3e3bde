// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store 以 SQLite 保存已結束的搜尋紀錄與其結果。
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errs.NewWarn("run not found")

// Run 為一次搜尋的摘要紀錄。
type Run struct {
	ID        string          `json:"id"`
	Mechanic  string          `json:"mechanic"`
	Profile   string          `json:"profile"`
	Status    string          `json:"status"`
	Total     uint64          `json:"total"`
	Examined  uint64          `json:"examined"`
	Seeds     uint64          `json:"seeds"`
	Found     uint64          `json:"found"`
	Elapsed   time.Duration   `json:"elapsed"`
	Job       json.RawMessage `json:"job,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store 包裝 *sql.DB；可被多個 goroutine 共用。
type Store struct {
	db *sql.DB
}

// Open 開啟（或建立）path 的資料庫並執行 migration。path 可為 ":memory:"。
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(err, "open sqlite failed")
	}
	if path == ":memory:" {
		// 每條連線都是獨立的記憶體資料庫
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "enable WAL failed")
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mechanic TEXT NOT NULL,
			profile TEXT NOT NULL,
			status TEXT NOT NULL,
			total INTEGER NOT NULL,
			examined INTEGER NOT NULL,
			seeds INTEGER NOT NULL,
			found INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			job_json TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seed INTEGER NOT NULL,
			advances INTEGER NOT NULL,
			pid INTEGER NOT NULL,
			match_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_run ON matches(run_id, seed, advances)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC)`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return errs.Wrap(err, "store migration failed")
		}
	}
	return nil
}

// Save 在同一交易內寫入 run 與 matches；run.ID 為空時產生 uuid。
func (s *Store) Save(ctx context.Context, run *Run, matches []mech.Match) error {
	if run == nil {
		return errs.NewWarn("nil run")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(err, "begin tx failed")
	}
	defer tx.Rollback()

	var job any
	if len(run.Job) > 0 {
		job = string(run.Job)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, mechanic, profile, status, total, examined, seeds, found, elapsed_ns, job_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mechanic, run.Profile, run.Status,
		int64(run.Total), int64(run.Examined), int64(run.Seeds), int64(run.Found),
		int64(run.Elapsed), job, run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return errs.WrapWithExtra(err, "insert run failed", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matches (run_id, seed, advances, pid, match_json) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errs.Wrap(err, "prepare match insert failed")
	}
	defer stmt.Close()
	for i := range matches {
		m := &matches[i]
		raw, err := json.Marshal(m)
		if err != nil {
			return errs.Wrap(err, "marshal match failed")
		}
		// uint64 seed 以 bit pattern 存入 INTEGER
		if _, err := stmt.ExecContext(ctx, run.ID, int64(m.Origin.Seed), m.State.Advances, m.State.PID, string(raw)); err != nil {
			return errs.WrapWithExtra(err, "insert match failed", run.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.Wrap(err, "commit failed")
	}
	return nil
}

// Run 讀取單筆紀錄；不存在時回傳 ErrNotFound。
func (s *Store) Run(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, mechanic, profile, status, total, examined, seeds, found, elapsed_ns, job_json, created_at
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "query run failed", id)
	}
	return r, nil
}

// Runs 依建立時間新到舊列出最多 limit 筆（limit <= 0 時為 50）。
func (s *Store) Runs(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, mechanic, profile, status, total, examined, seeds, found, elapsed_ns, job_json, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errs.Wrap(err, "list runs failed")
	}
	defer rows.Close()
	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scan run failed")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "list runs failed")
	}
	return out, nil
}

// Matches 依 (seed, advances) 順序讀取某次搜尋的結果；limit <= 0 表示全部。
func (s *Store) Matches(ctx context.Context, id string, limit int) ([]mech.Match, error) {
	q := `SELECT match_json FROM matches WHERE run_id = ? ORDER BY seed, advances, id`
	args := []any{id}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "query matches failed", id)
	}
	defer rows.Close()
	out := []mech.Match{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errs.Wrap(err, "scan match failed")
		}
		var m mech.Match
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, errs.Wrap(err, "unmarshal match failed")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "query matches failed")
	}
	return out, nil
}

// Delete 刪除紀錄與其結果。
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(err, "begin tx failed")
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE run_id = ?`, id); err != nil {
		return errs.Wrap(err, "delete matches failed")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(err, "delete run failed")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r                             Run
		total, examined, seeds, found int64
		elapsed, created              int64
		job                           sql.NullString
	)
	if err := sc.Scan(&r.ID, &r.Mechanic, &r.Profile, &r.Status,
		&total, &examined, &seeds, &found, &elapsed, &job, &created); err != nil {
		return nil, err
	}
	r.Total, r.Examined, r.Seeds, r.Found = uint64(total), uint64(examined), uint64(seeds), uint64(found)
	r.Elapsed = time.Duration(elapsed)
	r.CreatedAt = time.Unix(0, created)
	if job.Valid {
		r.Job = json.RawMessage(job.String)
	}
	return &r, nil
}
