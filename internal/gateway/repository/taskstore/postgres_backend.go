package taskstore

import (
	"database/sql"
	"errors"
	"time"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS flatten_tasks (
    id         TEXT PRIMARY KEY,
    repo_url   TEXT NOT NULL,
    status     TEXT NOT NULL,
    message    TEXT NOT NULL DEFAULT '',
    progress   INT  NOT NULL DEFAULT 0,
    file_size  BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
`

func (s *Store) ensureSchema() error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(schemaSQL)
	})
	return s.schemaErr
}

func (s *Store) putDB(task Task) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO flatten_tasks (id, repo_url, status, message, progress, file_size, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    repo_url = EXCLUDED.repo_url,
    status = EXCLUDED.status,
    message = EXCLUDED.message,
    progress = EXCLUDED.progress,
    file_size = EXCLUDED.file_size,
    updated_at = EXCLUDED.updated_at`,
		task.ID, task.RepoURL, string(task.Status), task.Message, task.Progress, task.FileSize,
		task.CreatedAt, task.UpdatedAt)
	return err
}

func (s *Store) getDB(id string) (Task, bool, error) {
	if err := s.ensureSchema(); err != nil {
		return Task{}, false, err
	}
	row := s.db.QueryRow(`SELECT id, repo_url, status, message, progress, file_size, created_at, updated_at
FROM flatten_tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, err
	}
	return t, true, nil
}

func (s *Store) updateDB(id string, fn func(*Task)) (Task, bool, error) {
	if err := s.ensureSchema(); err != nil {
		return Task{}, false, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return Task{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(`SELECT id, repo_url, status, message, progress, file_size, created_at, updated_at
FROM flatten_tasks WHERE id = $1 FOR UPDATE`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, err
	}

	fn(&t)
	t.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(`UPDATE flatten_tasks
SET status = $2, message = $3, progress = $4, file_size = $5, updated_at = $6
WHERE id = $1`,
		t.ID, string(t.Status), t.Message, t.Progress, t.FileSize, t.UpdatedAt)
	if err != nil {
		return Task{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return Task{}, false, err
	}
	return t, true, nil
}

func (s *Store) deleteExpiredDB(cutoff time.Time) ([]string, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`DELETE FROM flatten_tasks WHERE updated_at < $1 RETURNING id`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var status string
	err := row.Scan(&t.ID, &t.RepoURL, &status, &t.Message, &t.Progress, &t.FileSize, &t.CreatedAt, &t.UpdatedAt)
	t.Status = Status(status)
	return t, err
}
