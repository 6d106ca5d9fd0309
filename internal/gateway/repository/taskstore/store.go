// Package taskstore persists flatten task records. The store keeps tasks in
// memory by default and in Postgres when a DSN is configured, with an LRU
// read cache in front of the database.
package taskstore

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Status is the lifecycle state of one flatten task.
type Status string

const (
	StatusCloning    Status = "cloning"
	StatusScanning   Status = "scanning"
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Terminal reports whether no further transitions can happen.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Task is one background flatten invocation.
type Task struct {
	ID        string
	RepoURL   string
	Status    Status
	Message   string
	Progress  int
	FileSize  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

const readCacheSize = 1024

// Store holds task records. The zero value is not usable; construct with New
// or NewPostgres.
type Store struct {
	db *sql.DB

	mu   sync.RWMutex
	byID map[string]Task

	schemaOnce sync.Once
	schemaErr  error

	readCache *lru.Cache[string, Task]
}

// New returns an in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]Task)}
}

// NewPostgres returns a store backed by the given Postgres DSN.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Task](readCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, readCache: cache}, nil
}

// Close releases the database handle, if any.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put inserts or replaces a task record.
func (s *Store) Put(task Task) error {
	if s == nil {
		return nil
	}
	if s.db != nil {
		err := s.putDB(task)
		if err == nil && s.readCache != nil {
			s.readCache.Remove(task.ID)
		}
		return err
	}
	s.mu.Lock()
	s.byID[task.ID] = task
	s.mu.Unlock()
	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool, error) {
	if s == nil {
		return Task{}, false, nil
	}
	if s.db != nil {
		if s.readCache != nil {
			if t, ok := s.readCache.Get(id); ok {
				return t, true, nil
			}
		}
		t, ok, err := s.getDB(id)
		if err == nil && ok && s.readCache != nil && t.Status.Terminal() {
			// Only terminal records are safe to cache; live ones still move.
			s.readCache.Add(id, t)
		}
		return t, ok, err
	}
	s.mu.RLock()
	t, ok := s.byID[id]
	s.mu.RUnlock()
	return t, ok, nil
}

// Update applies fn to the stored task and persists the result. The returned
// task is the post-update state; ok is false when the id is unknown.
func (s *Store) Update(id string, fn func(*Task)) (Task, bool, error) {
	if s == nil {
		return Task{}, false, nil
	}
	if s.db != nil {
		t, ok, err := s.updateDB(id, fn)
		if err == nil && ok && s.readCache != nil {
			s.readCache.Remove(id)
		}
		return t, ok, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return Task{}, false, nil
	}
	fn(&t)
	t.UpdatedAt = time.Now().UTC()
	s.byID[id] = t
	return t, true, nil
}

// DeleteExpired removes tasks last updated before cutoff and returns their
// ids so callers can drop the matching artifacts.
func (s *Store) DeleteExpired(cutoff time.Time) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	if s.db != nil {
		ids, err := s.deleteExpiredDB(cutoff)
		if err == nil && s.readCache != nil {
			for _, id := range ids {
				s.readCache.Remove(id)
			}
		}
		return ids, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, t := range s.byID {
		if t.UpdatedAt.Before(cutoff) {
			delete(s.byID, id)
			ids = append(ids, id)
		}
	}
	return ids, nil
}
