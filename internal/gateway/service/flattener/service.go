// Package flattener runs flatten tasks in the background and tracks their
// progress from clone to finished document.
package flattener

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"flattenrepo/internal/flatten"
	"flattenrepo/internal/gateway/repository/artifact"
	"flattenrepo/internal/gateway/repository/taskstore"
	"flattenrepo/internal/gitfetch"
)

// ErrInvalidRepoURL rejects a submission before any task is created.
var ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")

// ErrNotReady means the task exists but has not produced a document yet.
var ErrNotReady = errors.New("document not ready")

const fetchTimeout = 10 * time.Minute

// Service owns the task lifecycle: it validates submissions, clones and
// flattens in a goroutine, stores the document, and fans progress out to
// watchers.
type Service struct {
	fetcher   gitfetch.Fetcher
	tasks     *taskstore.Store
	artifacts artifact.Store
	cfg       flatten.Config

	mu       sync.Mutex
	watchers map[string][]chan taskstore.Task
}

func New(fetcher gitfetch.Fetcher, tasks *taskstore.Store, artifacts artifact.Store, cfg flatten.Config) *Service {
	return &Service{
		fetcher:   fetcher,
		tasks:     tasks,
		artifacts: artifacts,
		cfg:       cfg,
		watchers:  make(map[string][]chan taskstore.Task),
	}
}

// Start validates the URL, registers a task in the cloning state and kicks
// off processing. maxBytes overrides the configured per-file limit when
// positive. The returned task is the initial snapshot.
func (s *Service) Start(repoURL string, maxBytes int64) (taskstore.Task, error) {
	if !gitfetch.ValidRepoURL(repoURL) {
		return taskstore.Task{}, ErrInvalidRepoURL
	}

	cfg := s.cfg
	if maxBytes > 0 {
		cfg.MaxBytes = maxBytes
	}

	now := time.Now().UTC()
	task := taskstore.Task{
		ID:        uuid.NewString(),
		RepoURL:   repoURL,
		Status:    taskstore.StatusCloning,
		Message:   "Cloning repository...",
		Progress:  10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tasks.Put(task); err != nil {
		return taskstore.Task{}, fmt.Errorf("registering task: %w", err)
	}

	go s.process(task.ID, repoURL, cfg)
	return task, nil
}

// Status returns the current task snapshot.
func (s *Service) Status(id string) (taskstore.Task, bool, error) {
	return s.tasks.Get(id)
}

// Document returns the finished HTML document and its download filename.
func (s *Service) Document(ctx context.Context, id string) (string, []byte, error) {
	task, ok, err := s.tasks.Get(id)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, artifact.ErrNotFound
	}
	if task.Status != taskstore.StatusComplete {
		return "", nil, ErrNotReady
	}
	doc, err := s.artifacts.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	filename := flatten.TitleFromSource(task.RepoURL) + "_flattened.html"
	return filename, doc, nil
}

// Watch subscribes to progress updates for a task. Callers should read the
// current snapshot with Status after subscribing; updates published from
// then on arrive on the channel, which closes once the task reaches a
// terminal state. The returned func unsubscribes early.
func (s *Service) Watch(id string) (<-chan taskstore.Task, func()) {
	ch := make(chan taskstore.Task, 8)

	s.mu.Lock()
	s.watchers[id] = append(s.watchers[id], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		chans := s.watchers[id]
		for i, c := range chans {
			if c == ch {
				s.watchers[id] = append(chans[:i], chans[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

func (s *Service) process(id, repoURL string, cfg flatten.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	tmp, err := os.MkdirTemp("", "flatten_repo_web_")
	if err != nil {
		s.fail(id, "Internal error preparing workspace")
		log.Printf("task %s: mkdir temp: %v", id, err)
		return
	}
	defer os.RemoveAll(tmp)

	head, err := s.fetcher.Fetch(ctx, repoURL, tmp)
	if err != nil {
		s.fail(id, gitfetch.CloneErrorMessage(err))
		log.Printf("task %s: fetch %s: %v", id, repoURL, err)
		return
	}

	s.advance(id, taskstore.StatusScanning, "Scanning repository files...", 40)

	art, err := flatten.Run(tmp, head, repoURL, cfg)
	if err != nil {
		s.fail(id, "Failed to scan repository files")
		log.Printf("task %s: flatten: %v", id, err)
		return
	}

	s.advance(id, taskstore.StatusGenerating, "Generating HTML document...", 70)

	doc := []byte(art.HTML)
	if err := s.artifacts.Put(ctx, id, doc); err != nil {
		s.fail(id, "Failed to store generated document")
		log.Printf("task %s: store artifact: %v", id, err)
		return
	}

	task, ok, err := s.tasks.Update(id, func(t *taskstore.Task) {
		t.Status = taskstore.StatusComplete
		t.Message = "Processing complete"
		t.Progress = 100
		t.FileSize = int64(len(doc))
	})
	if err != nil || !ok {
		log.Printf("task %s: finalize: ok=%v err=%v", id, ok, err)
		return
	}
	s.publish(task)
	log.Printf("task %s: %s flattened, document %s", id, repoURL, humanize.IBytes(uint64(len(doc))))
}

func (s *Service) advance(id string, status taskstore.Status, message string, progress int) {
	task, ok, err := s.tasks.Update(id, func(t *taskstore.Task) {
		t.Status = status
		t.Message = message
		t.Progress = progress
	})
	if err != nil || !ok {
		log.Printf("task %s: update to %s: ok=%v err=%v", id, status, ok, err)
		return
	}
	s.publish(task)
}

func (s *Service) fail(id, message string) {
	task, ok, err := s.tasks.Update(id, func(t *taskstore.Task) {
		t.Status = taskstore.StatusError
		t.Message = message
		t.Progress = 100
	})
	if err != nil || !ok {
		log.Printf("task %s: update to error: ok=%v err=%v", id, ok, err)
		return
	}
	s.publish(task)
}

// publish delivers a snapshot to every watcher without blocking. The
// watcher buffer holds more updates than a task can emit, so a draining
// watcher never misses the terminal snapshot.
func (s *Service) publish(task taskstore.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chans := s.watchers[task.ID]
	for _, ch := range chans {
		select {
		case ch <- task:
		default:
		}
	}
	if task.Status.Terminal() {
		for _, ch := range chans {
			close(ch)
		}
		delete(s.watchers, task.ID)
	}
}
