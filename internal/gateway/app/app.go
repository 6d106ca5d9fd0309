package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"flattenrepo/internal/flatten"
	"flattenrepo/internal/gateway/config"
	"flattenrepo/internal/gateway/handler"
	"flattenrepo/internal/gateway/repository/taskstore"
	"flattenrepo/internal/gateway/server"
	"flattenrepo/internal/gateway/service/flattener"
	"flattenrepo/internal/gitfetch"
)

type App struct {
	server *server.Server
	tasks  *taskstore.Store
	stores *gatewayStores
	output config.OutputConfig

	sweepDone chan struct{}
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	tasks, err := initTaskStore(cfg)
	if err != nil {
		return nil, err
	}
	stores, err := initStores(cfg)
	if err != nil {
		_ = tasks.Close()
		return nil, err
	}

	flattenCfg := flatten.DefaultConfig()
	flattenCfg.MaxBytes = cfg.MaxBytes
	svc := flattener.New(gitfetch.Git{}, tasks, stores.artifact, flattenCfg)

	mux := server.NewMux(handler.NewTaskHandler(svc), handler.NewWatchHandler(svc))
	srv := server.New(cfg.Port, mux)

	return &App{
		server:    srv,
		tasks:     tasks,
		stores:    stores,
		output:    cfg.Output,
		sweepDone: make(chan struct{}),
	}, nil
}

func (a *App) Start() error {
	go a.sweepLoop()
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	close(a.sweepDone)
	err := a.server.Shutdown(ctx)
	if cerr := a.tasks.Close(); err == nil {
		err = cerr
	}
	return err
}

// sweepLoop removes tasks and documents older than the retention window.
func (a *App) sweepLoop() {
	ticker := time.NewTicker(a.output.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.sweep()
		case <-a.sweepDone:
			return
		}
	}
}

func (a *App) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-a.output.TTL)
	ids, err := a.tasks.DeleteExpired(cutoff)
	if err != nil {
		log.Printf("sweep: delete expired tasks: %v", err)
		return
	}
	for _, id := range ids {
		if err := a.stores.artifact.Delete(ctx, id); err != nil {
			log.Printf("sweep: delete document %s: %v", id, err)
		}
	}
	// Catch documents whose task record is already gone.
	if a.stores.sweeper != nil {
		n, err := a.stores.sweeper.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			log.Printf("sweep: delete orphaned documents: %v", err)
		} else if n > 0 || len(ids) > 0 {
			log.Printf("sweep: removed %d expired tasks, %d orphaned documents", len(ids), n)
		}
	} else if len(ids) > 0 {
		log.Printf("sweep: removed %d expired tasks", len(ids))
	}
}
