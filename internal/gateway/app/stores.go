package app

import (
	"fmt"
	"log"
	"strings"

	artifactcache "flattenrepo/internal/cache/artifact"
	"flattenrepo/internal/gateway/config"
	artifactrepo "flattenrepo/internal/gateway/repository/artifact"
	"flattenrepo/internal/gateway/repository/taskstore"
)

type gatewayStores struct {
	artifact artifactrepo.Store
	// sweeper is the uncached origin when it supports retention sweeps.
	sweeper artifactrepo.Sweeper
}

func initTaskStore(cfg *config.Config) (*taskstore.Store, error) {
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		store, err := taskstore.NewPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open task store: %w", err)
		}
		log.Printf("task store: postgres")
		return store, nil
	}
	return taskstore.New(), nil
}

func initStores(cfg *config.Config) (*gatewayStores, error) {
	var origin artifactrepo.Store
	if cfg.Artifact.CanUseS3() {
		s3Store, err := artifactrepo.NewS3Store(artifactrepo.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize artifact s3 store: %w", err)
		}
		log.Printf("artifact store: s3 bucket=%s endpoint=%s", cfg.Artifact.Bucket, cfg.Artifact.Endpoint)
		origin = s3Store
	} else {
		if cfg.Artifact.Enabled {
			log.Printf("artifact store: using disk fallback (s3 config incomplete)")
		}
		diskStore, err := artifactrepo.NewDiskStore(cfg.Output.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize artifact disk store: %w", err)
		}
		origin = diskStore
	}

	stores := &gatewayStores{
		artifact: artifactcache.NewCachedStore(origin, artifactcache.DefaultCacheConfig()),
	}
	if sweeper, ok := origin.(artifactrepo.Sweeper); ok {
		stores.sweeper = sweeper
	}
	return stores, nil
}
