// jobboard-service
//
// Opens the configured document backend, initialises the jobboard document
// on first run and runs the alert digest scheduler until SIGINT/SIGTERM.
// The domain services are a library API; this binary only hosts the
// periodic alert check and its event publication.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"jobmate/jobboard-service/internal/alerts"
	"jobmate/jobboard-service/internal/config"
	"jobmate/jobboard-service/internal/db"
	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/scheduler"
	"jobmate/jobboard-service/internal/search"
	"jobmate/jobboard-service/internal/store"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[jobboard-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Redis (shared by the redis backend and the event publisher) ─────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		log.Println("[jobboard-service] Connecting to Redis…")
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[jobboard-service] Redis: %v", err)
		}
		defer rdb.Close()
		log.Println("[jobboard-service] Redis connected ✓")
	}

	var pub events.Publisher = events.Nop{}
	if rdb != nil {
		pub = events.NewRedisPublisher(rdb)
	}

	// ── Document backend ────────────────────────────────────────────────────
	backend, closer, err := openBackend(ctx, cfg, rdb)
	if err != nil {
		log.Fatalf("[jobboard-service] Backend %s: %v", cfg.Backend, err)
	}
	defer closer.Close()

	st := store.New(backend)
	created, err := st.Init(ctx)
	if err != nil {
		log.Fatalf("[jobboard-service] Init: %v", err)
	}
	if created {
		log.Printf("[jobboard-service] Created empty document %q on %s backend", cfg.StorageKey, cfg.Backend)
	} else {
		log.Printf("[jobboard-service] Using existing document %q on %s backend", cfg.StorageKey, cfg.Backend)
	}

	// ── Scheduler ───────────────────────────────────────────────────────────
	alertSvc := alerts.NewService(st, search.NewService(st))
	sched := scheduler.New(alertSvc, pub, cfg.AlertDigestIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[jobboard-service] Scheduler: %v", err)
	}

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[jobboard-service] Shutting down…")
	cancel()
	sched.Stop()
	log.Println("[jobboard-service] Stopped.")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// openBackend connects the document backend named by cfg.Backend. The
// returned closer releases any connection opened here.
func openBackend(ctx context.Context, cfg *config.Config, rdb *redis.Client) (store.Backend, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nopCloser, nil

	case config.BackendFile:
		return store.NewFileBackend(cfg.StorePath), nopCloser, nil

	case config.BackendRedis:
		return store.NewRedisBackend(rdb, cfg.StorageKey), nopCloser, nil

	case config.BackendPostgres:
		log.Println("[jobboard-service] Connecting to PostgreSQL…")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		b := store.NewPostgresBackend(pool, cfg.StorageKey)
		if err := b.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Println("[jobboard-service] PostgreSQL connected ✓")
		return b, closerFunc(func() error { pool.Close(); return nil }), nil

	case config.BackendMongo:
		log.Println("[jobboard-service] Connecting to MongoDB…")
		client, err := db.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		log.Println("[jobboard-service] MongoDB connected ✓")
		return store.NewMongoBackend(client.Documents(), cfg.StorageKey), closerFunc(func() error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return client.Close(shutdownCtx)
		}), nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
