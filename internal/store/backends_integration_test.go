package store_test

// Integration tests for the remote backends. Each one is skipped unless its
// connection variable is set, e.g.
//
//	REDIS_URL=redis://localhost:6379/0 go test ./internal/store/...

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobmate/jobboard-service/internal/db"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

func requireEnv(t *testing.T, name string) string {
	t.Helper()
	v := os.Getenv(name)
	if v == "" {
		t.Skipf("%s not set, skipping integration test", name)
	}
	return v
}

// exerciseBackend runs the same contract against any Backend constructor.
// newBackend must return independent handles onto the same stored key.
func exerciseBackend(t *testing.T, newBackend func() store.Backend) {
	ctx := context.Background()

	if _, err := newBackend().Load(ctx); !errors.Is(err, store.ErrNoDocument) {
		t.Fatalf("Load on fresh key = %v, want ErrNoDocument", err)
	}

	s := store.New(newBackend())
	created, err := s.Init(ctx)
	if err != nil || !created {
		t.Fatalf("Init = (%v, %v)", created, err)
	}
	if created, _ := store.New(newBackend()).Init(ctx); created {
		t.Error("second Init created a document")
	}

	job, err := s.Jobs.Add(ctx, model.Job{Title: "Go Developer", Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := store.New(newBackend()).Jobs.Get(ctx, job.ID)
	if err != nil || got.Title != "Go Developer" {
		t.Errorf("Get via second handle = (%+v, %v)", got, err)
	}

	stale, err := newBackend().Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Jobs.Add(ctx, model.Job{Title: "second"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := newBackend().Save(ctx, stale); !errors.Is(err, store.ErrVersionConflict) {
		t.Errorf("stale Save = %v, want ErrVersionConflict", err)
	}

	// Several stores over separate handles must not lose increments.
	const writers, perWriter = 4, 5
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws := store.New(newBackend(), store.WithMaxRetries(100))
			for i := 0; i < perWriter; i++ {
				if _, err := ws.Jobs.Update(ctx, job.ID, func(j *model.Job) { j.Views++ }); err != nil {
					t.Errorf("concurrent Update: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	got, _ = s.Jobs.Get(ctx, job.ID)
	if got.Views != writers*perWriter {
		t.Errorf("Views = %d, want %d", got.Views, writers*perWriter)
	}
}

func TestRedisBackend(t *testing.T) {
	url := requireEnv(t, "REDIS_URL")
	ctx := context.Background()
	rdb, err := db.NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rdb.Close()

	key := "test:" + store.NewID()
	t.Cleanup(func() { rdb.Del(context.Background(), key) })
	exerciseBackend(t, func() store.Backend { return store.NewRedisBackend(rdb, key) })
}

func TestPostgresBackend(t *testing.T) {
	url := requireEnv(t, "DATABASE_URL")
	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, url)
	if err != nil {
		t.Fatalf("NewPostgresPool: %v", err)
	}
	defer pool.Close()

	key := "test:" + store.NewID()
	if err := store.NewPostgresBackend(pool, key).EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	t.Cleanup(func() { pool.Exec(context.Background(), `DELETE FROM documents WHERE key = $1`, key) })
	exerciseBackend(t, func() store.Backend { return store.NewPostgresBackend(pool, key) })
}

func TestMongoBackend(t *testing.T) {
	uri := requireEnv(t, "MONGODB_URI")
	ctx := context.Background()
	client, err := db.NewMongoClient(ctx, uri, "jobboard_test")
	if err != nil {
		t.Fatalf("NewMongoClient: %v", err)
	}
	defer client.Close(context.Background())

	key := "test:" + store.NewID()
	coll := client.Documents()
	t.Cleanup(func() { coll.DeleteOne(context.Background(), bson.M{"_id": key}) })
	exerciseBackend(t, func() store.Backend { return store.NewMongoBackend(coll, key) })
}
