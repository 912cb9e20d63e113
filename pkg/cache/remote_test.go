package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// exerciseBackend runs the common Cache contract against a live backend.
func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(new key) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Set(ctx, key, []byte("updated"), time.Minute); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	if data, _, _ := c.Get(ctx, key); string(data) != "updated" {
		t.Errorf("overwrite not visible: %q", data)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("QRDOTS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("QRDOTS_TEST_REDIS_URL not set")
	}
	c, err := Open(context.Background(), Config{Backend: BackendRedis, URL: url, Prefix: "qrdots-test:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	exerciseBackend(t, c)

	rc := c.(*RedisCache)
	ctx := context.Background()
	if err := rc.Set(ctx, "clear-me", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := rc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := rc.Get(ctx, "clear-me"); hit {
		t.Error("Clear should remove prefixed keys")
	}
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("QRDOTS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("QRDOTS_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "qrdots_test", "cache_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	defer c.coll.Drop(context.Background())

	exerciseBackend(t, c)

	ctx := context.Background()
	if err := c.Set(ctx, "expired", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired document should miss before the TTL monitor runs")
	}
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost"); err == nil {
		t.Error("non-redis URL should fail to parse")
	}
}
