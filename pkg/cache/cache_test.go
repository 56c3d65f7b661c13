package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/observability"
)

// testContract exercises the behavior every backend must share.
func testContract(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		data, hit, err := c.Get(ctx, "missing")
		if err != nil || hit || data != nil {
			t.Errorf("Get(missing) = %q, %v, %v; want miss", data, hit, err)
		}
	})

	t.Run("set get", func(t *testing.T) {
		if err := c.Set(ctx, "layout:abc", []byte("payload"), time.Hour); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data, hit, err := c.Get(ctx, "layout:abc")
		if err != nil || !hit {
			t.Fatalf("Get = hit %v, err %v", hit, err)
		}
		if !bytes.Equal(data, []byte("payload")) {
			t.Errorf("Get = %q, want payload", data)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		_ = c.Set(ctx, "k", []byte("one"), 0)
		_ = c.Set(ctx, "k", []byte("two"), 0)
		data, hit, _ := c.Get(ctx, "k")
		if !hit || string(data) != "two" {
			t.Errorf("Get after overwrite = %q, %v", data, hit)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = c.Set(ctx, "gone", []byte("x"), 0)
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("entry still present after Delete")
		}
		if err := c.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete(missing) = %v, want nil", err)
		}
	})
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	testContract(t, c)
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testContract(t, c)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("y"), 0)

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after lazy removal", c.Len())
	}

	_ = c.Set(ctx, "a", []byte("1"), time.Second)
	_ = c.Set(ctx, "b", []byte("2"), time.Second)
	now = now.Add(time.Minute)
	if n := c.Prune(); n != 2 {
		t.Errorf("Prune() = %d, want 2", n)
	}
}

func TestMemoryCacheSweepsOnSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 500; i++ {
		_ = c.Set(ctx, fmt.Sprintf("old:%d", i), []byte("x"), time.Minute)
	}
	_ = c.Set(ctx, "keep", []byte("y"), 0)

	now = now.Add(time.Hour)
	for i := 0; i < 500; i++ {
		_ = c.Set(ctx, fmt.Sprintf("new:%d", i), []byte("x"), time.Minute)
	}

	if got, want := c.Len(), 501; got != want {
		t.Errorf("Len() = %d, want %d after expired keys were swept", got, want)
	}
	if _, hit, _ := c.Get(ctx, "keep"); !hit {
		t.Error("entry without ttl was swept")
	}
}

func TestMemoryCacheSweepInterval(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "a", []byte("1"), time.Second)
	now = now.Add(2 * time.Second)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 before the sweep interval elapses", c.Len())
	}

	now = now.Add(memorySweepInterval)
	_ = c.Set(ctx, "c", []byte("3"), time.Hour)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after the sweep", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expired entry survived the sweep")
	}
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'X'

	got, _, _ := c.Get(ctx, "k")
	got[1] = 'Y'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value aliased caller memory: %q", again)
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, key, []byte{byte(j)}, time.Hour)
				_, _, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 8 {
		t.Errorf("Len() = %d, want 8", c.Len())
	}
}

func TestFileCacheExpiryAndCorruption(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}

	if err := os.MkdirAll(filepath.Dir(c.path("bad")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("root directory removed: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "chord", Width: 800})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "nodelink", Width: 800})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{VizType: "chord", Width: 800}) {
		t.Error("LayoutKey should be deterministic")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey = %q, want layout: prefix", lk1)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "simple"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey = %q, want artifact: prefix", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:7:")
	plain := NewDefaultKeyer()

	opts := LayoutKeyOpts{VizType: "chord"}
	if got, want := scoped.LayoutKey("h", opts), "tenant:7:"+plain.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey = %q, want %q", got, want)
	}
	aopts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("h", aopts), "tenant:7:"+plain.ArtifactKey("h", aopts); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(nilInner.LayoutKey("h", opts), "p:layout:") {
		t.Error("nil inner keyer should fall back to DefaultKeyer")
	}
}

func TestKeyType(t *testing.T) {
	k := NewScopedKeyer(nil, "env:")
	tests := []struct {
		key  string
		want string
	}{
		{k.LayoutKey("h", LayoutKeyOpts{}), "layout"},
		{k.ArtifactKey("h", ArtifactKeyOpts{}), "artifact"},
		{"something", "other"},
	}
	for _, tt := range tests {
		if got := KeyType(tt.key); got != tt.want {
			t.Errorf("KeyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

type countingHooks struct {
	mu                 sync.Mutex
	hits, misses, sets map[string]int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingHooks) OnCacheHit(_ context.Context, k string) {
	h.mu.Lock()
	h.hits[k]++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(_ context.Context, k string) {
	h.mu.Lock()
	h.misses[k]++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheSet(_ context.Context, k string, _ int) {
	h.mu.Lock()
	h.sets[k]++
	h.mu.Unlock()
}

func TestInstrumentedReportsHooks(t *testing.T) {
	hooks := newCountingHooks()
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	c := NewInstrumented(NewMemoryCache())
	key := NewDefaultKeyer().LayoutKey("h", LayoutKeyOpts{})

	_, _, _ = c.Get(ctx, key)
	_ = c.Set(ctx, key, []byte("x"), 0)
	_, _, _ = c.Get(ctx, key)

	if hooks.misses["layout"] != 1 || hooks.hits["layout"] != 1 || hooks.sets["layout"] != 1 {
		t.Errorf("hooks = hits %v misses %v sets %v", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	testContract(t, c)

	c, err = Open(ctx, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(default file): %v", err)
	}
	if _, ok := c.(*Instrumented).Cache.(*FileCache); !ok {
		t.Errorf("empty backend should open a FileCache, got %T", c.(*Instrumented).Cache)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"file without dir", Options{Backend: BackendFile}},
		{"redis without addr", Options{Backend: BackendRedis}},
		{"mongo without uri", Options{Backend: BackendMongo, MongoDatabase: "db"}},
		{"unknown", Options{Backend: "memcached"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(ctx, tt.opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Open() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestOptionsString(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{Dir: "/tmp/c"}, "file(/tmp/c)"},
		{Options{Backend: BackendRedis, RedisAddr: "localhost:6379"}, "redis(localhost:6379)"},
		{Options{Backend: BackendMongo, MongoDatabase: "chordwheel"}, "mongo(chordwheel)"},
		{Options{Backend: BackendNone}, "none"},
	}
	for _, tt := range tests {
		if got := tt.opts.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("localhost:6380")
	if err != nil || opts.Addr != "localhost:6380" {
		t.Errorf("redisOptions(host:port) = %+v, %v", opts, err)
	}
	opts, err = redisOptions("redis://:secret@cache.internal:6379/2")
	if err != nil {
		t.Fatalf("redisOptions(url): %v", err)
	}
	if opts.Addr != "cache.internal:6379" || opts.DB != 2 || opts.Password != "secret" {
		t.Errorf("redisOptions(url) = addr %q db %d", opts.Addr, opts.DB)
	}
}
