package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cmlayout/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "optimize:a"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "optimize:a", []byte("15,,,,,?"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "optimize:a")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "15,,,,,?" {
		t.Errorf("Get = %q, want %q", data, "15,,,,,?")
	}

	if err := c.Delete(ctx, "optimize:a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "optimize:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "optimize:a"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCache_Expired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCache_Corrupt(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
	lastType           string
}

func (h *countingHooks) OnCacheHit(_ context.Context, kt string)  { h.hits++; h.lastType = kt }
func (h *countingHooks) OnCacheMiss(_ context.Context, kt string) { h.misses++; h.lastType = kt }
func (h *countingHooks) OnCacheSet(_ context.Context, kt string, _ int) {
	h.sets++
	h.lastType = kt
}

func TestFileCache_Hooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_, _, _ = c.Get(ctx, "artifact:x")
	_ = c.Set(ctx, "artifact:x", []byte("svg"), 0)
	_, _, _ = c.Get(ctx, "artifact:x")

	if hooks.misses != 1 || hooks.sets != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %d misses, %d sets, %d hits; want 1 each", hooks.misses, hooks.sets, hooks.hits)
	}
	if hooks.lastType != "artifact" {
		t.Errorf("key type = %q, want %q", hooks.lastType, "artifact")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
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

	ok1 := k.OptimizeKey("abc", OptimizeKeyOpts{Iterations: 1000, Seed: 1})
	ok2 := k.OptimizeKey("abc", OptimizeKeyOpts{Iterations: 1000, Seed: 2})
	if ok1 == ok2 {
		t.Error("Different OptimizeKeyOpts should produce different keys")
	}
	if ok1 != k.OptimizeKey("abc", OptimizeKeyOpts{Iterations: 1000, Seed: 1}) {
		t.Error("OptimizeKey should be deterministic")
	}
	if !strings.HasPrefix(ok1, "optimize:") {
		t.Errorf("OptimizeKey prefix unexpected: %s", ok1)
	}

	ak1 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if keyType(ak1) != "artifact" {
		t.Errorf("keyType(%s) = %q", ak1, keyType(ak1))
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v2:")
	key := scoped.OptimizeKey("abc", OptimizeKeyOpts{})
	if !strings.HasPrefix(key, "v2:optimize:") {
		t.Errorf("ScopedKeyer OptimizeKey should be prefixed: %s", key)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got, want := nilInner.ArtifactKey("h", ArtifactKeyOpts{}), "p:"+NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{}); got != want {
		t.Errorf("nil inner key = %s, want %s", got, want)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"optimize:abc": "optimize",
		"v2:artifact":  "v2",
		"plain":        "other",
		":leading":     "other",
	}
	for key, want := range tests {
		if got := keyType(key); got != want {
			t.Errorf("keyType(%q) = %q, want %q", key, got, want)
		}
	}
}
