package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/xui/pkg/cache"
)

func TestCacheConfigDir(t *testing.T) {
	dir, err := CacheConfig{Dir: "/srv/xui"}.dir()
	if err != nil || dir != "/srv/xui" {
		t.Errorf("dir() = %q, %v, want the configured directory", dir, err)
	}

	base, err := os.UserCacheDir()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	dir, err = CacheConfig{}.dir()
	if err != nil {
		t.Fatalf("dir() error: %v", err)
	}
	if want := filepath.Join(base, appName); dir != want {
		t.Errorf("dir() = %q, want %q", dir, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := range 3 {
		if err := fc.Set(ctx, fmt.Sprintf("snapshot:%d", i), []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	config := writeFile(t, dir, "xui.toml", fmt.Sprintf("[cache]\ndir = %q\n", fc.Dir()))
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", config, "cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	for i := range 3 {
		if _, hit, _ := fc.Get(ctx, fmt.Sprintf("snapshot:%d", i)); hit {
			t.Errorf("entry %d survived cache clear", i)
		}
	}
}

func TestNewRunnerFallsBackWithoutCache(t *testing.T) {
	// A regular file where the cache directory should be.
	blocker := writeFile(t, t.TempDir(), "cache", "")

	c := New(os.Stderr, LogInfo)
	c.config.Cache = CacheConfig{Dir: filepath.Join(blocker, "xui")}
	runner, err := c.newRunner(false)
	if err != nil {
		t.Fatalf("newRunner() error: %v", err)
	}
	defer runner.Close()

	if _, ok := runner.Cache.(*cache.NullCache); !ok {
		t.Errorf("runner cache = %T, want *cache.NullCache", runner.Cache)
	}
}
