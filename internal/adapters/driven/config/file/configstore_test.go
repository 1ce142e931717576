package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pathway", "config.toml"), store.Path())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0o600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://pathway.example.com"))
	require.NoError(t, store.Set("api.rate_limit", 7))
	require.NoError(t, store.Set("ui.compact", true))
	require.NoError(t, store.Set("auth.scopes", []string{"openid", "email"}))

	assert.Equal(t, "https://pathway.example.com", store.GetString("api.base_url"))
	assert.Equal(t, 7, store.GetInt("api.rate_limit"))
	assert.True(t, store.GetBool("ui.compact"))
	assert.Equal(t, []string{"openid", "email"}, store.GetStringSlice("auth.scopes"))

	// Wrong types and missing keys fall back to zero values.
	assert.Empty(t, store.GetString("api.rate_limit"))
	assert.Zero(t, store.GetInt("api.base_url"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "http://localhost:9000"))
	require.NoError(t, store.Set("api.rate_limit", 3))
	require.NoError(t, store.Set("auth.scopes", []string{"openid"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "base_url")
	assert.Contains(t, string(raw), "http://localhost:9000")

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", reopened.GetString("api.base_url"))
	assert.Equal(t, 3, reopened.GetInt("api.rate_limit"), "TOML integers decode as int64")
	assert.Equal(t, []string{"openid"}, reopened.GetStringSlice("auth.scopes"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("auth.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Load_MissingFileEmptiesStore(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("export.dir", "/tmp/out"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())

	_, ok := store.Get("export.dir")
	assert.False(t, ok)
}

func TestNest(t *testing.T) {
	nested := nest(map[string]any{
		"api.base_url":   "x",
		"api.rate_limit": 5,
		"top":            true,
	})

	api, ok := nested["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x", api["base_url"])
	assert.Equal(t, 5, api["rate_limit"])
	assert.Equal(t, true, nested["top"])

	flat := make(map[string]any)
	flatten(nested, "", flat)
	assert.Len(t, flat, 3)
	assert.Equal(t, "x", flat["api.base_url"])
}

func TestConfigStore_Watch_ReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	store.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { changes.Add(1) })
	}()

	content := []byte("[api]\nbase_url = 'https://edited.example.com'\n")
	require.Eventually(t, func() bool {
		// Keep writing until the watcher is registered and has reloaded.
		_ = os.WriteFile(store.Path(), content, 0o600)
		return changes.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	assert.Equal(t, "https://edited.example.com", store.GetString("api.base_url"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
