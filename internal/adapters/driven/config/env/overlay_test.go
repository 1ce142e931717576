package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/storage/memory"
)

func TestOverlay_EnvironmentWins(t *testing.T) {
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("api.base_url", "http://from-file"))
	t.Setenv("PATHWAY_API_BASE_URL", "https://from-env")

	o := NewOverlay(base, DefaultBindings())

	assert.Equal(t, "https://from-env", o.GetString("api.base_url"))
	val, ok := o.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "https://from-env", val)
}

func TestOverlay_FallsBackToBase(t *testing.T) {
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("api.base_url", "http://from-file"))
	require.NoError(t, base.Set("api.rate_limit", 9))
	t.Setenv("PATHWAY_API_BASE_URL", "   ")

	o := NewOverlay(base, DefaultBindings())

	assert.Equal(t, "http://from-file", o.GetString("api.base_url"), "blank env values are ignored")
	assert.Equal(t, 9, o.GetInt("api.rate_limit"), "unbound keys read the base store")
}

func TestOverlay_TypedConversions(t *testing.T) {
	env := map[string]string{
		"RATE":   "12",
		"DEBUG":  "true",
		"SCOPES": "openid, email,,profile",
		"BAD":    "twelve",
	}
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("bad", 4))

	o := NewOverlay(base, map[string]string{
		"rate": "RATE", "debug": "DEBUG", "scopes": "SCOPES", "bad": "BAD",
	})
	o.lookup = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	assert.Equal(t, 12, o.GetInt("rate"))
	assert.True(t, o.GetBool("debug"))
	assert.Equal(t, []string{"openid", "email", "profile"}, o.GetStringSlice("scopes"))
	assert.Equal(t, 4, o.GetInt("bad"), "unparseable env values fall back to the base store")
}

func TestOverlay_WritesGoToBase(t *testing.T) {
	base := memory.NewConfigStore()
	o := NewOverlay(base, DefaultBindings())

	require.NoError(t, o.Set("export.dir", "/tmp/plans"))

	assert.Equal(t, "/tmp/plans", base.GetString("export.dir"))
	assert.Equal(t, base.Path(), o.Path())
	assert.NoError(t, o.Save())
	assert.NoError(t, o.Load())
}

func TestOverlay_WatchWithoutWatchableBase(t *testing.T) {
	o := NewOverlay(memory.NewConfigStore(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, o.Watch(ctx, nil))
}
