// Package env layers environment variables over another config store.
package env

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

// Ensure Overlay implements the interfaces.
var (
	_ driven.ConfigStore   = (*Overlay)(nil)
	_ driven.ConfigWatcher = (*Overlay)(nil)
)

// DefaultBindings maps config keys to the environment variables that
// override them.
func DefaultBindings() map[string]string {
	return map[string]string{
		"api.base_url":       "PATHWAY_API_BASE_URL",
		"auth.token":         "PATHWAY_TOKEN",
		"auth.client_id":     "PATHWAY_CLIENT_ID",
		"auth.client_secret": "PATHWAY_CLIENT_SECRET",
	}
}

// Overlay reads bound keys from the environment first and falls back to
// the base store. Writes always go to the base store.
type Overlay struct {
	base     driven.ConfigStore
	bindings map[string]string
	lookup   func(string) (string, bool)
}

// NewOverlay wraps base with the given key to variable bindings.
func NewOverlay(base driven.ConfigStore, bindings map[string]string) *Overlay {
	return &Overlay{
		base:     base,
		bindings: bindings,
		lookup:   os.LookupEnv,
	}
}

func (o *Overlay) env(key string) (string, bool) {
	name, ok := o.bindings[key]
	if !ok {
		return "", false
	}
	val, ok := o.lookup(name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}

// Get retrieves a configuration value by key.
func (o *Overlay) Get(key string) (any, bool) {
	if val, ok := o.env(key); ok {
		return val, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	if val, ok := o.env(key); ok {
		return val
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (o *Overlay) GetInt(key string) int {
	if val, ok := o.env(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return o.base.GetInt(key)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	if val, ok := o.env(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return o.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
// Environment values are comma separated.
func (o *Overlay) GetStringSlice(key string) []string {
	if val, ok := o.env(key); ok {
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return o.base.GetStringSlice(key)
}

// Set stores a value in the base store.
func (o *Overlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Save persists the base store.
func (o *Overlay) Save() error {
	return o.base.Save()
}

// Load reloads the base store.
func (o *Overlay) Load() error {
	return o.base.Load()
}

// Path returns the base store's path.
func (o *Overlay) Path() string {
	return o.base.Path()
}

// Watch delegates to the base store when it can be watched, otherwise it
// blocks until ctx is done.
func (o *Overlay) Watch(ctx context.Context, onChange func()) error {
	if w, ok := o.base.(driven.ConfigWatcher); ok {
		return w.Watch(ctx, onChange)
	}
	<-ctx.Done()
	return nil
}
