package core

import (
	"strings"
	"testing"

	"github.com/noa-physics/dcsdata/internal/artifact"
	"github.com/noa-physics/dcsdata/internal/tensorio"
)

func TestCacheConfig_Validate(t *testing.T) {
	t.Parallel()
	validConfig := func() CacheConfig {
		return CacheConfig{
			DataDir: "noa-test-data/pms",
			Loader:  tensorio.NewExtLoader(),
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := map[string]struct {
		modify       func(c *CacheConfig)
		wantContains string
	}{
		"empty data dir": {
			modify:       func(c *CacheConfig) { c.DataDir = "" },
			wantContains: "data directory",
		},
		"nil loader": {
			modify:       func(c *CacheConfig) { c.Loader = nil },
			wantContains: "loader",
		},
		"negative sync concurrency": {
			modify:       func(c *CacheConfig) { c.SyncConcurrency = -2 },
			wantContains: "sync concurrency",
		},
		"unknown path override": {
			modify:       func(c *CacheConfig) { c.Paths = map[artifact.Name]string{"pumas_gravity": "/x.pt"} },
			wantContains: "pumas_gravity",
		},
		"empty path override": {
			modify:       func(c *CacheConfig) { c.Paths = map[artifact.Name]string{artifact.PumasMu0: ""} },
			wantContains: "pumas_mu0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantContains) {
				t.Errorf("error %q does not contain %q", err, tc.wantContains)
			}
		})
	}

	t.Run("reports every violation", func(t *testing.T) {
		t.Parallel()
		err := CacheConfig{SyncConcurrency: -1}.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		for _, want := range []string{"data directory", "loader", "sync concurrency"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not contain %q", err, want)
			}
		}
	})
}

func TestNewCacheWithConfig_PanicsOnInvalid(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "dcsdata: invalid cache config") {
			t.Errorf("panic = %v, want dcsdata: invalid cache config prefix", r)
		}
	}()
	NewCacheWithConfig(CacheConfig{})
}
