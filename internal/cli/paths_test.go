package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name   string
		env    string
		value  string
		lookup func() (string, error)
		want   string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/srv/cache", cacheDir, filepath.Join("/srv/cache", appName)},
		{"config default", "XDG_CONFIG_HOME", "", configPath, filepath.Join(home, ".config", appName, "config.toml")},
		{"config xdg", "XDG_CONFIG_HOME", "/srv/etc", configPath, filepath.Join("/srv/etc", appName, "config.toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			got, err := tt.lookup()
			if err != nil {
				t.Fatalf("lookup error: %v", err)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}
