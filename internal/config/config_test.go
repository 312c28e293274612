package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(constants.EnvStore, "")
	t.Setenv(constants.EnvTimezone, "")
	t.Setenv(constants.EnvDebug, "")
}

func boolPtr(b bool) *bool { return &b }

func TestLoad_Precedence(t *testing.T) {
	file := writeConfig(t, "store: /data/file.db\ntimezone: Europe/Berlin\ndebug: true\n")

	tests := []struct {
		name         string
		env          map[string]string
		overrides    Overrides
		wantStore    string
		wantTimezone string
		wantDebug    bool
	}{
		{
			name:         "file only",
			overrides:    Overrides{ConfigFile: file},
			wantStore:    "/data/file.db",
			wantTimezone: "Europe/Berlin",
			wantDebug:    true,
		},
		{
			name: "env beats file",
			env: map[string]string{
				constants.EnvStore:    "/data/env.json",
				constants.EnvTimezone: "Asia/Kolkata",
				constants.EnvDebug:    "false",
			},
			overrides:    Overrides{ConfigFile: file},
			wantStore:    "/data/env.json",
			wantTimezone: "Asia/Kolkata",
			wantDebug:    false,
		},
		{
			name: "flags beat env",
			env: map[string]string{
				constants.EnvStore:    "/data/env.json",
				constants.EnvTimezone: "Asia/Kolkata",
			},
			overrides: Overrides{
				ConfigFile: file,
				Store:      "redis://localhost:6379/0",
				Timezone:   "UTC",
				Debug:      boolPtr(false),
			},
			wantStore:    "redis://localhost:6379/0",
			wantTimezone: "UTC",
			wantDebug:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.overrides)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Store != tt.wantStore {
				t.Errorf("Store = %q, want %q", cfg.Store, tt.wantStore)
			}
			if cfg.Timezone != tt.wantTimezone {
				t.Errorf("Timezone = %q, want %q", cfg.Timezone, tt.wantTimezone)
			}
			if cfg.Debug != tt.wantDebug {
				t.Errorf("Debug = %v, want %v", cfg.Debug, tt.wantDebug)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if strings.HasPrefix(cfg.Store, "~") {
		t.Errorf("default store path not expanded: %s", cfg.Store)
	}
	if !strings.HasSuffix(cfg.Store, filepath.Join(".config", "lifetrack", "lifetrack.db")) {
		t.Errorf("unexpected default store %s", cfg.Store)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, constants.DefaultTimezone)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		overrides func(t *testing.T) Overrides
		want      string
	}{
		{
			name: "explicit file missing",
			overrides: func(t *testing.T) Overrides {
				return Overrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}
			},
			want: "read config",
		},
		{
			name: "malformed yaml",
			overrides: func(t *testing.T) Overrides {
				return Overrides{ConfigFile: writeConfig(t, "store: [unclosed\n")}
			},
			want: "parse config",
		},
		{
			name: "bad timezone",
			overrides: func(t *testing.T) Overrides {
				return Overrides{ConfigFile: writeConfig(t, "timezone: Mars/Olympus\n")}
			},
			want: "unknown timezone",
		},
		{
			name: "bad debug env",
			env:  map[string]string{constants.EnvDebug: "sometimes"},
			overrides: func(t *testing.T) Overrides {
				return Overrides{ConfigFile: writeConfig(t, "")}
			},
			want: constants.EnvDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.overrides(t))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/data/lifetrack.db", filepath.Join(home, "data", "lifetrack.db")},
		{"~", home},
		{"/abs/path.db", "/abs/path.db"},
		{"postgres://user@host/db", "postgres://user@host/db"},
		{"~user/file", "~user/file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	if got := (Config{Store: "/data/lifetrack.db"}).ConfigDir(); got != "/data" {
		t.Errorf("ConfigDir() = %q, want /data", got)
	}
	for _, store := range []string{":memory:", "postgres", "postgres://u@h/db", "redis://localhost:6379"} {
		if got := (Config{Store: store}).ConfigDir(); !strings.HasSuffix(got, filepath.Join(".config", "lifetrack")) {
			t.Errorf("ConfigDir() for %s = %q", store, got)
		}
	}
}
