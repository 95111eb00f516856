package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testSettings struct {
	Engine struct {
		StackSize    uint32 `koanf:"stack_size"`
		MaxMatchData uint32 `koanf:"max_match_data"`
	} `koanf:"engine"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	Soak struct {
		Duration time.Duration `koanf:"duration"`
	} `koanf:"soak"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scancore.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/tmp/x.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.FilePath() != "/tmp/x.yaml" {
		t.Errorf("FilePath() = %q, want %q", l.FilePath(), "/tmp/x.yaml")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"SCANCORE_ENGINE_STACK_SIZE", "engine.stack_size"},
		{"SCANCORE_LOG_LEVEL", "log.level"},
		{"SCANCORE_SOAK_MASTER_KEY", "soak.master_key"},
		{"SCANCORE_DEBUG", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := envKey("SCANCORE_", tt.name); got != tt.want {
				t.Errorf("envKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, "engine:\n  stack_size: 65536\nlog:\n  level: debug\n")

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := l.GetInt("engine.stack_size"); got != 65536 {
		t.Errorf("engine.stack_size = %d, want 65536", got)
	}
	if got := l.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q, want %q", got, "debug")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/scancore.yaml"); err == nil {
		t.Error("LoadFile() expected error for missing file")
	}
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") error = %v, want nil", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("SCANCORE_ENGINE_STACK_SIZE", "131072")
	t.Setenv("SCANCORE_LOG_LEVEL", "warn")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := l.GetString("engine.stack_size"); got != "131072" {
		t.Errorf("engine.stack_size = %q, want %q", got, "131072")
	}
	if got := l.GetString("log.level"); got != "warn" {
		t.Errorf("log.level = %q, want %q", got, "warn")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	err := l.LoadMap(map[string]any{
		"engine.max_match_data": 1024,
		"log":                   map[string]any{"level": "error"},
	})
	if err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if got := l.GetInt("engine.max_match_data"); got != 1024 {
		t.Errorf("engine.max_match_data = %d, want 1024", got)
	}
	if got := l.GetString("log.level"); got != "error" {
		t.Errorf("log.level = %q, want %q", got, "error")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, "engine:\n  stack_size: 65536\n  max_match_data: 256\nsoak:\n  duration: 5s\n")
	t.Setenv("SCANCORE_ENGINE_STACK_SIZE", "131072")

	var s testSettings
	s.Engine.MaxMatchData = 512
	s.Log.Level = "info"

	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&s); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load()")
	}

	if s.Engine.StackSize != 131072 {
		t.Errorf("StackSize = %d, want env value 131072", s.Engine.StackSize)
	}
	if s.Engine.MaxMatchData != 256 {
		t.Errorf("MaxMatchData = %d, want file value 256", s.Engine.MaxMatchData)
	}
	if s.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want untouched default %q", s.Log.Level, "info")
	}
	if s.Soak.Duration != 5*time.Second {
		t.Errorf("Soak.Duration = %v, want 5s", s.Soak.Duration)
	}
}

func TestLoader_Keys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"a.b": 1, "c": 2}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	keys := l.Keys()
	if len(keys) != 2 {
		t.Errorf("Keys() = %v, want 2 keys", keys)
	}
	if len(l.All()) != 2 {
		t.Errorf("All() len = %d, want 2", len(l.All()))
	}
}
