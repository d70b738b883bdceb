package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvConfig, "/from/env.yaml")
		assertEqual(t, "path", ResolvePath("/explicit.yaml"), "/explicit.yaml")
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvConfig, "/from/env.yaml")
		assertEqual(t, "path", ResolvePath(""), "/from/env.yaml")
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		assertEqual(t, "path", ResolvePath(""), filepath.Join(home, ".grin.yaml"))
	})
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")

	t.Run("no file anywhere", func(t *testing.T) {
		cfg, path, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		assertEqual(t, "path", path, filepath.Join(home, FileName))
		assertEqual(t, "config", cfg, DefaultConfig())
	})

	t.Run("home file", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(home, FileName), []byte("after_context: 7\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, _, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		assertEqual(t, "AfterContext", cfg.AfterContext, 7)
	})

	t.Run("explicit missing file", func(t *testing.T) {
		if _, _, err := Load(filepath.Join(home, "missing.yaml")); err == nil {
			t.Error("Load() should fail when an explicit config file is missing")
		}
	})
}
