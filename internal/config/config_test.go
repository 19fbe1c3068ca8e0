package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default paths config
	if cfg.Paths.DocumentRoot != "" {
		t.Errorf("Paths.DocumentRoot = %q, want empty", cfg.Paths.DocumentRoot)
	}
	if cfg.Paths.LogDir != "" {
		t.Errorf("Paths.LogDir = %q, want empty", cfg.Paths.LogDir)
	}
	if cfg.Paths.PrefsFile != "" {
		t.Errorf("Paths.PrefsFile = %q, want empty", cfg.Paths.PrefsFile)
	}

	// Verify default create config
	if cfg.Create.MinIntervalMs != 1000 {
		t.Errorf("Create.MinIntervalMs = %d, want 1000", cfg.Create.MinIntervalMs)
	}

	// Verify default autosave config
	if cfg.Autosave.IdleSeconds != 6 {
		t.Errorf("Autosave.IdleSeconds = %d, want 6", cfg.Autosave.IdleSeconds)
	}
	if cfg.Autosave.TickMs != 200 {
		t.Errorf("Autosave.TickMs = %d, want 200", cfg.Autosave.TickMs)
	}

	// Verify default catalog config
	if !cfg.Catalog.WatchEnabled {
		t.Error("Catalog.WatchEnabled should be true by default")
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups = %d, want 3", cfg.Logging.MaxBackups)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) > 0 {
		t.Errorf("Default() config has validation errors: %v", ValidationErrors(errs))
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := Default()

	if got := cfg.Create.MinInterval(); got != time.Second {
		t.Errorf("Create.MinInterval() = %v, want %v", got, time.Second)
	}
	if got := cfg.Autosave.IdleDuration(); got != 6*time.Second {
		t.Errorf("Autosave.IdleDuration() = %v, want %v", got, 6*time.Second)
	}
	if got := cfg.Autosave.TickInterval(); got != 200*time.Millisecond {
		t.Errorf("Autosave.TickInterval() = %v, want %v", got, 200*time.Millisecond)
	}
}

func TestResolvePathDefaults(t *testing.T) {
	p := PathsConfig{}
	home := filepath.Join("/", "opt", "papyru2")

	if got, want := p.ResolveDocumentRoot(home), filepath.Join(home, "data", "user_document"); got != want {
		t.Errorf("ResolveDocumentRoot = %q, want %q", got, want)
	}
	if got, want := p.ResolveLogDir(home), filepath.Join(home, "log"); got != want {
		t.Errorf("ResolveLogDir = %q, want %q", got, want)
	}
	if got, want := p.ResolvePrefsFile(home), filepath.Join(home, "conf", "prefs.toml"); got != want {
		t.Errorf("ResolvePrefsFile = %q, want %q", got, want)
	}
}

func TestResolvePathOverrides(t *testing.T) {
	p := PathsConfig{
		DocumentRoot: "/custom/docs",
		LogDir:       "/custom/log",
		PrefsFile:    "/custom/prefs.toml",
	}

	if got := p.ResolveDocumentRoot("/home"); got != "/custom/docs" {
		t.Errorf("ResolveDocumentRoot = %q, want %q", got, "/custom/docs")
	}
	if got := p.ResolveLogDir("/home"); got != "/custom/log" {
		t.Errorf("ResolveLogDir = %q, want %q", got, "/custom/log")
	}
	if got := p.ResolvePrefsFile("/home"); got != "/custom/prefs.toml" {
		t.Errorf("ResolvePrefsFile = %q, want %q", got, "/custom/prefs.toml")
	}
}

func TestLoadUsesViperDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Create.MinIntervalMs != 1000 {
		t.Errorf("Create.MinIntervalMs = %d, want 1000", cfg.Create.MinIntervalMs)
	}
	if cfg.Autosave.IdleSeconds != 6 {
		t.Errorf("Autosave.IdleSeconds = %d, want 6", cfg.Autosave.IdleSeconds)
	}
}

func TestLoadHonorsOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("autosave.idle_seconds", 12)
	viper.Set("paths.document_root", "/notes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Autosave.IdleSeconds != 12 {
		t.Errorf("Autosave.IdleSeconds = %d, want 12", cfg.Autosave.IdleSeconds)
	}
	if cfg.Paths.DocumentRoot != "/notes" {
		t.Errorf("Paths.DocumentRoot = %q, want %q", cfg.Paths.DocumentRoot, "/notes")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("autosave.idle_seconds", 0)

	if _, err := Load(); err == nil {
		t.Error("Load() accepted idle_seconds = 0")
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("logging.level", "shout")

	cfg := Get()
	if cfg.Logging.Level != "info" {
		t.Errorf("Get() fallback Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}
