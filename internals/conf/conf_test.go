package conf

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Oudwins/seedance/internals/testutil"
)

func TestConfigDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.Model != DefaultModel {
		t.Fatalf("expected default model, got %q", got.Defaults.Model)
	}
	if got.Defaults.Resolution != "720p" || got.Defaults.Ratio != "16:9" || got.Defaults.Duration != 5 {
		t.Fatalf("unexpected defaults %+v", got.Defaults)
	}
	if got.Defaults.ServiceTier != "default" {
		t.Fatalf("expected default service tier, got %q", got.Defaults.ServiceTier)
	}
	if got.Watch.PollIntervalDuration() != 5*time.Second || got.Watch.TimeoutDuration() != 10*time.Minute {
		t.Fatalf("unexpected watch config %+v", got.Watch)
	}
	if got.Request.TimeoutDuration() != 60*time.Second {
		t.Fatalf("unexpected request timeout %q", got.Request.Timeout)
	}
	if got.Output.Dir != "./output" {
		t.Fatalf("expected ./output, got %q", got.Output.Dir)
	}
}

func TestConfigFileOverrides(t *testing.T) {
	path := testutil.WriteFile(t, "config.json", []byte(`{
		"defaults": {"model": "seedance-2-0-260128", "duration": 8, "ratio": "9:16"},
		"watch": {"poll_interval": "2s"},
		"output": {"dir": "~/videos"}
	}`))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.Model != "seedance-2-0-260128" || got.Defaults.Duration != 8 || got.Defaults.Ratio != "9:16" {
		t.Fatalf("expected overrides, got %+v", got.Defaults)
	}
	if got.Defaults.Resolution != "720p" {
		t.Fatalf("expected untouched fields to keep defaults, got %q", got.Defaults.Resolution)
	}
	if got.Watch.PollIntervalDuration() != 2*time.Second || got.Watch.TimeoutDuration() != 10*time.Minute {
		t.Fatalf("unexpected watch config %+v", got.Watch)
	}
	if strings.HasPrefix(got.Output.Dir, "~") || !strings.HasSuffix(got.Output.Dir, "videos") {
		t.Fatalf("expected expanded output dir, got %q", got.Output.Dir)
	}
}

func TestConfigEmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, "config.json", []byte("  \n"))
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.Model != DefaultModel {
		t.Fatalf("expected defaults, got %+v", got.Defaults)
	}
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"duration":   `{"defaults": {"duration": 20}}`,
		"resolution": `{"defaults": {"resolution": "4k"}}`,
		"tier":       `{"defaults": {"service_tier": "turbo"}}`,
		"interval":   `{"watch": {"poll_interval": "soon"}}`,
		"json":       `{"defaults":`,
	}
	for name, body := range tests {
		path := testutil.WriteFile(t, "config.json", []byte(body))
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if got != filepath.Join(home, ".seedance", "config.json") {
		t.Fatalf("unexpected path %q", got)
	}
}
