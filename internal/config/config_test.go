package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "misconfbench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
manifests_dir: ./corpus
timeout: 90s
scanners:
  trivy:
    bin: /opt/bin/trivy
    extra_args: ["--quiet"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ManifestsDir != "./corpus" {
		t.Errorf("unexpected manifests_dir: %q", cfg.ManifestsDir)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("expected default data_dir, got %q", cfg.DataDir)
	}
	if cfg.ScanTimeout() != 90*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.ScanTimeout())
	}

	sc := cfg.Scanner("trivy")
	if sc.Bin != "/opt/bin/trivy" {
		t.Errorf("unexpected bin: %q", sc.Bin)
	}
	if len(sc.ExtraArgs) != 1 || sc.ExtraArgs[0] != "--quiet" {
		t.Errorf("unexpected extra_args: %v", sc.ExtraArgs)
	}
	if !reflect.DeepEqual(cfg.Scanner("unknown"), ScannerConfig{}) {
		t.Error("expected zero value for unconfigured scanner")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "scanners: [not: a: map")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ManifestsDir != "./manifests" || cfg.DataDir != "./data" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ScanTimeout() != 5*time.Minute {
		t.Errorf("unexpected default timeout: %v", cfg.ScanTimeout())
	}
}

func TestScanTimeout_Invalid(t *testing.T) {
	cfg := &Config{Timeout: "soon"}
	if cfg.ScanTimeout() != 5*time.Minute {
		t.Errorf("expected fallback timeout, got %v", cfg.ScanTimeout())
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Timeout: "not-a-duration",
		Scanners: map[string]ScannerConfig{
			"trivy": {ExtraArgs: []string{"--quiet", ""}},
		},
	}

	errs := Validate(cfg)
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	if !fields["timeout"] {
		t.Error("expected a timeout error")
	}
	if !fields["scanners.trivy.extra_args[1]"] {
		t.Error("expected an extra_args error")
	}
}

func TestValidate_OK(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}
