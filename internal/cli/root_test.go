package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/misconfbench/misconfbench/internal/scanner"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3-test")
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1.2.3-test") {
		t.Errorf("version output missing version string: %q", out)
	}
}

func TestScannersCommand(t *testing.T) {
	out, err := runCommand(t, "scanners")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "trivy") {
		t.Errorf("scanners output missing trivy: %q", out)
	}
}

func TestParseCommand(t *testing.T) {
	raw := `{"Results":[{"Target":"KSV017-test.yaml","Misconfigurations":[
		{"ID":"KSV017","Title":"t","Status":"FAIL","Severity":"HIGH","Description":"d","Message":"m"}
	]}]}`
	rawPath := filepath.Join(t.TempDir(), "trivy.json")
	if err := os.WriteFile(rawPath, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "parse", "trivy", rawPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []scanner.CheckResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].CheckID != "KSV017" || results[0].Status != scanner.StatusAlert {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestParseCommand_UnknownScanner(t *testing.T) {
	rawPath := filepath.Join(t.TempDir(), "raw.json")
	if err := os.WriteFile(rawPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "parse", "kubescape", rawPath); err == nil {
		t.Error("expected error for unregistered scanner")
	}
}

func TestParseCommand_DisabledScanner(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "misconfbench.yaml")
	cfg := "scanners:\n  trivy:\n    disabled: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	rawPath := filepath.Join(dir, "raw.json")
	if err := os.WriteFile(rawPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCommand(t, "parse", "--config", cfgPath, "trivy", rawPath)
	if err == nil {
		t.Error("expected error when the scanner is disabled")
	}

	// Reset the persistent flag for subsequent tests.
	configPath = ""
}
