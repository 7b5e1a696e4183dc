// Package trivy adapts the output of Trivy's `config` scan to the
// normalized check results consumed by the benchmark harness.
package trivy

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/misconfbench/misconfbench/internal/scanner"
)

// Name is the adapter's registry key.
const Name = "trivy"

// failStatus is Trivy's fail sentinel. Every other status string,
// including "PASS" and anything unrecognized, counts as a pass.
const failStatus = "FAIL"

// checkIDPattern recovers the benchmark check id from an object name:
// the leading word run together with its digit runs, so variant
// manifests group under one id ("KSV017-test" -> "KSV017",
// "POD-001-2-extra" -> "POD-001-2"). Names without a digit run carry no
// id.
var checkIDPattern = regexp.MustCompile(`^\w+?(?:-?\d+)+`)

// Scanner implements scanner.Adapter for Trivy.
type Scanner struct {
	bin       string
	extraArgs []string
	log       *zap.Logger
}

// Option configures the adapter.
type Option func(*Scanner)

// WithBinary overrides the trivy binary to invoke.
func WithBinary(bin string) Option {
	return func(s *Scanner) {
		if bin != "" {
			s.bin = bin
		}
	}
}

// WithExtraArgs appends arguments to the scan command.
func WithExtraArgs(args ...string) Option {
	return func(s *Scanner) {
		s.extraArgs = append(s.extraArgs, args...)
	}
}

// New creates a Trivy adapter. A nil logger disables diagnostics.
func New(log *zap.Logger, opts ...Option) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scanner{bin: "trivy", log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) Name() string { return Name }

func (s *Scanner) ScanManifestsCmd(target string) []string {
	argv := []string{s.bin, "config", "-f", "json"}
	argv = append(argv, s.extraArgs...)
	return append(argv, target)
}

func (s *Scanner) VersionCmd() []string { return []string{s.bin, "--version"} }

func (s *Scanner) Formats() []string {
	return []string{"JSON", "Table", "Sarif", "Template", "CycloneDX", "SPDX", "SPDX-JSON", "GitHub", "Cosign-Vuln"}
}

func (s *Scanner) CIMode() bool { return true }

func (s *Scanner) RunsOffline() bool { return true }

// report mirrors the shape of `trivy config -f json` output, reduced to
// the fields the normalization needs.
type report struct {
	Results []fileResult `json:"Results"`
}

type fileResult struct {
	Target            string             `json:"Target"`
	Misconfigurations []misconfiguration `json:"Misconfigurations"`
}

type misconfiguration struct {
	ID          string `json:"ID"`
	Title       string `json:"Title"`
	Status      string `json:"Status"`
	Severity    string `json:"Severity"`
	Description string `json:"Description"`
	Message     string `json:"Message"`
}

// ParseResults flattens the per-file entries of a raw scan report into
// normalized check results, one per misconfiguration, preserving report
// order. Files without misconfigurations contribute nothing; findings
// that cannot be attributed (unknown object name pattern, id missing
// from the mapping) are still emitted with degraded attribution.
func (s *Scanner) ParseResults(raw []byte) ([]scanner.CheckResult, error) {
	var rep report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return nil, fmt.Errorf("decoding trivy report: %w", err)
	}

	var results []scanner.CheckResult
	for _, file := range rep.Results {
		objName := stem(file.Target)

		checkID := checkIDPattern.FindString(objName)
		if checkID == "" && len(file.Misconfigurations) > 0 {
			s.log.Warn("object name yields no check id, results will be uncategorized",
				zap.String("scanner", Name),
				zap.String("obj_name", objName))
		}

		for _, mc := range file.Misconfigurations {
			results = append(results, scanner.CheckResult{
				CheckID:          checkID,
				ObjectName:       objName,
				ScannerCheckID:   mc.ID,
				ScannerCheckName: mc.Title,
				Status:           statusOf(mc.Status),
				CheckedPath:      s.CheckedPath(mc.ID),
				Severity:         mc.Severity,
				Details:          mc.Description,
				Extra:            mc.Message,
			})
		}
	}
	return results, nil
}

// CheckedPath returns the manifest path(s) inspected by the given Trivy
// rule as a single string, multiple paths joined by "|". An id missing
// from the mapping degrades to an empty string with a warning; it never
// drops the finding.
func (s *Scanner) CheckedPath(checkID string) string {
	m, ok := checkMapping[checkID]
	if !ok {
		s.log.Warn("check not found in the mapping",
			zap.String("scanner", Name),
			zap.String("check_id", checkID))
	}
	return m.paths.render()
}

// ParseVersion extracts the version number from `trivy --version`
// output, whose first line has the form "Version: <version>". Anything
// else on the first line means the tool changed its output format, so
// the caller gets an error rather than a guess.
func (s *Scanner) ParseVersion(raw string) (string, error) {
	line, _, _ := strings.Cut(raw, "\n")
	parts := strings.Split(line, " ")
	if len(parts) != 2 {
		return "", fmt.Errorf("unexpected version line %q: want a single label/version pair", line)
	}
	return parts[1], nil
}

func statusOf(status string) scanner.CheckStatus {
	if status == failStatus {
		return scanner.StatusAlert
	}
	return scanner.StatusPass
}

// stem returns the file name without directory or extension; benchmark
// manifests encode the object name in the file stem.
func stem(target string) string {
	base := filepath.Base(target)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
