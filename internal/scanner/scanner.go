package scanner

// CheckCategory groups benchmark checks by the concern they cover. The
// harness uses it for category-level aggregation; adapters only record it.
type CheckCategory string

const (
	CategoryAdmissionControl CheckCategory = "admission_control"
	CategoryDataSecurity     CheckCategory = "data_security"
	CategoryDetection        CheckCategory = "detection"
	CategoryIAM              CheckCategory = "iam"
	CategoryInfrastructure   CheckCategory = "infrastructure"
	CategoryMisc             CheckCategory = "misc"
	CategoryNetwork          CheckCategory = "network"
	CategoryReliability      CheckCategory = "reliability"
	CategorySegregation      CheckCategory = "segregation"
	CategoryVulnerability    CheckCategory = "vulnerability"
	CategoryWorkload         CheckCategory = "workload"
)

// CheckStatus is the binary outcome of a check: the scanner either
// raised an alert on the object or passed it. There is no third state.
type CheckStatus string

const (
	StatusAlert CheckStatus = "alert"
	StatusPass  CheckStatus = "pass"
)

// CheckResult is the normalized form of a single scanner finding. All
// adapters emit this shape so results can be compared across scanners.
// CheckID is the benchmark-level id grouping variant manifests of the
// same rule; ScannerCheckID is the tool's own rule id. An empty CheckID
// means the object name did not follow the benchmark naming convention.
type CheckResult struct {
	CheckID          string      `json:"check_id,omitempty"`
	ObjectName       string      `json:"object_name,omitempty"`
	ScannerCheckID   string      `json:"scanner_check_id,omitempty"`
	ScannerCheckName string      `json:"scanner_check_name,omitempty"`
	Status           CheckStatus `json:"status,omitempty"`
	CheckedPath      string      `json:"checked_path,omitempty"`
	Severity         string      `json:"severity,omitempty"`
	Details          string      `json:"details,omitempty"`
	Extra            string      `json:"extra,omitempty"`
}

// Adapter wraps one external scanner: how to invoke it and how to turn
// its raw output into normalized check results.
type Adapter interface {
	// Name is the adapter's unique registry key.
	Name() string
	// ScanManifestsCmd returns the argv to scan the given target directory.
	ScanManifestsCmd(target string) []string
	// VersionCmd returns the argv to query the tool's version.
	VersionCmd() []string
	// Formats lists the output formats the wrapped tool supports.
	Formats() []string
	// CIMode reports whether the tool exits non-zero when findings exist.
	CIMode() bool
	// RunsOffline reports whether the tool works without network access.
	RunsOffline() bool
	// ParseResults normalizes a raw scan report. A single malformed or
	// unmapped finding must not abort the rest of the report.
	ParseResults(raw []byte) ([]CheckResult, error)
	// ParseVersion extracts the version number from the raw output of
	// the version command.
	ParseVersion(raw string) (string, error)
}
