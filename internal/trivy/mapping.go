package trivy

import (
	"strings"

	"github.com/misconfbench/misconfbench/internal/scanner"
)

// pathKind discriminates the shapes a mapping's paths may take: no
// recorded path, a single legacy scalar, or an ordered list.
type pathKind int

const (
	pathsAbsent pathKind = iota
	pathSingle
	pathMultiple
)

// pathSpec is a tagged variant over the path shapes. The shape is fixed
// when the table is built, so rendering never inspects the value. The
// zero value is the absent variant.
type pathSpec struct {
	kind pathKind
	one  string
	many []string
}

func path(p string) pathSpec { return pathSpec{kind: pathSingle, one: p} }

func paths(ps ...string) pathSpec { return pathSpec{kind: pathMultiple, many: ps} }

// render flattens the variant into the single-string form used for
// CheckResult.CheckedPath. List entries keep their declared order: it
// reflects the alternative locations a rule may inspect depending on
// the object kind.
func (p pathSpec) render() string {
	switch p.kind {
	case pathSingle:
		return p.one
	case pathMultiple:
		return strings.Join(p.many, "|")
	default:
		return ""
	}
}

type mapping struct {
	category scanner.CheckCategory
	paths    pathSpec
}

// checkMapping relates Trivy's rule ids to the category of the rule and
// the manifest field paths it inspects. Built once at init and never
// mutated, so concurrent reads are safe. Trivy's id scheme can shift
// across releases (KSV116 was remapped from KSV029); refresh this table
// against the release notes when bumping the wrapped tool.
var checkMapping = map[string]mapping{
	"KSV001": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.allowPrivilegeEscalation")},
	"KSV002": {scanner.CategoryWorkload, paths( // apparmor: legacy annotation key vs bracketed form
		".metadata.annotations.container.apparmor.security.beta.kubernetes.io",
		".metadata.annotations[container.apparmor.security.beta.kubernetes.io]",
	)},
	"KSV003": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.drop")}, // capabilities no drop all
	"KSV004": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.drop")}, // capabilities no drop at least one
	"KSV005": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.add")},  // SYS_ADMIN capability
	"KSV006": {scanner.CategoryWorkload, path(".spec.volumes[].hostPath.path")},                        // mounts docker socket
	"KSV007": {scanner.CategoryWorkload, path(".spec.hostAliases")},
	"KSV008": {scanner.CategoryWorkload, path(".spec.hostIPC")},
	"KSV009": {scanner.CategoryWorkload, path(".spec.hostNetwork")},
	"KSV010": {scanner.CategoryWorkload, path(".spec.hostPID")},
	"KSV011": {scanner.CategoryReliability, path(".spec.containers[].resources.limits.cpu")},
	"KSV012": {scanner.CategoryWorkload, paths(
		".spec.securityContext.runAsNonRoot",
		".spec.containers[].securityContext.runAsNonRoot",
	)},
	"KSV013": {scanner.CategoryWorkload, path(".spec.containers[].image")},
	"KSV014": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.readOnlyRootFilesystem")},
	"KSV015": {scanner.CategoryReliability, path(".spec.containers[].resources.requests.cpu")},
	"KSV016": {scanner.CategoryReliability, path(".spec.containers[].resources.requests.memory")},
	"KSV017": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.privileged")},
	"KSV018": {scanner.CategoryReliability, path(".spec.containers[].resources.limits.memory")},
	"KSV020": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.runAsUser")},
	"KSV021": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.runAsGroup")},
	"KSV022": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.add")}, // specific capabilities added
	"KSV023": {scanner.CategoryWorkload, path(".spec.volumes[].hostPath")},
	"KSV024": {scanner.CategoryWorkload, paths(
		".spec.containers[].ports[].hostPort",
		".spec.initContainers[].ports[].hostPort",
	)},
	"KSV025": {scanner.CategoryWorkload, paths(
		".spec.securityContext.seLinuxOptions",
		".spec.containers[].securityContext.seLinuxOptions",
	)},
	"KSV026": {scanner.CategoryWorkload, path(".spec.securityContext.sysctls[]")},
	"KSV027": {scanner.CategoryWorkload, paths(
		".spec.containers[].securityContext.procMount",
		".spec.initContainers[].securityContext.procMount",
	)},
	"KSV028": {scanner.CategoryWorkload, path(".spec.volumes[]")},
	"KSV116": {scanner.CategoryWorkload, paths( // root primary or supplementary GID (remapped from KSV029)
		".spec.securityContext.fsGRoup",
		".spec.securityContext.supplementalGroups",
		".spec.securityContext.runAsGroup",
		".spec.containers[].securityContext.runAsGroup",
	)},
	"KSV030": {scanner.CategoryWorkload, paths( // runtime default seccomp profile not set
		".spec.securityContext.seccompProfile.type",
		".spec.containers[].securityContext.seccompProfile.type",
		".metadata.annotations[seccomp.security.alpha.kubernetes.io/pod",
	)},
	"KSV032": {scanner.CategoryWorkload, paths(".spec.containers[].image", ".spec.containers[].name")},
	"KSV033": {scanner.CategoryWorkload, paths(".spec.containers[].image", ".spec.containers[].name")},
	"KSV034": {scanner.CategoryWorkload, path(".spec.containers[].image")},
	"KSV035": {scanner.CategoryWorkload, paths(".spec.containers[].image", ".spec.containers[].name")},
	"KSV036": {scanner.CategoryWorkload, paths(
		".spec.automountServiceAccountToken",
		".automountServiceAccountToken",
		".spec.containers[].volumeMounts[].mountPath",
	)},
	"KSV037": {scanner.CategoryWorkload, path(".metadata.namespace")},
	"KSV038": {scanner.CategoryNetwork, paths(
		"NetworkPolicy.spec.podSelector",
		".spec.podSelector",
		"NetworkPolicy.spec.podSelector.matchLabels",
		"NetworkPolicy.ingress[].from[].namespaceSelector",
		"NetworkPolicy.ingress[].from[].podSelector",
		"NetworkPolicy.egress[].from[].namespaceSelector",
		"NetworkPolicy.egress[].from[].podSelector",
		"NetworkPolicy.spec.policyTypes[]",
	)},
	"KSV039": {scanner.CategoryReliability, paths(
		"LimitRange.metadata.namespace",
		"LimitRange.spec.limits[].type",
		"LimitRange.spec.limits[].max",
		"LimitRange.spec.limits[].min",
		"LimitRange.spec.limits[].default",
		"LimitRange.spec.limits[].defaultRequest",
	)},
	"KSV040": {scanner.CategoryReliability, paths( // resource quota usage
		"ResourceQuota.metadata.namespace",
		"ResourceQuota.spec.hard.requests.cpu",
		"ResourceQuota.spec.hard.requests.memory",
		"ResourceQuota.spec.hard.limits.cpu",
		"ResourceQuota.spec.hard.limits.memory",
		"ResourceQuota.spec.hard.limits[].defaultRequest",
	)},
	"KSV041": {scanner.CategoryIAM, paths( // no management of secrets
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV042": {scanner.CategoryIAM, paths( // no deletion of pod logs
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV043": {scanner.CategoryIAM, paths( // no impersonation of privileged groups
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV044": {scanner.CategoryIAM, paths( // no wildcard verb roles
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV045": {scanner.CategoryIAM, paths(
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV046": {scanner.CategoryIAM, paths( // no wildcard resource roles
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV047": {scanner.CategoryIAM, paths( // no privilege escalation from node proxy
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV048": {scanner.CategoryIAM, paths(
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV049": {scanner.CategoryIAM, paths(
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV050": {scanner.CategoryIAM, paths( // no management of RBAC resources
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV051": {scanner.CategoryIAM, paths( // no role binding creation with privileged role
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"ClusterRole.rules[].resourceNames",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
		"Role.rules[].resourceNames",
	)},
	"KSV052": {scanner.CategoryIAM, paths( // no ClusterRoleBinding creation with privileged role
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"ClusterRole.rules[].resourceNames",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
		"Role.rules[].resourceNames",
	)},
	"KSV053": {scanner.CategoryIAM, paths( // no shell on pods (pods/exec)
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV054": {scanner.CategoryIAM, paths( // no attaching to shell on pods (pods/attach)
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV055": {scanner.CategoryIAM, paths( // users may not extend their own rolebindings
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV056": {scanner.CategoryIAM, paths( // no management of networking resources
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV102": {scanner.CategoryWorkload, paths(".metadata.name", ".spec.containers[].image")},
	"KSV104": {scanner.CategoryWorkload, paths( // seccomp profile unconfined
		".spec.securityContext.seccompProfile.type",
		".spec.containers[].securityContext.seccompProfile.type",
		".metadata.annotations[seccomp.security.alpha.kubernetes.io/pod",
	)},
	"KSV105": {scanner.CategoryAdmissionControl, paths(
		".spec.securityContext.runAsUser",
		".spec.containers[].securityContext.runAsUser",
	)},
	"KSV106": {scanner.CategoryAdmissionControl, paths( // drop all capabilities, only add NET_BIND_SERVICE
		".spec.containers[].securityContext.capabilities.drop",
		".spec.containers[].securityContext.capabilities.add",
	)},
	"KSV111": {scanner.CategoryIAM, paths( // cluster-admin role only used where required
		"ClusterRoleBinding.roleRef.name",
		"RoleBinding.roleRef.name",
	)},
	"KSV112": {scanner.CategoryIAM, paths( // manage all resources in namespace (wildcard)
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV113": {scanner.CategoryIAM, paths( // manage namespace secrets
		"ClusterRole.rules[].apiGroups",
		"ClusterRole.rules[].resources",
		"ClusterRole.rules[].verbs",
		"Role.rules[].apiGroups",
		"Role.rules[].resources",
		"Role.rules[].verbs",
	)},
	"KSV119": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.add")}, // NET_RAW capability
	"KSV120": {scanner.CategoryWorkload, path(".spec.containers[].securityContext.capabilities.add")}, // SYS_MODULE capability
	"KSV121": {scanner.CategoryWorkload, path(".spec.volumes[].hostPath.path")},                       // disallowed host paths mounted
	"AVD-KSV-0109":  {scanner.CategoryDataSecurity, path("ConfigMap.data")},                           // ConfigMap with secrets
	"AVD-KSV-01010": {scanner.CategoryDataSecurity, path("ConfigMap.data")},                           // ConfigMap with sensitive content
}
