package trivy

import (
	"strings"
	"testing"
)

func TestMappingEntriesComplete(t *testing.T) {
	for id, m := range checkMapping {
		if m.category == "" {
			t.Errorf("entry %q has no category", id)
		}
		switch m.paths.kind {
		case pathSingle:
			if m.paths.one == "" {
				t.Errorf("entry %q: single variant with empty path", id)
			}
		case pathMultiple:
			if len(m.paths.many) < 2 {
				t.Errorf("entry %q: multiple variant with %d paths", id, len(m.paths.many))
			}
			for _, p := range m.paths.many {
				if p == "" {
					t.Errorf("entry %q contains an empty path", id)
				}
				if strings.Contains(p, "|") {
					t.Errorf("entry %q: path %q contains the join delimiter", id, p)
				}
			}
		}
	}
}

func TestPathSpecRender(t *testing.T) {
	if got := path("a").render(); got != "a" {
		t.Errorf("single render = %q, want %q", got, "a")
	}
	if got := paths("a", "b").render(); got != "a|b" {
		t.Errorf("multiple render = %q, want %q", got, "a|b")
	}
	if got := (pathSpec{}).render(); got != "" {
		t.Errorf("absent render = %q, want empty", got)
	}
}

func TestMappingOrderPreserved(t *testing.T) {
	// The declared order of a multiple entry is meaningful; spot-check
	// one entry against its known first and last path.
	rendered := checkMapping["KSV038"].paths.render()
	parts := strings.Split(rendered, "|")
	if len(parts) != 8 {
		t.Fatalf("expected 8 paths for KSV038, got %d", len(parts))
	}
	if parts[0] != "NetworkPolicy.spec.podSelector" {
		t.Errorf("unexpected first path: %q", parts[0])
	}
	if parts[7] != "NetworkPolicy.spec.policyTypes[]" {
		t.Errorf("unexpected last path: %q", parts[7])
	}
}
