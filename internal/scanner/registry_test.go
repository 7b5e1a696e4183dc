package scanner

import "testing"

type namedAdapter struct {
	stubAdapter
	name string
}

func (a namedAdapter) Name() string { return a.name }

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedAdapter{name: "trivy"})

	if _, ok := reg.Get("trivy"); !ok {
		t.Error("expected exact lookup to succeed")
	}
	if _, ok := reg.Get("Trivy"); !ok {
		t.Error("expected case-insensitive lookup to succeed")
	}
	if _, ok := reg.Get("kubescape"); ok {
		t.Error("expected unknown name to fail")
	}
}

func TestRegistryNamesOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedAdapter{name: "trivy"})
	reg.Register(namedAdapter{name: "kube-linter"})
	reg.Register(namedAdapter{name: "trivy"}) // re-register must not duplicate

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
	if names[0] != "trivy" || names[1] != "kube-linter" {
		t.Errorf("registration order not preserved: %v", names)
	}
}

func TestRegistryClosestMatches(t *testing.T) {
	reg := NewRegistry()
	reg.Register(namedAdapter{name: "trivy"})
	reg.Register(namedAdapter{name: "kube-linter"})

	matches := reg.ClosestMatches("triv", 2)
	if len(matches) != 1 || matches[0] != "trivy" {
		t.Errorf("unexpected matches: %v", matches)
	}
	if got := reg.ClosestMatches("polaris", 2); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
