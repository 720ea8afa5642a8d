package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeKubeconfig writes a kubeconfig holding one cluster/context per name.
// Each context "<name>" points at https://<name>.example.com.
func writeKubeconfig(t *testing.T, current string, names ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("apiVersion: v1\nkind: Config\n")
	fmt.Fprintf(&b, "current-context: %q\n", current)
	b.WriteString("clusters:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "- name: %s\n  cluster:\n    server: https://%s.example.com\n    insecure-skip-tls-verify: true\n", n, n)
	}
	b.WriteString("users:\n- name: tester\n  user:\n    token: abc123\n")
	b.WriteString("contexts:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "- name: %s\n  context:\n    cluster: %s\n    user: tester\n", n, n)
	}
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write kubeconfig: %v", err)
	}
	return path
}

func TestClientsetForContext_CurrentContext(t *testing.T) {
	path := writeKubeconfig(t, "staging", "staging", "prod")

	cs, info, err := NewKubeClientProviderForFile(path).ClientsetForContext("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs == nil {
		t.Fatal("expected non-nil clientset")
	}
	if info.ContextName != "staging" {
		t.Errorf("ContextName = %q; want staging", info.ContextName)
	}
	if info.Server != "https://staging.example.com" {
		t.Errorf("Server = %q; want https://staging.example.com", info.Server)
	}
}

func TestClientsetForContext_ExplicitContext(t *testing.T) {
	path := writeKubeconfig(t, "staging", "staging", "prod")

	_, info, err := NewKubeClientProviderForFile(path).ClientsetForContext("prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ContextName != "prod" || info.Server != "https://prod.example.com" {
		t.Errorf("info = %+v; want prod context", info)
	}
}

func TestClientsetForContext_UnknownContext(t *testing.T) {
	path := writeKubeconfig(t, "staging", "staging")

	_, _, err := NewKubeClientProviderForFile(path).ClientsetForContext("missing")
	if err == nil {
		t.Fatal("expected error for unknown context")
	}
	if !strings.Contains(err.Error(), `context "missing" not found`) {
		t.Errorf("error = %v; want context not found", err)
	}
}

func TestClientsetForContext_NoCurrentContext(t *testing.T) {
	path := writeKubeconfig(t, "", "staging")

	_, _, err := NewKubeClientProviderForFile(path).ClientsetForContext("")
	if err == nil || !strings.Contains(err.Error(), "no current context") {
		t.Errorf("error = %v; want no current context", err)
	}
}

func TestClientsetForContext_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent")

	_, _, err := NewKubeClientProviderForFile(path).ClientsetForContext("")
	if err == nil {
		t.Fatal("expected error for missing kubeconfig")
	}
	if !strings.Contains(err.Error(), "load kubeconfig") {
		t.Errorf("error = %v; want load kubeconfig prefix", err)
	}
}

func TestClientsetForContext_KubeconfigEnvList(t *testing.T) {
	first := writeKubeconfig(t, "staging", "staging")
	second := writeKubeconfig(t, "", "prod")
	t.Setenv("KUBECONFIG", first+string(os.PathListSeparator)+second)

	_, info, err := NewDefaultKubeClientProvider().ClientsetForContext("prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Server != "https://prod.example.com" {
		t.Errorf("Server = %q; want context from second file", info.Server)
	}

	_, info, err = NewDefaultKubeClientProvider().ClientsetForContext("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ContextName != "staging" {
		t.Errorf("ContextName = %q; want current context from first file", info.ContextName)
	}
}
