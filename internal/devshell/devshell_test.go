package devshell

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault_FixedToolList(t *testing.T) {
	descriptor := Default()

	want := []string{"go", "gofumpt", "golangci-lint", "gopls", "dlv"}
	if len(descriptor.Tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(descriptor.Tools))
	}
	for i, name := range want {
		if descriptor.Tools[i].Name != name {
			t.Errorf("tool %d: expected %s, got %s", i, name, descriptor.Tools[i].Name)
		}
		if descriptor.Tools[i].Purpose == "" {
			t.Errorf("tool %s: purpose should not be empty", name)
		}
	}
}

func TestRender_ValidYAML(t *testing.T) {
	data, err := Default().Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var decoded Descriptor
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("rendered output is not valid yaml: %v", err)
	}
	if len(decoded.Tools) != 5 {
		t.Errorf("round trip lost tools: %d", len(decoded.Tools))
	}
	if !strings.Contains(string(data), "golangci-lint") {
		t.Error("expected golangci-lint in rendered output")
	}
}
