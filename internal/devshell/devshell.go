// Package devshell exposes the fixed development toolchain descriptor.
// The list is hard-coded on purpose: it describes what a contributor needs,
// not what discovery found.
package devshell

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tool is one required development tool.
type Tool struct {
	Name    string `yaml:"name" json:"name"`
	Purpose string `yaml:"purpose" json:"purpose"`
}

// Descriptor lists the toolchain for working on this repository.
type Descriptor struct {
	Tools []Tool `yaml:"tools" json:"tools"`
}

// Default returns the toolchain descriptor. Independent of the build
// target map; changing discovered units never changes this list.
func Default() Descriptor {
	return Descriptor{
		Tools: []Tool{
			{Name: "go", Purpose: "compiler and standard tooling"},
			{Name: "gofumpt", Purpose: "stricter gofmt"},
			{Name: "golangci-lint", Purpose: "lint aggregator"},
			{Name: "gopls", Purpose: "language server"},
			{Name: "dlv", Purpose: "debugger"},
		},
	}
}

// Render returns the descriptor as YAML.
func (d Descriptor) Render() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("render devshell descriptor: %w", err)
	}
	return data, nil
}
