package build

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
)

// Builder turns one day unit into a runnable artifact. Implementations are
// opaque to the orchestrator: it never interprets their failures.
type Builder interface {
	Build(ctx context.Context, unit dayunit.DayUnit) (artifact string, err error)
}

// GoBuilder delegates to the Go toolchain. Each unit directory holds a
// self-contained main package, and `go build` is its build-unit definition.
type GoBuilder struct {
	root         string
	artifactsDir string
	goBinary     string
	timeout      time.Duration
}

// NewGoBuilder creates a builder producing binaries under artifactsDir.
// root must be the module root so relative package paths resolve. A
// relative artifactsDir is anchored at root, not the process directory.
func NewGoBuilder(root, artifactsDir, goBinary string, timeout time.Duration) *GoBuilder {
	if goBinary == "" {
		goBinary = "go"
	}
	if artifactsDir == "" {
		artifactsDir = "bin"
	}
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(root, artifactsDir)
	}
	return &GoBuilder{
		root:         root,
		artifactsDir: artifactsDir,
		goBinary:     goBinary,
		timeout:      timeout,
	}
}

// Build compiles the unit's main package into artifactsDir/<unit>.
// The toolchain's failure output is preserved on the returned error.
func (b *GoBuilder) Build(ctx context.Context, unit dayunit.DayUnit) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	if err := os.MkdirAll(b.artifactsDir, 0o750); err != nil {
		return "", errors.ArtifactError("create artifacts directory", err)
	}

	artifact := filepath.Join(b.artifactsDir, unit.Name)
	// #nosec G204 -- goBinary comes from configuration, unit names from the discovery pattern
	cmd := exec.CommandContext(ctx, b.goBinary, "build", "-o", artifact, "./"+unit.Name)
	cmd.Dir = b.root

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.DelegatedBuildFailed(unit.Name, err).
			WithContext("output", string(output))
	}
	return artifact, nil
}
