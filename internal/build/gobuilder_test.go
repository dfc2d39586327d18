package build

import (
	"context"
	stdErrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
)

// scratchModule lays out a minimal Go module with one buildable and one
// broken day directory for exercising the real toolchain.
func scratchModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	gomod := "module example.com/scratch\n\ngo 1.21\n"
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}

	good := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Part One: 0\")\n}\n"
	writeScratchDay(t, root, "day01", good)

	broken := "package main\n\nfunc main() {\n\tundefinedSymbol()\n}\n"
	writeScratchDay(t, root, "day02", broken)

	return root
}

func writeScratchDay(t *testing.T, root, name, source string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
}

func requireGoToolchain(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping toolchain test in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go binary not on PATH")
	}
}

func TestGoBuilder_Build_ProducesArtifact(t *testing.T) {
	requireGoToolchain(t)

	root := scratchModule(t)
	builder := NewGoBuilder(root, "bin", "go", time.Minute)

	unit := dayunit.DayUnit{Name: "day01", Path: filepath.Join(root, "day01")}
	artifact, err := builder.Build(context.Background(), unit)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if artifact != filepath.Join(root, "bin", "day01") {
		t.Errorf("unexpected artifact path %q", artifact)
	}
	info, err := os.Stat(artifact)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if info.Mode()&0o111 == 0 {
		t.Error("artifact should be executable")
	}
}

func TestGoBuilder_Build_CompileFailure(t *testing.T) {
	requireGoToolchain(t)

	root := scratchModule(t)
	builder := NewGoBuilder(root, "bin", "go", time.Minute)

	unit := dayunit.DayUnit{Name: "day02", Path: filepath.Join(root, "day02")}
	_, err := builder.Build(context.Background(), unit)
	if err == nil {
		t.Fatal("expected compile failure")
	}
	if !errors.IsCategory(err, errors.CategoryBuild) {
		t.Errorf("expected build category, got %v", errors.GetCategory(err))
	}

	var buildErr *errors.AocBuildError
	if !stdErrors.As(err, &buildErr) {
		t.Fatalf("expected *AocBuildError, got %T", err)
	}
	output, ok := buildErr.Context["output"].(string)
	if !ok || !strings.Contains(output, "undefinedSymbol") {
		t.Errorf("toolchain output should be preserved on the error, got %q", output)
	}
}

func TestGoBuilder_Build_MissingToolchainBinary(t *testing.T) {
	root := scratchModule(t)
	builder := NewGoBuilder(root, "bin", filepath.Join(root, "no-such-go"), time.Minute)

	unit := dayunit.DayUnit{Name: "day01", Path: filepath.Join(root, "day01")}
	_, err := builder.Build(context.Background(), unit)
	if err == nil {
		t.Fatal("expected error when the configured binary does not exist")
	}
	if !errors.IsCategory(err, errors.CategoryBuild) {
		t.Errorf("expected build category, got %v", errors.GetCategory(err))
	}
}
