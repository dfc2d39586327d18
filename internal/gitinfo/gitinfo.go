// Package gitinfo reads repository state for the status command and the
// daemon status endpoint.
package gitinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Info is a snapshot of the repository's current state.
type Info struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// Short returns the abbreviated commit hash.
func (i *Info) Short() string {
	if len(i.Commit) < 7 {
		return i.Commit
	}
	return i.Commit[:7]
}

// Read inspects the repository at repoPath. When go-git cannot open the
// repository it falls back to reading .git/HEAD directly, yielding a
// commit-only Info.
func Read(repoPath string) (*Info, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if commit, headErr := Head(repoPath); headErr == nil {
			return &Info{Commit: commit}, nil
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := &Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repository: no dirty state to report.
		return info, nil
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}
	info.Dirty = !status.IsClean()

	return info, nil
}

// Head returns the current HEAD commit hash by reading .git/HEAD directly,
// resolving one level of symbolic ref. Cheaper than a full repository open
// when only the hash is needed.
func Head(repoPath string) (string, error) {
	gitDir := filepath.Join(repoPath, ".git")
	data, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "ref:") {
		return line, nil
	}

	ref := strings.TrimSpace(strings.TrimPrefix(line, "ref:"))
	if refData, refErr := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); refErr == nil {
		return strings.TrimSpace(string(refData)), nil
	}
	return resolvePackedRef(gitDir, ref)
}

// resolvePackedRef scans .git/packed-refs, where loose refs end up after gc.
func resolvePackedRef(gitDir, ref string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return "", fmt.Errorf("resolve ref %s: %w", ref, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == ref {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("ref %s not found in packed-refs", ref)
}
