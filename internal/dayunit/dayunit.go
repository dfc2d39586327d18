// Package dayunit discovers per-day build units under a repository root.
//
// Discovery is a pure filter over the root's immediate children: an entry is
// a day unit iff it is a directory and its name is "day" followed by exactly
// two digits within the configured bound. There is no manifest; the naming
// convention is the contract.
package dayunit

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/aoc2020/internal/errors"
)

// DayUnit represents one matched subdirectory of the repository root.
type DayUnit struct {
	Name string `json:"name"` // e.g. "day07"
	Path string `json:"path"` // root-joined path to the unit directory
}

// Number returns the numeric day for the unit (7 for "day07").
func (u DayUnit) Number() int {
	n, _ := strconv.Atoi(u.Name[len(dayPrefix):])
	return n
}

const dayPrefix = "day"

var dayNamePattern = regexp.MustCompile(`^day([0-9]{2})$`)

// Matcher is the discovery predicate over (name, isDir) pairs. It carries no
// filesystem state, so it can be exercised against synthetic listings.
type Matcher struct {
	maxDay int
}

// NewMatcher returns a matcher accepting day numbers up to and including
// maxDay. Values outside 1-99 fall back to the default envelope of 29.
func NewMatcher(maxDay int) Matcher {
	if maxDay < 1 || maxDay > 99 {
		maxDay = 29
	}
	return Matcher{maxDay: maxDay}
}

// MatchName reports whether name alone satisfies the day-unit naming
// convention: "day" + exactly two digits, numerically within the bound.
func (m Matcher) MatchName(name string) bool {
	sub := dayNamePattern.FindStringSubmatch(name)
	if sub == nil {
		return false
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil {
		return false
	}
	return n <= m.maxDay
}

// Match is the full predicate: directory entries only, names per MatchName.
func (m Matcher) Match(name string, isDir bool) bool {
	return isDir && m.MatchName(name)
}

// TargetMap maps unit name to its DayUnit. It is recomputed fresh on every
// discovery call and never persisted.
type TargetMap map[string]DayUnit

// Get looks up a unit by name.
func (t TargetMap) Get(name string) (DayUnit, bool) {
	u, ok := t[name]
	return u, ok
}

// Names returns the unit names in sorted order for deterministic output.
func (t TargetMap) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Discover lists the immediate children of root and filters them through the
// matcher. Children failing the predicate are silently excluded; zero matches
// yields an empty map, not an error.
func Discover(root string, m Matcher) (TargetMap, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.RootListError(root, err)
	}

	targets := make(TargetMap)
	for _, entry := range entries {
		if !m.Match(entry.Name(), entry.IsDir()) {
			continue
		}
		targets[entry.Name()] = DayUnit{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		}
	}
	return targets, nil
}
