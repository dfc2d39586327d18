// Package notes reads per-day NOTES.md files and renders the SOLUTIONS.md
// index at the repository root.
package notes

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
)

// NotesFileName is the per-unit notes file this package looks for.
const NotesFileName = "NOTES.md"

var dayPrefixPattern = regexp.MustCompile(`(?i)^day\s+\d+\s*:\s*`)

// Note is the extracted head of one NOTES.md file.
type Note struct {
	Title   string
	Summary string
}

// Entry is one day's row in the solutions index.
type Entry struct {
	Unit     string
	Day      int
	Title    string
	Summary  string
	HasNotes bool
}

// ExtractNote pulls the first level-1 heading and the first paragraph out
// of a markdown document. A heading like "Day 7: Handy Haversacks" is
// stripped of its day prefix.
func ExtractNote(source []byte) Note {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var note Note
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && note.Title == "" {
				title := strings.TrimSpace(nodeText(node, source))
				note.Title = dayPrefixPattern.ReplaceAllString(title, "")
			}
		case *gmast.Paragraph:
			if note.Summary == "" {
				note.Summary = strings.TrimSpace(nodeText(node, source))
			}
		}

		if note.Title != "" && note.Summary != "" {
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})

	return note
}

// nodeText collects the raw text segments below a node.
func nodeText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(child gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := child.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}

// CollectEntries builds an index entry per unit, reading each unit's
// NOTES.md when present. Units without notes still get a row.
func CollectEntries(units []dayunit.DayUnit) []Entry {
	entries := make([]Entry, 0, len(units))
	for _, unit := range units {
		entry := Entry{
			Unit: unit.Name,
			Day:  unit.Number(),
		}

		notesPath := filepath.Join(unit.Path, NotesFileName)
		if source, err := os.ReadFile(notesPath); err == nil { // #nosec G304 -- path is unit dir + fixed name
			note := ExtractNote(source)
			entry.Title = note.Title
			entry.Summary = note.Summary
			entry.HasNotes = true
		}

		entries = append(entries, entry)
	}
	return entries
}
