package notes

import (
	"fmt"
	"os"
	"strings"
)

// IndexFileName is the generated index at the repository root.
const IndexFileName = "SOLUTIONS.md"

const indexHeader = `# Solutions

Generated by aocbuild index. Do not edit by hand.

| Day | Title | Notes |
|----:|-------|-------|
`

// RenderIndex produces the SOLUTIONS.md content for the given entries.
func RenderIndex(entries []Entry) []byte {
	var sb strings.Builder
	sb.WriteString(indexHeader)

	for _, entry := range entries {
		title := entry.Title
		if title == "" {
			title = "-"
		}
		link := "-"
		if entry.HasNotes {
			link = fmt.Sprintf("[notes](%s/%s)", entry.Unit, NotesFileName)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", entry.Day, title, link)
	}

	for _, entry := range entries {
		if entry.Summary == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n## Day %d\n\n%s\n", entry.Day, entry.Summary)
	}

	return []byte(sb.String())
}

// WriteIndex renders the entries and writes the index file.
func WriteIndex(path string, entries []Entry) error {
	if err := os.WriteFile(path, RenderIndex(entries), 0o644); err != nil { // #nosec G306 -- index is public repo content
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
