package fetch

import (
	"strings"
	"testing"
)

func TestParseDayTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
		wantErr  bool
	}{
		{
			name:     "standard day page",
			html:     `<html><body><h2>--- Day 1: Report Repair ---</h2></body></html>`,
			expected: "Report Repair",
		},
		{
			name:     "title with punctuation",
			html:     `<html><body><h2>--- Day 11: Seating System ---</h2></body></html>`,
			expected: "Seating System",
		},
		{
			name:     "nested markup in heading",
			html:     `<html><body><h2>--- Day 5: <em>Binary Boarding</em> ---</h2></body></html>`,
			expected: "Binary Boarding",
		},
		{
			name:     "ignores unrelated h2",
			html:     `<html><body><h2>Sponsors</h2><h2>--- Day 9: Encoding Error ---</h2></body></html>`,
			expected: "Encoding Error",
		},
		{
			name:    "no matching heading",
			html:    `<html><body><h1>Advent of Code</h1></body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, err := ParseDayTitle(strings.NewReader(tt.html))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if title != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, title)
			}
		})
	}
}
