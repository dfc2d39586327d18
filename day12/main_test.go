package main

import "testing"

const sampleRoute = `F10
N3
F7
R90
F11
`

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		line string
		want instruction
	}{
		{"N3", instruction{shiftNorth, 3}},
		{"S5", instruction{shiftNorth, -5}},
		{"E7", instruction{shiftEast, 7}},
		{"W2", instruction{shiftEast, -2}},
		{"F10", instruction{moveForward, 10}},
		{"R90", instruction{turnClockwise, 1}},
		{"R180", instruction{turnClockwise, 2}},
		{"R270", instruction{turnClockwise, 3}},
		{"L90", instruction{turnClockwise, 3}},
		{"L180", instruction{turnClockwise, 2}},
		{"L270", instruction{turnClockwise, 1}},
	}
	for _, tt := range tests {
		got, err := parseInstruction(tt.line)
		if err != nil {
			t.Errorf("parseInstruction(%q): %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseInstruction(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseInstruction_Rejects(t *testing.T) {
	for _, line := range []string{"R45", "L0", "X5", "F", "Ften", ""} {
		if _, err := parseInstruction(line); err == nil {
			t.Errorf("parseInstruction(%q): expected error", line)
		}
	}
}

func TestRotate(t *testing.T) {
	p := point{10, 1}
	tests := []struct {
		quarters int
		want     point
	}{
		{0, point{10, 1}},
		{1, point{1, -10}},
		{2, point{-10, -1}},
		{3, point{-1, 10}},
	}
	for _, tt := range tests {
		if got := p.rotate(tt.quarters); got != tt.want {
			t.Errorf("rotate(%d) = %v, want %v", tt.quarters, got, tt.want)
		}
	}
}

func TestSailOriented(t *testing.T) {
	instructions, err := parseInstructions(sampleRoute)
	if err != nil {
		t.Fatalf("parseInstructions: %v", err)
	}
	ship := sailOriented(instructions)
	if ship != (point{17, -8}) {
		t.Errorf("ship ends at %v, want {17 -8}", ship)
	}
	if got := ship.manhattan(); got != 25 {
		t.Errorf("manhattan = %d, want 25", got)
	}
}

func TestSailWaypoint(t *testing.T) {
	instructions, err := parseInstructions(sampleRoute)
	if err != nil {
		t.Fatalf("parseInstructions: %v", err)
	}
	ship := sailWaypoint(instructions)
	if ship != (point{214, -72}) {
		t.Errorf("ship ends at %v, want {214 -72}", ship)
	}
	if got := ship.manhattan(); got != 286 {
		t.Errorf("manhattan = %d, want 286", got)
	}
}
