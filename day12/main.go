// Advent of Code 2020, day 12: steering the ferry by dead reckoning.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

type action int

const (
	shiftNorth action = iota // negative value means south
	shiftEast                // negative value means west
	moveForward
	turnClockwise // value is quarter turns
)

type instruction struct {
	action action
	value  int
}

func parseInstruction(line string) (instruction, error) {
	if len(line) < 2 {
		return instruction{}, fmt.Errorf("malformed instruction: %q", line)
	}
	mag, err := strconv.Atoi(line[1:])
	if err != nil {
		return instruction{}, fmt.Errorf("bad magnitude in %q: %w", line, err)
	}

	switch line[0] {
	case 'N':
		return instruction{shiftNorth, mag}, nil
	case 'S':
		return instruction{shiftNorth, -mag}, nil
	case 'E':
		return instruction{shiftEast, mag}, nil
	case 'W':
		return instruction{shiftEast, -mag}, nil
	case 'F':
		return instruction{moveForward, mag}, nil
	case 'L', 'R':
		var quarters int
		switch mag {
		case 90:
			quarters = 1
		case 180:
			quarters = 2
		case 270:
			quarters = 3
		default:
			return instruction{}, fmt.Errorf("unsupported turn angle in %q", line)
		}
		if line[0] == 'L' {
			quarters = 4 - quarters
		}
		return instruction{turnClockwise, quarters}, nil
	}
	return instruction{}, fmt.Errorf("unknown action in %q", line)
}

func parseInstructions(input string) ([]instruction, error) {
	var instructions []instruction
	for _, line := range strings.Split(strings.TrimRight(input, "\n"), "\n") {
		inst, err := parseInstruction(line)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

// point is a position east (x) and north (y) of the start.
type point struct{ x, y int }

// rotate turns p the given number of clockwise quarter turns about the origin.
func (p point) rotate(quarters int) point {
	for i := 0; i < quarters; i++ {
		p = point{p.y, -p.x}
	}
	return p
}

func (p point) manhattan() int {
	return abs(p.x) + abs(p.y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sailOriented steers the ship directly: shifts move it, forward moves along
// its heading, turns rotate the heading. The ship starts facing east.
func sailOriented(instructions []instruction) point {
	ship := point{}
	heading := point{1, 0}
	for _, inst := range instructions {
		switch inst.action {
		case shiftNorth:
			ship.y += inst.value
		case shiftEast:
			ship.x += inst.value
		case moveForward:
			ship.x += heading.x * inst.value
			ship.y += heading.y * inst.value
		case turnClockwise:
			heading = heading.rotate(inst.value)
		}
	}
	return ship
}

// sailWaypoint steers by waypoint: shifts move the waypoint, forward moves
// the ship toward it, turns rotate it about the ship. The waypoint starts
// ten east and one north of the ship.
func sailWaypoint(instructions []instruction) point {
	ship := point{}
	waypoint := point{10, 1}
	for _, inst := range instructions {
		switch inst.action {
		case shiftNorth:
			waypoint.y += inst.value
		case shiftEast:
			waypoint.x += inst.value
		case moveForward:
			ship.x += waypoint.x * inst.value
			ship.y += waypoint.y * inst.value
		case turnClockwise:
			waypoint = waypoint.rotate(inst.value)
		}
	}
	return ship
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	instructions, err := parseInstructions(string(input))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Part One: %d\n", sailOriented(instructions).manhattan())
	fmt.Printf("Part Two: %d\n", sailWaypoint(instructions).manhattan())
}
