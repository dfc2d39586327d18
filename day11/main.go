// Advent of Code 2020, day 11: seat shuffling until the ferry settles.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	floor    = '.'
	empty    = 'L'
	occupied = '#'
)

type grid struct {
	cells []byte
	width int
}

func parseGrid(input string) (*grid, error) {
	g := &grid{}
	for _, line := range strings.Split(strings.TrimRight(input, "\n"), "\n") {
		if g.width == 0 {
			g.width = len(line)
		} else if len(line) != g.width {
			return nil, fmt.Errorf("inconsistent row widths: %d and %d", g.width, len(line))
		}
		for _, c := range []byte(line) {
			switch c {
			case floor, empty, occupied:
			default:
				return nil, fmt.Errorf("unknown tile %q", c)
			}
		}
		g.cells = append(g.cells, line...)
	}
	if len(g.cells) == 0 {
		return nil, errors.New("empty seat layout")
	}
	return g, nil
}

func (g *grid) rows() int            { return len(g.cells) / g.width }
func (g *grid) at(row, col int) byte { return g.cells[row*g.width+col] }
func (g *grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows() && col >= 0 && col < g.width
}

func (g *grid) countOccupied() int {
	return bytes.Count(g.cells, []byte{occupied})
}

// neighborFunc counts the occupied seats a given seat considers relevant.
type neighborFunc func(g *grid, row, col int) int

func adjacentOccupied(g *grid, row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if r, c := row+dr, col+dc; g.inBounds(r, c) && g.at(r, c) == occupied {
				count++
			}
		}
	}
	return count
}

var directions = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// visibleOccupied walks each of the eight directions until it meets a seat,
// occupied or not, and counts the occupied ones.
func visibleOccupied(g *grid, row, col int) int {
	count := 0
	for _, d := range directions {
		for r, c := row+d[0], col+d[1]; g.inBounds(r, c); r, c = r+d[0], c+d[1] {
			if tile := g.at(r, c); tile != floor {
				if tile == occupied {
					count++
				}
				break
			}
		}
	}
	return count
}

// simulate applies rounds of the seating rules until no seat changes and
// returns the occupied count of the steady state. An empty seat fills when it
// counts no occupied neighbors; an occupied seat empties when it counts at
// least occupiedThreshold.
func simulate(g *grid, occupiedAround neighborFunc, occupiedThreshold int) int {
	cur := &grid{cells: bytes.Clone(g.cells), width: g.width}
	next := &grid{cells: make([]byte, len(g.cells)), width: g.width}

	for {
		changes := 0
		for row := 0; row < cur.rows(); row++ {
			for col := 0; col < cur.width; col++ {
				idx := row*cur.width + col
				tile := cur.cells[idx]
				next.cells[idx] = tile
				if tile == floor {
					continue
				}
				n := occupiedAround(cur, row, col)
				switch {
				case tile == empty && n == 0:
					next.cells[idx] = occupied
					changes++
				case tile == occupied && n >= occupiedThreshold:
					next.cells[idx] = empty
					changes++
				}
			}
		}
		cur, next = next, cur
		if changes == 0 {
			return cur.countOccupied()
		}
	}
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	g, err := parseGrid(string(input))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Part One: %d\n", simulate(g, adjacentOccupied, 4))
	fmt.Printf("Part Two: %d\n", simulate(g, visibleOccupied, 5))
}
