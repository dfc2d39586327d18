// Advent of Code 2020, day 3: toboggan trajectory down a tree-covered hill.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type slope struct {
	dx, dy int
}

// countTrees rides the hill from the top-left corner, wrapping horizontally
// around the repeating pattern, and counts '#' tiles hit on the way down.
func countTrees(hill []string, s slope) int {
	if len(hill) == 0 {
		return 0
	}
	width := len(hill[0])

	trees := 0
	for x, y := 0, 0; y < len(hill); x, y = (x+s.dx)%width, y+s.dy {
		if hill[y][x] == '#' {
			trees++
		}
	}
	return trees
}

func partOne(hill []string) int {
	return countTrees(hill, slope{dx: 3, dy: 1})
}

func partTwo(hill []string) int {
	slopes := []slope{{1, 1}, {3, 1}, {5, 1}, {7, 1}, {1, 2}}
	product := 1
	for _, s := range slopes {
		product *= countTrees(hill, s)
	}
	return product
}

func parseHill(input string) []string {
	return strings.Split(strings.TrimRight(input, "\n"), "\n")
}

func main() {
	fmt.Println("Solving for day 03.")

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	hill := parseHill(string(input))

	fmt.Printf("Part One: %d\n", partOne(hill))
	fmt.Printf("Part two: %d\n", partTwo(hill))
}
