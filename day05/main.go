// Advent of Code 2020, day 5: binary space partitioned boarding passes.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
)

// seatID decodes a boarding pass. The first seven characters halve the rows
// (B upper, F lower), the last three the columns (R upper, L lower), which
// makes the whole pass one 10-bit number.
func seatID(pass string) (int, error) {
	if len(pass) != 10 {
		return 0, fmt.Errorf("boarding pass must have 10 characters, got %q", pass)
	}

	id := 0
	for _, c := range pass {
		id <<= 1
		switch c {
		case 'B', 'R':
			id |= 1
		case 'F', 'L':
		default:
			return 0, fmt.Errorf("invalid boarding pass character %q in %q", c, pass)
		}
	}
	return id, nil
}

func partOne(ids []int) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	max := ids[0]
	for _, id := range ids[1:] {
		if id > max {
			max = id
		}
	}
	return max, true
}

// partTwo finds the one unoccupied seat between the lowest and highest IDs.
// The gap is the difference between the gapless sum over [min, max] and the
// actual sum.
func partTwo(ids []int) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}

	min, max, sum := ids[0], ids[0], 0
	for _, id := range ids {
		if id < min {
			min = id
		}
		if id > max {
			max = id
		}
		sum += id
	}

	uptoMax := max * (max + 1) / 2
	uptoMin := (min - 1) * min / 2
	return uptoMax - uptoMin - sum, true
}

func readSeatIDs(r io.Reader) ([]int, error) {
	var ids []int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		id, err := seatID(scanner.Text())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, scanner.Err()
}

func main() {
	ids, err := readSeatIDs(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	if one, ok := partOne(ids); ok {
		fmt.Printf("Part One: %d\n", one)
	} else {
		fmt.Println("Part One: Could not find answer")
	}

	if two, ok := partTwo(ids); ok {
		fmt.Printf("Part Two: %d\n", two)
	} else {
		fmt.Println("Part Two: Could not find answer")
	}
}
