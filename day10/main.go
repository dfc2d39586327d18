// Advent of Code 2020, day 10: chaining joltage adapters.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
)

// chain builds the full adapter chain: the charging outlet at 0 jolts, the
// sorted adapters, then the device rated three jolts above the highest one.
func chain(adapters []int) []int {
	all := make([]int, 0, len(adapters)+2)
	all = append(all, 0)
	all = append(all, adapters...)
	slices.Sort(all)
	return append(all, all[len(all)-1]+3)
}

func countDifferences(adapters []int) (ones, threes int) {
	for i := 1; i < len(adapters); i++ {
		switch adapters[i] - adapters[i-1] {
		case 1:
			ones++
		case 3:
			threes++
		}
	}
	return ones, threes
}

// countArrangements returns the number of distinct ways to chain the sorted
// adapters from the outlet to the device, stepping at most three jolts at a
// time. It reports false when a gap makes the device unreachable.
func countArrangements(adapters []int) (uint64, bool) {
	if len(adapters) == 0 {
		return 0, false
	}
	ways := make([]uint64, len(adapters))
	ways[0] = 1
	for i := 1; i < len(adapters); i++ {
		for j := i - 1; j >= 0 && adapters[i]-adapters[j] <= 3; j-- {
			ways[i] += ways[j]
		}
		if ways[i] == 0 {
			return 0, false
		}
	}
	return ways[len(adapters)-1], true
}

func readRatings(r io.Reader) ([]int, error) {
	var nums []int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("bad adapter rating %q: %w", line, err)
		}
		nums = append(nums, n)
	}
	return nums, sc.Err()
}

func main() {
	ratings, err := readRatings(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	if len(ratings) == 0 {
		log.Fatal("no adapter ratings in input")
	}
	adapters := chain(ratings)

	ones, threes := countDifferences(adapters)
	fmt.Printf("Part One: %d\n", ones*threes)

	arrangements, ok := countArrangements(adapters)
	if !ok {
		log.Fatal("adapter chain has a gap larger than three jolts")
	}
	fmt.Printf("Part Two: %d\n", arrangements)
}
