// Advent of Code 2020, day 1: expense report entries that sum to 2020.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

const target = 2020

// findPair returns two entries at different positions summing to target.
func findPair(nums []int, target int) (int, int, bool) {
	return findPairSkipping(nums, target, -1)
}

func findPairSkipping(nums []int, target, skip int) (int, int, bool) {
	complements := make(map[int]struct{}, len(nums))
	for i, n := range nums {
		if i == skip {
			continue
		}
		if _, ok := complements[target-n]; ok {
			return n, target - n, true
		}
		complements[n] = struct{}{}
	}
	return 0, 0, false
}

func partOne(expenses []int) (int, bool) {
	x, y, ok := findPair(expenses, target)
	return x * y, ok
}

func partTwo(expenses []int) (int, bool) {
	seen := make(map[int]struct{}, len(expenses))
	for i, e := range expenses {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if x, y, ok := findPairSkipping(expenses, target-e, i); ok {
			return x * y * e, true
		}
	}
	return 0, false
}

func readExpenses(r io.Reader) ([]int, error) {
	var expenses []int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("parse expense entry: %w", err)
		}
		expenses = append(expenses, n)
	}
	return expenses, scanner.Err()
}

func main() {
	expenses, err := readExpenses(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	one, ok := partOne(expenses)
	if !ok {
		log.Fatalf("no pair of entries sums to %d", target)
	}
	fmt.Printf("Part One: %d\n", one)

	two, ok := partTwo(expenses)
	if !ok {
		log.Fatalf("no triple of entries sums to %d", target)
	}
	fmt.Printf("Part Two: %d\n", two)
}
