package main

import (
	"strings"
	"testing"
)

var sample = []int{1721, 979, 366, 299, 675, 1456}

func TestPartOne(t *testing.T) {
	got, ok := partOne(sample)
	if !ok {
		t.Fatal("expected a pair summing to 2020")
	}
	if got != 514579 {
		t.Fatalf("partOne = %d, want 514579", got)
	}
}

func TestPartTwo(t *testing.T) {
	got, ok := partTwo(sample)
	if !ok {
		t.Fatal("expected a triple summing to 2020")
	}
	if got != 241861950 {
		t.Fatalf("partTwo = %d, want 241861950", got)
	}
}

func TestFindPair_UsesDistinctPositions(t *testing.T) {
	// 1010 appearing once must not pair with itself.
	if _, _, ok := findPair([]int{1010, 5}, 2020); ok {
		t.Fatal("single 1010 should not form a pair")
	}
	x, y, ok := findPair([]int{1010, 1010}, 2020)
	if !ok || x+y != 2020 {
		t.Fatalf("findPair = (%d, %d, %v), want a 1010+1010 pair", x, y, ok)
	}
}

func TestReadExpenses(t *testing.T) {
	got, err := readExpenses(strings.NewReader("1721\n979\n366\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1721 || got[2] != 366 {
		t.Fatalf("readExpenses = %v", got)
	}

	if _, err := readExpenses(strings.NewReader("12\nnope\n")); err == nil {
		t.Fatal("expected a parse error")
	}
}
