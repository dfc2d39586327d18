package main

import (
	"strings"
	"testing"
)

var sampleCipher = []int{
	35, 20, 15, 25, 47, 40, 62, 55, 65, 95,
	102, 117, 150, 182, 127, 219, 299, 277, 309, 576,
}

func TestHasPairSum(t *testing.T) {
	tests := []struct {
		window []int
		target int
		want   bool
	}{
		{[]int{35, 20, 15, 25, 47}, 40, true},
		{[]int{95, 102, 117, 150, 182}, 127, false},
		{[]int{3, 7}, 10, true},
		// A pair must be two different values.
		{[]int{5, 5}, 10, false},
		{[]int{5, 5, 3}, 8, true},
	}
	for _, tt := range tests {
		if got := hasPairSum(tt.window, tt.target); got != tt.want {
			t.Errorf("hasPairSum(%v, %d) = %v, want %v", tt.window, tt.target, got, tt.want)
		}
	}
}

func TestFirstInvalid(t *testing.T) {
	idx, value, ok := firstInvalid(sampleCipher, 5)
	if !ok {
		t.Fatal("expected an invalid number in the sample")
	}
	if idx != 14 || value != 127 {
		t.Errorf("firstInvalid = (%d, %d), want (14, 127)", idx, value)
	}
}

func TestFirstInvalid_AllValid(t *testing.T) {
	if _, _, ok := firstInvalid([]int{1, 2, 3, 5, 8}, 2); ok {
		t.Fatal("expected no invalid number")
	}
}

func TestFindWeakness(t *testing.T) {
	weakness, ok := findWeakness(sampleCipher[:9], 127)
	if !ok {
		t.Fatal("expected a weakness in the sample")
	}
	if weakness != 62 {
		t.Errorf("weakness = %d, want 62", weakness)
	}
}

func TestFindWeakness_NotFound(t *testing.T) {
	if _, ok := findWeakness([]int{1, 2, 3}, 100); ok {
		t.Fatal("expected no weakness")
	}
}

func TestReadNumbers(t *testing.T) {
	nums, err := readNumbers(strings.NewReader("35\n20\n\n15\n"))
	if err != nil {
		t.Fatalf("readNumbers: %v", err)
	}
	if len(nums) != 3 || nums[0] != 35 || nums[1] != 20 || nums[2] != 15 {
		t.Errorf("nums = %v, want [35 20 15]", nums)
	}

	if _, err := readNumbers(strings.NewReader("35\ntwenty\n")); err == nil {
		t.Fatal("expected error for non-numeric line")
	}
}
