// Advent of Code 2020, day 9: breaking the XMAS cipher.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

const preambleSize = 25

// hasPairSum reports whether two entries with different values in window sum
// to target. Values at or above the target can never be part of a pair.
func hasPairSum(window []int, target int) bool {
	complements := make(map[int]struct{}, len(window))
	for _, n := range window {
		if n >= target {
			continue
		}
		if _, ok := complements[target-n]; ok && target-n != n {
			return true
		}
		complements[n] = struct{}{}
	}
	return false
}

// firstInvalid returns the index and value of the first number that is not
// the sum of two of the preamble numbers directly before it.
func firstInvalid(nums []int, preamble int) (int, int, bool) {
	for i := preamble; i < len(nums); i++ {
		if !hasPairSum(nums[i-preamble:i], nums[i]) {
			return i, nums[i], true
		}
	}
	return 0, 0, false
}

// findWeakness scans contiguous ranges of nums for one that sums to target
// and returns the sum of the range's smallest and largest members.
func findWeakness(nums []int, target int) (int, bool) {
	sum, lo := 0, 0
	for hi := 0; hi < len(nums); hi++ {
		sum += nums[hi]
		for sum > target && lo < hi {
			sum -= nums[lo]
			lo++
		}
		if sum == target {
			mn, mx := nums[lo], nums[lo]
			for _, n := range nums[lo+1 : hi+1] {
				mn = min(mn, n)
				mx = max(mx, n)
			}
			return mn + mx, true
		}
	}
	return 0, false
}

func readNumbers(r io.Reader) ([]int, error) {
	var nums []int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", line, err)
		}
		nums = append(nums, n)
	}
	return nums, sc.Err()
}

func main() {
	nums, err := readNumbers(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	idx, invalid, ok := firstInvalid(nums, preambleSize)
	if !ok {
		log.Fatal("every number is the sum of a pair in its window")
	}
	fmt.Printf("Part One: %d\n", invalid)

	// The weakness range always sits before the window that exposed the
	// invalid number.
	weakness, ok := findWeakness(nums[:idx-preambleSize], invalid)
	if !ok {
		log.Fatalf("no contiguous range sums to %d", invalid)
	}
	fmt.Printf("Part Two: %d\n", weakness)
}
