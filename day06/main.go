// Advent of Code 2020, day 6: customs declaration answers per group.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// anyoneYes counts the distinct questions answered yes by anyone in the group.
func anyoneYes(group string) int {
	questions := make(map[rune]struct{})
	for _, q := range group {
		if q != '\n' {
			questions[q] = struct{}{}
		}
	}
	return len(questions)
}

// everyoneYes counts the questions answered yes by every person in the group.
func everyoneYes(group string) int {
	people := 0
	frequency := make(map[rune]int)
	for _, person := range strings.Split(group, "\n") {
		if person == "" {
			continue
		}
		people++
		for _, q := range person {
			frequency[q]++
		}
	}

	count := 0
	for _, freq := range frequency {
		if freq == people {
			count++
		}
	}
	return count
}

func sumGroups(groups []string, count func(string) int) int {
	sum := 0
	for _, group := range groups {
		sum += count(group)
	}
	return sum
}

func parseGroups(input string) []string {
	return strings.Split(input, "\n\n")
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	groups := parseGroups(string(input))

	fmt.Printf("Part One: %d\n", sumGroups(groups, anyoneYes))
	fmt.Printf("Part Two: %d\n", sumGroups(groups, everyoneYes))
}
