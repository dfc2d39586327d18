// Advent of Code 2020, day 7: nested bag containment rules.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

const targetBag = "shiny gold"

type bagRule struct {
	quantity int
	bag      string
}

// parseRule decodes one line of the form
// "light red bags contain 1 bright white bag, 2 muted yellow bags."
func parseRule(line string) (string, []bagRule, error) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ".")
	parent, contents, ok := strings.Cut(line, " bags contain ")
	if !ok {
		return "", nil, fmt.Errorf("malformed bag rule: %q", line)
	}
	if contents == "no other bags" {
		return parent, nil, nil
	}

	items := strings.Split(contents, ", ")
	rules := make([]bagRule, 0, len(items))
	for _, item := range items {
		quantity, rest, ok := strings.Cut(item, " ")
		if !ok {
			return "", nil, fmt.Errorf("malformed bag contents: %q", item)
		}
		qty, err := strconv.Atoi(quantity)
		if err != nil {
			return "", nil, fmt.Errorf("bad quantity in %q: %w", item, err)
		}
		name := strings.TrimSuffix(strings.TrimSuffix(rest, " bags"), " bag")
		rules = append(rules, bagRule{quantity: qty, bag: name})
	}
	return parent, rules, nil
}

func parseRules(input string) (map[string][]bagRule, error) {
	rules := make(map[string][]bagRule)
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parent, children, err := parseRule(line)
		if err != nil {
			return nil, err
		}
		rules[parent] = children
	}
	return rules, nil
}

// countContainers walks the inverted containment graph upward from target and
// counts the distinct bag colors that can eventually hold it.
func countContainers(rules map[string][]bagRule, target string) int {
	parents := make(map[string][]string)
	for parent, children := range rules {
		for _, child := range children {
			parents[child.bag] = append(parents[child.bag], parent)
		}
	}

	explored := make(map[string]bool)
	unexplored := append([]string(nil), parents[target]...)
	for len(unexplored) > 0 {
		bag := unexplored[len(unexplored)-1]
		unexplored = unexplored[:len(unexplored)-1]
		if explored[bag] {
			continue
		}
		explored[bag] = true
		unexplored = append(unexplored, parents[bag]...)
	}
	return len(explored)
}

// countContents totals the bags required inside target, scaling quantities as
// it descends.
func countContents(rules map[string][]bagRule, target string) int {
	total := 0
	stack := append([]bagRule(nil), rules[target]...)
	for len(stack) > 0 {
		rule := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		total += rule.quantity
		for _, child := range rules[rule.bag] {
			stack = append(stack, bagRule{quantity: child.quantity * rule.quantity, bag: child.bag})
		}
	}
	return total
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	rules, err := parseRules(string(input))
	if err != nil {
		log.Fatal(err)
	}
	if _, ok := rules[targetBag]; !ok {
		log.Fatalf("could not find %s bag in rules", targetBag)
	}

	fmt.Printf("Part One: %d\n", countContainers(rules, targetBag))
	fmt.Printf("Part Two: %d\n", countContents(rules, targetBag))
}
