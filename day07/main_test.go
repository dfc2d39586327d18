package main

import "testing"

const sampleRules = `light red bags contain 1 bright white bag, 2 muted yellow bags.
dark orange bags contain 3 bright white bags, 4 muted yellow bags.
bright white bags contain 1 shiny gold bag.
muted yellow bags contain 2 shiny gold bags, 9 faded blue bags.
shiny gold bags contain 1 dark olive bag, 2 vibrant plum bags.
dark olive bags contain 3 faded blue bags, 4 dotted black bags.
vibrant plum bags contain 5 faded blue bags, 6 dotted black bags.
faded blue bags contain no other bags.
dotted black bags contain no other bags.
`

const nestedRules = `shiny gold bags contain 2 dark red bags.
dark red bags contain 2 dark orange bags.
dark orange bags contain 2 dark yellow bags.
dark yellow bags contain 2 dark green bags.
dark green bags contain 2 dark blue bags.
dark blue bags contain 2 dark violet bags.
dark violet bags contain no other bags.
`

func TestParseRule(t *testing.T) {
	parent, children, err := parseRule("light red bags contain 1 bright white bag, 2 muted yellow bags.")
	if err != nil {
		t.Fatalf("parseRule: %v", err)
	}
	if parent != "light red" {
		t.Errorf("parent = %q, want %q", parent, "light red")
	}
	want := []bagRule{{1, "bright white"}, {2, "muted yellow"}}
	if len(children) != len(want) {
		t.Fatalf("children = %v, want %v", children, want)
	}
	for i, rule := range children {
		if rule != want[i] {
			t.Errorf("children[%d] = %v, want %v", i, rule, want[i])
		}
	}
}

func TestParseRule_Empty(t *testing.T) {
	parent, children, err := parseRule("faded blue bags contain no other bags.")
	if err != nil {
		t.Fatalf("parseRule: %v", err)
	}
	if parent != "faded blue" {
		t.Errorf("parent = %q, want %q", parent, "faded blue")
	}
	if len(children) != 0 {
		t.Errorf("children = %v, want none", children)
	}
}

func TestParseRule_Malformed(t *testing.T) {
	if _, _, err := parseRule("this is not a bag rule"); err == nil {
		t.Fatal("expected error for malformed rule")
	}
	if _, _, err := parseRule("red bags contain some blue bags."); err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}
}

func TestCountContainers(t *testing.T) {
	rules, err := parseRules(sampleRules)
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if got := countContainers(rules, targetBag); got != 4 {
		t.Errorf("countContainers = %d, want 4", got)
	}
}

func TestCountContents(t *testing.T) {
	rules, err := parseRules(sampleRules)
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if got := countContents(rules, targetBag); got != 32 {
		t.Errorf("countContents = %d, want 32", got)
	}
}

func TestCountContents_DeeplyNested(t *testing.T) {
	rules, err := parseRules(nestedRules)
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if got := countContents(rules, targetBag); got != 126 {
		t.Errorf("countContents = %d, want 126", got)
	}
}
