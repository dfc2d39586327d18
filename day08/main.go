// Advent of Code 2020, day 8: halting a looping handheld boot program.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

type instruction struct {
	op  string
	arg int
}

func parseTape(input string) ([]instruction, error) {
	var tape []instruction
	for _, line := range strings.Split(strings.TrimRight(input, "\n"), "\n") {
		op, arg, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("malformed instruction: %q", line)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("bad argument in %q: %w", line, err)
		}
		switch op {
		case "acc", "jmp", "nop":
		default:
			return nil, fmt.Errorf("unknown operation: %q", op)
		}
		tape = append(tape, instruction{op: op, arg: n})
	}
	return tape, nil
}

// run executes the tape until the head leaves it or an instruction is about
// to execute a second time. It returns the accumulator, the heads executed in
// order, and whether the program halted by moving past the last instruction.
// A jump before the start counts as a crash, not a halt.
func run(tape []instruction) (acc int, visited []int, halted bool) {
	seen := make(map[int]bool)
	head := 0
	for head >= 0 && head < len(tape) {
		if seen[head] {
			return acc, visited, false
		}
		seen[head] = true
		visited = append(visited, head)

		inst := tape[head]
		switch inst.op {
		case "acc":
			acc += inst.arg
			head++
		case "jmp":
			head += inst.arg
		default:
			head++
		}
	}
	return acc, visited, head >= len(tape)
}

func partOne(tape []instruction) int {
	acc, _, _ := run(tape)
	return acc
}

// partTwo patches one jmp or nop on the looping path until the program halts.
// Only instructions the unpatched run actually executes can break the loop.
func partTwo(tape []instruction) (int, error) {
	_, visited, halted := run(tape)
	if halted {
		return 0, errors.New("program already halts without patching")
	}

	patched := make([]instruction, len(tape))
	for _, head := range visited {
		var flipped string
		switch tape[head].op {
		case "jmp":
			flipped = "nop"
		case "nop":
			flipped = "jmp"
		default:
			continue
		}
		copy(patched, tape)
		patched[head] = instruction{op: flipped, arg: tape[head].arg}
		if acc, _, halted := run(patched); halted {
			return acc, nil
		}
	}
	return 0, errors.New("no single patch makes the program halt")
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	tape, err := parseTape(string(input))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Part One: %d\n", partOne(tape))

	fixed, err := partTwo(tape)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Part Two: %d\n", fixed)
}
