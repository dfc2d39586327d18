// Advent of Code 2020, day 2: password policy validation.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var recordPattern = regexp.MustCompile(`^(\d+)-(\d+)\s+(\w):\s+(.*)$`)

type passwordRecord struct {
	start    int
	end      int
	pattern  byte
	password string
}

func parseRecord(line string) (passwordRecord, error) {
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return passwordRecord{}, fmt.Errorf("malformed password record: %q", line)
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return passwordRecord{}, err
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return passwordRecord{}, err
	}
	return passwordRecord{
		start:    start,
		end:      end,
		pattern:  m[3][0],
		password: m[4],
	}, nil
}

// validPatternCount checks the sled-rental policy: the pattern letter must
// occur between start and end times inclusive.
func (r passwordRecord) validPatternCount() bool {
	count := strings.Count(r.password, string(r.pattern))
	return count >= r.start && count <= r.end
}

// validPatternPosition checks the Toboggan policy: exactly one of the two
// 1-indexed positions must hold the pattern letter.
func (r passwordRecord) validPatternPosition() bool {
	matches := 0
	if r.start >= 1 && r.start <= len(r.password) && r.password[r.start-1] == r.pattern {
		matches++
	}
	if r.end >= 1 && r.end <= len(r.password) && r.password[r.end-1] == r.pattern {
		matches++
	}
	return matches == 1
}

func countValid(records []passwordRecord, valid func(passwordRecord) bool) int {
	count := 0
	for _, r := range records {
		if valid(r) {
			count++
		}
	}
	return count
}

func parseRecords(input string) ([]passwordRecord, error) {
	var records []passwordRecord
	for _, line := range strings.Split(strings.TrimRight(input, "\n"), "\n") {
		record, err := parseRecord(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func main() {
	fmt.Println("Solving for day 02.")

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	records, err := parseRecords(string(input))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Part one: %d\n", countValid(records, passwordRecord.validPatternCount))
	fmt.Printf("Part two: %d\n", countValid(records, passwordRecord.validPatternPosition))
}
