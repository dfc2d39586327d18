// Advent of Code 2020, day 4: passport field validation.
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

var keyValPattern = regexp.MustCompile(`\b(\w{3}):(#?\w+)`)

// passport maps field keys (byr, iyr, ...) to their raw values.
type passport map[string]string

var requiredFields = []string{"byr", "iyr", "eyr", "hgt", "hcl", "ecl", "pid"}

var eyeColors = map[string]bool{
	"amb": true, "blu": true, "brn": true,
	"gry": true, "grn": true, "hzl": true, "oth": true,
}

// parsePassports splits the batch file into blank-line separated blocks and
// scans each for key:value pairs.
func parsePassports(input string) []passport {
	blocks := strings.Split(input, "\n\n")
	passports := make([]passport, 0, len(blocks))
	for _, block := range blocks {
		p := make(passport)
		for _, m := range keyValPattern.FindAllStringSubmatch(block, -1) {
			p[m[1]] = m[2]
		}
		passports = append(passports, p)
	}
	return passports
}

// hasRequiredFields is the part one rule: everything but cid must be present.
func (p passport) hasRequiredFields() bool {
	for _, f := range requiredFields {
		if _, ok := p[f]; !ok {
			return false
		}
	}
	return true
}

// fieldsValid is the part two rule: every required field must also parse and
// fall within its allowed envelope.
func (p passport) fieldsValid() bool {
	return yearInRange(p["byr"], 1920, 2002) &&
		yearInRange(p["iyr"], 2010, 2020) &&
		yearInRange(p["eyr"], 2020, 2030) &&
		validHeight(p["hgt"]) &&
		validHairColor(p["hcl"]) &&
		eyeColors[p["ecl"]] &&
		validPassportID(p["pid"])
}

func yearInRange(value string, min, max int) bool {
	if len(value) != 4 {
		return false
	}
	year, err := strconv.Atoi(value)
	return err == nil && year >= min && year <= max
}

func validHeight(value string) bool {
	if len(value) < 2 {
		return false
	}
	num, err := strconv.Atoi(value[:len(value)-2])
	if err != nil {
		return false
	}
	switch value[len(value)-2:] {
	case "cm":
		return num >= 150 && num <= 193
	case "in":
		return num >= 59 && num <= 76
	default:
		return false
	}
}

func validHairColor(value string) bool {
	hex, ok := strings.CutPrefix(value, "#")
	if !ok || len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

func validPassportID(value string) bool {
	if len(value) != 9 {
		return false
	}
	_, err := strconv.ParseUint(value, 10, 32)
	return err == nil
}

func countPassports(passports []passport, valid func(passport) bool) int {
	count := 0
	for _, p := range passports {
		if valid(p) {
			count++
		}
	}
	return count
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Solving for day 04.")

	passports := parsePassports(string(input))
	fmt.Printf("Part One: %d\n", countPassports(passports, passport.hasRequiredFields))
	fmt.Printf("Part Two: %d\n", countPassports(passports, passport.fieldsValid))
}
