package main

import "testing"

const sample = `ecl:gry pid:860033327 eyr:2020 hcl:#fffffd
byr:1937 iyr:2017 cid:147 hgt:183cm

iyr:2013 ecl:amb cid:350 eyr:2023 pid:028048884
hcl:#cfa07d byr:1929

hcl:#ae17e1 iyr:2013
eyr:2024
ecl:brn pid:760753108 byr:1931
hgt:179cm

hcl:#cfa07d eyr:2025 pid:166559648
iyr:2011 ecl:brn hgt:59in
`

const allInvalid = `eyr:1972 cid:100
hcl:#18171d ecl:amb hgt:170 pid:186cm iyr:2018 byr:1926

iyr:2019
hcl:#602927 eyr:1967 hgt:170cm
ecl:grn pid:012533040 byr:1946

hcl:dab227 iyr:2012
ecl:brn hgt:182cm pid:021572410 eyr:2020 byr:1992 cid:277

hgt:59cm ecl:zzz
eyr:2038 hcl:74454a iyr:2023
pid:3556412378 byr:2007
`

const allValid = `pid:087499704 hgt:74in ecl:grn iyr:2012 eyr:2030 byr:1980
hcl:#623a2f

eyr:2029 ecl:blu cid:129 byr:1989
iyr:2014 pid:896056539 hcl:#a97842 hgt:165cm

hcl:#888785
hgt:164cm byr:2001 iyr:2015 cid:88
pid:545766238 ecl:hzl
eyr:2022

iyr:2010 hgt:158cm hcl:#b6652a ecl:blu byr:1944 eyr:2021 pid:093154719
`

func TestRequiredFields(t *testing.T) {
	passports := parsePassports(sample)
	if got := countPassports(passports, passport.hasRequiredFields); got != 2 {
		t.Fatalf("required-field count = %d, want 2", got)
	}
}

func TestFieldsValid(t *testing.T) {
	if got := countPassports(parsePassports(allInvalid), passport.fieldsValid); got != 0 {
		t.Fatalf("invalid batch counted %d valid, want 0", got)
	}
	if got := countPassports(parsePassports(allValid), passport.fieldsValid); got != 4 {
		t.Fatalf("valid batch counted %d valid, want 4", got)
	}
}

func TestValidHeight(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"60in", true},
		{"190cm", true},
		{"190in", false},
		{"190", false},
		{"", false},
		{"cm", false},
	}
	for _, c := range cases {
		if got := validHeight(c.value); got != c.want {
			t.Errorf("validHeight(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestValidHairColor(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"#123abc", true},
		{"#123abz", false},
		{"123abc", false},
		{"#123ab", false},
		{"#123abcd", false},
	}
	for _, c := range cases {
		if got := validHairColor(c.value); got != c.want {
			t.Errorf("validHairColor(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestValidPassportID(t *testing.T) {
	if !validPassportID("000000001") {
		t.Fatal("leading zeros are allowed")
	}
	if validPassportID("0123456789") {
		t.Fatal("ten digits must be rejected")
	}
}
