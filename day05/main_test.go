package main

import "testing"

func TestSeatID(t *testing.T) {
	cases := []struct {
		pass string
		want int
	}{
		{"FBFBBFFRLR", 357},
		{"BFFFBBFRRR", 567},
		{"FFFBBBFRRR", 119},
		{"BBFFBBFRLL", 820},
	}
	for _, c := range cases {
		got, err := seatID(c.pass)
		if err != nil {
			t.Fatalf("seatID(%q): %v", c.pass, err)
		}
		if got != c.want {
			t.Errorf("seatID(%q) = %d, want %d", c.pass, got, c.want)
		}
	}
}

func TestSeatID_Invalid(t *testing.T) {
	if _, err := seatID("FBFBBFFRLX"); err == nil {
		t.Fatal("expected an error for an invalid character")
	}
	if _, err := seatID("FBFBBFFRL"); err == nil {
		t.Fatal("expected an error for a short pass")
	}
}

func TestPartOne(t *testing.T) {
	got, ok := partOne([]int{357, 567, 119, 820})
	if !ok || got != 820 {
		t.Fatalf("partOne = %d, %v; want 820", got, ok)
	}
}

func TestPartTwo(t *testing.T) {
	// Seats 11..15 with 13 missing.
	got, ok := partTwo([]int{11, 12, 14, 15})
	if !ok || got != 13 {
		t.Fatalf("partTwo = %d, %v; want 13", got, ok)
	}
}
