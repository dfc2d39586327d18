package main

import "testing"

const sampleLayout = `L.LL.LL.LL
LLLLLLL.LL
L.L.L..L..
LLLL.LL.LL
L.LL.LL.LL
L.LLLLL.LL
..L.L.....
LLLLLLLLLL
L.LLLLLL.L
L.LLLLL.LL
`

func mustParse(t *testing.T, layout string) *grid {
	t.Helper()
	g, err := parseGrid(layout)
	if err != nil {
		t.Fatalf("parseGrid: %v", err)
	}
	return g
}

func TestParseGrid(t *testing.T) {
	g := mustParse(t, "L.L\n#.#\n")
	if g.width != 3 || g.rows() != 2 {
		t.Errorf("grid is %dx%d, want 3x2", g.width, g.rows())
	}
	if g.at(1, 0) != occupied || g.at(0, 1) != floor {
		t.Error("tiles decoded incorrectly")
	}
}

func TestParseGrid_Rejects(t *testing.T) {
	if _, err := parseGrid("L.L\nLL\n"); err == nil {
		t.Error("expected error for inconsistent row widths")
	}
	if _, err := parseGrid("L?L\n"); err == nil {
		t.Error("expected error for unknown tile")
	}
	if _, err := parseGrid(""); err == nil {
		t.Error("expected error for empty layout")
	}
}

func TestAdjacentOccupied(t *testing.T) {
	g := mustParse(t, "##.\n#L#\n.#.\n")
	if got := adjacentOccupied(g, 1, 1); got != 5 {
		t.Errorf("adjacentOccupied(1,1) = %d, want 5", got)
	}
	if got := adjacentOccupied(g, 0, 0); got != 2 {
		t.Errorf("adjacentOccupied(0,0) = %d, want 2", got)
	}
}

func TestVisibleOccupied(t *testing.T) {
	t.Run("sees through floor in all directions", func(t *testing.T) {
		g := mustParse(t, `.......#.
...#.....
.#.......
.........
..#L....#
....#....
.........
#........
...#.....
`)
		if got := visibleOccupied(g, 4, 3); got != 8 {
			t.Errorf("visibleOccupied = %d, want 8", got)
		}
	})

	t.Run("empty seat blocks the view", func(t *testing.T) {
		g := mustParse(t, `.............
.L.L.#.#.#.#.
.............
`)
		if got := visibleOccupied(g, 1, 1); got != 0 {
			t.Errorf("visibleOccupied = %d, want 0", got)
		}
	})

	t.Run("no seat visible at all", func(t *testing.T) {
		g := mustParse(t, `.##.##.
#.#.#.#
##...##
...L...
##...##
#.#.#.#
.##.##.
`)
		if got := visibleOccupied(g, 3, 3); got != 0 {
			t.Errorf("visibleOccupied = %d, want 0", got)
		}
	})
}

func TestSimulate_Adjacent(t *testing.T) {
	g := mustParse(t, sampleLayout)
	if got := simulate(g, adjacentOccupied, 4); got != 37 {
		t.Errorf("steady state has %d occupied seats, want 37", got)
	}
}

func TestSimulate_Visible(t *testing.T) {
	g := mustParse(t, sampleLayout)
	if got := simulate(g, visibleOccupied, 5); got != 26 {
		t.Errorf("steady state has %d occupied seats, want 26", got)
	}
}

func TestSimulate_LeavesInputUntouched(t *testing.T) {
	g := mustParse(t, sampleLayout)
	before := string(g.cells)
	simulate(g, adjacentOccupied, 4)
	if string(g.cells) != before {
		t.Error("simulate mutated the input grid")
	}
}
