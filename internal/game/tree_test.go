package game

import "testing"

func TestTreeContains(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"apex", 645, -50, true},
		{"centre", 645, 300, true},
		{"bottom left corner", 421, 549, true},
		{"bottom right corner", 869, 549, true},
		{"above apex", 645, -51, false},
		{"below base", 645, 551, false},
		{"left of slope", 450, 0, false},
		{"right of slope", 840, 0, false},
		{"ornament stack", 37.5, 37.5, false},
	}
	for _, tc := range cases {
		if got := DefaultTree.Contains(tc.x, tc.y); got != tc.want {
			t.Fatalf("%s: Contains(%v, %v) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTreeHoldsUsesOrnamentCentre(t *testing.T) {
	// top-left just outside the base, centre inside
	o := &Ornament{X: 632.5, Y: 530}
	if !DefaultTree.Holds(o) {
		t.Fatal("centre (645, 542.5) is on the tree")
	}
	o.Y = 540
	if DefaultTree.Holds(o) {
		t.Fatal("centre (645, 552.5) is below the tree")
	}
}
