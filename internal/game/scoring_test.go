package game

import "testing"

func TestStyleBonuses(t *testing.T) {
	ornaments := []*Ornament{
		{ID: 1, X: 0, Y: 0, Owner: "a"},
		{ID: 2, X: 40, Y: 0, Owner: "a"},
		{ID: 3, X: 20, Y: 60, Owner: "a"},
		{ID: 4, X: 500, Y: 500, Owner: "b"},
		{ID: 5, X: 10, Y: 10},
	}
	players := []Player{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := StyleBonuses(players, ornaments)

	// a: mean (20, 20); |dx|+|dy| = 40 + 40 + 40 = 120 -> 6
	if got["a"] != 6 {
		t.Fatalf("expected a=6, got %d", got["a"])
	}
	if got["b"] != 0 {
		t.Fatalf("a single ornament has no spread, expected 0, got %d", got["b"])
	}
	if bonus, ok := got["c"]; !ok || bonus != 0 {
		t.Fatalf("player owning nothing should get an explicit 0, got %d (present=%v)", bonus, ok)
	}
	if len(got) != 3 {
		t.Fatalf("expected one entry per player, got %v", got)
	}
}

func TestStyleBonusFloors(t *testing.T) {
	ornaments := []*Ornament{
		{X: 0, Y: 0, Owner: "a"},
		{X: 39, Y: 0, Owner: "a"},
	}
	// spread 19.5 + 19.5 = 39 -> 1
	if got := StyleBonuses([]Player{{ID: "a"}}, ornaments)["a"]; got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestStyleBonusesEmpty(t *testing.T) {
	if got := StyleBonuses(nil, nil); len(got) != 0 {
		t.Fatalf("expected no bonuses, got %v", got)
	}
}
