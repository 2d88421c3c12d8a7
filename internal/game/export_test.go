package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func finishedSession() *Session {
	return &Session{
		ID:    "round-1",
		Stage: StageEnd,
		Players: []Player{
			{ID: "abcdefghijk", Score: 75},
			{ID: "p2", Name: "Dasher", Score: 30},
		},
		StyleBonuses: map[string]int{"abcdefghijk": 5, "p2": 0},
		HuntTarget:   &Ornament{ID: 1, Type: "EMS", Color: "red"},
		HuntWinnerID: "p2",
		WinnerID:     "abcdefghijk",
	}
}

func TestExportRoundAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "results.txt")
	at := time.Date(2026, 12, 24, 18, 30, 0, 0, time.UTC)

	if err := ExportRound(finishedSession(), file, at); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := ExportRound(finishedSession(), file, at); err != nil {
		t.Fatalf("second export: %v", err)
	}

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(b)
	if n := strings.Count(out, "Round round-1"); n != 2 {
		t.Fatalf("expected two appended rounds, got %d", n)
	}
	for _, want := range []string{
		"Finished: 2026-12-24 18:30:00",
		"Hunt target: red EMS",
		"Hunt winner: Dasher",
		"Winner: abcdefg",
		"- abcdefg: 75 points (style bonus 5)",
		"- Dasher: 30 points (style bonus 0)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
}

func TestFormatRoundWithoutWinner(t *testing.T) {
	out := formatRound(&Session{ID: "r"}, time.Unix(0, 0).UTC())
	if !strings.Contains(out, "Hunt winner: nobody") {
		t.Fatalf("expected placeholder winner:\n%s", out)
	}
}
