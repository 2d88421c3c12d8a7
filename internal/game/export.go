package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportRound appends the results of a finished round to a text file.
func ExportRound(s *Session, filename string, at time.Time) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(formatRound(s, at)); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

func formatRound(s *Session, at time.Time) string {
	var sb strings.Builder

	names := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = displayName(p)
	}
	nameOf := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		if id == "" {
			return "nobody"
		}
		return displayName(Player{ID: id})
	}

	sb.WriteString(fmt.Sprintf("Round %s\n", s.ID))
	sb.WriteString(fmt.Sprintf("Finished: %s\n", at.Format("2006-01-02 15:04:05")))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if s.HuntTarget != nil {
		sb.WriteString(fmt.Sprintf("Hunt target: %s %s\n", s.HuntTarget.Color, s.HuntTarget.Type))
	}
	sb.WriteString(fmt.Sprintf("Hunt winner: %s\n", nameOf(s.HuntWinnerID)))
	sb.WriteString(fmt.Sprintf("Winner: %s\n", nameOf(s.WinnerID)))

	if len(s.Players) > 0 {
		sb.WriteString("\nScores:\n")
		for _, p := range s.Players {
			line := fmt.Sprintf("- %s: %d points", displayName(p), p.Score)
			if bonus, ok := s.StyleBonuses[p.ID]; ok {
				line += fmt.Sprintf(" (style bonus %d)", bonus)
			}
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")
	return sb.String()
}

// displayName mirrors the scoreboard label: the chosen name, or the first
// seven characters of the connection id.
func displayName(p Player) string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) > 7 {
		return p.ID[:7]
	}
	return p.ID
}
