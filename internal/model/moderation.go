package model

import (
	"strings"
	"time"
)

// ModerationItem is the queue view over pending submissions of either type.
type ModerationItem struct {
	ID              uint      `json:"id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	FlaggedReasons  []string  `json:"flagged_reasons"`
	ModerationNotes string    `json:"moderation_notes"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// SplitList turns a comma-separated column value into a clean slice,
// dropping blanks and duplicates.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// JoinList is the inverse of SplitList, normalizing before storage.
func JoinList(values []string) string {
	return strings.Join(SplitList(strings.Join(values, ",")), ",")
}
