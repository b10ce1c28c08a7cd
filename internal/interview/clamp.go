package interview

import "strings"

// ClampWords truncates s to its first limit whitespace-delimited tokens.
// This is a defensive cap, not a negotiation: the instruction contract asks
// for 20-25 words, and whatever comes back is cut to the band before being
// stored or spoken.
func ClampWords(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) <= limit {
		return strings.TrimSpace(s)
	}
	return strings.Join(words[:limit], " ")
}
