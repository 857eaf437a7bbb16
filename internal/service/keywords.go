package service

import (
	"strings"
	"unicode"
)

// maxKeywords caps the keyword set stored on a knowledge resource.
const maxKeywords = 20

// stopWords are common English words excluded from derived keywords.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "also": {}, "been": {}, "being": {},
	"does": {}, "doing": {}, "each": {}, "from": {},
	"have": {}, "having": {}, "here": {}, "into": {}, "just": {},
	"more": {}, "most": {}, "other": {}, "over": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "very": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

// extractKeywords derives the keyword set for a knowledge resource:
// explicit terms (category, tags, community values) first, then words longer
// than three characters from title and description with stop-words removed.
// Everything is lowercased and deduplicated; at most maxKeywords survive.
func extractKeywords(explicit []string, title, description string) []string {
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})

	add := func(word string) bool {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			return true
		}
		if _, ok := seen[word]; ok {
			return true
		}
		if len(keywords) >= maxKeywords {
			return false
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		return true
	}

	for _, term := range explicit {
		if !add(term) {
			return keywords
		}
	}

	words := strings.FieldsFunc(title+" "+description, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, word := range words {
		word = strings.ToLower(word)
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if !add(word) {
			break
		}
	}
	return keywords
}

// resourcePriority scores a resource 0-10 with a fixed additive rubric:
// +3 for organizing/action content, +1 when trauma-informed, +2 per
// community value, capped at 10.
func resourcePriority(kind string, communityValues []string, traumaInformed bool) int {
	priority := 0
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "organizing", "action":
		priority += 3
	}
	if traumaInformed {
		priority++
	}
	priority += 2 * len(communityValues)
	if priority > 10 {
		priority = 10
	}
	return priority
}
