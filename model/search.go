package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

const previewLen = 100

type SearchMatch struct {
	MessageIndex int
	Role         Role
	Preview      string
	InSource     bool // Matched one of the message's sources rather than its text
}

// Search finds messages whose text contains query (case-insensitive, newest
// first), followed by messages whose sources fuzzy-match it, so "kp152"
// still finds "Art. 152 KP". Each message appears at most once.
func (m *Model) Search(query string) []SearchMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	msgs := m.Conversation.Messages()
	seen := make(map[int]bool)
	var matches []SearchMatch

	for i := len(msgs) - 1; i >= 0; i-- {
		pos := indexFold(msgs[i].Text, query)
		if pos < 0 {
			continue
		}
		seen[i] = true
		matches = append(matches, SearchMatch{
			MessageIndex: i,
			Role:         msgs[i].Role,
			Preview:      preview(msgs[i].Text, pos),
		})
	}

	var targets []string
	var owners []int
	for i, msg := range msgs {
		for _, src := range msg.Sources {
			targets = append(targets, src)
			owners = append(owners, i)
		}
	}

	// fuzzy.Find returns best score first
	for _, fm := range fuzzy.Find(query, targets) {
		idx := owners[fm.Index]
		if seen[idx] {
			continue
		}
		seen[idx] = true
		matches = append(matches, SearchMatch{
			MessageIndex: idx,
			Role:         msgs[idx].Role,
			Preview:      "Źródło: " + fm.Str,
			InSource:     true,
		})
	}

	return matches
}

// indexFold is a case-insensitive strings.Index. The offset it returns is
// into text itself; lowercasing can change a rune's byte length, so
// offsets into strings.ToLower(text) are not.
func indexFold(text, query string) int {
	needle := []rune(strings.ToLower(query))
	if len(needle) == 0 {
		return 0
	}

	var folded []rune
	var offsets []int
	for off, r := range text {
		folded = append(folded, unicode.ToLower(r))
		offsets = append(offsets, off)
	}

	for i := 0; i+len(needle) <= len(folded); i++ {
		match := true
		for j, r := range needle {
			if folded[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return offsets[i]
		}
	}
	return -1
}

// preview cuts a single-line excerpt of text around byte offset pos
func preview(text string, pos int) string {
	pos = min(max(pos, 0), len(text))
	start := 0
	if pos > previewLen/2 {
		start = pos - previewLen/2
		for start < len(text) && !utf8.RuneStart(text[start]) {
			start++
		}
	}

	excerpt := text[start:]
	truncated := false
	if utf8.RuneCountInString(excerpt) > previewLen {
		runes := []rune(excerpt)
		excerpt = string(runes[:previewLen])
		truncated = true
	}

	excerpt = strings.Join(strings.Fields(excerpt), " ")
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if truncated {
		excerpt += "..."
	}
	return excerpt
}
