package parser

import (
	"strings"
	"unicode"
)

// LineKind is the coarse classification of one raw sheet line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineRule
	LineSection
	LineContinuation
)

// subsection headers inside Background/Notes cannot be told apart from
// body sentences by indentation alone, so lines that open with a common
// sentence-starting word are rejected outright.
var sentenceStarters = map[string]struct{}{
	"you":       {},
	"this":      {},
	"they":      {},
	"the":       {},
	"a":         {},
	"an":        {},
	"your":      {},
	"possible":  {},
	"sometimes": {},
	"depending": {},
}

// Classify reports the kind of a raw line. For LineSection the second
// return value is the canonical catalog name of the matched section.
func Classify(line string) (LineKind, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineBlank, ""
	}
	if isRule(trimmed) {
		return LineRule, ""
	}
	for _, name := range sectionCatalog {
		if strings.EqualFold(trimmed, name) {
			return LineSection, name
		}
	}
	return LineContinuation, ""
}

// isRule reports whether a line is a horizontal separator: nothing but
// dashes after trimming.
func isRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// IsSubsectionHeader decides whether a Background/Notes line opens a new
// titled subsection. The heuristic rejects first (indentation, sentence
// punctuation, sentence-starting words, length) and only then accepts
// title-cased or short lines. False negatives are preferred over
// promoting body text to a spurious header.
func IsSubsectionHeader(line string) bool {
	if indented(line) {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ':':
		return false
	}
	words := strings.Fields(trimmed)
	if _, stop := sentenceStarters[strings.ToLower(words[0])]; stop {
		return false
	}
	if len(words) > 8 || len(trimmed) > 80 {
		return false
	}
	if len(words) <= 3 {
		return true
	}
	return isTitleCased(words)
}

func indented(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ")
}

// isTitleCased reports whether every word opens with an uppercase letter.
// Words that open with a non-letter (digits, brackets) do not count
// against the line.
func isTitleCased(words []string) bool {
	for _, word := range words {
		first := []rune(word)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}
