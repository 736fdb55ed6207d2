package parser

import "strings"

// sectionCatalog lists the known section names in their canonical sheet
// order. The segmenter only scans forward in this order when looking for
// the end of a section, so a body line matching an earlier section name
// never truncates the current one.
var sectionCatalog = []string{
	"Special Abilities",
	"Skills",
	"Attacks",
	"Cyphers",
	"Equipment",
	"Advancements",
	"Background",
	"Notes",
}

func catalogIndex(name string) int {
	for i, candidate := range sectionCatalog {
		if strings.EqualFold(candidate, name) {
			return i
		}
	}
	return -1
}

// SectionLines returns the content lines of the named section: everything
// between the section's header line and the next catalog header that
// appears later in canonical order, with trailing whitespace stripped and
// blank or rule lines omitted. An absent section yields nil. If the same
// section header appears twice, only the first occurrence is honored.
func SectionLines(lines []string, name string) []string {
	idx := catalogIndex(name)
	if idx < 0 {
		return nil
	}

	start := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), name) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	if start < len(lines) && isRule(lines[start]) {
		start++
	}

	end := len(lines)
scan:
	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		for j := idx + 1; j < len(sectionCatalog); j++ {
			if strings.EqualFold(trimmed, sectionCatalog[j]) {
				end = i
				break scan
			}
		}
	}

	var content []string
	for _, line := range lines[start:end] {
		line = strings.TrimRight(line, " \t")
		if line == "" || isRule(line) {
			continue
		}
		content = append(content, line)
	}
	return content
}
