package parser

import (
	"os"
	"strings"

	"cyphersheet/internal/sheet"
)

// Parse converts the full text of one character-sheet document into a
// structured record. Parsing is best-effort: missing sections, an
// unrecognized header, or malformed lines degrade to absent fields, never
// to an error. The same text always yields the same record.
func Parse(text string) *sheet.Character {
	lines := splitLines(text)

	return &sheet.Character{
		Header:       parseHeader(lines),
		Attributes:   parseAttributes(lines),
		Abilities:    parseAbilities(SectionLines(lines, "Special Abilities")),
		Skills:       parseSkills(SectionLines(lines, "Skills")),
		Attacks:      parseAttacks(SectionLines(lines, "Attacks")),
		Cyphers:      parseCyphers(SectionLines(lines, "Cyphers")),
		Equipment:    parseEquipment(SectionLines(lines, "Equipment")),
		Advancements: parseAdvancements(SectionLines(lines, "Advancements")),
		Background:   parseSubsections(SectionLines(lines, "Background")),
		Notes:        parseSubsections(SectionLines(lines, "Notes")),
	}
}

// ParseFile reads and parses a character sheet from disk. Reading the
// file is the only fallible step.
func ParseFile(path string) (*sheet.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
