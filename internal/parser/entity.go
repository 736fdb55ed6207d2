package parser

import (
	"regexp"
	"strconv"
	"strings"

	"cyphersheet/internal/sheet"
)

var (
	skillStartRe  = regexp.MustCompile(`^(\w.+?)\s+\((\w+)\)\s*$`)
	attackNameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	cypherStartRe = regexp.MustCompile(`^([A-Za-z\s]+)\s+\(Level\s+(\d+),\s+(.+?)\)\s*$`)
)

// entityStart decides whether a line opens a new entity. On a match it
// returns the entity name and any metadata tokens captured from the line.
type entityStart func(line string) (name string, meta []string, ok bool)

type entity struct {
	name string
	meta []string
	desc []string
}

// collectEntities folds a section's content lines into entities. The fold
// has two states: no entity open, or one entity under construction. A
// start line flushes the open entity and opens a new one; any other
// non-blank line is appended to the open entity's description, or dropped
// when nothing is open yet. Every opened entity is flushed exactly once.
func collectEntities(lines []string, start entityStart) []entity {
	out := make([]entity, 0)
	var open *entity
	for _, line := range lines {
		if name, meta, ok := start(line); ok {
			if open != nil {
				out = append(out, *open)
			}
			open = &entity{name: name, meta: meta, desc: make([]string, 0)}
			continue
		}
		if open != nil && strings.TrimSpace(line) != "" {
			open.desc = append(open.desc, strings.TrimSpace(line))
		}
	}
	if open != nil {
		out = append(out, *open)
	}
	return out
}

// Special Abilities: any non-indented line opens an ability; the whole
// line is the name.
func abilityStart(line string) (string, []string, bool) {
	if indented(line) || strings.TrimSpace(line) == "" {
		return "", nil, false
	}
	return strings.TrimSpace(line), nil, true
}

// Attacks: short non-indented lines of letters and spaces only.
func attackStart(line string) (string, []string, bool) {
	if indented(line) {
		return "", nil, false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= 50 || !attackNameRe.MatchString(trimmed) {
		return "", nil, false
	}
	return trimmed, nil, true
}

// Skills: "<name> (<level>)" where the level token is free-form.
func skillStart(line string) (string, []string, bool) {
	m := skillStartRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", nil, false
	}
	return m[1], []string{m[2]}, true
}

// Cyphers: "<name> (Level <n>, <type>)".
func cypherStart(line string) (string, []string, bool) {
	m := cypherStartRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", nil, false
	}
	return strings.TrimSpace(m[1]), []string{m[2], m[3]}, true
}

func parseAbilities(lines []string) []sheet.Ability {
	entities := collectEntities(lines, abilityStart)
	abilities := make([]sheet.Ability, 0, len(entities))
	for _, e := range entities {
		abilities = append(abilities, sheet.Ability{Name: e.name, Description: e.desc})
	}
	return abilities
}

func parseSkills(lines []string) []sheet.Skill {
	entities := collectEntities(lines, skillStart)
	skills := make([]sheet.Skill, 0, len(entities))
	for _, e := range entities {
		skills = append(skills, sheet.Skill{Name: e.name, Level: e.meta[0], Description: e.desc})
	}
	return skills
}

func parseAttacks(lines []string) []sheet.Attack {
	entities := collectEntities(lines, attackStart)
	attacks := make([]sheet.Attack, 0, len(entities))
	for _, e := range entities {
		attacks = append(attacks, sheet.Attack{Name: e.name, Description: e.desc})
	}
	return attacks
}

func parseCyphers(lines []string) []sheet.Cypher {
	entities := collectEntities(lines, cypherStart)
	cyphers := make([]sheet.Cypher, 0, len(entities))
	for _, e := range entities {
		level, _ := strconv.Atoi(e.meta[0])
		cyphers = append(cyphers, sheet.Cypher{
			Name:        e.name,
			Level:       level,
			Type:        e.meta[1],
			Description: e.desc,
		})
	}
	return cyphers
}
