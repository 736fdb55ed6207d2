package parser

import (
	"regexp"
	"strconv"
	"strings"

	"cyphersheet/internal/sheet"
)

// DefaultWorld is recorded when a recognized header sentence carries no
// trailing world clause.
const DefaultWorld = "Standard"

var (
	headerRe     = regexp.MustCompile(`(?i)^(\w+)\s+is\s+an?\s+(.+?)(?:\s+in\s+an?\s+(.+?))?$`)
	descriptorRe = regexp.MustCompile(`(?i)\s+who\s+|\s+with\s+`)

	poolRe       = regexp.MustCompile(`Pool:\s+(\d+)\s+Edge:\s+(\d+)\s+Defense:\s+(\w+)`)
	initiativeRe = regexp.MustCompile(`Initiative:\s+(\w+)`)
	effortRe     = regexp.MustCompile(`Effort:\s+(\d+)`)
	armorRe      = regexp.MustCompile(`Armor:\s+(\d+)`)
	xpRe         = regexp.MustCompile(`Experience Points:\s+(\d+)`)
	recoveryRe   = regexp.MustCompile(`Recovery Roll:\s+(.+)`)
	tierRe       = regexp.MustCompile(`Tier:\s+(\d+)`)
)

// parseHeader recovers the identity block from the top of the document.
// All contiguous non-blank lines before the first blank or rule line are
// re-joined with single spaces (undoing soft line wraps), then matched
// against the "<name> is a/an <descriptors> [in a/an <world>]" sentence.
// An unrecognized opening leaves the header empty; that is not an error.
func parseHeader(lines []string) sheet.Header {
	var top []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isRule(trimmed) {
			break
		}
		top = append(top, trimmed)
	}

	var header sheet.Header
	m := headerRe.FindStringSubmatch(strings.Join(top, " "))
	if m == nil {
		return header
	}

	header.Name = m[1]
	header.World = m[3]
	if header.World == "" {
		header.World = DefaultWorld
	}

	// Descriptor clauses split on whole-word "who"/"with" and bind
	// positionally: type, then focus, then flavor.
	parts := descriptorRe.Split(m[2], -1)
	if len(parts) > 0 {
		header.Type = parts[0]
	}
	if len(parts) > 1 {
		header.Focus = parts[1]
	}
	if len(parts) > 2 {
		header.Flavor = parts[2]
	}
	return header
}

// parseAttributes scans every line for the fixed stat prefixes. Each
// pattern is independent: a missing line leaves only its own field unset.
func parseAttributes(lines []string) sheet.Attributes {
	var attrs sheet.Attributes
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Might:"):
			attrs.Might = parsePoolLine(line)
		case strings.HasPrefix(line, "Speed:"):
			attrs.Speed = parsePoolLine(line)
		case strings.HasPrefix(line, "Intellect:"):
			attrs.Intellect = parsePoolLine(line)
		case strings.HasPrefix(line, "Initiative:"):
			if m := initiativeRe.FindStringSubmatch(line); m != nil {
				attrs.Initiative = m[1]
			}
		case strings.HasPrefix(line, "Effort:"):
			if m := effortRe.FindStringSubmatch(line); m != nil {
				attrs.Effort, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(line, "Armor:"):
			if m := armorRe.FindStringSubmatch(line); m != nil {
				attrs.Armor, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(line, "Experience Points:"):
			if m := xpRe.FindStringSubmatch(line); m != nil {
				attrs.XP, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(line, "Recovery Roll:"):
			if m := recoveryRe.FindStringSubmatch(line); m != nil {
				attrs.RecoveryRoll = m[1]
			}
		}
	}
	return attrs
}

func parsePoolLine(line string) *sheet.Pool {
	m := poolRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	pool, _ := strconv.Atoi(m[1])
	edge, _ := strconv.Atoi(m[2])
	return &sheet.Pool{Pool: pool, Edge: edge, Defense: m[3]}
}

// parseEquipment keeps each line as one item with any leading bullet
// marker stripped. Money lines belong to a separate concern and are
// excluded from the list.
func parseEquipment(lines []string) []string {
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(line)
		if strings.HasPrefix(item, "-") {
			item = strings.TrimSpace(item[1:])
		}
		if item == "" || strings.HasPrefix(item, "Money:") {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parseAdvancements(lines []string) sheet.Advancements {
	var adv sheet.Advancements
	for _, line := range lines {
		if strings.Contains(line, "Tier:") {
			if m := tierRe.FindStringSubmatch(line); m != nil {
				adv.Tier, _ = strconv.Atoi(m[1])
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			adv.Choices = append(adv.Choices, trimmed)
		}
	}
	return adv
}

// parseSubsections walks a Background/Notes section. A line passing the
// subsection-header heuristic opens a new titled block; other non-blank
// lines attach to the open block, or are dropped when none is open. A
// repeated title resets its body in place, keeping the original position.
func parseSubsections(lines []string) []sheet.Subsection {
	out := make([]sheet.Subsection, 0)
	current := -1
	for _, line := range lines {
		if IsSubsectionHeader(line) {
			title := strings.TrimSpace(line)
			current = -1
			for i := range out {
				if out[i].Title == title {
					out[i].Body = nil
					current = i
					break
				}
			}
			if current < 0 {
				out = append(out, sheet.Subsection{Title: title})
				current = len(out) - 1
			}
			continue
		}
		if current >= 0 && strings.TrimSpace(line) != "" {
			out[current].Body = append(out[current].Body, strings.TrimSpace(line))
		}
	}
	return out
}
