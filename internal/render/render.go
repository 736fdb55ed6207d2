// Package render lays out a parsed character record as a paginated PDF:
// a landscape sheet with the identity line and advancement panel up top,
// stat pools and combat sections on the first page, and background and
// notes on the following page. Every record field is optional; absent
// fields simply omit their visual block.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"cyphersheet/internal/config"
	"cyphersheet/internal/sheet"
)

// PlaceholderName is rendered when the source text had no recognizable
// header sentence.
const PlaceholderName = "Unnamed Character"

type Renderer struct {
	pageSize string
	theme    theme
}

type theme struct {
	primary   rgb
	secondary rgb
	accent    rgb
	lightBG   rgb
}

type rgb struct {
	r, g, b int
}

func New(cfg config.RenderConfig) (*Renderer, error) {
	t, err := parseTheme(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("render theme: %w", err)
	}
	pageSize := cfg.PageSize
	if pageSize == "" {
		pageSize = "Letter"
	}
	return &Renderer{pageSize: pageSize, theme: t}, nil
}

func parseTheme(cfg config.ThemeConfig) (theme, error) {
	var t theme
	var err error
	if t.primary, err = parseHexColor(cfg.Primary, "#2C3E50"); err != nil {
		return t, err
	}
	if t.secondary, err = parseHexColor(cfg.Secondary, "#3498DB"); err != nil {
		return t, err
	}
	if t.accent, err = parseHexColor(cfg.Accent, "#E74C3C"); err != nil {
		return t, err
	}
	if t.lightBG, err = parseHexColor(cfg.LightBG, "#ECF0F1"); err != nil {
		return t, err
	}
	return t, nil
}

func parseHexColor(value, fallback string) (rgb, error) {
	if value == "" {
		value = fallback
	}
	if len(value) != 7 || value[0] != '#' {
		return rgb{}, fmt.Errorf("invalid color %q", value)
	}
	var c rgb
	if _, err := fmt.Sscanf(value[1:], "%02x%02x%02x", &c.r, &c.g, &c.b); err != nil {
		return rgb{}, fmt.Errorf("invalid color %q", value)
	}
	return c, nil
}

// RenderFile writes the laid-out sheet to path and reports the page
// count.
func (r *Renderer) RenderFile(path string, c *sheet.Character) (int, error) {
	pdf := r.build(c)
	pages := pdf.PageCount()
	if err := pdf.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("writing pdf: %w", err)
	}
	return pages, nil
}

// Render writes the laid-out sheet to w.
func (r *Renderer) Render(w io.Writer, c *sheet.Character) error {
	pdf := r.build(c)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func (r *Renderer) build(c *sheet.Character) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", r.pageSize, "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 12)

	name := c.Header.Name
	if name == "" {
		name = PlaceholderName
	}
	pdf.SetTitle(name, true)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("%s  ·  generated %s  ·  page %d",
			name, time.Now().Format("2006-01-02"), pdf.PageNo())
		pdf.CellFormat(0, 6, footer, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	r.identityBlock(pdf, c, name)
	r.advancementPanel(pdf, c.Advancements)
	r.attributesTable(pdf, c.Attributes)

	r.entitySection(pdf, "SPECIAL ABILITIES", abilityBlocks(c.Abilities))
	r.entitySection(pdf, "ATTACKS", attackBlocks(c.Attacks))
	r.skillsSection(pdf, c.Skills)
	r.entitySection(pdf, "CYPHERS", cypherBlocks(c.Cyphers))
	r.equipmentSection(pdf, c.Equipment)
	r.recoveryDamagePanel(pdf, c.Attributes)

	if len(c.Background) > 0 || len(c.Notes) > 0 {
		pdf.AddPage()
		r.subsectionSection(pdf, "BACKGROUND", c.Background)
		r.subsectionSection(pdf, "NOTES", c.Notes)
	}

	return pdf
}

func (r *Renderer) identityBlock(pdf *gofpdf.Fpdf, c *sheet.Character, name string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(r.theme.primary.r, r.theme.primary.g, r.theme.primary.b)
	pdf.CellFormat(0, 8, name, "", 1, "L", false, 0, "")

	subtitle := descriptorLine(c.Header)
	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 9.5)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, subtitle, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

// descriptorLine reassembles the header sentence fragments for display.
func descriptorLine(h sheet.Header) string {
	var parts []string
	if h.Type != "" {
		parts = append(parts, h.Type)
	}
	if h.Focus != "" {
		parts = append(parts, "who "+h.Focus)
	}
	if h.Flavor != "" {
		parts = append(parts, "with "+h.Flavor)
	}
	if h.World != "" {
		parts = append(parts, "·", h.World)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) advancementPanel(pdf *gofpdf.Fpdf, adv sheet.Advancements) {
	if adv.Tier == 0 && len(adv.Choices) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(r.theme.accent.r, r.theme.accent.g, r.theme.accent.b)
	title := "ADVANCEMENT"
	if adv.Tier > 0 {
		title = fmt.Sprintf("ADVANCEMENT · TIER %d", adv.Tier)
	}
	pdf.CellFormat(0, 5, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	for _, choice := range adv.Choices {
		pdf.CellFormat(0, 4, choice, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func (r *Renderer) attributesTable(pdf *gofpdf.Fpdf, attrs sheet.Attributes) {
	pools := []struct {
		label string
		pool  *sheet.Pool
	}{
		{"Might", attrs.Might},
		{"Speed", attrs.Speed},
		{"Intellect", attrs.Intellect},
	}

	any := false
	for _, p := range pools {
		if p.pool != nil {
			any = true
		}
	}
	if any {
		const colW = 38.0
		pdf.SetFont("Helvetica", "B", 8.5)
		pdf.SetFillColor(r.theme.secondary.r, r.theme.secondary.g, r.theme.secondary.b)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range []string{"Stat", "Pool", "Edge", "Defense"} {
			pdf.CellFormat(colW, 5.5, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetTextColor(0, 0, 0)
		fill := false
		for _, p := range pools {
			if p.pool == nil {
				continue
			}
			if fill {
				pdf.SetFillColor(r.theme.lightBG.r, r.theme.lightBG.g, r.theme.lightBG.b)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.SetFont("Helvetica", "B", 8.5)
			pdf.CellFormat(colW, 5.5, p.label, "1", 0, "L", true, 0, "")
			pdf.SetFont("Helvetica", "", 8.5)
			pdf.CellFormat(colW, 5.5, fmt.Sprintf("%d", p.pool.Pool), "1", 0, "C", true, 0, "")
			pdf.CellFormat(colW, 5.5, fmt.Sprintf("%d", p.pool.Edge), "1", 0, "C", true, 0, "")
			pdf.CellFormat(colW, 5.5, p.pool.Defense, "1", 0, "C", true, 0, "")
			pdf.Ln(-1)
			fill = !fill
		}
	}

	scalars := scalarLine(attrs)
	if scalars != "" {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 8.5)
		pdf.CellFormat(0, 4.5, scalars, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func scalarLine(attrs sheet.Attributes) string {
	var parts []string
	if attrs.Initiative != "" {
		parts = append(parts, "Initiative: "+attrs.Initiative)
	}
	if attrs.Effort > 0 {
		parts = append(parts, fmt.Sprintf("Effort: %d", attrs.Effort))
	}
	if attrs.Armor > 0 {
		parts = append(parts, fmt.Sprintf("Armor: %d", attrs.Armor))
	}
	if attrs.XP > 0 {
		parts = append(parts, fmt.Sprintf("XP: %d", attrs.XP))
	}
	return strings.Join(parts, "    ")
}

// entityBlock is one renderable name+body pair from any of the four
// repeating sections.
type entityBlock struct {
	name string
	body string
}

func abilityBlocks(abilities []sheet.Ability) []entityBlock {
	blocks := make([]entityBlock, 0, len(abilities))
	for _, a := range abilities {
		blocks = append(blocks, entityBlock{name: a.Name, body: strings.Join(a.Description, " ")})
	}
	return blocks
}

func attackBlocks(attacks []sheet.Attack) []entityBlock {
	blocks := make([]entityBlock, 0, len(attacks))
	for _, a := range attacks {
		blocks = append(blocks, entityBlock{name: a.Name, body: strings.Join(a.Description, " ")})
	}
	return blocks
}

func skillBlocks(skills []sheet.Skill) []entityBlock {
	blocks := make([]entityBlock, 0, len(skills))
	for _, s := range skills {
		blocks = append(blocks, entityBlock{
			name: fmt.Sprintf("%s (%s)", s.Name, s.Level),
			body: strings.Join(s.Description, " "),
		})
	}
	return blocks
}

func cypherBlocks(cyphers []sheet.Cypher) []entityBlock {
	blocks := make([]entityBlock, 0, len(cyphers))
	for _, c := range cyphers {
		blocks = append(blocks, entityBlock{
			name: fmt.Sprintf("%s (Level %d, %s)", c.Name, c.Level, c.Type),
			body: strings.Join(c.Description, " "),
		})
	}
	return blocks
}

func (r *Renderer) entitySection(pdf *gofpdf.Fpdf, title string, blocks []entityBlock) {
	if len(blocks) == 0 {
		return
	}
	r.sectionHeader(pdf, title)
	r.entityBlocks(pdf, blocks)
}

// skillsSection is the entity section plus the training-level legend the
// printed sheet carries under the header.
func (r *Renderer) skillsSection(pdf *gofpdf.Fpdf, skills []sheet.Skill) {
	blocks := skillBlocks(skills)
	if len(blocks) == 0 {
		return
	}
	r.sectionHeader(pdf, "SKILLS")
	pdf.SetFont("Helvetica", "I", 7.6)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 4, "Inability = hinder 1    Practiced = 0    Trained = ease 1    Specialized = ease 2", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
	r.entityBlocks(pdf, blocks)
}

func (r *Renderer) entityBlocks(pdf *gofpdf.Fpdf, blocks []entityBlock) {
	for _, block := range blocks {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(r.theme.secondary.r, r.theme.secondary.g, r.theme.secondary.b)
		pdf.CellFormat(0, 4.5, block.name, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		if block.body != "" {
			pdf.SetFont("Helvetica", "", 8.4)
			pdf.MultiCell(0, 4, block.body, "", "L", false)
		}
		pdf.Ln(1)
	}
	pdf.Ln(1)
}

func (r *Renderer) equipmentSection(pdf *gofpdf.Fpdf, items []string) {
	if len(items) == 0 {
		return
	}
	r.sectionHeader(pdf, "EQUIPMENT")
	pdf.SetFont("Helvetica", "", 8.4)
	lm, _, _, _ := pdf.GetMargins()
	for _, item := range items {
		pdf.SetX(lm + 3)
		pdf.MultiCell(0, 4, "• "+item, "", "L", false)
	}
	pdf.Ln(2)
}

// recoveryDamagePanel draws the boxed panel pairing the recovery-roll
// tick boxes with the two damage-track statuses, the way the printed
// sheet lays them out side by side.
func (r *Renderer) recoveryDamagePanel(pdf *gofpdf.Fpdf, attrs sheet.Attributes) {
	if attrs.RecoveryRoll == "" {
		return
	}

	lm, _, rm, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	panelW := pageW - lm - rm
	top := pdf.GetY()

	const (
		pad   = 2.0
		leftW = 48.0
		lineH = 3.8
	)

	y := top + pad
	pdf.SetFont("Helvetica", "B", 8.6)
	pdf.SetTextColor(r.theme.primary.r, r.theme.primary.g, r.theme.primary.b)
	pdf.SetXY(lm+pad, y)
	pdf.CellFormat(leftW, lineH, "RECOVERY ROLLS "+attrs.RecoveryRoll, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 7.8)
	y += lineH + 1
	for _, interval := range []string{"1 ACTION", "10 MINS", "1 HOUR", "10 HOURS"} {
		pdf.SetXY(lm+pad, y)
		pdf.CellFormat(leftW, lineH, "[  ] "+interval, "", 0, "L", false, 0, "")
		y += lineH
	}
	bottom := y

	dmgX := lm + pad + leftW + 6
	y = top + pad
	pdf.SetFont("Helvetica", "B", 8.6)
	pdf.SetTextColor(r.theme.primary.r, r.theme.primary.g, r.theme.primary.b)
	pdf.SetXY(dmgX, y)
	pdf.CellFormat(0, lineH, "DAMAGE TRACK", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y += lineH + 1

	const impairedW = 84.0
	debX := dmgX + impairedW + 6
	debW := panelW - (debX - lm) - pad
	impairedBottom := r.damageStatus(pdf, dmgX, y, impairedW, "IMPAIRED", []string{
		"+1 Effort per level",
		"Ignore minor and major effect results on rolls",
		"Combat roll of 17-20 deals only +1 damage",
	})
	debilitatedBottom := r.damageStatus(pdf, debX, y, debW, "DEBILITATED", []string{
		"Can move only an immediate distance",
		"Cannot move if Speed Pool is 0",
	})
	if impairedBottom > bottom {
		bottom = impairedBottom
	}
	if debilitatedBottom > bottom {
		bottom = debilitatedBottom
	}

	pdf.SetDrawColor(r.theme.primary.r, r.theme.primary.g, r.theme.primary.b)
	pdf.SetLineWidth(0.3)
	pdf.Rect(lm, top, panelW, bottom-top+pad, "D")
	pdf.SetY(bottom + pad + 2)
}

// damageStatus draws one tick-box status label with its effect notes
// indented beneath it and reports the bottom edge.
func (r *Renderer) damageStatus(pdf *gofpdf.Fpdf, x, y, w float64, label string, notes []string) float64 {
	const lineH = 3.8
	pdf.SetFont("Helvetica", "B", 7.8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, lineH, "[  ] "+label, "", 0, "L", false, 0, "")
	y += lineH
	pdf.SetFont("Helvetica", "", 7.4)
	for _, note := range notes {
		pdf.SetXY(x+4, y)
		pdf.MultiCell(w-4, 3.4, note, "", "L", false)
		y = pdf.GetY()
	}
	return y
}

func (r *Renderer) subsectionSection(pdf *gofpdf.Fpdf, title string, subs []sheet.Subsection) {
	if len(subs) == 0 {
		return
	}
	r.sectionHeader(pdf, title)
	for _, sub := range subs {
		pdf.SetFont("Helvetica", "B", 8.8)
		pdf.CellFormat(0, 4.5, sub.Title, "", 1, "L", false, 0, "")
		if len(sub.Body) > 0 {
			pdf.SetFont("Helvetica", "", 8.4)
			pdf.MultiCell(0, 4, strings.Join(sub.Body, " "), "", "L", false)
		}
		pdf.Ln(1)
	}
	pdf.Ln(1)
}

func (r *Renderer) sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 9.5)
	pdf.SetFillColor(r.theme.secondary.r, r.theme.secondary.g, r.theme.secondary.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 5.5, " "+title, "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}
