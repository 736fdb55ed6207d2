package render

import (
	"bytes"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cyphersheet/internal/config"
	"cyphersheet/internal/sheet"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(config.RenderConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func sampleCharacter() *sheet.Character {
	return &sheet.Character{
		Header: sheet.Header{
			Name:  "Zamira",
			Type:  "Graceful Glaive",
			Focus: "Masters Weaponry",
			World: "Standard",
		},
		Attributes: sheet.Attributes{
			Might:        &sheet.Pool{Pool: 16, Edge: 1, Defense: "Practiced"},
			Speed:        &sheet.Pool{Pool: 14, Edge: 2, Defense: "Trained"},
			Intellect:    &sheet.Pool{Pool: 10, Edge: 0, Defense: "Practiced"},
			Initiative:   "Trained",
			Effort:       1,
			Armor:        2,
			XP:           4,
			RecoveryRoll: "1d6+1",
		},
		Abilities: []sheet.Ability{
			{Name: "Trained Without Armor", Description: []string{"You are trained in Speed defense."}},
		},
		Skills: []sheet.Skill{
			{Name: "Balancing", Level: "Trained", Description: []string{"You keep your footing."}},
		},
		Attacks: []sheet.Attack{
			{Name: "Broadsword", Description: []string{"4 damage, medium weapon."}},
		},
		Cyphers: []sheet.Cypher{
			{Name: "Detonation", Level: 4, Type: "Ammo", Description: []string{"Explodes on impact."}},
		},
		Equipment:    []string{"Broadsword", "Leather armor"},
		Advancements: sheet.Advancements{Tier: 2, Choices: []string{"[X] Increase Capabilities"}},
		Background: []sheet.Subsection{
			{Title: "Early Life", Body: []string{"Raised among traveling duelists."}},
		},
		Notes: []sheet.Subsection{
			{Title: "Session One", Body: []string{"Met the caravan."}},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleCharacter()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic, got %q", buf.Bytes()[:8])
	}
}

func TestRenderEmptyCharacter(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(&buf, &sheet.Character{}); err != nil {
		t.Fatalf("Render() on empty record error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty record produced no output")
	}
}

func TestRenderFilePageCount(t *testing.T) {
	r := testRenderer(t)
	path := filepath.Join(t.TempDir(), "zamira.pdf")
	pages, err := r.RenderFile(path, sampleCharacter())
	if err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}
	if pages != 2 {
		t.Errorf("pages = %d, want 2 (sheet plus background page)", pages)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestRenderFileOmitsBackgroundPage(t *testing.T) {
	r := testRenderer(t)
	c := sampleCharacter()
	c.Background = nil
	c.Notes = nil
	path := filepath.Join(t.TempDir(), "zamira.pdf")
	pages, err := r.RenderFile(path, c)
	if err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

// pageText inflates every flate stream in the PDF and concatenates the
// results, so tests can look for drawn text operators.
func pageText(t *testing.T, pdf []byte) string {
	t.Helper()
	var out bytes.Buffer
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		raw := bytes.TrimSuffix(rest[:j], []byte("\n"))
		rest = rest[j:]
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			continue
		}
		data, _ := io.ReadAll(zr)
		out.Write(data)
		zr.Close()
	}
	if out.Len() == 0 {
		t.Fatal("no flate content streams found in PDF output")
	}
	return out.String()
}

func TestRenderRecoveryDamagePanel(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	c := &sheet.Character{Attributes: sheet.Attributes{RecoveryRoll: "1d6+2"}}
	if err := r.Render(&buf, c); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	text := pageText(t, buf.Bytes())
	for _, want := range []string{
		"RECOVERY ROLLS 1d6+2",
		"1 ACTION",
		"10 HOURS",
		"DAMAGE TRACK",
		"IMPAIRED",
		"DEBILITATED",
		"Combat roll of 17-20 deals only +1 damage",
		"Cannot move if Speed Pool is 0",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("page text missing %q", want)
		}
	}
}

func TestRenderOmitsPanelWithoutRecoveryRoll(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(&buf, &sheet.Character{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if text := pageText(t, buf.Bytes()); strings.Contains(text, "DAMAGE TRACK") {
		t.Error("damage track rendered for a record with no recovery roll")
	}
}

func TestRenderSkillsLegend(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	c := &sheet.Character{
		Skills: []sheet.Skill{{Name: "Balancing", Level: "Trained"}},
	}
	if err := r.Render(&buf, c); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := pageText(t, buf.Bytes())
	if !strings.Contains(text, "Inability = hinder 1") || !strings.Contains(text, "Specialized = ease 2") {
		t.Error("skills legend not rendered")
	}
	// Parentheses are escaped inside PDF string literals.
	if !strings.Contains(text, `Balancing \(Trained\)`) {
		t.Error("skill entry not rendered")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    rgb
		wantErr bool
	}{
		{name: "primary", value: "#2C3E50", want: rgb{r: 0x2C, g: 0x3E, b: 0x50}},
		{name: "empty falls back", value: "", want: rgb{r: 0xAB, g: 0xCD, b: 0xEF}},
		{name: "missing hash", value: "2C3E50", wantErr: true},
		{name: "too short", value: "#FFF", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHexColor(tt.value, "#ABCDEF")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseHexColor(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexColor(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("parseHexColor(%q) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}
}
