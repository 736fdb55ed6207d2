package sheet

// Character is the structured record recovered from one character-sheet
// text file. Fields are populated best-effort: anything the source text
// does not contain stays at its zero value.
type Character struct {
	Header       Header       `json:"header"`
	Attributes   Attributes   `json:"attributes"`
	Abilities    []Ability    `json:"special_abilities"`
	Skills       []Skill      `json:"skills"`
	Attacks      []Attack     `json:"attacks"`
	Cyphers      []Cypher     `json:"cyphers"`
	Equipment    []string     `json:"equipment"`
	Advancements Advancements `json:"advancements"`
	Background   []Subsection `json:"background"`
	Notes        []Subsection `json:"notes"`
}

// Header is the identity block from the top of the sheet. World defaults
// to "Standard" when the source sentence has no trailing world clause.
type Header struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Focus  string `json:"focus,omitempty"`
	Flavor string `json:"flavor,omitempty"`
	World  string `json:"world,omitempty"`
}

// Pool is one of the three stat pools (Might, Speed, Intellect).
type Pool struct {
	Pool    int    `json:"pool"`
	Edge    int    `json:"edge"`
	Defense string `json:"defense"`
}

type Attributes struct {
	Might        *Pool  `json:"might,omitempty"`
	Speed        *Pool  `json:"speed,omitempty"`
	Intellect    *Pool  `json:"intellect,omitempty"`
	Initiative   string `json:"initiative,omitempty"`
	Effort       int    `json:"effort,omitempty"`
	Armor        int    `json:"armor,omitempty"`
	XP           int    `json:"xp,omitempty"`
	RecoveryRoll string `json:"recovery_roll,omitempty"`
}

type Ability struct {
	Name        string   `json:"name"`
	Description []string `json:"description"`
}

// Skill carries a free-form training level token ("Trained", "Specialized",
// "Inability", ...). Unknown tokens are preserved verbatim.
type Skill struct {
	Name        string   `json:"name"`
	Level       string   `json:"level"`
	Description []string `json:"description"`
}

type Attack struct {
	Name        string   `json:"name"`
	Description []string `json:"description"`
}

type Cypher struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Type        string   `json:"type"`
	Description []string `json:"description"`
}

type Advancements struct {
	Tier    int      `json:"tier,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Subsection is one titled block inside Background or Notes. Subsections
// keep their source order, so the two sections are association lists
// rather than maps.
type Subsection struct {
	Title string   `json:"title"`
	Body  []string `json:"body"`
}
