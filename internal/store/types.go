package store

import "cyphersheet/internal/sheet"

type CharacterInput struct {
	Name       string
	World      string
	Archetype  string
	SourceFile string
	SourceHash string
	Record     *sheet.Character
}

type Character struct {
	Name       string
	World      string
	Archetype  string
	SourceFile string
	SourceHash string
	Record     *sheet.Character
}

type CharacterSummary struct {
	Name       string
	World      string
	Archetype  string
	SourceFile string
}
