package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"cyphersheet/internal/parser"
	"cyphersheet/internal/sheet"
	"cyphersheet/internal/store"
)

type ParseSheetInput struct {
	Text string `json:"text" jsonschema:"plain-text character sheet"`
}

type ParseSheetOutput struct {
	Record *sheet.Character `json:"record"`
}

type RenderSheetInput struct {
	Text       string `json:"text" jsonschema:"plain-text character sheet"`
	OutputPath string `json:"output_path" jsonschema:"path to write the PDF to"`
}

type RenderSheetOutput struct {
	Path  string `json:"path"`
	Pages int    `json:"pages"`
}

type GetCharacterInput struct {
	Name string `json:"name" jsonschema:"character name"`
}

type GetCharacterOutput struct {
	Name       string           `json:"name"`
	World      string           `json:"world"`
	Archetype  string           `json:"archetype"`
	SourceFile string           `json:"source_file"`
	Record     *sheet.Character `json:"record"`
}

type ListCharactersInput struct {
	World string `json:"world,omitempty" jsonschema:"restrict to a specific world"`
}

type CharacterSummaryOutput struct {
	Name       string `json:"name"`
	World      string `json:"world"`
	Archetype  string `json:"archetype"`
	SourceFile string `json:"source_file"`
}

type ListCharactersOutput struct {
	Characters []CharacterSummaryOutput `json:"characters"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "parse_sheet",
		Description: "Parse a plain-text character sheet into a structured record",
	}, s.handleParseSheet)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "render_sheet",
		Description: "Parse a plain-text character sheet and render it to a PDF",
	}, s.handleRenderSheet)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_character",
		Description: "Retrieve a stored character record by name",
	}, s.handleGetCharacter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_characters",
		Description: "List stored characters with an optional world filter",
	}, s.handleListCharacters)
}

func (s *Server) handleParseSheet(ctx context.Context, req *sdk.CallToolRequest, input ParseSheetInput) (*sdk.CallToolResult, ParseSheetOutput, error) {
	if input.Text == "" {
		return nil, ParseSheetOutput{}, fmt.Errorf("text is required")
	}
	return nil, ParseSheetOutput{Record: parser.Parse(input.Text)}, nil
}

func (s *Server) handleRenderSheet(ctx context.Context, req *sdk.CallToolRequest, input RenderSheetInput) (*sdk.CallToolResult, RenderSheetOutput, error) {
	if input.Text == "" {
		return nil, RenderSheetOutput{}, fmt.Errorf("text is required")
	}
	if input.OutputPath == "" {
		return nil, RenderSheetOutput{}, fmt.Errorf("output_path is required")
	}
	record := parser.Parse(input.Text)
	pages, err := s.renderer.RenderFile(input.OutputPath, record)
	if err != nil {
		return nil, RenderSheetOutput{}, err
	}
	return nil, RenderSheetOutput{Path: input.OutputPath, Pages: pages}, nil
}

func (s *Server) handleGetCharacter(ctx context.Context, req *sdk.CallToolRequest, input GetCharacterInput) (*sdk.CallToolResult, GetCharacterOutput, error) {
	if input.Name == "" {
		return nil, GetCharacterOutput{}, fmt.Errorf("name is required")
	}
	if s.db == nil {
		return nil, GetCharacterOutput{}, fmt.Errorf("no database configured")
	}
	character, err := s.db.GetCharacter(ctx, input.Name)
	if err != nil {
		return nil, GetCharacterOutput{}, err
	}
	if character == nil {
		return nil, GetCharacterOutput{}, fmt.Errorf("character not found")
	}
	return nil, characterOutputFromStore(character), nil
}

func (s *Server) handleListCharacters(ctx context.Context, req *sdk.CallToolRequest, input ListCharactersInput) (*sdk.CallToolResult, ListCharactersOutput, error) {
	if s.db == nil {
		return nil, ListCharactersOutput{}, fmt.Errorf("no database configured")
	}
	items, err := s.db.ListCharacters(ctx, input.World)
	if err != nil {
		return nil, ListCharactersOutput{}, err
	}

	output := make([]CharacterSummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, CharacterSummaryOutput{
			Name:       item.Name,
			World:      item.World,
			Archetype:  item.Archetype,
			SourceFile: item.SourceFile,
		})
	}
	return nil, ListCharactersOutput{Characters: output}, nil
}

func characterOutputFromStore(character *store.Character) GetCharacterOutput {
	return GetCharacterOutput{
		Name:       character.Name,
		World:      character.World,
		Archetype:  character.Archetype,
		SourceFile: character.SourceFile,
		Record:     character.Record,
	}
}
