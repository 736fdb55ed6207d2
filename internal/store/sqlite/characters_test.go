package sqlite

import (
	"context"
	"reflect"
	"testing"

	"cyphersheet/internal/sheet"
	"cyphersheet/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func TestUpsertAndGetCharacter(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	record := &sheet.Character{
		Header:    sheet.Header{Name: "Zamira", Type: "Weird Explorer", World: "Historical world"},
		Equipment: []string{"Rope (50ft)"},
	}
	input := store.CharacterInput{
		Name:       "Zamira",
		World:      "Historical world",
		Archetype:  "Weird Explorer",
		SourceFile: "sheets/zamira.txt",
		SourceHash: "abc123",
		Record:     record,
	}

	if err := client.UpsertCharacter(ctx, input); err != nil {
		t.Fatalf("upserting: %v", err)
	}

	got, err := client.GetCharacter(ctx, "zamira")
	if err != nil {
		t.Fatalf("getting: %v", err)
	}
	if got == nil {
		t.Fatalf("expected character")
	}
	if got.Name != "Zamira" || got.SourceHash != "abc123" {
		t.Fatalf("unexpected character: %#v", got)
	}
	if got.Record == nil || !reflect.DeepEqual(got.Record.Equipment, []string{"Rope (50ft)"}) {
		t.Fatalf("unexpected record: %#v", got.Record)
	}

	t.Run("upsert replaces by normalized name", func(t *testing.T) {
		input.SourceHash = "def456"
		if err := client.UpsertCharacter(ctx, input); err != nil {
			t.Fatalf("re-upserting: %v", err)
		}
		list, err := client.ListCharacters(ctx, "")
		if err != nil {
			t.Fatalf("listing: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected one character, got %d", len(list))
		}
		got, err := client.GetCharacter(ctx, "Zamira")
		if err != nil {
			t.Fatalf("getting: %v", err)
		}
		if got.SourceHash != "def456" {
			t.Fatalf("expected updated hash, got %q", got.SourceHash)
		}
	})

	t.Run("missing character returns nil", func(t *testing.T) {
		got, err := client.GetCharacter(ctx, "nobody")
		if err != nil {
			t.Fatalf("getting: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})
}

func TestListCharactersFilter(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	inputs := []store.CharacterInput{
		{Name: "Zamira", World: "Historical world", SourceFile: "a.txt", SourceHash: "1"},
		{Name: "Nia", World: "Standard", SourceFile: "b.txt", SourceHash: "2"},
	}
	for _, in := range inputs {
		if err := client.UpsertCharacter(ctx, in); err != nil {
			t.Fatalf("upserting %s: %v", in.Name, err)
		}
	}

	all, err := client.ListCharacters(ctx, "")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Nia" {
		t.Fatalf("unexpected list: %#v", all)
	}

	filtered, err := client.ListCharacters(ctx, "Standard")
	if err != nil {
		t.Fatalf("listing filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Nia" {
		t.Fatalf("unexpected filtered list: %#v", filtered)
	}
}

func TestSourceHashesAndRemoveStale(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	inputs := []store.CharacterInput{
		{Name: "Zamira", SourceFile: "a.txt", SourceHash: "1"},
		{Name: "Nia", SourceFile: "b.txt", SourceHash: "2"},
	}
	for _, in := range inputs {
		if err := client.UpsertCharacter(ctx, in); err != nil {
			t.Fatalf("upserting %s: %v", in.Name, err)
		}
	}

	hashes, err := client.GetSourceHashes(ctx)
	if err != nil {
		t.Fatalf("getting hashes: %v", err)
	}
	want := map[string]string{"a.txt": "1", "b.txt": "2"}
	if !reflect.DeepEqual(hashes, want) {
		t.Fatalf("unexpected hashes: %#v", hashes)
	}

	removed, err := client.RemoveStale(ctx, []string{"a.txt"})
	if err != nil {
		t.Fatalf("removing stale: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one removal, got %d", removed)
	}

	list, err := client.ListCharacters(ctx, "")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Zamira" {
		t.Fatalf("unexpected survivors: %#v", list)
	}

	t.Run("empty current set removes nothing", func(t *testing.T) {
		removed, err := client.RemoveStale(ctx, nil)
		if err != nil {
			t.Fatalf("removing stale: %v", err)
		}
		if removed != 0 {
			t.Fatalf("expected no removals, got %d", removed)
		}
	})
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "memory", dsn: "sqlite://:memory:", want: ":memory:"},
		{name: "relative path", dsn: "sqlite://library.db", want: "./library.db"},
		{name: "absolute path", dsn: "sqlite:///var/lib/sheets.db", want: "/var/lib/sheets.db"},
		{name: "path with query", dsn: "sqlite://library.db?mode=ro", want: "./library.db?mode=ro"},
		{name: "wrong scheme", dsn: "postgres://host/db", wantErr: true},
		{name: "empty path", dsn: "sqlite://", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDSN(tc.dsn)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
			}
		})
	}
}
