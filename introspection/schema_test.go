package introspection

import (
	"os"
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
)

func loadFixture(t *testing.T) *Query {
	t.Helper()

	raw, err := os.ReadFile("../testdata/schema.json")
	if err != nil {
		t.Fatal(err)
	}

	q, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}

	return q
}

func TestSDL(t *testing.T) {
	t.Parallel()

	sdl := SDL(loadFixture(t))

	for _, want := range []string{
		"type User implements Node",
		"friends: [User]",
		"posts: [Post!]",
		"nickname: String @deprecated(reason: \"use name\")",
		"union SearchResult = User | Post",
		"input CreateUserInput",
		"status: Status = ACTIVE",
		"users(first: Int = 10): [User!]!",
		"directive @auth",
	} {
		if !strings.Contains(sdl, want) {
			t.Errorf("SDL() does not contain %q\n%s", want, sdl)
		}
	}

	for _, unwanted := range []string{"__Schema", "scalar String", "directive @include"} {
		if strings.Contains(sdl, unwanted) {
			t.Errorf("SDL() should not contain %q", unwanted)
		}
	}
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	schema, err := LoadSchema("fixture", loadFixture(t))
	if err != nil {
		t.Fatalf("LoadSchema() unexpected error: %v", err)
	}

	if schema.Query == nil || schema.Query.Name != "Query" {
		t.Fatalf("Query root = %v", schema.Query)
	}
	if schema.Mutation == nil || schema.Mutation.Name != "Mutation" {
		t.Fatalf("Mutation root = %v", schema.Mutation)
	}

	user := schema.Types["User"]
	if user == nil || user.Kind != ast.Object {
		t.Fatalf("User = %v", user)
	}
	if got := user.Fields.ForName("friends").Type.String(); got != "[User]" {
		t.Errorf("friends type = %q, want %q", got, "[User]")
	}
}

func TestLoadSchema_CustomDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantSDL string
	}{
		{
			name: "引数のないディレクティブ",
			raw: `{"data":{"__schema":{"queryType":{"name":"Query"},
				"types":[{"kind":"OBJECT","name":"Query","fields":[{"name":"ok","args":[],"type":{"kind":"SCALAR","name":"Boolean","ofType":null}}]}],
				"directives":[{"name":"auth","locations":["FIELD_DEFINITION"],"args":[]}]}}}`,
			wantSDL: "directive @auth on FIELD_DEFINITION",
		},
		{
			name: "引数と繰り返し指定のあるディレクティブ",
			raw: `{"data":{"__schema":{"queryType":{"name":"Query"},
				"types":[{"kind":"OBJECT","name":"Query","fields":[{"name":"ok","args":[],"type":{"kind":"SCALAR","name":"Boolean","ofType":null}}]}],
				"directives":[{"name":"tag","locations":["OBJECT","FIELD_DEFINITION"],"isRepeatable":true,
					"args":[{"name":"name","type":{"kind":"NON_NULL","name":null,"ofType":{"kind":"SCALAR","name":"String","ofType":null}},"defaultValue":null}]}]}}}`,
			wantSDL: "directive @tag(name: String!) repeatable on OBJECT | FIELD_DEFINITION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatal(err)
			}

			if sdl := SDL(q); !strings.Contains(sdl, tt.wantSDL) {
				t.Errorf("SDL() does not contain %q\n%s", tt.wantSDL, sdl)
			}

			schema, err := LoadSchema("directives", q)
			if err != nil {
				t.Fatalf("LoadSchema() unexpected error: %v", err)
			}
			if _, ok := schema.Directives[q.Schema.Directives[0].Name]; !ok {
				t.Errorf("directive %q missing from schema", q.Schema.Directives[0].Name)
			}
		})
	}
}
